package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output is a rendering mode selected with --output.
type Output string

const (
	OutputText Output = "text"
	OutputJSON Output = "json"
	OutputYAML Output = "yaml"
)

// ParseOutput accepts text, json or yaml in any case.
func ParseOutput(s string) (Output, error) {
	switch o := Output(strings.ToLower(strings.TrimSpace(s))); o {
	case OutputText, OutputJSON, OutputYAML:
		return o, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output %q (expected text, json or yaml)", s)
	}
}

// Encode writes v as indented JSON or YAML.
func Encode(w io.Writer, out Output, v any) error {
	switch out {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("output %q is not a structured encoding", out)
	}
}
