package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/bachlog/internal/cli/formatter"
)

// render writes v encoded per --output, or text() when the output is text.
func render(cmd *cobra.Command, v any, text func() string) error {
	flag, _ := cmd.Flags().GetString("output")
	out, err := formatter.ParseOutput(flag)
	if err != nil {
		return err
	}
	if out == formatter.OutputText {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text())
		return err
	}
	return formatter.Encode(cmd.OutOrStdout(), out, v)
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid course ID %q", s)
	}
	return id, nil
}

func parseSemester(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid semester %q", s)
	}
	return n, nil
}
