package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// OptionRequired is the option_type value that marks a submodule as
// mandatory.
const OptionRequired = "required"

// CourseRef identifies a catalog course inside a curriculum tree or report.
type CourseRef struct {
	UUID  string `json:"uuid" yaml:"uuid"`
	Code  string `json:"code" yaml:"code"`
	Title string `json:"title" yaml:"title"`
}

// CurriculumNode is a node of the externally sourced requirement tree.
// Decoding is tolerant: missing or malformed fields decode as their zero
// value instead of failing the whole tree.
type CurriculumNode struct {
	ID         string
	Title      string
	MinCredits float64
	OptionType string
	Courses    []CourseRef
	Submodules []*CurriculumNode
	Blocks     []*CurriculumNode
}

// IsRequired reports whether the node's option type marks it mandatory.
func (n *CurriculumNode) IsRequired() bool {
	return strings.EqualFold(n.OptionType, OptionRequired)
}

// CourseIDs returns the catalog identities of the node's courses, skipping
// entries without one.
func (n *CurriculumNode) CourseIDs() []string {
	ids := make([]string, 0, len(n.Courses))
	for _, c := range n.Courses {
		if c.UUID != "" {
			ids = append(ids, c.UUID)
		}
	}
	return ids
}

func (n *CurriculumNode) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not an object: treat as an empty node.
		*n = CurriculumNode{}
		return nil
	}

	*n = CurriculumNode{
		ID:         firstString(raw, "uuid", "id", "code"),
		Title:      localizedText(raw["title"]),
		MinCredits: lenientNumber(raw["min_credits"]),
		OptionType: optionType(raw["option_type"]),
		Courses:    decodeCourseRefs(raw["courses"]),
		Submodules: decodeNodes(raw["submodules"]),
		Blocks:     decodeNodes(raw["blocks"]),
	}
	return nil
}

func (c *CourseRef) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*c = CourseRef{}
		return nil
	}
	*c = CourseRef{
		UUID:  firstString(raw, "uuid", "id"),
		Code:  firstString(raw, "code"),
		Title: localizedText(raw["title"]),
	}
	return nil
}

func decodeNodes(data json.RawMessage) []*CurriculumNode {
	var items []json.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &items) != nil {
		return nil
	}
	nodes := make([]*CurriculumNode, 0, len(items))
	for _, item := range items {
		var node CurriculumNode
		_ = json.Unmarshal(item, &node)
		nodes = append(nodes, &node)
	}
	return nodes
}

func decodeCourseRefs(data json.RawMessage) []CourseRef {
	var items []json.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &items) != nil {
		return nil
	}
	refs := make([]CourseRef, 0, len(items))
	for _, item := range items {
		var ref CourseRef
		_ = json.Unmarshal(item, &ref)
		refs = append(refs, ref)
	}
	return refs
}

// localizedText accepts either a plain string or an {"et": ..., "en": ...}
// object, preferring Estonian.
func localizedText(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		return s
	}
	var loc map[string]string
	if json.Unmarshal(data, &loc) == nil {
		if v := loc["et"]; v != "" {
			return v
		}
		return loc["en"]
	}
	return ""
}

func optionType(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		return s
	}
	var obj struct {
		Code string `json:"code"`
	}
	if json.Unmarshal(data, &obj) == nil {
		return obj.Code
	}
	return ""
}

func lenientNumber(data json.RawMessage) float64 {
	if len(data) == 0 {
		return 0
	}
	var f float64
	if json.Unmarshal(data, &f) == nil {
		return f
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v
		}
	}
	return 0
}

func firstString(raw map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		var s string
		if v, ok := raw[k]; ok && json.Unmarshal(v, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

// Submodule is a flattened course grouping extracted from a requirement tree.
type Submodule struct {
	ID         string   `json:"id" yaml:"id"`
	Title      string   `json:"title" yaml:"title"`
	MinCredits float64  `json:"min_credits" yaml:"min_credits"`
	Code       string   `json:"code" yaml:"code"`
	CourseIDs  []string `json:"course_ids" yaml:"course_ids"`
}

// RequirementStructure is the flattened view of a curriculum's requirement
// tree. It is built once and never mutated.
type RequirementStructure struct {
	Required []Submodule `json:"required_submodules" yaml:"required_submodules"`
	Elective *Submodule  `json:"elective_submodule" yaml:"elective_submodule"`
	Thesis   *Submodule  `json:"thesis_submodule" yaml:"thesis_submodule"`
}
