// Package curriculum flattens an externally sourced curriculum tree into
// the requirement structure the compliance checker works with.
package curriculum

import (
	"strings"

	"github.com/alexanderramin/bachlog/internal/domain"
)

// Classifier decides which tree nodes are the elective bucket, the thesis
// bucket, or a required submodule.
type Classifier struct {
	IsElective func(*domain.CurriculumNode) bool
	IsThesis   func(*domain.CurriculumNode) bool
	IsRequired func(*domain.CurriculumNode) bool
}

// NewTitleClassifier matches the elective and thesis buckets by exact title
// equality against the given labels. Required submodules are recognized by
// their option type. An empty label never matches.
func NewTitleClassifier(electiveLabel, thesisLabel string) Classifier {
	return Classifier{
		IsElective: titleEquals(electiveLabel),
		IsThesis:   titleEquals(thesisLabel),
		IsRequired: (*domain.CurriculumNode).IsRequired,
	}
}

func titleEquals(label string) func(*domain.CurriculumNode) bool {
	return func(n *domain.CurriculumNode) bool {
		return label != "" && n.Title == label
	}
}

// Extractor builds a RequirementStructure from a curriculum tree.
type Extractor struct {
	classify Classifier
}

// NewExtractor creates an Extractor. Nil predicates in c never match.
func NewExtractor(c Classifier) *Extractor {
	never := func(*domain.CurriculumNode) bool { return false }
	if c.IsElective == nil {
		c.IsElective = never
	}
	if c.IsThesis == nil {
		c.IsThesis = never
	}
	if c.IsRequired == nil {
		c.IsRequired = never
	}
	return &Extractor{classify: c}
}

// Extract walks the tree rooted at roots. If the elective or thesis label
// matches more than one node, the last one visited wins. Required
// submodules are reported in visitation order and are not deduplicated: a
// submodule listed under two parents is reported twice. Each node object is
// expanded at most once, so cyclic trees terminate.
func (e *Extractor) Extract(roots []*domain.CurriculumNode) domain.RequirementStructure {
	var out domain.RequirementStructure

	visited := make(map[*domain.CurriculumNode]bool)
	work := make([]*domain.CurriculumNode, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		work = append(work, roots[i])
	}

	for len(work) > 0 {
		node := work[len(work)-1]
		work = work[:len(work)-1]
		if node == nil || visited[node] {
			continue
		}
		visited[node] = true

		if e.classify.IsElective(node) {
			sm := toSubmodule(node, domain.ModuleElective)
			out.Elective = &sm
		}
		if e.classify.IsThesis(node) {
			sm := toSubmodule(node, domain.ModuleThesis)
			out.Thesis = &sm
		}

		for _, sub := range node.Submodules {
			if sub != nil && e.classify.IsRequired(sub) {
				out.Required = append(out.Required, toSubmodule(sub, domain.ModuleRequired))
			}
		}

		// Children are pushed in reverse so they pop in document order.
		for i := len(node.Blocks) - 1; i >= 0; i-- {
			work = append(work, node.Blocks[i])
		}
		for i := len(node.Submodules) - 1; i >= 0; i-- {
			work = append(work, node.Submodules[i])
		}
	}

	return out
}

func toSubmodule(n *domain.CurriculumNode, code string) domain.Submodule {
	return domain.Submodule{
		ID:         n.ID,
		Title:      strings.TrimSpace(n.Title),
		MinCredits: n.MinCredits,
		Code:       code,
		CourseIDs:  n.CourseIDs(),
	}
}
