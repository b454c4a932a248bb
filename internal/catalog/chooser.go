package catalog

import "strings"

// CurriculumChooser picks the default curriculum for a course out of the
// curriculum titles the course belongs to.
type CurriculumChooser interface {
	ChooseDefault(titles []string) string
}

// PreferredChooser returns the first title equal (case-insensitive) to one
// of Preferred, falling back to the first offered title.
type PreferredChooser struct {
	Preferred []string
}

// NewPreferredChooser creates a PreferredChooser. Empty preferences are
// dropped.
func NewPreferredChooser(preferred ...string) PreferredChooser {
	var kept []string
	for _, p := range preferred {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return PreferredChooser{Preferred: kept}
}

func (c PreferredChooser) ChooseDefault(titles []string) string {
	for _, want := range c.Preferred {
		for _, t := range titles {
			if strings.EqualFold(strings.TrimSpace(t), want) {
				return t
			}
		}
	}
	for _, t := range titles {
		if strings.TrimSpace(t) != "" {
			return t
		}
	}
	return ""
}
