package domain

import "strings"

// ModuleOption is one entry of the configured module table. A nil Code is
// the "unassigned" sentinel.
type ModuleOption struct {
	Code       *string `mapstructure:"code" json:"code" yaml:"code"`
	Title      string  `mapstructure:"title" json:"title" yaml:"title" validate:"required"`
	MinCredits float64 `mapstructure:"min_credits" json:"min_credits" yaml:"min_credits" validate:"gte=0"`
}

// ModuleOptions is the ordered module table shared by the importer, the
// compliance checker and the CLI.
type ModuleOptions []ModuleOption

func strPtr(s string) *string { return &s }

// DefaultModuleOptions returns the built-in module table.
func DefaultModuleOptions() ModuleOptions {
	return ModuleOptions{
		{Code: nil, Title: "Määramata"},
		{Code: strPtr(ModuleRequired), Title: "Põhimoodul", MinCredits: 60},
		{Code: strPtr(ModuleElective), Title: "Valikmoodul", MinCredits: 24},
		{Code: strPtr(ModuleSpecialization), Title: "Suunamoodul", MinCredits: 36},
		{Code: strPtr(ModuleMajor), Title: "Erialamoodul", MinCredits: 30},
		{Code: strPtr(ModuleFreeElective), Title: "Vabaaine", MinCredits: 18},
		{Code: strPtr(ModuleThesis), Title: "Lõputöö moodul", MinCredits: 12},
	}
}

// Codes returns the non-sentinel module codes in table order.
func (m ModuleOptions) Codes() []string {
	codes := make([]string, 0, len(m))
	for _, opt := range m {
		if opt.Code != nil {
			codes = append(codes, *opt.Code)
		}
	}
	return codes
}

// Has reports whether code (case-insensitive) is a configured module code.
func (m ModuleOptions) Has(code string) bool {
	_, ok := m.lookup(code)
	return ok
}

// Title returns the display title for code. An empty code resolves to the
// unassigned sentinel; an unknown code is returned as-is.
func (m ModuleOptions) Title(code string) string {
	if strings.TrimSpace(code) == "" {
		for _, opt := range m {
			if opt.Code == nil {
				return opt.Title
			}
		}
		return ""
	}
	if opt, ok := m.lookup(code); ok {
		return opt.Title
	}
	return code
}

// MinCredits returns the minimum-credit target for code, or 0 if unknown.
func (m ModuleOptions) MinCredits(code string) float64 {
	if opt, ok := m.lookup(code); ok {
		return opt.MinCredits
	}
	return 0
}

func (m ModuleOptions) lookup(code string) (ModuleOption, bool) {
	norm := strings.ToUpper(strings.TrimSpace(code))
	if norm == "" {
		return ModuleOption{}, false
	}
	for _, opt := range m {
		if opt.Code != nil && strings.ToUpper(*opt.Code) == norm {
			return opt, true
		}
	}
	return ModuleOption{}, false
}
