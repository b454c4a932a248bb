package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/bachlog/internal/domain"
)

// UnassignedModule in the module column places a course in no module.
const UnassignedModule = "-"

// ValidRow is a row that passed every field rule. An empty Module means
// the course is unassigned.
type ValidRow struct {
	Line     int
	Code     string
	Semester int
	Module   string
}

// ValidateRow applies the field rules in order and stops at the first
// failure: required fields, semester range, module code.
func ValidateRow(row Row, modules domain.ModuleOptions) (ValidRow, error) {
	if row.Malformed != "" {
		return ValidRow{}, fmt.Errorf("%w: line %d is malformed: %s", domain.ErrValidation, row.Line, row.Malformed)
	}

	var blank []string
	if row.Code == "" {
		blank = append(blank, ColumnCode)
	}
	if row.Semester == "" {
		blank = append(blank, ColumnSemester)
	}
	if row.Module == "" {
		blank = append(blank, ColumnModule)
	}
	if len(blank) > 0 {
		return ValidRow{}, fmt.Errorf("%w: missing required field(s): %s", domain.ErrValidation, strings.Join(blank, ", "))
	}

	semester, err := strconv.Atoi(row.Semester)
	if err != nil || domain.ValidateSemester(semester) != nil {
		return ValidRow{}, fmt.Errorf("%w: semester must be an integer between %d and %d, got %q",
			domain.ErrValidation, domain.MinSemester, domain.MaxSemester, row.Semester)
	}

	module := strings.ToUpper(row.Module)
	if module == UnassignedModule {
		module = ""
	} else if !modules.Has(module) {
		return ValidRow{}, fmt.Errorf("%w: module %q is not allowed (allowed: %s, or %s for none)",
			domain.ErrValidation, row.Module, strings.Join(modules.Codes(), ", "), UnassignedModule)
	}

	return ValidRow{
		Line:     row.Line,
		Code:     domain.NormalizeCode(row.Code),
		Semester: semester,
		Module:   module,
	}, nil
}
