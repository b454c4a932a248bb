package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/domain"
)

func TestValidateRow(t *testing.T) {
	modules := domain.DefaultModuleOptions()

	tests := []struct {
		name     string
		row      Row
		want     ValidRow
		contains string
	}{
		{name: "valid", row: Row{Line: 2, Code: "ay1010", Semester: "1", Module: "pm"}, want: ValidRow{Line: 2, Code: "AY1010", Semester: 1, Module: "PM"}},
		{name: "last semester", row: Row{Code: "X", Semester: "6", Module: "LM"}, want: ValidRow{Code: "X", Semester: 6, Module: "LM"}},
		{name: "blank code", row: Row{Semester: "1", Module: "PM"}, contains: "missing required field(s): kood"},
		{name: "all blank", row: Row{}, contains: "kood, semester, moodul"},
		{name: "semester seven", row: Row{Code: "X", Semester: "7", Module: "PM"}, contains: "semester must be an integer between 1 and 6"},
		{name: "semester zero", row: Row{Code: "X", Semester: "0", Module: "PM"}, contains: "semester must be an integer between 1 and 6"},
		{name: "semester not a number", row: Row{Code: "X", Semester: "kolm", Module: "PM"}, contains: "semester"},
		{name: "semester fractional", row: Row{Code: "X", Semester: "1.5", Module: "PM"}, contains: "semester"},
		{name: "unknown module", row: Row{Code: "X", Semester: "1", Module: "XX"}, contains: "allowed: PM, VM, SM, EM, VA, LM"},
		{name: "unassigned", row: Row{Code: "X", Semester: "2", Module: "-"}, want: ValidRow{Code: "X", Semester: 2, Module: ""}},
		{name: "malformed line", row: Row{Line: 4, Malformed: "bare quote"}, contains: "line 4 is malformed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateRow(tt.row, modules)
			if tt.contains == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidateRow_SemesterCheckedBeforeModule(t *testing.T) {
	_, err := ValidateRow(Row{Code: "X", Semester: "9", Module: "XX"}, domain.DefaultModuleOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "semester")
	assert.NotContains(t, err.Error(), "allowed")
}

func TestToCourseRecord(t *testing.T) {
	row := ValidRow{Line: 2, Code: "AY1010", Semester: 3, Module: "VM"}
	course := catalog.CourseSummary{UUID: "u-1", Code: "AY1010", Title: "Sissejuhatus", Credits: 6}

	rec := ToCourseRecord(row, course, catalog.Season{IsAutumnCourse: true}, "Informaatika")
	require.NoError(t, rec.Validate())
	assert.Equal(t, "u-1", rec.UUID)
	assert.Equal(t, 3, rec.Semester)
	assert.Equal(t, "Sissejuhatus", rec.Title)
	assert.Equal(t, float64(6), rec.Credits)
	assert.True(t, rec.IsAutumnCourse)
	assert.False(t, rec.IsSpringCourse)
	assert.Equal(t, "Informaatika", rec.Curriculum)
	assert.Equal(t, "VM", rec.ModuleCode())

	rec = ToCourseRecord(row, catalog.CourseSummary{UUID: "u-2"}, catalog.Season{}, "")
	assert.Equal(t, "AY1010", rec.Code)

	row.Module = ""
	rec = ToCourseRecord(row, course, catalog.Season{}, "")
	assert.Nil(t, rec.Module)
}
