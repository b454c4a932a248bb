package formatter

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/contract"
	"github.com/alexanderramin/bachlog/internal/domain"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func module(code string) *string { return &code }

func TestRenderTableRight_AlignsNumbers(t *testing.T) {
	out := stripANSI(RenderTableRight([]string{"CODE", "EAP"}, [][]string{{"A", "6"}, {"B", "12.5"}}, 1))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "CODE   EAP", lines[0])
	assert.Equal(t, "A        6", lines[2])
	assert.Equal(t, "B     12.5", lines[3])
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Sissejuhatus", Truncate("Sissejuhatus", 20))
	assert.Equal(t, "Sisse…", Truncate("Sissejuhatus", 6))
	assert.Equal(t, "Õppe…", Truncate("Õppekava", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
}

func TestFormatCourseList_GroupsBySemester(t *testing.T) {
	courses := []*domain.CourseRecord{
		{ID: 1, Code: "AY1010", Title: "Sissejuhatus", Semester: 1, Credits: 6, IsAutumnCourse: true, Module: module("PM")},
		{ID: 2, Code: "MTMM.00.340", Title: "Matemaatika", Semester: 1, Credits: 4.5},
		{ID: 3, Code: "LTAT.06.001", Title: "Lõputöö", Semester: 6, Credits: 9, IsSpringCourse: true, Module: module("LM")},
	}

	out := stripANSI(FormatCourseList(courses))
	assert.Contains(t, out, "SEMESTER 1 (AUTUMN)")
	assert.Contains(t, out, "SEMESTER 6 (SPRING)")
	assert.NotContains(t, out, "SEMESTER 2")
	assert.Contains(t, out, "10.5 EAP")
	assert.Contains(t, out, "19.5 EAP in 3 courses")
	assert.Contains(t, out, "autumn")
}

func TestFormatModuleReport(t *testing.T) {
	t.Run("unavailable structure", func(t *testing.T) {
		out := stripANSI(FormatModuleReport(&contract.ModuleReport{Curriculum: "IFBB", Message: "no required modules found"}))
		assert.Contains(t, out, "MODULES IFBB")
		assert.Contains(t, out, "no required modules found")
	})

	t.Run("full report", func(t *testing.T) {
		r := &contract.ModuleReport{
			Curriculum: "IFBB",
			Year:       2024,
			Required: []contract.SubmoduleReport{
				{Title: "Alusmoodul", Code: "PM", MinCredits: 60, Missing: []domain.CourseRef{{Code: "MTAT.03.001", Title: "Programmeerimine"}}},
			},
			Thesis:   &contract.SubmoduleReport{Title: "Lõputöö", Code: "LM", OK: true},
			Elective: &contract.SubmoduleReport{Title: "Valikained", Code: "VM", Missing: []domain.CourseRef{{UUID: "u-elective-1"}}},
			Warnings: contract.Warnings{
				Misplaced: []contract.MisplacedCourse{{Code: "AY1010", CurrentModule: "VA", CorrectModule: "PM", Reason: "Aine kuulub moodulisse Põhimoodul."}},
				Doubled:   []contract.DoubledCourse{{Code: "AY1010", Title: "Sissejuhatus", Semester: 3}},
			},
		}
		out := stripANSI(FormatModuleReport(r))
		assert.Contains(t, out, "MODULES IFBB 2024")
		assert.Contains(t, out, "✖ INCOMPLETE")
		assert.Contains(t, out, "1 missing")
		assert.Contains(t, out, "MTAT.03.001 Programmeerimine")
		assert.Contains(t, out, "-- u-elective-1")
		assert.Contains(t, out, "MISPLACED")
		assert.Contains(t, out, "Aine kuulub moodulisse Põhimoodul.")
		assert.Contains(t, out, "DOUBLED")
	})
}

func TestFormatCourseChecks_Summary(t *testing.T) {
	out := stripANSI(FormatCourseChecks([]contract.CourseCheck{
		{ID: 1, Code: "A", Semester: 1, OK: true},
		{ID: 2, Code: "B", Semester: 2, Issues: []contract.Issue{{Kind: domain.IssueSemester, Message: "Kursus B on planeeritud valesse semestrisse."}}},
	}))
	assert.Contains(t, out, "1 of 2 courses have issues")
	assert.Contains(t, out, "valesse semestrisse")
}

func TestFormatImportResult_ListsFailures(t *testing.T) {
	out := stripANSI(FormatImportResult(&contract.ImportResult{
		RunID:     "run-1",
		Processed: 2,
		Succeeded: 1,
		Failed:    1,
		Courses: []contract.RowOutcome{
			{Line: 2, Code: "AY1010", Semester: "1", Module: "PM", Status: contract.RowSuccess},
			{Line: 3, Code: "AY1010", Semester: "7", Module: "PM", Status: contract.RowFailed, Error: "semester must be an integer between 1 and 6"},
		},
	}))
	assert.Contains(t, out, "2 processed")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "semester must be an integer")
	assert.Contains(t, out, "run run-1")
}

func TestFormatCatalog(t *testing.T) {
	assert.Contains(t, stripANSI(FormatPrerequisites("X", nil)), "no prerequisites")
	assert.Contains(t, stripANSI(FormatPrerequisites("X", []string{"A", "B"})), "one of: A, B")
	assert.Contains(t, stripANSI(FormatSeason("X", catalog.Season{IsAutumnCourse: true, IsSpringCourse: true})), "both")
	assert.Contains(t, stripANSI(FormatCurricula(catalog.Curricula{Titles: []string{"A", "B"}, Default: "B"})), "● B")
	assert.Contains(t, stripANSI(FormatVersions("IFBB", []int{2024, 2021})), "2024, 2021")
	assert.Contains(t, stripANSI(FormatModuleOptions(domain.DefaultModuleOptions())), "Lõputöö moodul")
}

func TestEncode(t *testing.T) {
	v := contract.CourseCheck{ID: 1, Code: "A", Semester: 2, OK: true}

	var js bytes.Buffer
	require.NoError(t, Encode(&js, OutputJSON, v))
	assert.Contains(t, js.String(), `"code": "A"`)

	var ym bytes.Buffer
	require.NoError(t, Encode(&ym, OutputYAML, v))
	assert.Contains(t, ym.String(), "semester: 2")

	assert.Error(t, Encode(&ym, OutputText, v))
}

func TestParseOutput(t *testing.T) {
	out, err := ParseOutput(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, OutputJSON, out)

	out, err = ParseOutput("")
	require.NoError(t, err)
	assert.Equal(t, OutputText, out)

	_, err = ParseOutput("xml")
	assert.Error(t, err)
}
