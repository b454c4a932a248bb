package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/bachlog/internal/contract"
	"github.com/alexanderramin/bachlog/internal/domain"
)

// FormatCourseChecks renders one row per checked course and a summary line.
func FormatCourseChecks(results []contract.CourseCheck) string {
	headers := []string{"ID", "CODE", "SEM", "STATUS", "ISSUES"}
	rows := make([][]string, 0, len(results))
	failing := 0
	for _, r := range results {
		msgs := make([]string, 0, len(r.Issues))
		for _, issue := range r.Issues {
			msgs = append(msgs, issue.Message)
		}
		if !r.OK {
			failing++
		}
		rows = append(rows, []string{
			Dim(strconv.FormatInt(r.ID, 10)),
			Bold(r.Code),
			strconv.Itoa(r.Semester),
			OKIndicator(r.OK, "ISSUES"),
			strings.Join(msgs, " "),
		})
	}

	summary := StyleGreen.Render(fmt.Sprintf("All %d courses pass", len(results)))
	if failing > 0 {
		summary = StyleRed.Render(fmt.Sprintf("%d of %d courses have issues", failing, len(results)))
	}
	return RenderBox("Plan check", RenderTable(headers, rows)+"\n"+summary)
}

// FormatModuleReport renders the curriculum-wide report: submodule
// coverage first, then misplaced and doubled course warnings.
func FormatModuleReport(r *contract.ModuleReport) string {
	title := fmt.Sprintf("Modules %s", r.Curriculum)
	if r.Year > 0 {
		title = fmt.Sprintf("%s %d", title, r.Year)
	}
	if r.Message != "" {
		return RenderBox(title, StyleYellow.Render(r.Message))
	}

	var b strings.Builder
	b.WriteString(OKIndicator(r.OK, "INCOMPLETE") + "\n")

	for _, sub := range r.Required {
		b.WriteString("\n" + formatSubmodule(sub, ""))
	}
	if r.Thesis != nil {
		b.WriteString("\n" + formatSubmodule(*r.Thesis, ""))
	}
	if r.Elective != nil {
		b.WriteString("\n" + formatSubmodule(*r.Elective, "informational"))
	}

	if len(r.Warnings.Misplaced) > 0 {
		rows := make([][]string, 0, len(r.Warnings.Misplaced))
		for _, m := range r.Warnings.Misplaced {
			rows = append(rows, []string{
				Bold(m.Code),
				ModuleBadge(m.CurrentModule),
				ModuleBadge(m.CorrectModule),
				m.Reason,
			})
		}
		b.WriteString("\n" + Header("Misplaced") + "\n")
		b.WriteString(RenderTable([]string{"CODE", "FILED", "EXPECTED", "REASON"}, rows))
	}

	if len(r.Warnings.Doubled) > 0 {
		rows := make([][]string, 0, len(r.Warnings.Doubled))
		for _, d := range r.Warnings.Doubled {
			rows = append(rows, []string{Bold(d.Code), Placeholder(d.Title), strconv.Itoa(d.Semester)})
		}
		b.WriteString("\n" + Header("Doubled") + "\n")
		b.WriteString(RenderTable([]string{"CODE", "TITLE", "SEM"}, rows))
	}

	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

func formatSubmodule(s contract.SubmoduleReport, note string) string {
	var b strings.Builder
	head := fmt.Sprintf("%s %s", ModuleBadge(s.Code), Bold(s.Title))
	if s.MinCredits > 0 {
		head += Dim(fmt.Sprintf(" min %s EAP", FormatCredits(s.MinCredits)))
	}
	if note != "" {
		head += Dim(" (" + note + ")")
	}
	b.WriteString(head + "  " + OKIndicator(s.OK, fmt.Sprintf("%d missing", len(s.Missing))) + "\n")
	for _, m := range s.Missing {
		name := m.Title
		if m.Code == "" && name == "" {
			name = Dim(m.UUID)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render(Placeholder(m.Code)), name))
	}
	return b.String()
}

// FormatStructure renders the flattened requirement structure of a
// curriculum version.
func FormatStructure(curriculumID string, year int, s *domain.RequirementStructure) string {
	title := fmt.Sprintf("Structure %s %d", curriculumID, year)
	if s == nil {
		return RenderBox(title, StyleYellow.Render("no required modules found"))
	}

	headers := []string{"CODE", "TITLE", "MIN EAP", "COURSES"}
	row := func(sub domain.Submodule) []string {
		return []string{
			ModuleBadge(sub.Code),
			Bold(sub.Title),
			FormatCredits(sub.MinCredits),
			strconv.Itoa(len(sub.CourseIDs)),
		}
	}
	rows := make([][]string, 0, len(s.Required)+2)
	for _, sub := range s.Required {
		rows = append(rows, row(sub))
	}
	if s.Elective != nil {
		rows = append(rows, row(*s.Elective))
	}
	if s.Thesis != nil {
		rows = append(rows, row(*s.Thesis))
	}
	return RenderBox(title, RenderTableRight(headers, rows, 2, 3))
}
