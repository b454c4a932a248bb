package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/domain"
)

func FormatCatalogCourses(courses []catalog.CourseSummary) string {
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{Bold(c.Code), Truncate(c.Title, 48), FormatCredits(c.Credits), Dim(c.UUID)})
	}
	return RenderTableRight([]string{"CODE", "TITLE", "EAP", "UUID"}, rows, 2)
}

func FormatSeason(code string, s catalog.Season) string {
	return fmt.Sprintf("%s  %s", Bold(code), SeasonBadge(domain.SeasonOf(s.IsAutumnCourse, s.IsSpringCourse)))
}

// FormatPrerequisites lists prerequisite codes; any one of them suffices.
func FormatPrerequisites(code string, prereqs []string) string {
	if len(prereqs) == 0 {
		return fmt.Sprintf("%s has no prerequisites", Bold(code))
	}
	return fmt.Sprintf("%s requires one of: %s", Bold(code), strings.Join(prereqs, ", "))
}

// FormatCurricula lists curriculum titles and marks the default choice.
func FormatCurricula(c catalog.Curricula) string {
	if len(c.Titles) == 0 {
		return Dim("no curricula")
	}
	var b strings.Builder
	for _, t := range c.Titles {
		marker := "  "
		if t == c.Default {
			marker = StyleGreen.Render("● ")
		}
		b.WriteString(marker + t + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func FormatVersions(curriculumID string, years []int) string {
	if len(years) == 0 {
		return fmt.Sprintf("%s has no confirmed versions", Bold(curriculumID))
	}
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = strconv.Itoa(y)
	}
	return fmt.Sprintf("%s  %s", Bold(curriculumID), strings.Join(parts, ", "))
}

// FormatModuleOptions renders the configured module table.
func FormatModuleOptions(modules domain.ModuleOptions) string {
	rows := make([][]string, 0, len(modules))
	for _, opt := range modules {
		code := ""
		if opt.Code != nil {
			code = *opt.Code
		}
		rows = append(rows, []string{ModuleBadge(code), opt.Title, FormatCredits(opt.MinCredits)})
	}
	return RenderTableRight([]string{"CODE", "TITLE", "MIN EAP"}, rows, 2)
}
