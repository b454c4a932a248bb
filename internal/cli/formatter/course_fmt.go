package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/bachlog/internal/domain"
)

// FormatCourseList renders the plan grouped by semester, with a credit
// subtotal per semester and a grand total.
func FormatCourseList(courses []*domain.CourseRecord) string {
	bySemester := make(map[int][]*domain.CourseRecord)
	for _, c := range courses {
		bySemester[c.Semester] = append(bySemester[c.Semester], c)
	}

	headers := []string{"ID", "CODE", "TITLE", "EAP", "MODULE", "SEASON"}
	var b strings.Builder
	var total float64
	for sem := domain.MinSemester; sem <= domain.MaxSemester; sem++ {
		group := bySemester[sem]
		if len(group) == 0 {
			continue
		}
		rows := make([][]string, 0, len(group))
		var sum float64
		for _, c := range group {
			rows = append(rows, []string{
				Dim(strconv.FormatInt(c.ID, 10)),
				Bold(c.Code),
				Truncate(c.Title, 40),
				FormatCredits(c.Credits),
				ModuleBadge(c.ModuleCode()),
				SeasonBadge(c.Season()),
			})
			sum += c.Credits
		}
		total += sum

		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(fmt.Sprintf("Semester %d (%s)", sem, domain.ExpectedSeason(sem))))
		b.WriteString("\n")
		b.WriteString(RenderTableRight(headers, rows, 3))
		b.WriteString(Dim(fmt.Sprintf("%s EAP", FormatCredits(sum))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s EAP in %d courses", Bold("Total"), FormatCredits(total), len(courses)))
	return RenderBox("Plan", b.String())
}

// FormatCourseDetail renders every stored field of one course.
func FormatCourseDetail(c *domain.CourseRecord, modules domain.ModuleOptions) string {
	field := func(label, value string) string {
		return fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-10s", label)), value)
	}

	var b strings.Builder
	b.WriteString(StyleBold.Render(c.Code) + "  " + Placeholder(c.Title) + "\n\n")
	b.WriteString(field("ID", strconv.FormatInt(c.ID, 10)))
	b.WriteString(field("UUID", Placeholder(c.UUID)))
	b.WriteString(field("SEMESTER", strconv.Itoa(c.Semester)))
	b.WriteString(field("EAP", FormatCredits(c.Credits)))
	b.WriteString(field("SEASON", SeasonBadge(c.Season())))
	b.WriteString(field("MODULE", fmt.Sprintf("%s %s", ModuleBadge(c.ModuleCode()), Dim(modules.Title(c.ModuleCode())))))
	b.WriteString(field("CURRICULUM", Placeholder(c.Curriculum)))
	if c.Grade != "" {
		b.WriteString(field("GRADE", c.Grade))
	}
	if c.Comment != "" {
		b.WriteString(field("COMMENT", c.Comment))
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}
