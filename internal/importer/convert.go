package importer

import (
	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/domain"
)

// ToCourseRecord builds the record persisted for an enriched row. Code and
// title come from the catalog match, placement from the row.
func ToCourseRecord(row ValidRow, course catalog.CourseSummary, season catalog.Season, curriculum string) *domain.CourseRecord {
	code := course.Code
	if code == "" {
		code = row.Code
	}
	var module *string
	if row.Module != "" {
		m := row.Module
		module = &m
	}
	return &domain.CourseRecord{
		UUID:           course.UUID,
		Semester:       row.Semester,
		Code:           code,
		Title:          course.Title,
		Credits:        course.Credits,
		IsAutumnCourse: season.IsAutumnCourse,
		IsSpringCourse: season.IsSpringCourse,
		Curriculum:     curriculum,
		Module:         module,
	}
}
