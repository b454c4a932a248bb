package contract

import "github.com/alexanderramin/bachlog/internal/domain"

// Issue is one rule violation found for a planned course.
type Issue struct {
	Kind    domain.IssueKind `json:"kind" yaml:"kind"`
	Message string           `json:"message" yaml:"message"`
	// Prereqs lists the prerequisite codes none of which is planned earlier.
	Prereqs []string `json:"prereqs,omitempty" yaml:"prereqs,omitempty"`
}

// CourseCheck is the compliance result of one planned course.
type CourseCheck struct {
	ID       int64   `json:"id" yaml:"id"`
	Code     string  `json:"code" yaml:"code"`
	Semester int     `json:"semester" yaml:"semester"`
	OK       bool    `json:"ok" yaml:"ok"`
	Issues   []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// SubmoduleReport lists the courses of a submodule absent from the plan.
type SubmoduleReport struct {
	ID         string             `json:"id" yaml:"id"`
	Title      string             `json:"title" yaml:"title"`
	Code       string             `json:"code" yaml:"code"`
	MinCredits float64            `json:"min_credits" yaml:"min_credits"`
	Missing    []domain.CourseRef `json:"missing" yaml:"missing"`
	OK         bool               `json:"ok" yaml:"ok"`
}

// MisplacedCourse is a planned course filed under a module code that does
// not match its place in the requirement tree.
type MisplacedCourse struct {
	CourseID      int64  `json:"course_id" yaml:"course_id"`
	UUID          string `json:"uuid" yaml:"uuid"`
	Code          string `json:"code" yaml:"code"`
	Title         string `json:"title" yaml:"title"`
	CurrentModule string `json:"current_module" yaml:"current_module"`
	CorrectModule string `json:"correct_module" yaml:"correct_module"`
	Reason        string `json:"reason" yaml:"reason"`
}

// DoubledCourse is a repeated occurrence of a catalog course in the plan.
type DoubledCourse struct {
	CourseID int64  `json:"course_id" yaml:"course_id"`
	UUID     string `json:"uuid" yaml:"uuid"`
	Code     string `json:"code" yaml:"code"`
	Title    string `json:"title" yaml:"title"`
	Semester int    `json:"semester" yaml:"semester"`
}

type Warnings struct {
	Misplaced []MisplacedCourse `json:"misplaced" yaml:"misplaced"`
	Doubled   []DoubledCourse   `json:"doubled" yaml:"doubled"`
}

// ModuleReport is the curriculum-wide compliance report. OK is true when
// no required submodule and not the thesis submodule has missing courses;
// the elective submodule never affects it.
type ModuleReport struct {
	OK         bool              `json:"ok" yaml:"ok"`
	Message    string            `json:"message,omitempty" yaml:"message,omitempty"`
	Curriculum string            `json:"curriculum" yaml:"curriculum"`
	Year       int               `json:"year" yaml:"year"`
	Required   []SubmoduleReport `json:"required" yaml:"required"`
	Elective   *SubmoduleReport  `json:"elective,omitempty" yaml:"elective,omitempty"`
	Thesis     *SubmoduleReport  `json:"thesis,omitempty" yaml:"thesis,omitempty"`
	Warnings   Warnings          `json:"warnings" yaml:"warnings"`
}
