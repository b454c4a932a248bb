package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MinSemester = 1
	MaxSemester = 6
)

var validate = validator.New()

// CourseRecord is a single planned course in the student's six-semester plan.
type CourseRecord struct {
	ID             int64   `json:"id" yaml:"id"`
	UUID           string  `json:"uuid" yaml:"uuid"`
	Semester       int     `json:"semester" yaml:"semester" validate:"min=1,max=6"`
	Code           string  `json:"code" yaml:"code" validate:"required"`
	Title          string  `json:"title" yaml:"title"`
	Credits        float64 `json:"credits" yaml:"credits" validate:"gte=0"`
	IsAutumnCourse bool    `json:"isAutumnCourse" yaml:"is_autumn_course"`
	IsSpringCourse bool    `json:"isSpringCourse" yaml:"is_spring_course"`
	Curriculum     string  `json:"curriculum" yaml:"curriculum"`
	Module         *string `json:"module" yaml:"module"`
	Comment        string  `json:"comment,omitempty" yaml:"comment,omitempty"`
	Grade          string  `json:"grade,omitempty" yaml:"grade,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Validate checks the record invariants: semester within the program and a
// non-empty catalog code.
func (c *CourseRecord) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: course %q: %s", ErrValidation, c.Code, describeValidation(err))
	}
	if strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("%w: course code is required", ErrValidation)
	}
	return nil
}

// ModuleCode returns the assigned module code, or "" when unassigned.
func (c *CourseRecord) ModuleCode() string {
	if c.Module == nil {
		return ""
	}
	return *c.Module
}

// Season reports which seasons the course is offered in.
func (c *CourseRecord) Season() Season {
	return SeasonOf(c.IsAutumnCourse, c.IsSpringCourse)
}

// ValidateSemester checks that s lies within the program's semesters.
func ValidateSemester(s int) error {
	if s < MinSemester || s > MaxSemester {
		return fmt.Errorf("%w: semester must be an integer between %d and %d, got %d",
			ErrValidation, MinSemester, MaxSemester, s)
	}
	return nil
}

// NormalizeCode upper-cases and trims a catalog course code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Semester":
			parts = append(parts, fmt.Sprintf("semester must be between %d and %d, got %v", MinSemester, MaxSemester, fe.Value()))
		case "Code":
			parts = append(parts, "code is required")
		default:
			parts = append(parts, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
