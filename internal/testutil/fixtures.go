package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/bachlog/internal/domain"
)

// Course options
type CourseOption func(*domain.CourseRecord)

func WithUUID(id string) CourseOption {
	return func(c *domain.CourseRecord) {
		c.UUID = id
	}
}

func WithModule(code string) CourseOption {
	return func(c *domain.CourseRecord) {
		c.Module = &code
	}
}

func WithoutModule() CourseOption {
	return func(c *domain.CourseRecord) {
		c.Module = nil
	}
}

func WithSeason(autumn, spring bool) CourseOption {
	return func(c *domain.CourseRecord) {
		c.IsAutumnCourse = autumn
		c.IsSpringCourse = spring
	}
}

func WithTitle(title string) CourseOption {
	return func(c *domain.CourseRecord) {
		c.Title = title
	}
}

func WithCredits(credits float64) CourseOption {
	return func(c *domain.CourseRecord) {
		c.Credits = credits
	}
}

func WithCurriculum(name string) CourseOption {
	return func(c *domain.CourseRecord) {
		c.Curriculum = name
	}
}

// NewTestCourse returns a valid course planned in semester with a fresh
// catalog identity, offered in both seasons and filed under PM.
func NewTestCourse(code string, semester int, opts ...CourseOption) *domain.CourseRecord {
	now := time.Now().UTC()
	module := domain.ModuleRequired
	c := &domain.CourseRecord{
		UUID:           uuid.New().String(),
		Semester:       semester,
		Code:           code,
		Title:          "Course " + code,
		Credits:        6,
		IsAutumnCourse: true,
		IsSpringCourse: true,
		Curriculum:     "Informaatika",
		Module:         &module,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
