package repository

import (
	"context"

	"github.com/alexanderramin/bachlog/internal/domain"
)

// CourseRepo is the store of planned courses. Records are mutated only
// through the field-scoped update methods.
type CourseRepo interface {
	Create(ctx context.Context, c *domain.CourseRecord) error
	FindByID(ctx context.Context, id int64) (*domain.CourseRecord, error)
	FindAll(ctx context.Context) ([]*domain.CourseRecord, error)
	FindByCode(ctx context.Context, code string) ([]*domain.CourseRecord, error)
	FindBySemester(ctx context.Context, semester int) ([]*domain.CourseRecord, error)
	UpdateSemester(ctx context.Context, id int64, semester int) error
	UpdateSeason(ctx context.Context, id int64, autumn, spring bool) error
	UpdateCurriculum(ctx context.Context, id int64, curriculum string) error
	UpdateModule(ctx context.Context, id int64, module *string) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}
