package service

import (
	"context"
	"io"

	"github.com/alexanderramin/bachlog/internal/contract"
	"github.com/alexanderramin/bachlog/internal/domain"
)

// AddCourseRequest describes a course added by code. The remaining fields
// are filled from the catalog.
type AddCourseRequest struct {
	Code     string
	Semester int
	Module   string
}

type CourseService interface {
	Add(ctx context.Context, req AddCourseRequest) (*domain.CourseRecord, error)
	Create(ctx context.Context, c *domain.CourseRecord) error
	GetByID(ctx context.Context, id int64) (*domain.CourseRecord, error)
	List(ctx context.Context) ([]*domain.CourseRecord, error)
	ListBySemester(ctx context.Context, semester int) ([]*domain.CourseRecord, error)
	FindByCode(ctx context.Context, code string) ([]*domain.CourseRecord, error)
	Move(ctx context.Context, id int64, semester int) error
	SetSeason(ctx context.Context, id int64, autumn, spring bool) error
	RefreshSeason(ctx context.Context, id int64) (*domain.CourseRecord, error)
	SetCurriculum(ctx context.Context, id int64, curriculum string) error
	SetModule(ctx context.Context, id int64, module string) error
	Remove(ctx context.Context, id int64) error
	Clear(ctx context.Context) (int64, error)
}

type ImportService interface {
	// ImportCSV imports every row of raw. Only a header problem returns an
	// error; row failures are reported in the result.
	ImportCSV(ctx context.Context, raw []byte) (*contract.ImportResult, error)
	ImportFile(ctx context.Context, path string) (*contract.ImportResult, error)
}

type ExportService interface {
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportXLSX(ctx context.Context, w io.Writer) error
}

type ComplianceService interface {
	CheckCourse(ctx context.Context, id int64) (*contract.CourseCheck, error)
	CheckPlan(ctx context.Context) ([]contract.CourseCheck, error)
	CheckModules(ctx context.Context, curriculumID string, year int) (*contract.ModuleReport, error)
	Structure(ctx context.Context, curriculumID string, year int) (*domain.RequirementStructure, int, error)
}
