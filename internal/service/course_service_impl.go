package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/domain"
	"github.com/alexanderramin/bachlog/internal/importer"
	"github.com/alexanderramin/bachlog/internal/repository"
)

type courseService struct {
	courses repository.CourseRepo
	catalog catalog.Client
	modules domain.ModuleOptions
}

func NewCourseService(courses repository.CourseRepo, cat catalog.Client, modules domain.ModuleOptions) CourseService {
	return &courseService{
		courses: courses,
		catalog: cat,
		modules: modules,
	}
}

// Add validates the request with the same rules as an import row and
// enriches it from the catalog.
func (s *courseService) Add(ctx context.Context, req AddCourseRequest) (*domain.CourseRecord, error) {
	row, err := importer.ValidateRow(importer.Row{
		Code:     strings.TrimSpace(req.Code),
		Semester: fmt.Sprint(req.Semester),
		Module:   strings.TrimSpace(req.Module),
	}, s.modules)
	if err != nil {
		return nil, err
	}
	rec, err := enricher{catalog: s.catalog}.enrich(ctx, row)
	if err != nil {
		return nil, err
	}
	if err := s.courses.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *courseService) Create(ctx context.Context, c *domain.CourseRecord) error {
	c.Code = domain.NormalizeCode(c.Code)
	if c.Module != nil {
		m := strings.ToUpper(strings.TrimSpace(*c.Module))
		if m == "" {
			c.Module = nil
		} else if err := s.checkModule(m); err != nil {
			return err
		} else {
			c.Module = &m
		}
	}
	return s.courses.Create(ctx, c)
}

func (s *courseService) GetByID(ctx context.Context, id int64) (*domain.CourseRecord, error) {
	return s.courses.FindByID(ctx, id)
}

func (s *courseService) List(ctx context.Context) ([]*domain.CourseRecord, error) {
	return s.courses.FindAll(ctx)
}

func (s *courseService) ListBySemester(ctx context.Context, semester int) ([]*domain.CourseRecord, error) {
	if err := domain.ValidateSemester(semester); err != nil {
		return nil, err
	}
	return s.courses.FindBySemester(ctx, semester)
}

func (s *courseService) FindByCode(ctx context.Context, code string) ([]*domain.CourseRecord, error) {
	return s.courses.FindByCode(ctx, code)
}

func (s *courseService) Move(ctx context.Context, id int64, semester int) error {
	return s.courses.UpdateSemester(ctx, id, semester)
}

func (s *courseService) SetSeason(ctx context.Context, id int64, autumn, spring bool) error {
	return s.courses.UpdateSeason(ctx, id, autumn, spring)
}

// RefreshSeason replaces the stored season flags with the catalog's.
func (s *courseService) RefreshSeason(ctx context.Context, id int64) (*domain.CourseRecord, error) {
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	season, err := s.catalog.GetSeason(ctx, c.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: season of %s: %v", domain.ErrDependency, c.Code, err)
	}
	if err := s.courses.UpdateSeason(ctx, id, season.IsAutumnCourse, season.IsSpringCourse); err != nil {
		return nil, err
	}
	c.IsAutumnCourse = season.IsAutumnCourse
	c.IsSpringCourse = season.IsSpringCourse
	return c, nil
}

func (s *courseService) SetCurriculum(ctx context.Context, id int64, curriculum string) error {
	return s.courses.UpdateCurriculum(ctx, id, strings.TrimSpace(curriculum))
}

// SetModule files a course under module. An empty module unassigns it.
func (s *courseService) SetModule(ctx context.Context, id int64, module string) error {
	module = strings.ToUpper(strings.TrimSpace(module))
	if module == "" {
		return s.courses.UpdateModule(ctx, id, nil)
	}
	if err := s.checkModule(module); err != nil {
		return err
	}
	return s.courses.UpdateModule(ctx, id, &module)
}

func (s *courseService) Remove(ctx context.Context, id int64) error {
	return s.courses.Delete(ctx, id)
}

func (s *courseService) Clear(ctx context.Context) (int64, error) {
	return s.courses.DeleteAll(ctx)
}

func (s *courseService) checkModule(code string) error {
	if !s.modules.Has(code) {
		return fmt.Errorf("%w: module %q is not allowed (allowed: %s)",
			domain.ErrValidation, code, strings.Join(s.modules.Codes(), ", "))
	}
	return nil
}
