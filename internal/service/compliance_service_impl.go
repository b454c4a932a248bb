package service

import (
	"context"
	"time"

	"github.com/alexanderramin/bachlog/internal/compliance"
	"github.com/alexanderramin/bachlog/internal/contract"
	"github.com/alexanderramin/bachlog/internal/domain"
	"github.com/alexanderramin/bachlog/internal/repository"
)

type complianceService struct {
	courses  repository.CourseRepo
	checker  *compliance.Checker
	observer UseCaseObserver
}

func NewComplianceService(courses repository.CourseRepo, checker *compliance.Checker, observers ...UseCaseObserver) ComplianceService {
	return &complianceService{
		courses:  courses,
		checker:  checker,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *complianceService) CheckCourse(ctx context.Context, id int64) (*contract.CourseCheck, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result, err := s.checker.CheckCourse(ctx, course)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *complianceService) CheckPlan(ctx context.Context) (results []contract.CourseCheck, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "check-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	courses, err := s.courses.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	fields["courses"] = len(courses)

	results, err = s.checker.CheckCourses(ctx, courses)
	if err != nil {
		return nil, err
	}
	failing := 0
	for _, r := range results {
		if !r.OK {
			failing++
		}
	}
	fields["failing"] = failing
	return results, nil
}

func (s *complianceService) CheckModules(ctx context.Context, curriculumID string, year int) (report *contract.ModuleReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"curriculum": curriculumID, "year": year}
	defer func() {
		if report != nil {
			fields["year"] = report.Year
			fields["ok"] = report.OK
			fields["misplaced"] = len(report.Warnings.Misplaced)
			fields["doubled"] = len(report.Warnings.Doubled)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "check-modules",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	return s.checker.CheckModules(ctx, curriculumID, year)
}

func (s *complianceService) Structure(ctx context.Context, curriculumID string, year int) (*domain.RequirementStructure, int, error) {
	return s.checker.Structure(ctx, curriculumID, year)
}
