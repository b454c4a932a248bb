// Package compliance checks a student's planned courses against intrinsic
// course rules and against a curriculum's requirement structure.
package compliance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/contract"
	"github.com/alexanderramin/bachlog/internal/curriculum"
	"github.com/alexanderramin/bachlog/internal/domain"
)

// MessageNoRequiredModules is reported when a curriculum version yields no
// usable requirement structure.
const MessageNoRequiredModules = "no required modules found"

// UnknownCourseTitle labels a missing course whose catalog lookup failed.
const UnknownCourseTitle = "Tundmatu aine"

// PlanReader is the read side of the course store the checker needs.
type PlanReader interface {
	FindAll(ctx context.Context) ([]*domain.CourseRecord, error)
	FindByCode(ctx context.Context, code string) ([]*domain.CourseRecord, error)
}

// Checker runs the course-level and curriculum-level compliance rules.
type Checker struct {
	plan      PlanReader
	catalog   catalog.Client
	extractor *curriculum.Extractor
	modules   domain.ModuleOptions
}

func NewChecker(plan PlanReader, cat catalog.Client, extractor *curriculum.Extractor, modules domain.ModuleOptions) *Checker {
	return &Checker{
		plan:      plan,
		catalog:   cat,
		extractor: extractor,
		modules:   modules,
	}
}

// CheckSeason flags a course planned in a semester whose season it is not
// offered in. A course with no season information is never flagged.
func (c *Checker) CheckSeason(course *domain.CourseRecord) *contract.Issue {
	if course.Season() == domain.SeasonUnknown {
		return nil
	}
	var offered bool
	switch domain.ExpectedSeason(course.Semester) {
	case domain.SeasonSpring:
		offered = course.IsSpringCourse
	default:
		offered = course.IsAutumnCourse
	}
	if offered {
		return nil
	}
	return &contract.Issue{
		Kind:    domain.IssueSemester,
		Message: fmt.Sprintf("Kursus %s on planeeritud valesse semestrisse.", course.Code),
	}
}

// CheckPrereqs treats the course's prerequisite codes as alternatives: the
// check fails only when none of them is planned in an earlier semester.
// A course unknown to the catalog has no prerequisites.
func (c *Checker) CheckPrereqs(ctx context.Context, course *domain.CourseRecord) (*contract.Issue, error) {
	prereqs, err := c.catalog.GetPrerequisites(ctx, course.Code)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: prerequisites of %s: %v", domain.ErrDependency, course.Code, err)
	}
	if len(prereqs) == 0 {
		return nil, nil
	}

	var failed []string
	for _, code := range prereqs {
		planned, err := c.plan.FindByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("finding planned %s: %w", code, err)
		}
		if !plannedBefore(planned, course.Semester) {
			failed = append(failed, code)
		}
	}

	if len(failed) < len(prereqs) {
		return nil, nil
	}
	return &contract.Issue{
		Kind:    domain.IssuePrerequisites,
		Message: fmt.Sprintf("Kursuse %s eeldusained on planeerimata.", course.Code),
		Prereqs: failed,
	}, nil
}

func plannedBefore(planned []*domain.CourseRecord, semester int) bool {
	for _, p := range planned {
		if p.Semester < semester {
			return true
		}
	}
	return false
}

// CheckCourse runs the season and prerequisite checks on one course.
func (c *Checker) CheckCourse(ctx context.Context, course *domain.CourseRecord) (contract.CourseCheck, error) {
	result := contract.CourseCheck{ID: course.ID, Code: course.Code, Semester: course.Semester}

	if issue := c.CheckSeason(course); issue != nil {
		result.Issues = append(result.Issues, *issue)
	}
	issue, err := c.CheckPrereqs(ctx, course)
	if err != nil {
		return result, err
	}
	if issue != nil {
		result.Issues = append(result.Issues, *issue)
	}

	result.OK = len(result.Issues) == 0
	return result, nil
}

// CheckCourses checks the plan course by course. A catalog failure for one
// course is recorded as a prerequisite issue on that course; only
// cancellation and store failures abort the run.
func (c *Checker) CheckCourses(ctx context.Context, courses []*domain.CourseRecord) ([]contract.CourseCheck, error) {
	results := make([]contract.CourseCheck, 0, len(courses))
	for _, course := range courses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := c.CheckCourse(ctx, course)
		if err != nil {
			if !errors.Is(err, domain.ErrDependency) {
				return nil, err
			}
			result.Issues = append(result.Issues, contract.Issue{
				Kind:    domain.IssuePrerequisites,
				Message: err.Error(),
			})
			result.OK = false
		}
		results = append(results, result)
	}
	return results, nil
}

// Structure fetches and flattens the requirement tree of a curriculum
// version. A year of zero selects the most recent confirmed version. A
// version the catalog does not know yields a nil structure.
func (c *Checker) Structure(ctx context.Context, curriculumID string, year int) (*domain.RequirementStructure, int, error) {
	if year == 0 {
		years, err := c.catalog.GetCurriculumVersions(ctx, curriculumID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, 0, nil
			}
			return nil, 0, fmt.Errorf("%w: versions of %s: %v", domain.ErrDependency, curriculumID, err)
		}
		if len(years) == 0 {
			return nil, 0, nil
		}
		year = years[0]
	}

	blocks, err := c.catalog.GetRequirementTree(ctx, curriculumID, year)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, year, nil
		}
		return nil, year, fmt.Errorf("%w: requirement tree of %s@%d: %v", domain.ErrDependency, curriculumID, year, err)
	}
	if len(blocks) == 0 {
		return nil, year, nil
	}

	structure := c.extractor.Extract(blocks)
	if len(structure.Required) == 0 {
		return nil, year, nil
	}
	return &structure, year, nil
}

type bucket struct {
	code  string
	title string
}

// CheckModules compares the whole plan with a curriculum version's
// requirement structure.
func (c *Checker) CheckModules(ctx context.Context, curriculumID string, year int) (*contract.ModuleReport, error) {
	structure, year, err := c.Structure(ctx, curriculumID, year)
	if err != nil {
		return nil, err
	}
	report := &contract.ModuleReport{
		Curriculum: curriculumID,
		Year:       year,
		Required:   []contract.SubmoduleReport{},
		Warnings: contract.Warnings{
			Misplaced: []contract.MisplacedCourse{},
			Doubled:   []contract.DoubledCourse{},
		},
	}
	if structure == nil {
		report.Message = MessageNoRequiredModules
		return report, nil
	}

	courses, err := c.plan.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading plan: %w", err)
	}

	planned := make(map[string]bool, len(courses))
	for _, course := range courses {
		if course.UUID != "" {
			planned[course.UUID] = true
		}
	}

	// Later submodules overwrite earlier ones for a shared identity.
	buckets := make(map[string]bucket)
	for _, sm := range structure.Required {
		addBuckets(buckets, sm)
	}
	if structure.Elective != nil {
		addBuckets(buckets, *structure.Elective)
	}
	if structure.Thesis != nil {
		addBuckets(buckets, *structure.Thesis)
	}

	report.Warnings = c.warnings(courses, buckets)

	resolver := &refResolver{catalog: c.catalog, cache: make(map[string]domain.CourseRef)}
	report.OK = true
	for _, sm := range structure.Required {
		sr, err := resolver.submoduleReport(ctx, sm, planned)
		if err != nil {
			return nil, err
		}
		report.OK = report.OK && sr.OK
		report.Required = append(report.Required, sr)
	}
	if structure.Thesis != nil {
		sr, err := resolver.submoduleReport(ctx, *structure.Thesis, planned)
		if err != nil {
			return nil, err
		}
		report.OK = report.OK && sr.OK
		report.Thesis = &sr
	}
	if structure.Elective != nil {
		sr := unresolvedReport(*structure.Elective, planned)
		report.Elective = &sr
	}
	return report, nil
}

func addBuckets(buckets map[string]bucket, sm domain.Submodule) {
	for _, id := range sm.CourseIDs {
		buckets[id] = bucket{code: sm.Code, title: sm.Title}
	}
}

// isGuarded reports whether misplacement is checked for a module code.
// Free electives and specializations are not.
func isGuarded(code string) bool {
	return code == domain.ModuleRequired || code == domain.ModuleThesis
}

func (c *Checker) warnings(courses []*domain.CourseRecord, buckets map[string]bucket) contract.Warnings {
	w := contract.Warnings{
		Misplaced: []contract.MisplacedCourse{},
		Doubled:   []contract.DoubledCourse{},
	}
	seen := make(map[string]bool, len(courses))

	for _, course := range courses {
		if course.UUID != "" {
			if seen[course.UUID] {
				w.Doubled = append(w.Doubled, contract.DoubledCourse{
					CourseID: course.ID,
					UUID:     course.UUID,
					Code:     course.Code,
					Title:    course.Title,
					Semester: course.Semester,
				})
			}
			seen[course.UUID] = true
		}

		current := strings.ToUpper(strings.TrimSpace(course.ModuleCode()))
		var correct bucket
		if course.UUID != "" {
			correct = buckets[course.UUID]
		}

		var reason string
		switch {
		case isGuarded(correct.code) && current != correct.code:
			reason = fmt.Sprintf("%s kuulub õppekava järgi moodulisse %s (%s), kuid on märgitud: %s",
				course.Code, c.modules.Title(correct.code), correct.title, c.modules.Title(current))
		case isGuarded(current) && correct.code != current:
			where := "ei kuulu ühtegi õppekava moodulisse"
			if correct.code != "" {
				where = "kuulub õppekava järgi moodulisse " + c.modules.Title(correct.code)
			}
			reason = fmt.Sprintf("%s on märgitud moodulisse %s, kuid %s",
				course.Code, c.modules.Title(current), where)
		default:
			continue
		}

		w.Misplaced = append(w.Misplaced, contract.MisplacedCourse{
			CourseID:      course.ID,
			UUID:          course.UUID,
			Code:          course.Code,
			Title:         course.Title,
			CurrentModule: current,
			CorrectModule: correct.code,
			Reason:        reason,
		})
	}
	return w
}

// refResolver turns missing catalog identities into course references,
// memoizing lookups for one report.
type refResolver struct {
	catalog catalog.Client
	cache   map[string]domain.CourseRef
}

func (r *refResolver) submoduleReport(ctx context.Context, sm domain.Submodule, planned map[string]bool) (contract.SubmoduleReport, error) {
	sr := contract.SubmoduleReport{
		ID:         sm.ID,
		Title:      sm.Title,
		Code:       sm.Code,
		MinCredits: sm.MinCredits,
		Missing:    []domain.CourseRef{},
	}
	for _, id := range sm.CourseIDs {
		if planned[id] {
			continue
		}
		ref, err := r.resolve(ctx, id)
		if err != nil {
			return sr, err
		}
		sr.Missing = append(sr.Missing, ref)
	}
	sr.OK = len(sr.Missing) == 0
	return sr, nil
}

// unresolvedReport lists unplanned courses by catalog identity only. The
// elective bucket is informational and often large, so it costs no lookups.
func unresolvedReport(sm domain.Submodule, planned map[string]bool) contract.SubmoduleReport {
	sr := contract.SubmoduleReport{
		ID:         sm.ID,
		Title:      sm.Title,
		Code:       sm.Code,
		MinCredits: sm.MinCredits,
		Missing:    []domain.CourseRef{},
	}
	for _, id := range sm.CourseIDs {
		if !planned[id] {
			sr.Missing = append(sr.Missing, domain.CourseRef{UUID: id})
		}
	}
	sr.OK = len(sr.Missing) == 0
	return sr
}

// resolve never fails for a lookup error: the course is reported under a
// placeholder title so the missing count stays accurate. Only cancellation
// is returned.
func (r *refResolver) resolve(ctx context.Context, id string) (domain.CourseRef, error) {
	if ref, ok := r.cache[id]; ok {
		return ref, nil
	}
	ref := domain.CourseRef{UUID: id, Title: UnknownCourseTitle}
	summary, err := r.catalog.GetByIdentity(ctx, id)
	switch {
	case err == nil && summary != nil:
		ref.Code = summary.Code
		if summary.Title != "" {
			ref.Title = summary.Title
		}
	case ctx.Err() != nil:
		return domain.CourseRef{}, ctx.Err()
	}
	r.cache[id] = ref
	return ref, nil
}
