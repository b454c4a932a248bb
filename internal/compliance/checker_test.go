package compliance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/curriculum"
	"github.com/alexanderramin/bachlog/internal/domain"
	"github.com/alexanderramin/bachlog/internal/repository"
	"github.com/alexanderramin/bachlog/internal/testutil"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) SearchByCode(ctx context.Context, code string) ([]catalog.CourseSummary, error) {
	args := m.Called(ctx, code)
	out, _ := args.Get(0).([]catalog.CourseSummary)
	return out, args.Error(1)
}

func (m *mockCatalog) GetByIdentity(ctx context.Context, identity string) (*catalog.CourseSummary, error) {
	args := m.Called(ctx, identity)
	out, _ := args.Get(0).(*catalog.CourseSummary)
	return out, args.Error(1)
}

func (m *mockCatalog) GetSeason(ctx context.Context, code string) (catalog.Season, error) {
	args := m.Called(ctx, code)
	out, _ := args.Get(0).(catalog.Season)
	return out, args.Error(1)
}

func (m *mockCatalog) GetCurricula(ctx context.Context, identity string) (catalog.Curricula, error) {
	args := m.Called(ctx, identity)
	out, _ := args.Get(0).(catalog.Curricula)
	return out, args.Error(1)
}

func (m *mockCatalog) GetPrerequisites(ctx context.Context, code string) ([]string, error) {
	args := m.Called(ctx, code)
	out, _ := args.Get(0).([]string)
	return out, args.Error(1)
}

func (m *mockCatalog) GetRequirementTree(ctx context.Context, curriculumID string, year int) ([]*domain.CurriculumNode, error) {
	args := m.Called(ctx, curriculumID, year)
	out, _ := args.Get(0).([]*domain.CurriculumNode)
	return out, args.Error(1)
}

func (m *mockCatalog) GetCurriculumVersions(ctx context.Context, curriculumID string) ([]int, error) {
	args := m.Called(ctx, curriculumID)
	out, _ := args.Get(0).([]int)
	return out, args.Error(1)
}

const (
	electiveLabel = "Valikained"
	thesisLabel   = "Lõputöö"
)

type checkerFixture struct {
	checker *Checker
	catalog *mockCatalog
	repo    *repository.SQLiteCourseRepo
}

func setupChecker(t *testing.T) *checkerFixture {
	t.Helper()
	repo := repository.NewSQLiteCourseRepo(testutil.NewTestDB(t))
	cat := &mockCatalog{}
	extractor := curriculum.NewExtractor(curriculum.NewTitleClassifier(electiveLabel, thesisLabel))
	return &checkerFixture{
		checker: NewChecker(repo, cat, extractor, domain.DefaultModuleOptions()),
		catalog: cat,
		repo:    repo,
	}
}

func (f *checkerFixture) plan(t *testing.T, courses ...*domain.CourseRecord) {
	t.Helper()
	for _, c := range courses {
		require.NoError(t, f.repo.Create(context.Background(), c))
	}
}

func TestCheckSeason(t *testing.T) {
	c := setupChecker(t).checker

	tests := []struct {
		name           string
		semester       int
		autumn, spring bool
		wantIssue      bool
	}{
		{name: "unknown season odd", semester: 1},
		{name: "unknown season even", semester: 4},
		{name: "autumn in odd", semester: 3, autumn: true},
		{name: "autumn only in even", semester: 2, autumn: true, wantIssue: true},
		{name: "spring only in odd", semester: 5, spring: true, wantIssue: true},
		{name: "spring in even", semester: 6, spring: true},
		{name: "both seasons", semester: 2, autumn: true, spring: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := testutil.NewTestCourse("LTAT.03.001", tt.semester, testutil.WithSeason(tt.autumn, tt.spring))
			issue := c.CheckSeason(course)
			if !tt.wantIssue {
				assert.Nil(t, issue)
				return
			}
			require.NotNil(t, issue)
			assert.Equal(t, domain.IssueSemester, issue.Kind)
			assert.Contains(t, issue.Message, "LTAT.03.001")
		})
	}
}

func TestCheckPrereqs_AnyAlternativeSatisfies(t *testing.T) {
	f := setupChecker(t)
	ctx := context.Background()
	f.plan(t, testutil.NewTestCourse("A", 2))
	f.catalog.On("GetPrerequisites", mock.Anything, "TARGET").Return([]string{"A", "B"}, nil)

	issue, err := f.checker.CheckPrereqs(ctx, testutil.NewTestCourse("TARGET", 4))
	require.NoError(t, err)
	assert.Nil(t, issue)
	f.catalog.AssertExpectations(t)
}

func TestCheckPrereqs_AllMissingListsEveryCode(t *testing.T) {
	f := setupChecker(t)
	ctx := context.Background()
	// Planned, but not earlier.
	f.plan(t, testutil.NewTestCourse("A", 4), testutil.NewTestCourse("B", 5))
	f.catalog.On("GetPrerequisites", mock.Anything, "TARGET").Return([]string{"A", "B"}, nil)

	issue, err := f.checker.CheckPrereqs(ctx, testutil.NewTestCourse("TARGET", 4))
	require.NoError(t, err)
	require.NotNil(t, issue)
	assert.Equal(t, domain.IssuePrerequisites, issue.Kind)
	assert.Equal(t, []string{"A", "B"}, issue.Prereqs)
	assert.Contains(t, issue.Message, "TARGET")
}

func TestCheckPrereqs_NoPrerequisites(t *testing.T) {
	f := setupChecker(t)
	f.catalog.On("GetPrerequisites", mock.Anything, "X").Return(nil, nil)
	f.catalog.On("GetPrerequisites", mock.Anything, "Y").Return(nil, catalog.ErrNotFound)

	issue, err := f.checker.CheckPrereqs(context.Background(), testutil.NewTestCourse("X", 1))
	require.NoError(t, err)
	assert.Nil(t, issue)

	issue, err = f.checker.CheckPrereqs(context.Background(), testutil.NewTestCourse("Y", 1))
	require.NoError(t, err)
	assert.Nil(t, issue)
}

func TestCheckPrereqs_DependencyError(t *testing.T) {
	f := setupChecker(t)
	f.catalog.On("GetPrerequisites", mock.Anything, "X").Return(nil, catalog.ErrUnavailable)

	_, err := f.checker.CheckPrereqs(context.Background(), testutil.NewTestCourse("X", 1))
	assert.ErrorIs(t, err, domain.ErrDependency)
	assert.Contains(t, err.Error(), "catalog unavailable")
}

func TestCheckCourse_CombinesIssues(t *testing.T) {
	f := setupChecker(t)
	f.catalog.On("GetPrerequisites", mock.Anything, "X").Return([]string{"P"}, nil)

	course := testutil.NewTestCourse("X", 2, testutil.WithSeason(true, false))
	course.ID = 7
	got, err := f.checker.CheckCourse(context.Background(), course)
	require.NoError(t, err)
	assert.False(t, got.OK)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "X", got.Code)
	assert.Equal(t, 2, got.Semester)
	require.Len(t, got.Issues, 2)
	assert.Equal(t, domain.IssueSemester, got.Issues[0].Kind)
	assert.Equal(t, domain.IssuePrerequisites, got.Issues[1].Kind)
}

func TestCheckCourses_RecordsDependencyFailurePerCourse(t *testing.T) {
	f := setupChecker(t)
	f.catalog.On("GetPrerequisites", mock.Anything, "OK").Return(nil, nil)
	f.catalog.On("GetPrerequisites", mock.Anything, "BAD").Return(nil, errors.New("boom"))

	results, err := f.checker.CheckCourses(context.Background(), []*domain.CourseRecord{
		testutil.NewTestCourse("OK", 1),
		testutil.NewTestCourse("BAD", 1),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	require.Len(t, results[1].Issues, 1)
	assert.Contains(t, results[1].Issues[0].Message, "boom")
}

func requirementTree() []*domain.CurriculumNode {
	return []*domain.CurriculumNode{
		{
			Title: "Põhiõpe",
			Submodules: []*domain.CurriculumNode{
				{ID: "core", Title: "Alusmoodul", OptionType: "required", Courses: []domain.CourseRef{{UUID: "u-a"}, {UUID: "u-b"}}},
				{ID: "elective", Title: electiveLabel, Courses: []domain.CourseRef{{UUID: "u-v"}}},
				{ID: "thesis", Title: thesisLabel, Courses: []domain.CourseRef{{UUID: "u-t"}}},
			},
		},
	}
}

func TestCheckModules_NoStructure(t *testing.T) {
	f := setupChecker(t)
	f.catalog.On("GetRequirementTree", mock.Anything, "IFBB", 2020).Return(nil, catalog.ErrNotFound)
	f.catalog.On("GetRequirementTree", mock.Anything, "IFBB", 2021).Return([]*domain.CurriculumNode{{Title: "Tühi"}}, nil)

	for _, year := range []int{2020, 2021} {
		report, err := f.checker.CheckModules(context.Background(), "IFBB", year)
		require.NoError(t, err)
		assert.False(t, report.OK)
		assert.Equal(t, MessageNoRequiredModules, report.Message)
		assert.Empty(t, report.Required)
	}
}

func TestCheckModules_TreeDependencyError(t *testing.T) {
	f := setupChecker(t)
	f.catalog.On("GetRequirementTree", mock.Anything, "IFBB", 2020).Return(nil, catalog.ErrUnavailable)

	_, err := f.checker.CheckModules(context.Background(), "IFBB", 2020)
	assert.ErrorIs(t, err, domain.ErrDependency)
}

func TestCheckModules_CompletePlan(t *testing.T) {
	f := setupChecker(t)
	f.catalog.On("GetRequirementTree", mock.Anything, "IFBB", 2023).Return(requirementTree(), nil)
	f.plan(t,
		testutil.NewTestCourse("A", 1, testutil.WithUUID("u-a"), testutil.WithModule("PM")),
		testutil.NewTestCourse("B", 2, testutil.WithUUID("u-b"), testutil.WithModule("PM")),
		testutil.NewTestCourse("T", 6, testutil.WithUUID("u-t"), testutil.WithModule("LM")),
	)

	report, err := f.checker.CheckModules(context.Background(), "IFBB", 2023)
	require.NoError(t, err)
	assert.True(t, report.OK)
	assert.Empty(t, report.Message)
	require.Len(t, report.Required, 1)
	assert.True(t, report.Required[0].OK)
	require.NotNil(t, report.Thesis)
	assert.True(t, report.Thesis.OK)

	// The elective bucket is informational only and never looked up.
	require.NotNil(t, report.Elective)
	assert.False(t, report.Elective.OK)
	assert.Equal(t, []domain.CourseRef{{UUID: "u-v"}}, report.Elective.Missing)
	f.catalog.AssertNotCalled(t, "GetByIdentity", mock.Anything, "u-v")

	assert.Empty(t, report.Warnings.Misplaced)
	assert.Empty(t, report.Warnings.Doubled)
}

func TestCheckModules_MissingCoursesAndPlaceholder(t *testing.T) {
	f := setupChecker(t)
	f.catalog.On("GetRequirementTree", mock.Anything, "IFBB", 2023).Return(requirementTree(), nil)
	f.catalog.On("GetByIdentity", mock.Anything, "u-b").Return(&catalog.CourseSummary{UUID: "u-b", Code: "B", Title: "Bee"}, nil)
	f.catalog.On("GetByIdentity", mock.Anything, "u-t").Return(nil, catalog.ErrNotFound)
	f.plan(t, testutil.NewTestCourse("A", 1, testutil.WithUUID("u-a")))

	report, err := f.checker.CheckModules(context.Background(), "IFBB", 2023)
	require.NoError(t, err)
	assert.False(t, report.OK)

	require.Len(t, report.Required, 1)
	assert.Equal(t, []domain.CourseRef{{UUID: "u-b", Code: "B", Title: "Bee"}}, report.Required[0].Missing)

	require.NotNil(t, report.Thesis)
	assert.Equal(t, []domain.CourseRef{{UUID: "u-t", Title: UnknownCourseTitle}}, report.Thesis.Missing)
}

func TestCheckModules_DoubledReportedOnce(t *testing.T) {
	f := setupChecker(t)
	f.catalog.On("GetRequirementTree", mock.Anything, "IFBB", 2023).Return(requirementTree(), nil)
	f.catalog.On("GetByIdentity", mock.Anything, mock.Anything).Return(nil, catalog.ErrNotFound)
	f.plan(t,
		testutil.NewTestCourse("A", 1, testutil.WithUUID("u-a"), testutil.WithTitle("Aine A")),
		testutil.NewTestCourse("A", 3, testutil.WithUUID("u-a"), testutil.WithTitle("Aine A")),
	)

	report, err := f.checker.CheckModules(context.Background(), "IFBB", 2023)
	require.NoError(t, err)
	require.Len(t, report.Warnings.Doubled, 1)
	d := report.Warnings.Doubled[0]
	assert.Equal(t, "u-a", d.UUID)
	assert.Equal(t, "A", d.Code)
	assert.Equal(t, "Aine A", d.Title)
	assert.Equal(t, 3, d.Semester)
}

func TestCheckModules_Misplacement(t *testing.T) {
	f := setupChecker(t)
	f.catalog.On("GetRequirementTree", mock.Anything, "IFBB", 2023).Return(requirementTree(), nil)
	f.catalog.On("GetByIdentity", mock.Anything, mock.Anything).Return(nil, catalog.ErrNotFound)
	f.plan(t,
		// Required course filed as free elective.
		testutil.NewTestCourse("A", 1, testutil.WithUUID("u-a"), testutil.WithModule("VA")),
		// Thesis course left unassigned.
		testutil.NewTestCourse("T", 6, testutil.WithUUID("u-t"), testutil.WithoutModule()),
		// Unknown course filed under PM.
		testutil.NewTestCourse("X", 2, testutil.WithUUID("u-x"), testutil.WithModule("PM")),
		// Elective course filed under LM.
		testutil.NewTestCourse("V", 3, testutil.WithUUID("u-v"), testutil.WithModule("LM")),
		// Unknown course filed as free elective is not checked.
		testutil.NewTestCourse("Y", 4, testutil.WithUUID("u-y"), testutil.WithModule("VA")),
		// Correctly filed.
		testutil.NewTestCourse("B", 2, testutil.WithUUID("u-b"), testutil.WithModule("pm")),
	)

	report, err := f.checker.CheckModules(context.Background(), "IFBB", 2023)
	require.NoError(t, err)

	byCode := make(map[string]string)
	currentByCode := make(map[string]string)
	for _, m := range report.Warnings.Misplaced {
		byCode[m.Code] = m.CorrectModule
		currentByCode[m.Code] = m.CurrentModule
		assert.NotEmpty(t, m.Reason)
	}
	assert.Equal(t, map[string]string{"A": "PM", "T": "LM", "X": "", "V": "VM"}, byCode)
	assert.Equal(t, "VA", currentByCode["A"])
	assert.Equal(t, "", currentByCode["T"])
}

func TestCheckModules_LatestVersionWhenYearZero(t *testing.T) {
	f := setupChecker(t)
	f.catalog.On("GetCurriculumVersions", mock.Anything, "IFBB").Return([]int{2024, 2021}, nil)
	f.catalog.On("GetRequirementTree", mock.Anything, "IFBB", 2024).Return(requirementTree(), nil)
	f.catalog.On("GetByIdentity", mock.Anything, mock.Anything).Return(nil, catalog.ErrNotFound)

	report, err := f.checker.CheckModules(context.Background(), "IFBB", 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, report.Year)
	f.catalog.AssertExpectations(t)
}

func TestCheckModules_NoVersions(t *testing.T) {
	f := setupChecker(t)
	f.catalog.On("GetCurriculumVersions", mock.Anything, "IFBB").Return([]int{}, nil)

	report, err := f.checker.CheckModules(context.Background(), "IFBB", 0)
	require.NoError(t, err)
	assert.False(t, report.OK)
	assert.Equal(t, MessageNoRequiredModules, report.Message)
	f.catalog.AssertNotCalled(t, "GetRequirementTree", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckModules_LookupsMemoized(t *testing.T) {
	f := setupChecker(t)
	tree := []*domain.CurriculumNode{{
		Submodules: []*domain.CurriculumNode{
			{ID: "r1", OptionType: "required", Courses: []domain.CourseRef{{UUID: "u-s"}}},
			{ID: "r2", OptionType: "required", Courses: []domain.CourseRef{{UUID: "u-s"}}},
		},
	}}
	f.catalog.On("GetRequirementTree", mock.Anything, "IFBB", 2023).Return(tree, nil)
	f.catalog.On("GetByIdentity", mock.Anything, "u-s").Return(&catalog.CourseSummary{Code: "S"}, nil).Once()

	report, err := f.checker.CheckModules(context.Background(), "IFBB", 2023)
	require.NoError(t, err)
	require.Len(t, report.Required, 2)
	assert.Equal(t, "S", report.Required[1].Missing[0].Code)
	assert.Nil(t, report.Thesis)
	f.catalog.AssertNumberOfCalls(t, "GetByIdentity", 1)
}
