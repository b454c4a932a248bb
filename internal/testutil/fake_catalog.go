package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/domain"
)

// FakeCatalog is an in-memory catalog.Client. It is safe for concurrent use
// and records how many calls were in flight at once.
type FakeCatalog struct {
	mu        sync.Mutex
	courses   []catalog.CourseSummary
	seasons   map[string]catalog.Season
	curricula map[string][]string
	prereqs   map[string][]string
	trees     map[string][]*domain.CurriculumNode
	versions  map[string][]int
	failures  map[string]error
	calls     map[string]int

	inFlight    int
	maxInFlight int

	// Delay is slept inside every call, while the call counts as in flight.
	Delay   time.Duration
	Chooser catalog.CurriculumChooser
}

func NewFakeCatalog() *FakeCatalog {
	return &FakeCatalog{
		seasons:   make(map[string]catalog.Season),
		curricula: make(map[string][]string),
		prereqs:   make(map[string][]string),
		trees:     make(map[string][]*domain.CurriculumNode),
		versions:  make(map[string][]int),
		failures:  make(map[string]error),
		calls:     make(map[string]int),
		Chooser:   catalog.PreferredChooser{},
	}
}

// AddCourse registers a course with its season and curriculum titles.
func (f *FakeCatalog) AddCourse(c catalog.CourseSummary, season catalog.Season, curricula ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.courses = append(f.courses, c)
	f.seasons[domain.NormalizeCode(c.Code)] = season
	f.curricula[c.UUID] = curricula
}

func (f *FakeCatalog) SetPrerequisites(code string, prereqs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prereqs[domain.NormalizeCode(code)] = prereqs
}

func (f *FakeCatalog) SetTree(curriculumID string, year int, blocks ...*domain.CurriculumNode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trees[treeKey(curriculumID, year)] = blocks
}

func (f *FakeCatalog) SetVersions(curriculumID string, years ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.versions[curriculumID] = years
}

// FailOn makes the operation op fail with err for the given target (a
// course code, identity or "curriculum@year").
func (f *FakeCatalog) FailOn(op, target string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op+":"+target] = err
}

// Calls returns how many times op was invoked.
func (f *FakeCatalog) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// MaxConcurrent returns the highest number of simultaneous calls observed.
func (f *FakeCatalog) MaxConcurrent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight
}

func (f *FakeCatalog) enter(op, target string) error {
	f.mu.Lock()
	f.calls[op]++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	err := f.failures[op+":"+target]
	delay := f.Delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return err
}

func (f *FakeCatalog) leave() {
	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
}

func (f *FakeCatalog) SearchByCode(_ context.Context, code string) ([]catalog.CourseSummary, error) {
	code = domain.NormalizeCode(code)
	defer f.leave()
	if err := f.enter("search_by_code", code); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []catalog.CourseSummary
	for _, c := range f.courses {
		if domain.NormalizeCode(c.Code) == code {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *FakeCatalog) GetByIdentity(_ context.Context, identity string) (*catalog.CourseSummary, error) {
	defer f.leave()
	if err := f.enter("get_by_identity", identity); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.courses {
		if c.UUID == identity {
			found := c
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: course %s", catalog.ErrNotFound, identity)
}

func (f *FakeCatalog) GetSeason(_ context.Context, code string) (catalog.Season, error) {
	code = domain.NormalizeCode(code)
	defer f.leave()
	if err := f.enter("get_season", code); err != nil {
		return catalog.Season{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.seasons[code]
	if !ok {
		return catalog.Season{}, fmt.Errorf("%w: course %s", catalog.ErrNotFound, code)
	}
	return s, nil
}

func (f *FakeCatalog) GetCurricula(_ context.Context, identity string) (catalog.Curricula, error) {
	defer f.leave()
	if err := f.enter("get_curricula", identity); err != nil {
		return catalog.Curricula{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	titles := f.curricula[identity]
	return catalog.Curricula{Titles: titles, Default: f.Chooser.ChooseDefault(titles)}, nil
}

func (f *FakeCatalog) GetPrerequisites(_ context.Context, code string) ([]string, error) {
	code = domain.NormalizeCode(code)
	defer f.leave()
	if err := f.enter("get_prerequisites", code); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prereqs[code], nil
}

func (f *FakeCatalog) GetRequirementTree(_ context.Context, curriculumID string, year int) ([]*domain.CurriculumNode, error) {
	key := treeKey(curriculumID, year)
	defer f.leave()
	if err := f.enter("get_requirement_tree", key); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	blocks, ok := f.trees[key]
	if !ok {
		return nil, fmt.Errorf("%w: curriculum %s", catalog.ErrNotFound, key)
	}
	return blocks, nil
}

func (f *FakeCatalog) GetCurriculumVersions(_ context.Context, curriculumID string) ([]int, error) {
	defer f.leave()
	if err := f.enter("get_curriculum_versions", curriculumID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.versions[curriculumID], nil
}

func treeKey(curriculumID string, year int) string {
	return fmt.Sprintf("%s@%d", curriculumID, year)
}

var _ catalog.Client = (*FakeCatalog)(nil)
