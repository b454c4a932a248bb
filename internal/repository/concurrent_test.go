package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/bachlog/internal/testutil"
)

// TestConcurrentAccess_ParallelCreates mirrors a batch import: ten rows are
// persisted at once against a file-backed database in WAL mode.
func TestConcurrentAccess_ParallelCreates(t *testing.T) {
	repo := NewSQLiteCourseRepo(testutil.NewFileTestDB(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := testutil.NewTestCourse(fmt.Sprintf("C%02d", i), i%6+1)
			if err := repo.Create(ctx, c); err != nil {
				t.Errorf("create %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 10)

	ids := make(map[int64]bool)
	for _, c := range all {
		assert.False(t, ids[c.ID], "duplicate id %d", c.ID)
		ids[c.ID] = true
	}
}

// TestConcurrentAccess_ReadDuringWrite verifies readers see consistent rows
// while a writer is inserting.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	repo := NewSQLiteCourseRepo(testutil.NewFileTestDB(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			if err := repo.Create(ctx, testutil.NewTestCourse(fmt.Sprintf("W%02d", i), 1)); err != nil {
				t.Errorf("writer: create %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				courses, err := repo.FindBySemester(ctx, 1)
				if err != nil {
					t.Errorf("reader %d: %v", reader, err)
					return
				}
				for _, c := range courses {
					if c.Code == "" || c.Semester != 1 {
						t.Errorf("reader %d: half-written row %+v", reader, c)
					}
				}
			}
		}(r)
	}
	wg.Wait()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 20)
}
