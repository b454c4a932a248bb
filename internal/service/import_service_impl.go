package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/contract"
	"github.com/alexanderramin/bachlog/internal/domain"
	"github.com/alexanderramin/bachlog/internal/importer"
	"github.com/alexanderramin/bachlog/internal/repository"
)

// ImportBatchSize is the number of rows enriched and persisted at once.
const ImportBatchSize = 10

type importService struct {
	courses  repository.CourseRepo
	enricher enricher
	modules  domain.ModuleOptions
	observer UseCaseObserver
}

func NewImportService(
	courses repository.CourseRepo,
	cat catalog.Client,
	modules domain.ModuleOptions,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		courses:  courses,
		enricher: enricher{catalog: cat},
		modules:  modules,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*contract.ImportResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return s.ImportCSV(ctx, raw)
}

// ImportCSV processes rows in batches of ImportBatchSize. Batches run one
// after another; rows inside a batch run concurrently and their outcomes are
// appended as they settle. Persisted rows stay persisted whatever happens to
// the rows after them.
func (s *importService) ImportCSV(ctx context.Context, raw []byte) (result *contract.ImportResult, err error) {
	startedAt := time.Now().UTC()
	runID := uuid.NewString()
	fields := map[string]any{"run_id": runID}
	defer func() {
		if result != nil {
			fields["processed"] = result.Processed
			fields["succeeded"] = result.Succeeded
			fields["failed"] = result.Failed
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-csv",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	table, err := importer.ParseCSV(raw)
	if err != nil {
		return nil, err
	}
	fields["rows"] = len(table.Rows)

	result = &contract.ImportResult{
		RunID:   runID,
		Courses: make([]contract.RowOutcome, 0, len(table.Rows)),
	}

	var mu sync.Mutex
	for start := 0; start < len(table.Rows); start += ImportBatchSize {
		batch := table.Rows[start:min(start+ImportBatchSize, len(table.Rows))]

		var wg sync.WaitGroup
		for _, row := range batch {
			wg.Add(1)
			go func(row importer.Row) {
				defer wg.Done()
				outcome := s.importRow(ctx, runID, row)
				mu.Lock()
				result.Record(outcome)
				mu.Unlock()
			}(row)
		}
		wg.Wait()
	}

	return result, nil
}

func (s *importService) importRow(ctx context.Context, runID string, row importer.Row) contract.RowOutcome {
	startedAt := time.Now().UTC()
	rec, err := s.persistRow(ctx, row)
	if err != nil {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-row",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Err:       err,
			Recovered: true,
			Fields:    map[string]any{"run_id": runID, "line": row.Line, "code": row.Code},
		})
		return contract.RowOutcome{
			Line:     row.Line,
			Code:     row.Code,
			Semester: row.Semester,
			Module:   row.Module,
			Status:   contract.RowFailed,
			Error:    err.Error(),
		}
	}
	return contract.RowOutcome{
		Line:     row.Line,
		Code:     rec.Code,
		Semester: strconv.Itoa(rec.Semester),
		Module:   rec.ModuleCode(),
		Status:   contract.RowSuccess,
		Course:   rec,
	}
}

func (s *importService) persistRow(ctx context.Context, row importer.Row) (*domain.CourseRecord, error) {
	valid, err := importer.ValidateRow(row, s.modules)
	if err != nil {
		return nil, err
	}
	rec, err := s.enricher.enrich(ctx, valid)
	if err != nil {
		return nil, err
	}
	if err := s.courses.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
