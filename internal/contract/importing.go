package contract

import "github.com/alexanderramin/bachlog/internal/domain"

type RowStatus string

const (
	RowSuccess RowStatus = "success"
	RowFailed  RowStatus = "failed"
)

// RowOutcome is the result of one imported row. Failed rows carry the
// row's raw code, semester and module.
type RowOutcome struct {
	Line     int                  `json:"line" yaml:"line"`
	Code     string               `json:"code" yaml:"code"`
	Semester string               `json:"semester" yaml:"semester"`
	Module   string               `json:"module" yaml:"module"`
	Status   RowStatus            `json:"status" yaml:"status"`
	Error    string               `json:"error,omitempty" yaml:"error,omitempty"`
	Course   *domain.CourseRecord `json:"course,omitempty" yaml:"course,omitempty"`
}

// ImportResult aggregates a batch import. Processed always equals
// Succeeded+Failed and len(Courses).
type ImportResult struct {
	RunID     string       `json:"run_id" yaml:"run_id"`
	Processed int          `json:"processed" yaml:"processed"`
	Succeeded int          `json:"succeeded" yaml:"succeeded"`
	Failed    int          `json:"failed" yaml:"failed"`
	Courses   []RowOutcome `json:"courses" yaml:"courses"`
}

// Record appends an outcome and updates the counters.
func (r *ImportResult) Record(o RowOutcome) {
	r.Processed++
	if o.Status == RowSuccess {
		r.Succeeded++
	} else {
		r.Failed++
	}
	r.Courses = append(r.Courses, o)
}
