package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/bachlog/internal/domain"
	"github.com/alexanderramin/bachlog/internal/importer"
	"github.com/alexanderramin/bachlog/internal/repository"
)

// ExportCSVHeader is the header written by ExportCSV. Its first three
// columns are the ones the importer requires, so an export can be
// imported again. Unassigned courses are written as importer.UnassignedModule.
var ExportCSVHeader = []string{importer.ColumnCode, importer.ColumnSemester, importer.ColumnModule, "nimetus", "eap"}

const (
	planSheet    = "Plaan"
	summarySheet = "Kokkuvõte"
)

type exportService struct {
	courses repository.CourseRepo
	modules domain.ModuleOptions
}

func NewExportService(courses repository.CourseRepo, modules domain.ModuleOptions) ExportService {
	return &exportService{courses: courses, modules: modules}
}

func (s *exportService) ExportCSV(ctx context.Context, w io.Writer) error {
	courses, err := s.courses.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(ExportCSVHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range courses {
		module := c.ModuleCode()
		if module == "" {
			module = importer.UnassignedModule
		}
		record := []string{
			c.Code,
			strconv.Itoa(c.Semester),
			module,
			c.Title,
			formatCredits(c.Credits),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing course %s: %w", c.Code, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportXLSX writes a workbook with the plan ordered by semester and a
// summary sheet of credits per semester and per module.
func (s *exportService) ExportXLSX(ctx context.Context, w io.Writer) error {
	courses, err := s.courses.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", planSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	headers := []string{"Semester", "Kood", "Nimetus", "Moodul", "EAP", "Sügis", "Kevad", "Õppekava"}
	if err := writeRow(f, planSheet, 1, toAny(headers)); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("naming header column: %w", err)
	}
	if err := f.SetCellStyle(planSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	for _, w := range []struct {
		col   string
		width float64
	}{{"B", 14}, {"C", 40}, {"D", 18}, {"H", 24}} {
		if err := f.SetColWidth(planSheet, w.col, w.col, w.width); err != nil {
			return fmt.Errorf("sizing column %s: %w", w.col, err)
		}
	}

	bySemester := make(map[int]float64)
	byModule := make(map[string]float64)
	for i, c := range courses {
		err := writeRow(f, planSheet, i+2, []any{
			c.Semester,
			c.Code,
			c.Title,
			s.modules.Title(c.ModuleCode()),
			c.Credits,
			yesNo(c.IsAutumnCourse),
			yesNo(c.IsSpringCourse),
			c.Curriculum,
		})
		if err != nil {
			return err
		}
		bySemester[c.Semester] += c.Credits
		byModule[c.ModuleCode()] += c.Credits
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	if err := writeRow(f, summarySheet, 1, []any{"Semester", "EAP"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("styling summary header: %w", err)
	}
	row := 2
	for sem := domain.MinSemester; sem <= domain.MaxSemester; sem++ {
		if err := writeRow(f, summarySheet, row, []any{sem, bySemester[sem]}); err != nil {
			return err
		}
		row++
	}

	row++
	if err := writeRow(f, summarySheet, row, []any{"Moodul", "EAP", "Miinimum"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row), headerStyle); err != nil {
		return fmt.Errorf("styling module header: %w", err)
	}
	row++
	for _, opt := range s.modules {
		code := ""
		if opt.Code != nil {
			code = *opt.Code
		}
		if err := writeRow(f, summarySheet, row, []any{opt.Title, byModule[code], opt.MinCredits}); err != nil {
			return err
		}
		row++
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 20); err != nil {
		return fmt.Errorf("sizing summary column: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("addressing %s row %d: %w", sheet, row, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "jah"
	}
	return "ei"
}

func formatCredits(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}
