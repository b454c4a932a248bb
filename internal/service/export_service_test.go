package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/bachlog/internal/domain"
	"github.com/alexanderramin/bachlog/internal/repository"
	"github.com/alexanderramin/bachlog/internal/testutil"
)

func seedPlan(t *testing.T, repo repository.CourseRepo) {
	t.Helper()
	ctx := context.Background()
	for _, c := range []*domain.CourseRecord{
		testutil.NewTestCourse("AY1010", 1, testutil.WithTitle("Sissejuhatus"), testutil.WithCredits(6)),
		testutil.NewTestCourse("LTAT.06.001", 6, testutil.WithTitle("Lõputöö"), testutil.WithCredits(9), testutil.WithModule("LM")),
		testutil.NewTestCourse("MTMM.00.340", 2, testutil.WithTitle("Kõrgem; matemaatika"), testutil.WithCredits(4.5), testutil.WithModule("VA")),
	} {
		require.NoError(t, repo.Create(ctx, c))
	}
}

func TestExportService_CSV(t *testing.T) {
	repo := repository.NewSQLiteCourseRepo(testutil.NewTestDB(t))
	seedPlan(t, repo)
	svc := NewExportService(repo, domain.DefaultModuleOptions())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Equal(t, "kood;semester;moodul;nimetus;eap", string(lines[0]))
	assert.Equal(t, "AY1010;1;PM;Sissejuhatus;6", string(lines[1]))
	assert.Equal(t, `MTMM.00.340;2;VA;"Kõrgem; matemaatika";4.5`, string(lines[2]))
	assert.Equal(t, "LTAT.06.001;6;LM;Lõputöö;9", string(lines[3]))
}

func TestExportService_CSVReimports(t *testing.T) {
	source := repository.NewSQLiteCourseRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, source.Create(ctx, testutil.NewTestCourse("AY1010", 3, testutil.WithModule("SM"))))
	require.NoError(t, source.Create(ctx, testutil.NewTestCourse("AY1010", 5, testutil.WithoutModule())))

	var buf bytes.Buffer
	require.NoError(t, NewExportService(source, domain.DefaultModuleOptions()).ExportCSV(ctx, &buf))
	assert.Contains(t, buf.String(), "AY1010;5;-;")

	svc, target, _ := setupImport(t, newCatalogWithIntro())
	result, err := svc.ImportCSV(ctx, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 0, result.Failed)

	stored, err := target.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 3, stored[0].Semester)
	assert.Equal(t, "SM", stored[0].ModuleCode())
	assert.Equal(t, 5, stored[1].Semester)
	assert.Nil(t, stored[1].Module)
}

func TestExportService_XLSX(t *testing.T) {
	repo := repository.NewSQLiteCourseRepo(testutil.NewTestDB(t))
	seedPlan(t, repo)
	svc := NewExportService(repo, domain.DefaultModuleOptions())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{planSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(planSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Semester", rows[0][0])
	assert.Equal(t, []string{"1", "AY1010", "Sissejuhatus", "Põhimoodul", "6", "jah", "jah", "Informaatika"}, rows[1])
	assert.Equal(t, "Lõputöö moodul", rows[3][3])

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "6"}, summary[1])
	assert.Equal(t, []string{"2", "4.5"}, summary[2])
	assert.Equal(t, []string{"6", "9"}, summary[6])
}

func TestWriteRow_ReportsWorkbookErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, writeRow(f, "Sheet1", 1, []any{"a", 1}))

	err := writeRow(f, "Sheet1", 0, []any{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 0")

	err = writeRow(f, "Puudub", 1, []any{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Puudub!A1")
}
