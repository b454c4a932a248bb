package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/bachlog/internal/contract"
)

// FormatImportResult renders the counters and, when rows failed, a table
// of failures by line.
func FormatImportResult(r *contract.ImportResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s processed  %s imported  %s failed\n",
		Bold(strconv.Itoa(r.Processed)),
		StyleGreen.Render(strconv.Itoa(r.Succeeded)),
		failedCount(r.Failed),
	))

	var rows [][]string
	for _, o := range r.Courses {
		if o.Status != contract.RowFailed {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(o.Line),
			Placeholder(o.Code),
			Placeholder(o.Semester),
			Placeholder(o.Module),
			StyleRed.Render(o.Error),
		})
	}
	if len(rows) > 0 {
		b.WriteString("\n" + RenderTable([]string{"LINE", "CODE", "SEM", "MODULE", "ERROR"}, rows))
	}
	if r.RunID != "" {
		b.WriteString("\n" + Dim("run "+r.RunID))
	}
	return RenderBox("Import", strings.TrimRight(b.String(), "\n"))
}

func failedCount(n int) string {
	if n == 0 {
		return Dim("0")
	}
	return StyleRed.Render(strconv.Itoa(n))
}
