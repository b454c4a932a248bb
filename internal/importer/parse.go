// Package importer turns tabular plan exports into validated course rows.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Column names of the tabular format, in their required order.
const (
	ColumnCode     = "kood"
	ColumnSemester = "semester"
	ColumnModule   = "moodul"
)

var requiredColumns = []string{ColumnCode, ColumnSemester, ColumnModule}

// ErrInvalidHeader rejects a whole import before any row is processed.
var ErrInvalidHeader = errors.New("invalid header")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one raw data row. Fields are trimmed but otherwise unparsed.
type Row struct {
	Line     int
	Code     string
	Semester string
	Module   string
	// Malformed holds the reader error for a line that could not be split
	// into fields.
	Malformed string
}

// Table is a parsed tabular input.
type Table struct {
	Delimiter rune
	Header    []string
	Rows      []Row
}

// DetectDelimiter returns ';' if raw contains a semicolon, ',' otherwise.
func DetectDelimiter(raw []byte) rune {
	if bytes.IndexByte(raw, ';') >= 0 {
		return ';'
	}
	return ','
}

// ParseCSV splits raw into rows. Only a missing, incomplete or misordered
// header is an error; row content is validated later, row by row. Columns
// beyond the three recognized ones are ignored.
//
// Every physical line is read on its own, so a broken quote on one line
// yields a single malformed row and never absorbs the lines after it.
func ParseCSV(raw []byte) (*Table, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	delim := DetectDelimiter(raw)

	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), len(raw)+1)

	var (
		table *Table
		idx   []int
		line  int
	)
	for sc.Scan() {
		line++
		text := sc.Text()
		if table == nil {
			header, err := splitLine(text, delim)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
			}
			if idx, err = columnIndexes(header); err != nil {
				return nil, err
			}
			table = &Table{Delimiter: delim, Header: header}
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		record, err := splitLine(text, delim)
		if err != nil {
			table.Rows = append(table.Rows, Row{Line: line, Malformed: err.Error()})
			continue
		}
		if isBlank(record) {
			continue
		}
		table.Rows = append(table.Rows, Row{
			Line:     line,
			Code:     field(record, idx[0]),
			Semester: field(record, idx[1]),
			Module:   field(record, idx[2]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if table == nil {
		return nil, fmt.Errorf("%w: input is empty", ErrInvalidHeader)
	}
	return table, nil
}

// splitLine reads exactly one record from a single physical line.
func splitLine(line string, delim rune) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	record, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []string{""}, nil
	}
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, perr.Err
		}
		return nil, err
	}
	return record, nil
}

func columnIndexes(header []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	var missing []string
	idx := make([]int, len(requiredColumns))
	for i, col := range requiredColumns {
		p, ok := pos[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[i] = p
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing column(s) %s (expected %s)",
			ErrInvalidHeader, strings.Join(missing, ", "), strings.Join(requiredColumns, ", "))
	}
	for i := 1; i < len(idx); i++ {
		if idx[i] <= idx[i-1] {
			return nil, fmt.Errorf("%w: columns must appear in the order %s, got %s",
				ErrInvalidHeader, strings.Join(requiredColumns, ", "), strings.Join(header, ", "))
		}
	}
	return idx, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
