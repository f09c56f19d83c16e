package dataset

import "strings"

// Row represents one raw record as column-name → cell-text pairs.
// An absent key and an empty string both mean the cell is missing.
type Row map[string]string

// Table represents a complete raw tabular dataset
type Table struct {
	Columns []string // Column headers, surrounding whitespace already trimmed
	Rows    []Row    // Data rows keyed by the trimmed headers
}

// NewTable builds a Table from a header row and raw string rows,
// trimming surrounding whitespace from every header and cell.
func NewTable(header []string, rows [][]string) *Table {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	data := make([]Row, 0, len(rows))
	for _, raw := range rows {
		row := make(Row, len(columns))
		for j, cell := range raw {
			if j < len(columns) {
				row[columns[j]] = strings.TrimSpace(cell)
			}
		}
		data = append(data, row)
	}

	return &Table{Columns: columns, Rows: data}
}

// Get returns the cell for column, reporting whether the value is present
// and non-empty.
func (r Row) Get(column string) (string, bool) {
	v, ok := r[column]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}
