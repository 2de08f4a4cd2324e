package sheet

// FirstDataRow is the spreadsheet row number of the first data row.
const FirstDataRow = 2

// Table is a single worksheet held in memory.
type Table struct {
	// Name is the worksheet name used when the table is written.
	Name string
	// Headers holds the column names of row 1.
	Headers []string
	// Rows holds the data rows in sheet order, including blank rows between data.
	Rows [][]any
	// Formats holds an optional number format code per column ("" = General).
	Formats []string
}

// NewTable creates an empty table with the given headers.
func NewTable(name string, headers []string) *Table {
	h := make([]string, len(headers))
	copy(h, headers)
	return &Table{Name: name, Headers: h}
}

// RowNumber converts a data row index into its spreadsheet row number.
func RowNumber(index int) int {
	return index + FirstDataRow
}

// Clone returns a deep copy of t. Cell values are copied by value.
func (t *Table) Clone() *Table {
	c := &Table{
		Name:    t.Name,
		Headers: append([]string(nil), t.Headers...),
		Formats: append([]string(nil), t.Formats...),
		Rows:    make([][]any, len(t.Rows)),
	}
	for i, row := range t.Rows {
		c.Rows[i] = append([]any(nil), row...)
	}
	return c
}

// Width returns the number of columns spanned by the headers or any row.
func (t *Table) Width() int {
	w := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// ColumnIndex returns the 0-based index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at data row index row and column col.
func (t *Table) Cell(row, col int) any {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][col]
}

// SetCell stores v at data row index row and column col, growing the row as needed.
func (t *Table) SetCell(row, col int, v any) {
	for len(t.Rows) <= row {
		t.Rows = append(t.Rows, nil)
	}
	for len(t.Rows[row]) <= col {
		t.Rows[row] = append(t.Rows[row], nil)
	}
	t.Rows[row][col] = v
}

// SetHeader stores name as the header of column col, padding with blanks.
func (t *Table) SetHeader(col int, name string) {
	for len(t.Headers) <= col {
		t.Headers = append(t.Headers, "")
	}
	t.Headers[col] = name
}

// Format returns the format code of column col.
func (t *Table) Format(col int) string {
	if col < 0 || col >= len(t.Formats) {
		return ""
	}
	return t.Formats[col]
}

// SetFormat stores the format code of column col.
func (t *Table) SetFormat(col int, code string) {
	for len(t.Formats) <= col {
		t.Formats = append(t.Formats, "")
	}
	t.Formats[col] = code
}

// AppendRow adds a data row at the end of the table.
func (t *Table) AppendRow(values []any) {
	t.Rows = append(t.Rows, append([]any(nil), values...))
}

// Records returns one record per non-blank data row.
func (t *Table) Records() []Record {
	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		vals := make([]any, len(t.Headers))
		copy(vals, row)
		rec := Record{Fields: t.Headers, Values: vals}
		if rec.IsEmpty() {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// Dataset returns the table as a named dataset.
func (t *Table) Dataset() Dataset {
	return Dataset{Name: t.Name, Headers: t.Headers, Records: t.Records()}
}

// FromRecords builds a table from records. Headers are the union of the record
// fields in order of first appearance.
func FromRecords(name string, records []Record) *Table {
	index := make(map[string]int)
	var headers []string
	for _, rec := range records {
		for _, f := range rec.Fields {
			if _, ok := index[f]; !ok {
				index[f] = len(headers)
				headers = append(headers, f)
			}
		}
	}

	t := NewTable(name, headers)
	for _, rec := range records {
		row := make([]any, len(headers))
		for i, f := range rec.Fields {
			if i < len(rec.Values) {
				row[index[f]] = rec.Values[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
