package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook is an open workbook patched in place on its first worksheet.
// Cells that are not written keep their content and styling.
type Workbook struct {
	f      *excelize.File
	path   string
	sheet  string
	styles *styleCache
}

// OpenWorkbook opens the workbook at path for patching.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, ErrNoSheets
	}
	return &Workbook{f: f, path: path, sheet: sheets[0], styles: newStyleCache(f)}, nil
}

// Path returns the file the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SheetName returns the name of the patched worksheet.
func (w *Workbook) SheetName() string {
	return w.sheet
}

// Table reads the patched worksheet.
func (w *Workbook) Table() (*Table, error) {
	return readSheet(w.f, w.sheet)
}

func (w *Workbook) writer() *cellWriter {
	return &cellWriter{f: w.f, sheet: w.sheet, styles: w.styles, clear: true}
}

// ApplyTable writes the headers and cells of t from column fromCol onward.
// Columns before fromCol are left untouched.
func (w *Workbook) ApplyTable(t *Table, fromCol int) error {
	return w.writer().table(t, fromCol)
}

// AppendRows writes rows below the last data row of the worksheet and returns
// the sheet row number of the first appended row.
func (w *Workbook) AppendRows(rows [][]any, formats []string) (int, error) {
	t, err := w.Table()
	if err != nil {
		return 0, err
	}
	first := RowNumber(len(t.Rows))
	cw := w.writer()
	cw.clear = false
	for i, row := range rows {
		for c, v := range row {
			format := ""
			if c < len(formats) {
				format = formats[c]
			}
			if err := cw.set(c, first+i, v, format); err != nil {
				return 0, err
			}
		}
	}
	return first, nil
}

// ClearColumns erases every cell, header row included, in the inclusive
// 0-based column range [from, to] and returns how many non-empty cells were cleared.
func (w *Workbook) ClearColumns(from, to int) (int, error) {
	rows, err := w.f.GetRows(w.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet %s: %w", w.sheet, err)
	}

	cleared := 0
	for r, row := range rows {
		for c := from; c <= to && c < len(row); c++ {
			if row[c] == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return cleared, err
			}
			if err := w.f.SetCellValue(w.sheet, ref, nil); err != nil {
				return cleared, fmt.Errorf("failed to clear cell %s: %w", ref, err)
			}
			cleared++
		}
	}
	return cleared, nil
}

// Save atomically replaces the workbook file with the patched content.
func (w *Workbook) Save() error {
	return save(w.f, w.path)
}

// SaveAs atomically writes the patched content to path.
func (w *Workbook) SaveAs(path string) error {
	return save(w.f, path)
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// ColumnIndex converts a column name such as "AW" into a 0-based index.
func ColumnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// ColumnName converts a 0-based column index into its letter name.
func ColumnName(index int) string {
	name, err := excelize.ColumnNumberToName(index + 1)
	if err != nil {
		return ""
	}
	return name
}
