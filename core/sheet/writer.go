package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	defaultDateFormat     = "dd/mm/yyyy"
	defaultClockFormat    = "hh:mm:ss"
	defaultDateTimeFormat = "dd/mm/yyyy hh:mm:ss"
)

// WriteFile renders tables as the sheets of a new workbook and atomically
// replaces path with it. The first table becomes the first sheet.
func WriteFile(path string, tables ...*Table) error {
	f := excelize.NewFile()
	defer f.Close()

	styles := newStyleCache(f)
	for i, t := range tables {
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		w := &cellWriter{f: f, sheet: name, styles: styles}
		if err := w.table(t, 0); err != nil {
			return err
		}
	}

	return save(f, path)
}

// save writes f next to path under a temporary "~$" name and renames it over path.
func save(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "~$"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to render workbook: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to flush workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close workbook: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

type styleCache struct {
	f   *excelize.File
	ids map[string]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, ids: make(map[string]int)}
}

func (c *styleCache) id(code string) (int, error) {
	if id, ok := c.ids[code]; ok {
		return id, nil
	}
	fmtCode := code
	id, err := c.f.NewStyle(&excelize.Style{CustomNumFmt: &fmtCode})
	if err != nil {
		return 0, fmt.Errorf("failed to create style %q: %w", code, err)
	}
	c.ids[code] = id
	return id, nil
}

// cellWriter writes table values into one worksheet.
type cellWriter struct {
	f      *excelize.File
	sheet  string
	styles *styleCache
	// clear makes nil values erase existing cells instead of being skipped.
	clear bool
}

// table writes the header and data rows of t, starting at column fromCol.
func (w *cellWriter) table(t *Table, fromCol int) error {
	for c := fromCol; c < len(t.Headers); c++ {
		if err := w.set(c, 1, t.Headers[c], ""); err != nil {
			return err
		}
	}
	for r, row := range t.Rows {
		for c := fromCol; c < len(row); c++ {
			if err := w.set(c, RowNumber(r), row[c], t.Format(c)); err != nil {
				return err
			}
		}
	}
	return nil
}

// set writes v at 0-based column col of 1-based sheet row row.
func (w *cellWriter) set(col, row int, v any, format string) error {
	if v == nil && !w.clear {
		return nil
	}
	ref, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}

	ts, isTime := v.(time.Time)
	if !isTime {
		if err := w.f.SetCellValue(w.sheet, ref, v); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", ref, err)
		}
		return nil
	}

	if err := w.f.SetCellFloat(w.sheet, ref, ToSerial(ts), -1, 64); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", ref, err)
	}
	if format == "" {
		format = timeFormat(ts)
	}
	id, err := w.styles.id(format)
	if err != nil {
		return err
	}
	if err := w.f.SetCellStyle(w.sheet, ref, ref, id); err != nil {
		return fmt.Errorf("failed to style cell %s: %w", ref, err)
	}
	return nil
}

// timeFormat picks a display format for a time cell in an unformatted column.
func timeFormat(ts time.Time) string {
	switch {
	case IsClockOnly(ts):
		return defaultClockFormat
	case HasClock(ts):
		return defaultDateTimeFormat
	default:
		return defaultDateFormat
	}
}
