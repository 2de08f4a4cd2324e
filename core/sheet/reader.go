package sheet

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned when a workbook holds no worksheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// ReadFile reads the first worksheet of the workbook at path.
func ReadFile(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	return readSheet(f, sheets[0])
}

// readSheet decodes one worksheet into a table with typed cells.
func readSheet(f *excelize.File, name string) (*Table, error) {
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}

	t := &Table{Name: name}
	if len(raw) == 0 {
		return t, nil
	}

	width := 0
	for _, row := range raw {
		if len(row) > width {
			width = len(row)
		}
	}
	header := make([]string, width)
	copy(header, raw[0])
	t.Headers = DeriveHeaders(header)

	dec := &decoder{f: f, sheet: name, dateStyles: make(map[int]bool)}
	last := lastNonBlank(raw)
	for r := 1; r <= last; r++ {
		row := make([]any, width)
		for c, s := range raw[r] {
			if s == "" {
				continue
			}
			v, err := dec.cell(c, r, s)
			if err != nil {
				return nil, err
			}
			row[c] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// lastNonBlank returns the index of the last row holding any value.
func lastNonBlank(raw [][]string) int {
	for r := len(raw) - 1; r > 0; r-- {
		for _, s := range raw[r] {
			if s != "" {
				return r
			}
		}
	}
	return 0
}

type decoder struct {
	f          *excelize.File
	sheet      string
	dateStyles map[int]bool
}

// cell converts the raw value at 0-based (col, row) into its Go type.
func (d *decoder) cell(col, row int, raw string) (any, error) {
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return nil, err
	}
	typ, err := d.f.GetCellType(d.sheet, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read cell %s: %w", ref, err)
	}

	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true"), nil
	case excelize.CellTypeDate:
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return ts.UTC(), nil
		}
		return raw, nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return raw, nil
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw, nil
	}
	isDate, err := d.isDateStyled(ref)
	if err != nil {
		return nil, err
	}
	if isDate {
		return FromSerial(num), nil
	}
	return num, nil
}

func (d *decoder) isDateStyled(ref string) (bool, error) {
	idx, err := d.f.GetCellStyle(d.sheet, ref)
	if err != nil {
		return false, fmt.Errorf("failed to read style of %s: %w", ref, err)
	}
	if idx == 0 {
		return false, nil
	}
	if v, ok := d.dateStyles[idx]; ok {
		return v, nil
	}
	style, err := d.f.GetStyle(idx)
	if err != nil {
		return false, fmt.Errorf("failed to read style %d: %w", idx, err)
	}
	isDate := IsDateFormat(style.NumFmt, style.CustomNumFmt)
	d.dateStyles[idx] = isDate
	return isDate, nil
}

var (
	quotedOrBracketed = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)
	dateTokens        = regexp.MustCompile(`[yYdDhHsS]`)
)

// IsDateFormat reports whether a builtin number format id or a custom format
// code renders its value as a date or a time.
func IsDateFormat(id int, custom *string) bool {
	if custom != nil && *custom != "" {
		code := quotedOrBracketed.ReplaceAllString(*custom, "")
		return dateTokens.MatchString(code)
	}
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58,
		id >= 71 && id <= 81:
		return true
	}
	return false
}
