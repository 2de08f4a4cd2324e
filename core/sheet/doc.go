// Package sheet is the spreadsheet codec of the consolidator.
//
// It represents a worksheet as an explicit in-memory value (Table: a header row,
// data rows of typed cells and per-column number format codes) and converts
// between that value and .xlsx files using excelize.
//
// # Cell values
//
// Cells are read into one of the following Go types:
//   - nil for empty cells
//   - string for text
//   - float64 for numbers
//   - bool for booleans
//   - time.Time for cells formatted as dates or times
//
// Date-formatted numbers are decoded with the 1900 date system, so values written
// by this package read back identically. Bare numbers are left as float64; the
// temporal package decides what they mean.
//
// # Writing
//
// Tables are never written in place: a workbook is rendered to a temporary file
// in the destination directory and renamed over the target, so a failed write
// never leaves a partially overwritten file behind. Temporary files start with
// "~$" so directory scans treat them like office lock files.
//
// # Usage
//
//	t, err := sheet.ReadFile("concentrado-general.xlsx")
//	if err != nil {
//	    return err
//	}
//	for _, rec := range t.Records() {
//	    fmt.Println(rec.First())
//	}
//	err = sheet.WriteFile("out.xlsx", t)
package sheet
