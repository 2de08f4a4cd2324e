// Package cleanup clears stray data from a fixed column range of the canonical
// workbook.
//
// Every cell in the range, header row included, is erased; cells outside the
// range keep their content and formatting. The workbook is backed up first and
// is not rewritten when the range was already empty.
//
// # HTTP Endpoints
//
//   - POST /clean : Runs a cleanup (supports ?dry_run=true).
package cleanup
