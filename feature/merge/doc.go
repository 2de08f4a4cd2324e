// Package merge joins a secondary workbook into the workspace copy of the
// canonical workbook.
//
// Secondary rows are matched by identity (whitespace stripped, case-sensitive
// unless configured otherwise) and their non-empty cells are written into a
// block of columns starting at a fixed column (AW by default). Columns before
// the block are never touched. The primary workbook is patched in place so its
// formatting survives, and a report workbook lists the statistics, the matched
// rows and the unmatched rows with their reason.
//
// When nothing matches neither the primary workbook nor the report is written.
//
// # HTTP Endpoints
//
//   - POST /merge : Runs a merge (supports ?dry_run=true).
package merge
