// Package workspace keeps the merge workspace copy of the canonical workbook
// up to date.
//
// The workspace copy is edited by hand and enriched by merges, so it is never
// regenerated. A sync appends, below its last data row, every canonical row
// whose identity (first column, whitespace stripped) the copy does not have
// yet. Existing rows and their formatting are left untouched. When no key is
// new nothing is written.
//
// # HTTP Endpoints
//
//   - POST /sync : Runs a sync (supports ?dry_run=true).
package workspace
