// Package consolidate merges every source workbook of a folder into the
// canonical workbook and the duplicate workbook.
//
// Each run reads the previous outputs as prior state, scans the folder for
// source workbooks in name order, and hands both to the reconciliation engine.
// Records are tidied and their date and time fields normalized on the way in.
// Both outputs are backed up and then replaced atomically.
//
// # Source Selection
//
// Every *.xlsx file in the folder is a source except office lock files
// ("~$..."), the two output files and backups. A source that cannot be read is
// logged and processed as an empty dataset.
//
// # HTTP Endpoints
//
//   - POST /consolidate : Runs a consolidation (supports ?dry_run=true).
package consolidate
