// Package history keeps a ledger of consolidation runs.
//
// Every run (consolidate, sync, merge, clean) is stored as a Run row with its
// counters, the files it touched and its outcome. The ledger lives in the optional
// database configured in core/database; a Store built on a nil connection accepts
// records silently so runs never fail because history is unavailable.
//
// # Schema Verification
//
// Migrate runs GORM's AutoMigrate and then compares the live table against the
// column tags of Run, reporting any column the database is missing.
//
// # Usage
//
//	store := history.NewStore(db)
//	run := history.NewRun(history.KindConsolidate)
//	defer store.Record(ctx, run.Finish(err))
package history
