// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either a local SQLite file (the default, zero setup) or a
// shared MySQL server, based on the application's configuration. The database
// only stores the run history; every consolidation keeps working when it is
// unreachable.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live table definition so callers
// can verify that a migrated table carries the columns their models expect.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "runs", []string{"id", "kind"})
package database
