// Package config provides configuration management for the consolidator.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Consolidate: source folder, output workbooks, identity column
//   - Sync: workspace copy of the canonical workbook
//   - Merge: secondary workbook, identity columns, start column, report
//   - Cleanup: workbook and column range to clear
//   - Backup: backup folder and retention
//   - Server: HTTP address, API key
//   - Database: run history database (SQLite or MySQL)
//   - Storage: S3/MinIO backup mirror
//   - Log: logging level and format
//
// Relative workbook paths of every section except Consolidate are resolved
// against CONSOLIDATE_DIR.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Merge.Primary)
package config
