package backup

// Config holds configuration for pre-write backups.
type Config struct {
	// Dir is where backups are written. Empty places them in a "backups"
	// directory next to the file being backed up.
	Dir string `mapstructure:"dir" default:""`
	// Keep is the number of backups retained per file. Zero keeps every backup.
	Keep int `mapstructure:"keep" default:"0"`
}
