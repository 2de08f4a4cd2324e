package cleanup

// Config holds configuration for the column cleanup.
type Config struct {
	// Enabled exposes the feature over HTTP.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// File is the workbook to clean.
	File string `mapstructure:"file" default:"concentrado-general.xlsx"`
	// Columns is the inclusive column range to clear, such as "BL:BP".
	Columns string `mapstructure:"columns" default:"BL:BP"`
}
