package workspace

// Config holds configuration for the workspace sync.
type Config struct {
	// Enabled exposes the feature over HTTP.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Source is the canonical workbook rows are copied from.
	Source string `mapstructure:"source" default:"concentrado-general.xlsx"`
	// Target is the workspace copy of the canonical workbook.
	Target string `mapstructure:"target" default:"merge-general/concentrado-general.xlsx"`
	// SeedMissing copies Source to Target when Target does not exist yet.
	SeedMissing bool `mapstructure:"seed_missing" default:"false"`
}
