package consolidate

import "path/filepath"

// Config holds configuration for the consolidation run.
type Config struct {
	// Enabled exposes the feature over HTTP.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Dir is the folder scanned for source workbooks.
	Dir string `mapstructure:"dir" default:"."`
	// Output is the canonical workbook, relative to Dir unless absolute.
	Output string `mapstructure:"output" default:"concentrado-general.xlsx"`
	// Duplicates is the duplicate workbook, relative to Dir unless absolute.
	Duplicates string `mapstructure:"duplicates" default:"duplicados.xlsx"`
	// Identity is the identity column. Empty uses the first column.
	Identity string `mapstructure:"identity" default:""`
	// FoldCase matches identities case-insensitively.
	FoldCase bool `mapstructure:"fold_case" default:"false"`
}

// OutputPath returns the resolved canonical workbook path.
func (c Config) OutputPath() string {
	return c.resolve(c.Output)
}

// DuplicatesPath returns the resolved duplicate workbook path.
func (c Config) DuplicatesPath() string {
	return c.resolve(c.Duplicates)
}

func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}
