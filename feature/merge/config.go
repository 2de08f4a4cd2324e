package merge

// Config holds configuration for the merge of the secondary dataset.
type Config struct {
	// Enabled exposes the feature over HTTP.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Primary is the workspace copy of the canonical workbook.
	Primary string `mapstructure:"primary" default:"merge-general/concentrado-general.xlsx"`
	// Secondary is the workbook whose rows are joined into Primary.
	Secondary string `mapstructure:"secondary" default:"merge-general/data.xlsx"`
	// Report is the generated merge report workbook.
	Report string `mapstructure:"report" default:"merge-general/reporte-merge.xlsx"`
	// PrimaryKey is the identity column of Primary. Empty uses the first column.
	PrimaryKey string `mapstructure:"primary_key" default:""`
	// SecondaryKey is the identity column of Secondary.
	SecondaryKey string `mapstructure:"secondary_key" default:"Nº de pieza"`
	// StartColumn is the column letter where the joined block starts.
	StartColumn string `mapstructure:"start_column" default:"AW"`
	// FoldCase matches identities case-insensitively.
	FoldCase bool `mapstructure:"fold_case" default:"false"`
}
