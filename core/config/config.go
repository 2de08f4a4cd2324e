package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"consolidator/core/backup"
	"consolidator/core/database"
	"consolidator/core/logger"
	"consolidator/core/server"
	"consolidator/core/storage"
	"consolidator/feature/cleanup"
	"consolidator/feature/consolidate"
	"consolidator/feature/merge"
	"consolidator/feature/workspace"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Consolidate holds the source folder and output workbooks.
	Consolidate consolidate.Config `mapstructure:"consolidate"`
	// Sync holds the workspace copy kept in step with the canonical workbook.
	Sync workspace.Config `mapstructure:"sync"`
	// Merge holds the join of the secondary workbook into the workspace copy.
	Merge merge.Config `mapstructure:"merge"`
	// Cleanup holds the column range cleared from the canonical workbook.
	Cleanup cleanup.Config `mapstructure:"cleanup"`
	// Backup holds configuration for pre-write backups.
	Backup backup.Config `mapstructure:"backup"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the backup mirror (S3 or MinIO).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the run history database.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.ResolvePaths()
	return &config, nil
}

// ResolvePaths anchors every relative workbook path on the consolidation folder.
func (c *Config) ResolvePaths() {
	dir := c.Consolidate.Dir
	if dir == "" {
		dir = "."
	}
	for _, p := range []*string{
		&c.Sync.Source,
		&c.Sync.Target,
		&c.Merge.Primary,
		&c.Merge.Secondary,
		&c.Merge.Report,
		&c.Cleanup.File,
		&c.Backup.Dir,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
