package config

// LoggingConfig selects the slog handler and where it writes
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// stdout, stderr or file; file needs FilePath
	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path"`

	// Only used with output=file
	Rotation RotationConfig `mapstructure:"rotation"`

	// Adds source file:line to each record
	IncludeCaller bool `mapstructure:"include_caller"`
}

// RotationConfig maps onto lumberjack's size/age limits
type RotationConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxSizeMB  int  `mapstructure:"max_size" validate:"min=1"`
	MaxBackups int  `mapstructure:"max_backups" validate:"min=0"`
	MaxAgeDays int  `mapstructure:"max_age" validate:"min=0"`
	Compress   bool `mapstructure:"compress"`
}

// MetricsConfig controls the Prometheus collectors and their scrape path
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}
