package config

import "time"

// Config is the complete stitch configuration.
type Config struct {
	Tables  TablesCfg  `mapstructure:"tables" yaml:"tables" json:"tables"`
	Columns ColumnsCfg `mapstructure:"columns" yaml:"columns" json:"columns"`
	Naming  NamingCfg  `mapstructure:"naming" yaml:"naming" json:"naming"`
	Export  ExportCfg  `mapstructure:"export" yaml:"export" json:"export"`
	Workers int        `mapstructure:"workers" yaml:"workers" json:"workers"` // Documents processed concurrently
	Log     LogCfg     `mapstructure:"log" yaml:"log" json:"log"`
}

// TablesCfg configures table reconstruction.
type TablesCfg struct {
	TitleProximity int `mapstructure:"title_proximity" yaml:"title_proximity" json:"title_proximity"` // Characters between a title and its table
	MaxSeparation  int `mapstructure:"max_separation" yaml:"max_separation" json:"max_separation"`   // Characters between merged fragments
}

// ColumnsCfg configures column typing.
type ColumnsCfg struct {
	NumericThreshold  float64 `mapstructure:"numeric_threshold" yaml:"numeric_threshold" json:"numeric_threshold"`
	TemporalThreshold float64 `mapstructure:"temporal_threshold" yaml:"temporal_threshold" json:"temporal_threshold"`
}

// NamingCfg selects the table and column namer.
type NamingCfg struct {
	Provider      string        `mapstructure:"provider" yaml:"provider" json:"provider"` // "none", "header", "openai", "gemini"
	Model         string        `mapstructure:"model" yaml:"model" json:"model"`
	APIKey        string        `mapstructure:"api_key" yaml:"api_key" json:"api_key"` // Supports ${ENV_VAR} syntax
	BaseURL       string        `mapstructure:"base_url" yaml:"base_url" json:"base_url"`
	RetryAttempts uint          `mapstructure:"retry_attempts" yaml:"retry_attempts" json:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay" yaml:"retry_delay" json:"retry_delay"`
}

// ExportCfg selects export destinations.
type ExportCfg struct {
	Formats  []string `mapstructure:"formats" yaml:"formats" json:"formats"` // "csv", "xlsx", "postgres", "s3"
	Dir      string   `mapstructure:"dir" yaml:"dir" json:"dir"`
	Postgres string   `mapstructure:"postgres_dsn" yaml:"postgres_dsn" json:"postgres_dsn"` // Supports ${ENV_VAR} syntax
	S3       S3Cfg    `mapstructure:"s3" yaml:"s3" json:"s3"`
}

// S3Cfg configures the S3 export.
type S3Cfg struct {
	Bucket    string `mapstructure:"bucket" yaml:"bucket" json:"bucket"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix" json:"prefix"`
	Region    string `mapstructure:"region" yaml:"region" json:"region"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key" json:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key" json:"secret_key"`
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
}

// LogCfg configures logging.
type LogCfg struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`   // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format" json:"format"` // "text" or "json"
}
