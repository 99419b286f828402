package config

import (
	"time"

	"github.com/tsawler/stitch/columns"
	"github.com/tsawler/stitch/tables"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	tc := tables.DefaultConfig()
	return &Config{
		Tables: TablesCfg{
			TitleProximity: tc.TitleProximity,
			MaxSeparation:  tc.MaxSeparation,
		},
		Columns: ColumnsCfg{
			NumericThreshold:  columns.DefaultNumericThreshold,
			TemporalThreshold: columns.DefaultTemporalThreshold,
		},
		Naming: NamingCfg{
			Provider:      "header",
			Model:         "",
			APIKey:        "${OPENAI_API_KEY}",
			RetryAttempts: 3,
			RetryDelay:    time.Second,
		},
		Export: ExportCfg{
			Formats:  []string{"csv"},
			Dir:      "output",
			Postgres: "${DATABASE_URL}",
			S3: S3Cfg{
				Region:    "us-east-1",
				AccessKey: "${AWS_ACCESS_KEY}",
				SecretKey: "${AWS_SECRET_KEY}",
			},
		},
		Workers: 4,
		Log: LogCfg{
			Level:  "info",
			Format: "text",
		},
	}
}

// defaults lists every leaf key with its default so that environment
// variables can override any of them.
func defaults() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"tables.title_proximity":     d.Tables.TitleProximity,
		"tables.max_separation":      d.Tables.MaxSeparation,
		"columns.numeric_threshold":  d.Columns.NumericThreshold,
		"columns.temporal_threshold": d.Columns.TemporalThreshold,
		"naming.provider":            d.Naming.Provider,
		"naming.model":               d.Naming.Model,
		"naming.api_key":             d.Naming.APIKey,
		"naming.base_url":            d.Naming.BaseURL,
		"naming.retry_attempts":      d.Naming.RetryAttempts,
		"naming.retry_delay":         d.Naming.RetryDelay,
		"export.formats":             d.Export.Formats,
		"export.dir":                 d.Export.Dir,
		"export.postgres_dsn":        d.Export.Postgres,
		"export.s3.bucket":           d.Export.S3.Bucket,
		"export.s3.prefix":           d.Export.S3.Prefix,
		"export.s3.region":           d.Export.S3.Region,
		"export.s3.access_key":       d.Export.S3.AccessKey,
		"export.s3.secret_key":       d.Export.S3.SecretKey,
		"export.s3.endpoint":         d.Export.S3.Endpoint,
		"workers":                    d.Workers,
		"log.level":                  d.Log.Level,
		"log.format":                 d.Log.Format,
	}
}
