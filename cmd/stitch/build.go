package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tsawler/stitch"
	"github.com/tsawler/stitch/export"
	"github.com/tsawler/stitch/internal/config"
	"github.com/tsawler/stitch/naming"
)

// pipeline is everything a command needs to process documents with one
// configuration.
type pipeline struct {
	processor *stitch.Processor
	sink      export.Sink
	workers   int
	closers   []func() error
}

// Close releases the namer and flushes the sinks.
func (p *pipeline) Close() error {
	var first error
	for _, c := range p.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// buildPipeline creates the processor, namer and sinks described by cfg.
// Sinks are only opened when withSink is set.
func buildPipeline(ctx context.Context, cfg *config.Config, log *slog.Logger, withSink bool) (*pipeline, error) {
	p := &pipeline{workers: cfg.Workers}

	namer, closeNamer, err := buildNamer(ctx, cfg.Naming, log)
	if err != nil {
		return nil, err
	}
	if closeNamer != nil {
		p.closers = append(p.closers, closeNamer)
	}

	p.processor = stitch.FromDocument(nil).
		TitleProximity(cfg.Tables.TitleProximity).
		MaxSeparation(cfg.Tables.MaxSeparation).
		Thresholds(cfg.Columns.NumericThreshold, cfg.Columns.TemporalThreshold).
		WithNamer(namer).
		WithLogger(log)

	if withSink {
		sink, err := buildSink(ctx, cfg.Export)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		p.sink = sink
		p.closers = append(p.closers, sink.Close)
	}
	return p, nil
}

func buildNamer(ctx context.Context, cfg config.NamingCfg, log *slog.Logger) (naming.Namer, func() error, error) {
	retry := naming.DefaultRetryPolicy()
	if cfg.RetryAttempts > 0 {
		retry = naming.RetryPolicy{Attempts: cfg.RetryAttempts, Delay: cfg.RetryDelay}
	}

	switch cfg.Provider {
	case "", "none":
		return nil, nil, nil
	case "header":
		return naming.NewHeader(), nil, nil
	case "openai":
		key := config.ResolveEnvVars(cfg.APIKey)
		if key == "" {
			return nil, nil, fmt.Errorf("naming.api_key is required for the openai provider")
		}
		return naming.NewOpenAI(naming.OpenAIConfig{
			APIKey:  key,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Retry:   retry,
			Logger:  log,
		}), nil, nil
	case "gemini":
		g, err := naming.NewGemini(ctx, naming.GeminiConfig{
			APIKey: config.ResolveEnvVars(cfg.APIKey),
			Model:  cfg.Model,
			Retry:  retry,
			Logger: log,
		})
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown naming provider %q", cfg.Provider)
	}
}

func buildSink(ctx context.Context, cfg config.ExportCfg) (export.Sink, error) {
	var sinks export.Multi
	fail := func(err error) (export.Sink, error) {
		_ = sinks.Close()
		return nil, err
	}

	for _, format := range cfg.Formats {
		switch format {
		case "csv":
			sinks = append(sinks, export.NewCSV(cfg.Dir))
		case "xlsx":
			sinks = append(sinks, export.NewXLSX(cfg.Dir))
		case "postgres":
			dsn := config.ResolveEnvVars(cfg.Postgres)
			if dsn == "" {
				return fail(fmt.Errorf("export.postgres_dsn is required for postgres export"))
			}
			pg, err := export.NewPostgres(ctx, dsn)
			if err != nil {
				return fail(err)
			}
			sinks = append(sinks, pg)
		case "s3":
			s3, err := export.NewS3(ctx, export.S3Config{
				Bucket:    cfg.S3.Bucket,
				Prefix:    cfg.S3.Prefix,
				Region:    cfg.S3.Region,
				AccessKey: config.ResolveEnvVars(cfg.S3.AccessKey),
				SecretKey: config.ResolveEnvVars(cfg.S3.SecretKey),
				Endpoint:  cfg.S3.Endpoint,
			})
			if err != nil {
				return fail(err)
			}
			sinks = append(sinks, s3)
		default:
			return fail(fmt.Errorf("unknown export format %q", format))
		}
	}
	return sinks, nil
}
