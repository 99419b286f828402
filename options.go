package stitch

import (
	"log/slog"

	"github.com/tsawler/stitch/columns"
	"github.com/tsawler/stitch/naming"
	"github.com/tsawler/stitch/tables"
)

// Options holds configuration for table reconstruction.
type Options struct {
	// Reconstruction
	tables tables.Config

	// Column typing
	typer columns.Typer

	// Naming collaborator; nil uses fallback names
	namer naming.Namer

	logger *slog.Logger
}

// defaultOptions returns the default processing options.
func defaultOptions() Options {
	return Options{
		tables: tables.DefaultConfig(),
		typer:  columns.NewTyper(),
		namer:  nil,
		logger: slog.Default(),
	}
}

// clone creates a deep copy of Options.
func (o Options) clone() Options {
	newOpts := Options{
		tables: o.tables,
		typer:  o.typer,
		namer:  o.namer,
		logger: o.logger,
	}

	// Deep copy noise roles
	if o.tables.NoiseRoles != nil {
		newOpts.tables.NoiseRoles = append(newOpts.tables.NoiseRoles[:0:0], o.tables.NoiseRoles...)
	}

	return newOpts
}

// tablesConfig returns the reconstruction config with the logger applied.
func (o Options) tablesConfig() tables.Config {
	cfg := o.tables
	cfg.Logger = o.logger
	return cfg
}
