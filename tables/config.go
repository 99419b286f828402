package tables

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tsawler/stitch/model"
)

var (
	// ErrColumnMismatch is returned when two linear fragments cannot be the
	// same logical table because their column counts differ.
	ErrColumnMismatch = errors.New("different count of columns")

	// ErrPartition is returned when merged and standalone tables do not
	// cover every valid table index exactly once.
	ErrPartition = errors.New("inconsistent table partition")

	// ErrNoNestedMarkup is returned when no nested markup can be found for
	// a table.
	ErrNoNestedMarkup = errors.New("no nested markup table")
)

// Config holds reconstruction configuration
type Config struct {
	// Maximum distance in characters between a title and the start of the
	// table it names
	TitleProximity int

	// Maximum number of characters between the end of one fragment and the
	// start of the next for the pair to be merged
	MaxSeparation int

	// Cell border symbol of linear markup
	BorderSymbol string

	// Cell content of the linear header separator row
	HeaderSeparatorCell string

	// Paragraph roles that do not count as content between two fragments
	NoiseRoles []model.Role

	// Logger receives per-table diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		TitleProximity:      120,
		MaxSeparation:       3200,
		BorderSymbol:        "|",
		HeaderSeparatorCell: " - ",
		NoiseRoles:          model.LayoutNoiseRoles(),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.TitleProximity < 0 {
		return fmt.Errorf("title proximity must not be negative, got %d", c.TitleProximity)
	}
	if c.MaxSeparation < 0 {
		return fmt.Errorf("max separation must not be negative, got %d", c.MaxSeparation)
	}
	if c.BorderSymbol == "" {
		return errors.New("border symbol must not be empty")
	}
	if c.HeaderSeparatorCell == "" {
		return errors.New("header separator cell must not be empty")
	}
	return nil
}

func (c Config) isNoise(role model.Role) bool {
	for _, r := range c.NoiseRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

// Warning describes a non-fatal problem with one table.
type Warning struct {
	Table   int    `json:"table" yaml:"table"`
	Message string `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	if w.Table < 0 {
		return w.Message
	}
	return fmt.Sprintf("table %d: %s", w.Table, w.Message)
}
