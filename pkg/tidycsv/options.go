// Package tidycsv provides the public API for cleaning HTML-encoded text
// columns of a table.
package tidycsv

import (
	"log/slog"
	"runtime"
)

// ProgressFunc receives a completion fraction in [0, 1] and a label for
// the current step. Fractions never decrease during a run and 1.0 is
// only reported when the run succeeds.
type ProgressFunc func(fraction float64, label string)

// minChunk is the fewest rows handed to one worker.
const minChunk = 256

// Config holds Processor configuration.
type Config struct {
	// Workers is the number of goroutines cleaning rows of one column.
	// Values below 2 clean sequentially.
	Workers int

	// CacheSize memoizes cleaned values per column when positive.
	CacheSize int

	// Progress receives progress updates. Nil disables reporting.
	Progress ProgressFunc

	// Logger receives run diagnostics. Nil uses the package logger.
	Logger *slog.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Option configures a Processor.
type Option func(*Config)

// WithWorkers sets the number of goroutines cleaning each column.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// WithCacheSize memoizes cleaned values in an LRU of n entries per column.
func WithCacheSize(n int) Option {
	return func(c *Config) {
		c.CacheSize = n
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Config) {
		c.Progress = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
