package tidycsv

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/tidycsv/internal/logger"
	"github.com/jmylchreest/tidycsv/pkg/cleaner/tidy"
	"github.com/jmylchreest/tidycsv/pkg/table"
)

// Version returns the module version of the tidycsv library.
// Returns "(devel)" when built from source without version info.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}
	return "(unknown)"
}

// Processor cleans text columns of a table with a tidy pipeline.
type Processor struct {
	config Config
	log    *slog.Logger
}

// New creates a Processor.
func New(opts ...Option) *Processor {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.Logger
	if log == nil {
		log = logger.With("component", "processor")
	}
	return &Processor{config: cfg, log: log}
}

// Process cleans column with cfg and appends the result to a copy of tbl
// as newName. tbl is not modified. Cell content never causes an error:
// values that cannot be cleaned become "".
func (p *Processor) Process(ctx context.Context, tbl *table.Table, column string, cfg tidy.Config, newName string) (*table.Table, tidy.ColumnStats, error) {
	col, err := tbl.Column(column)
	if err != nil {
		return nil, tidy.ColumnStats{}, err
	}
	if tbl.HasColumn(newName) {
		return nil, tidy.ColumnStats{}, &table.NameCollisionError{Name: newName}
	}

	cleaned, stats, err := p.cleanColumn(ctx, col, cfg, newName)
	if err != nil {
		return nil, tidy.ColumnStats{}, err
	}

	out, err := tbl.WithColumn(cleaned)
	if err != nil {
		return nil, tidy.ColumnStats{}, err
	}
	return out, stats, nil
}

// ProcessColumns cleans each of columns in order.
//
// With keepOriginal the cleaned values are appended as
// <column><cfg.Suffix>, numbered _2, _3, ... on collision. Without it the
// cleaned values replace the original column at the same position and
// under the same name. Statistics are keyed by the original column name.
// tbl is not modified.
func (p *Processor) ProcessColumns(ctx context.Context, tbl *table.Table, columns []string, cfg tidy.Config, keepOriginal bool) (*table.Table, map[string]tidy.ColumnStats, error) {
	if len(columns) == 0 {
		return nil, nil, &table.EmptySelectionError{Op: "clean"}
	}
	for _, name := range columns {
		if !tbl.HasColumn(name) {
			return nil, nil, &table.ColumnNotFoundError{Column: name}
		}
	}
	if keepOriginal {
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	start := time.Now()
	total := float64(len(columns))
	p.report(0, "Processing "+columns[0])

	out := tbl
	stats := make(map[string]tidy.ColumnStats, len(columns))
	for i, name := range columns {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		var (
			s   tidy.ColumnStats
			err error
		)
		if keepOriginal {
			out, s, err = p.Process(ctx, out, name, cfg, out.UniqueName(name+cfg.Suffix))
		} else {
			out, s, err = p.replace(ctx, out, name, cfg)
		}
		if err != nil {
			return nil, nil, err
		}
		stats[name] = s

		if i+1 < len(columns) {
			p.report(float64(i+1)/total, "Processing "+columns[i+1])
		}
	}

	p.log.Info("columns cleaned",
		"columns", len(columns),
		"rows", tbl.RowCount(),
		"duration", time.Since(start).Round(time.Millisecond))
	p.report(1, "Done")
	return out, stats, nil
}

// replace returns a copy of tbl with column swapped for its cleaned values.
func (p *Processor) replace(ctx context.Context, tbl *table.Table, column string, cfg tidy.Config) (*table.Table, tidy.ColumnStats, error) {
	col, err := tbl.Column(column)
	if err != nil {
		return nil, tidy.ColumnStats{}, err
	}
	cleaned, stats, err := p.cleanColumn(ctx, col, cfg, column)
	if err != nil {
		return nil, tidy.ColumnStats{}, err
	}
	out, err := tbl.ReplaceColumn(column, cleaned)
	if err != nil {
		return nil, tidy.ColumnStats{}, err
	}
	return out, stats, nil
}

// cleanColumn cleans every value of col and computes its statistics.
func (p *Processor) cleanColumn(ctx context.Context, col *table.Column, cfg tidy.Config, name string) (*table.Column, tidy.ColumnStats, error) {
	var opts []tidy.Option
	if p.config.CacheSize > 0 {
		opts = append(opts, tidy.WithCache(p.config.CacheSize))
	}
	pipeline := tidy.New(cfg, opts...)

	values, err := p.cleanValues(ctx, pipeline, col.Values)
	if err != nil {
		return nil, tidy.ColumnStats{}, err
	}

	stats, err := tidy.ComputeStats(col.Values, values)
	if err != nil {
		return nil, tidy.ColumnStats{}, fmt.Errorf("column %q: %w", col.Name, err)
	}

	p.log.Debug("column cleaned",
		"column", col.Name,
		"pipeline", pipeline.Name(),
		"rows", stats.TotalRows,
		"reduction_pct", fmt.Sprintf("%.1f", stats.ReductionPercent()),
		"cache_hit_rate", fmt.Sprintf("%.2f", pipeline.HitRate()))

	return table.NewColumn(name, values), stats, nil
}

// cleanValues cleans values in row order. With more than one worker the
// rows are split into contiguous chunks and each result is written at its
// own index.
func (p *Processor) cleanValues(ctx context.Context, pipeline *tidy.Pipeline, values []table.Value) ([]table.Value, error) {
	out := make([]table.Value, len(values))

	workers := p.config.Workers
	if workers < 2 || len(values) < 2*minChunk {
		for i, v := range values {
			out[i] = table.Text(pipeline.Clean(v))
		}
		return out, ctx.Err()
	}

	chunk := (len(values) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(values); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(values))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				out[i] = table.Text(pipeline.Clean(values[i]))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, ctx.Err()
}

func (p *Processor) report(fraction float64, label string) {
	if p.config.Progress != nil {
		p.config.Progress(fraction, label)
	}
}
