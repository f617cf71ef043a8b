package output

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/tidycsv/pkg/cleaner/tidy"
	"github.com/jmylchreest/tidycsv/pkg/table"
)

// StatsRecord is the report line for one cleaned column.
type StatsRecord struct {
	RunID  string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Column string `json:"column" yaml:"column"`

	tidy.ColumnStats `yaml:",inline"`

	ReductionPercent float64 `json:"reduction_percent" yaml:"reduction_percent"`
}

// NewStatsRecords builds records for columns in the given order. Columns
// without stats are skipped.
func NewStatsRecords(runID string, columns []string, stats map[string]tidy.ColumnStats) []any {
	records := make([]any, 0, len(columns))
	for _, c := range columns {
		s, ok := stats[c]
		if !ok {
			continue
		}
		records = append(records, StatsRecord{
			RunID:            runID,
			Column:           c,
			ColumnStats:      s,
			ReductionPercent: math.Round(s.ReductionPercent()*100) / 100,
		})
	}
	return records
}

// Header implements Row.
func (StatsRecord) Header() []string {
	return []string{"COLUMN", "ROWS", "EMPTY BEFORE", "EMPTY AFTER", "AVG LEN BEFORE", "AVG LEN AFTER", "REDUCTION", "ENTITY ROWS", "TAG ROWS"}
}

// Cells implements Row.
func (r StatsRecord) Cells() []string {
	return []string{
		r.Column,
		humanize.Comma(int64(r.TotalRows)),
		humanize.Comma(int64(r.EmptyOriginal)),
		humanize.Comma(int64(r.EmptyCleaned)),
		fmt.Sprintf("%.1f", r.AvgLengthOriginal),
		fmt.Sprintf("%.1f", r.AvgLengthCleaned),
		fmt.Sprintf("%.1f%%", r.ReductionPercent),
		humanize.Comma(int64(r.HTMLEntitiesFound)),
		humanize.Comma(int64(r.HTMLTagsFound)),
	}
}

// ColumnRecord is the report line for one column of an inspected table.
type ColumnRecord struct {
	table.ColumnInfo `yaml:",inline"`
}

// NewColumnRecords wraps column summaries as records.
func NewColumnRecords(infos []table.ColumnInfo) []any {
	records := make([]any, len(infos))
	for i, info := range infos {
		records[i] = ColumnRecord{ColumnInfo: info}
	}
	return records
}

// Header implements Row.
func (ColumnRecord) Header() []string {
	return []string{"COLUMN", "TYPE", "NON-NULL", "UNIQUE"}
}

// Cells implements Row.
func (r ColumnRecord) Cells() []string {
	return []string{
		r.Name,
		string(r.Type),
		humanize.Comma(int64(r.NonNull)),
		humanize.Comma(int64(r.Unique)),
	}
}

// PresetRecord is the report line for one preset in a comparison run.
type PresetRecord struct {
	Preset           string  `json:"preset" yaml:"preset"`
	Pipeline         string  `json:"pipeline" yaml:"pipeline"`
	Column           string  `json:"column" yaml:"column"`
	AvgLengthCleaned float64 `json:"avg_length_cleaned" yaml:"avg_length_cleaned"`
	EmptyCleaned     int     `json:"empty_cleaned" yaml:"empty_cleaned"`
	ReductionPercent float64 `json:"reduction_percent" yaml:"reduction_percent"`
	DurationMs       int64   `json:"duration_ms" yaml:"duration_ms"`
}

// Header implements Row.
func (PresetRecord) Header() []string {
	return []string{"PRESET", "PIPELINE", "AVG LEN", "EMPTY", "REDUCTION", "TIME"}
}

// Cells implements Row.
func (r PresetRecord) Cells() []string {
	return []string{
		r.Preset,
		r.Pipeline,
		fmt.Sprintf("%.1f", r.AvgLengthCleaned),
		humanize.Comma(int64(r.EmptyCleaned)),
		fmt.Sprintf("%.1f%%", r.ReductionPercent),
		fmt.Sprintf("%dms", r.DurationMs),
	}
}
