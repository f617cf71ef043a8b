package tidy

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/tidycsv/pkg/table"
)

var (
	entityPattern = regexp.MustCompile(`&[a-zA-Z]+;|&#\d+;`)

	// tagPattern also matches entity-encoded tags such as "&lt;b&gt;",
	// which become tags once entities are decoded.
	tagPattern = regexp.MustCompile(`<[^>]+>|&lt;/?[a-zA-Z][^&]*?&gt;`)
)

// ColumnStats compares a column before and after cleaning.
type ColumnStats struct {
	TotalRows         int     `json:"total_rows" yaml:"total_rows"`
	EmptyOriginal     int     `json:"empty_original" yaml:"empty_original"`
	EmptyCleaned      int     `json:"empty_cleaned" yaml:"empty_cleaned"`
	AvgLengthOriginal float64 `json:"avg_length_original" yaml:"avg_length_original"`
	AvgLengthCleaned  float64 `json:"avg_length_cleaned" yaml:"avg_length_cleaned"`

	// HTMLEntitiesFound and HTMLTagsFound count original rows with at
	// least one match, not total matches.
	HTMLEntitiesFound int `json:"html_entities_found" yaml:"html_entities_found"`
	HTMLTagsFound     int `json:"html_tags_found" yaml:"html_tags_found"`
}

// ComputeStats scans the original and cleaned values of a column once.
// Lengths are counted in characters; missing values have length 0 and
// count as empty. The slices must have equal length.
func ComputeStats(original, cleaned []table.Value) (ColumnStats, error) {
	if len(original) != len(cleaned) {
		return ColumnStats{}, fmt.Errorf("column length mismatch: %d original values, %d cleaned", len(original), len(cleaned))
	}

	s := ColumnStats{TotalRows: len(original)}
	if s.TotalRows == 0 {
		return s, nil
	}

	var lenOriginal, lenCleaned int
	for i := range original {
		before, after := original[i], cleaned[i]

		if before.IsEmpty() {
			s.EmptyOriginal++
		} else {
			text := before.String()
			lenOriginal += utf8.RuneCountInString(text)
			if strings.Contains(text, "&") && entityPattern.MatchString(text) {
				s.HTMLEntitiesFound++
			}
			if tagPattern.MatchString(text) {
				s.HTMLTagsFound++
			}
		}

		if after.IsEmpty() {
			s.EmptyCleaned++
		} else {
			lenCleaned += utf8.RuneCountInString(after.String())
		}
	}

	s.AvgLengthOriginal = float64(lenOriginal) / float64(s.TotalRows)
	s.AvgLengthCleaned = float64(lenCleaned) / float64(s.TotalRows)
	return s, nil
}

// ReductionPercent returns the percentage reduction in average length.
// It is 0 when the original average is 0 and negative when cleaning made
// values longer.
func (s ColumnStats) ReductionPercent() float64 {
	if s.AvgLengthOriginal == 0 {
		return 0
	}
	return (s.AvgLengthOriginal - s.AvgLengthCleaned) / s.AvgLengthOriginal * 100
}

// String returns a human-readable summary of the stats.
func (s ColumnStats) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rows: %s (empty %s -> %s)\n",
		humanize.Comma(int64(s.TotalRows)),
		humanize.Comma(int64(s.EmptyOriginal)),
		humanize.Comma(int64(s.EmptyCleaned))))
	sb.WriteString(fmt.Sprintf("Avg length: %.1f -> %.1f chars (%.1f%% reduction)\n",
		s.AvgLengthOriginal, s.AvgLengthCleaned, s.ReductionPercent()))
	sb.WriteString(fmt.Sprintf("Rows with HTML entities: %s, with tags: %s\n",
		humanize.Comma(int64(s.HTMLEntitiesFound)),
		humanize.Comma(int64(s.HTMLTagsFound))))
	return sb.String()
}
