package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tidycsv/internal/logger"
	"github.com/jmylchreest/tidycsv/internal/output"
	"github.com/jmylchreest/tidycsv/pkg/cleaner/tidy"
	"github.com/jmylchreest/tidycsv/pkg/tidycsv"
)

// stageFlags maps clean flags to the Config fields they set.
var stageFlags = map[string]func(*tidy.Config, bool){
	"decode-entities":      func(c *tidy.Config, v bool) { c.DecodeEntities = v },
	"strip-tags":           func(c *tidy.Config, v bool) { c.StripTags = v },
	"preserve-formatting":  func(c *tidy.Config, v bool) { c.PreserveFormatting = v },
	"normalize-whitespace": func(c *tidy.Config, v bool) { c.NormalizeWhitespace = v },
	"remove-urls":          func(c *tidy.Config, v bool) { c.RemoveURLs = v },
	"remove-emails":        func(c *tidy.Config, v bool) { c.RemoveEmails = v },
}

var cleanCmd = &cobra.Command{
	Use:   "clean FILE",
	Short: "Clean HTML-encoded text in selected columns",
	Long: `Clean one or more text columns. Each cell passes through the enabled
stages in a fixed order:

  1. decode HTML entities       (&amp;lt;b&amp;gt; -> <b>)
  2. strip tags                 (optionally keeping bold/italic as **x** / *x*)
  3. remove http(s) URLs
  4. remove email addresses
  5. normalize whitespace

Stage defaults come from --preset (default, minimal, markdown, aggressive)
or a --profile file (YAML, JSON or TOML), then the "clean" section of the
config file, then any stage flags given on the command line.

Cleaned values go to <column><suffix> when --keep-original is set and
replace the column otherwise. Per-column statistics are printed to stderr
or written to --stats-file.

Examples:
  tidycsv clean reviews.csv --columns body -o clean.csv
  tidycsv clean reviews.csv --columns title,body --keep-original --remove-urls
  tidycsv clean export.csv.gz --columns body --preset markdown -o auto
  tidycsv clean reviews.csv --columns body --stats-format json --stats-file stats.json -o out.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()

	// Selection
	flags.StringSliceP("columns", "c", nil, "columns to clean (comma-separated or repeated; required)")

	// Stages
	flags.String("preset", "default", "stage preset: default, minimal, markdown, aggressive")
	flags.String("profile", "", "load stage settings from a YAML, JSON or TOML file")
	flags.Bool("decode-entities", true, "decode HTML entities")
	flags.Bool("strip-tags", true, "remove HTML tags")
	flags.Bool("preserve-formatting", false, "keep bold/italic as markdown when stripping tags")
	flags.Bool("normalize-whitespace", true, "collapse whitespace runs and trim")
	flags.Bool("remove-urls", false, "remove http(s) URLs")
	flags.Bool("remove-emails", false, "remove email addresses")
	flags.String("suffix", tidy.DefaultSuffix, "suffix for cleaned column names")
	flags.Bool("keep-original", false, "keep original columns and add cleaned copies")

	// Performance
	flags.IntP("workers", "w", 0, "goroutines per column (default: number of CPUs)")
	flags.Int("cache", 0, "memoize up to N cleaned values per column (0=off)")

	// Output
	flags.StringP("output", "o", "", "output file (default: stdout; .xlsx writes a workbook; auto derives a name)")
	flags.String("stats-format", "text", "statistics format: text, json, jsonl, yaml")
	flags.String("stats-file", "", "write statistics to this file (default: stderr)")

	_ = cleanCmd.MarkFlagRequired("columns")

	_ = viper.BindPFlag("clean.workers", flags.Lookup("workers"))
	_ = viper.BindPFlag("clean.cache", flags.Lookup("cache"))
	_ = viper.BindPFlag("clean.keep_original", flags.Lookup("keep-original"))
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runID := uuid.NewString()
	log := logger.With("run_id", runID)

	rawColumns, _ := cmd.Flags().GetStringSlice("columns")
	columns := selectedColumns(rawColumns)

	cfg, err := resolveCleanConfig(cmd)
	if err != nil {
		return err
	}
	log.Debug("cleaning config", "config", fmt.Sprintf("%+v", cfg), "pipeline", tidy.New(cfg).Name())

	statsFormat, err := output.ParseFormat(flagString(cmd, "stats-format"))
	if err != nil {
		return err
	}

	tbl, err := loadTable(args[0])
	if err != nil {
		return err
	}

	opts := []tidycsv.Option{
		tidycsv.WithLogger(log),
		tidycsv.WithCacheSize(viper.GetInt("clean.cache")),
	}
	if n := viper.GetInt("clean.workers"); n > 0 {
		opts = append(opts, tidycsv.WithWorkers(n))
	}
	progress := newProgressPrinter(os.Stderr)
	opts = append(opts, tidycsv.WithProgress(progress.Func()))

	start := time.Now()
	cleaned, stats, err := tidycsv.New(opts...).ProcessColumns(ctx, tbl, columns, cfg, viper.GetBool("clean.keep_original"))
	progress.done()
	if err != nil {
		return err
	}
	logInfo("Cleaned %d column(s) in %s.", len(columns), time.Since(start).Round(time.Millisecond))

	if err := writeStats(runID, columns, stats, statsFormat, flagString(cmd, "stats-file")); err != nil {
		return err
	}

	return writeTable(cleaned, outputPath(flagString(cmd, "output"), args[0], "cleaned"))
}

// selectedColumns trims names, drops blanks and removes repeats,
// keeping first-seen order.
func selectedColumns(raw []string) []string {
	names := pie.Filter(pie.Map(raw, strings.TrimSpace), func(s string) bool { return s != "" })
	var out []string
	for _, n := range names {
		if !pie.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

// resolveCleanConfig layers preset or profile, the config file's "clean"
// section and explicitly set stage flags.
func resolveCleanConfig(cmd *cobra.Command) (tidy.Config, error) {
	var (
		cfg tidy.Config
		err error
	)
	if profile := flagString(cmd, "profile"); profile != "" {
		cfg, err = tidy.LoadProfile(profile)
	} else {
		preset := flagString(cmd, "preset")
		if !cmd.Flags().Changed("preset") && viper.IsSet("clean.preset") {
			preset = viper.GetString("clean.preset")
		}
		cfg, err = tidy.Preset(preset)
	}
	if err != nil {
		return tidy.Config{}, err
	}

	if sub := viper.Sub("clean"); sub != nil {
		if err := sub.Unmarshal(&cfg); err != nil {
			return tidy.Config{}, fmt.Errorf("invalid clean config: %w", err)
		}
	}

	flags := cmd.Flags()
	for name, set := range stageFlags {
		if flags.Changed(name) {
			v, _ := flags.GetBool(name)
			set(&cfg, v)
		}
	}
	if flags.Changed("suffix") {
		cfg.Suffix = flagString(cmd, "suffix")
	}

	// The suffix only names derived columns, so it is checked when they are kept.
	if viper.GetBool("clean.keep_original") {
		if err := cfg.Validate(); err != nil {
			return tidy.Config{}, err
		}
	}
	return cfg, nil
}

// writeStats reports per-column statistics to path, or to stderr when path
// is empty and quiet mode is off.
func writeStats(runID string, columns []string, stats map[string]tidy.ColumnStats, format output.Format, path string) error {
	dest := os.Stderr
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create stats file: %w", err)
		}
		defer func() { _ = f.Close() }()
		dest = f
	} else if viper.GetBool("quiet") {
		return nil
	}

	w, err := output.NewWriter(dest, format)
	if err != nil {
		return err
	}
	if err := w.WriteAll(output.NewStatsRecords(runID, columns, stats)); err != nil {
		return err
	}
	return w.Close()
}
