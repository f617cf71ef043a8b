package commands

import (
	"context"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tidycsv/internal/logger"
	"github.com/jmylchreest/tidycsv/internal/output"
	"github.com/jmylchreest/tidycsv/pkg/cleaner/tidy"
	"github.com/jmylchreest/tidycsv/pkg/tidycsv"
)

var compareCmd = &cobra.Command{
	Use:   "compare FILE",
	Short: "Compare cleaning presets on one column",
	Long: `Run every cleaning preset over one column and report how much each
shortens the text, without writing any output table.

Examples:
  tidycsv compare reviews.csv --column body
  tidycsv compare reviews.csv --column body --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	flags := compareCmd.Flags()
	flags.StringP("column", "c", "", "column to clean (required)")
	flags.StringP("format", "f", "text", "output format: text, json, jsonl, yaml")

	_ = compareCmd.MarkFlagRequired("column")
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	format, err := output.ParseFormat(flagString(cmd, "format"))
	if err != nil {
		return err
	}
	column := flagString(cmd, "column")

	tbl, err := loadTable(args[0])
	if err != nil {
		return err
	}

	opts := []tidycsv.Option{tidycsv.WithLogger(logger.With("command", "compare"))}
	if n := viper.GetInt("clean.workers"); n > 0 {
		opts = append(opts, tidycsv.WithWorkers(n))
	}
	proc := tidycsv.New(opts...)
	newName := tbl.UniqueName(column + tidy.DefaultSuffix)

	records := make([]any, 0, len(tidy.PresetNames()))
	for _, name := range tidy.PresetNames() {
		cfg, err := tidy.Preset(name)
		if err != nil {
			return err
		}

		start := time.Now()
		_, stats, err := proc.Process(ctx, tbl, column, cfg, newName)
		if err != nil {
			return err
		}
		records = append(records, output.PresetRecord{
			Preset:           name,
			Pipeline:         tidy.New(cfg).Name(),
			Column:           column,
			AvgLengthCleaned: stats.AvgLengthCleaned,
			EmptyCleaned:     stats.EmptyCleaned,
			ReductionPercent: math.Round(stats.ReductionPercent()*100) / 100,
			DurationMs:       time.Since(start).Milliseconds(),
		})
	}

	w, err := output.NewWriter(os.Stdout, format)
	if err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return w.Close()
}
