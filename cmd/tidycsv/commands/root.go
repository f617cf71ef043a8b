// Package commands implements the CLI commands for tidycsv.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tidycsv/internal/logger"
	"github.com/jmylchreest/tidycsv/pkg/table"
)

var rootCmd = &cobra.Command{
	Use:   "tidycsv",
	Short: "Inspect, filter and clean HTML-encoded text in CSV files",
	Long: `tidycsv loads a delimited file, lets you inspect and filter its rows,
and cleans HTML-encoded text columns: decoding entities, stripping tags,
removing URLs and emails, and normalizing whitespace.

Input may be CSV/TSV text in UTF-8, Latin-1 or Windows-1252, optionally
gzip/bzip2/xz/zstd compressed, or an XLSX workbook.

Examples:
  # Show row count and column types
  tidycsv inspect products.csv

  # Keep rows whose category is "books"
  tidycsv filter products.csv --column category --value books -o books.csv

  # Clean two columns, keeping the originals next to the cleaned copies
  tidycsv clean products.csv --columns title,description --keep-original -o clean.csv`,
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.tidycsv.yaml or ./.tidycsv.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "suppress progress output")
	flags.Bool("log-json", false, "log as JSON")
	flags.String("log-level", "", "log level: debug, info, warn, error (overrides --debug)")

	// Input flags
	flags.StringP("delimiter", "d", ",", "field delimiter: comma, semicolon, tab, pipe")
	flags.StringP("encoding", "e", "utf-8", "input encoding: utf-8, latin-1, windows-1252, auto")
	flags.String("fallback-encoding", "latin-1", "encoding retried once when decoding fails (empty disables)")
	flags.Bool("no-header", false, "treat the first row as data")
	flags.String("max-size", "200MB", "max input size after decompression (e.g., 50MB, 0=unlimited)")

	for _, name := range []string{"config", "debug", "quiet", "log-json", "log-level", "delimiter", "encoding", "fallback-encoding", "no-header", "max-size"} {
		_ = viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}
}

func initConfig() {
	// A .env in the working directory may set TIDYCSV_* variables.
	_ = godotenv.Load()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".tidycsv")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("TIDYCSV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

func initLogging(cmd *cobra.Command, args []string) error {
	if err := logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
		Level: viper.GetString("log_level"),
	}); err != nil {
		return err
	}
	if f := viper.ConfigFileUsed(); f != "" {
		logger.Debug("config loaded", "file", f)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logError("%v", err)
		return err
	}
	return nil
}

// loadOptions builds table load options from global flags and config.
func loadOptions() (table.LoadOptions, error) {
	opts := table.DefaultLoadOptions()

	delim, err := table.ParseDelimiter(viper.GetString("delimiter"))
	if err != nil {
		return opts, err
	}
	opts.Delimiter = delim

	if opts.Encoding, err = table.ParseEncoding(viper.GetString("encoding")); err != nil {
		return opts, err
	}
	opts.Fallback = ""
	if fb := viper.GetString("fallback_encoding"); fb != "" {
		if opts.Fallback, err = table.ParseEncoding(fb); err != nil {
			return opts, err
		}
	}

	opts.NoHeader = viper.GetBool("no_header")

	maxSize := strings.TrimSpace(viper.GetString("max_size"))
	if maxSize != "" && maxSize != "0" {
		n, err := humanize.ParseBytes(maxSize)
		if err != nil {
			return opts, fmt.Errorf("invalid max-size %q: %w", maxSize, err)
		}
		opts.MaxSize = int64(n)
	}

	opts.Logger = logger.With("component", "table")
	return opts, nil
}

// loadTable reads path ("-" for stdin) and parses it into a table.
func loadTable(path string) (*table.Table, error) {
	opts, err := loadOptions()
	if err != nil {
		return nil, err
	}

	var data []byte
	if path == "-" {
		data, err = readLimited(os.Stdin, opts.MaxSize)
	} else {
		var f *os.File
		if f, err = os.Open(path); err == nil {
			data, err = readLimited(f, opts.MaxSize)
			_ = f.Close()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	logger.Debug("input read", "source", path, "size", humanize.Bytes(uint64(len(data))))
	tbl, err := table.Load(data, opts)
	if err != nil {
		return nil, err
	}
	logInfo("Loaded %s rows and %d columns from %s.",
		humanize.Comma(int64(tbl.RowCount())), tbl.ColumnCount(), displayName(path))
	return tbl, nil
}

// readLimited reads r, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: input exceeds %s", table.ErrInputTooLarge, humanize.Bytes(uint64(limit)))
	}
	return data, nil
}

// writeTable serializes tbl to out. An empty out writes CSV to stdout;
// an out ending in .xlsx writes a workbook.
func writeTable(tbl *table.Table, out string) error {
	opts := table.WriteOptions{}
	delim, err := table.ParseDelimiter(viper.GetString("delimiter"))
	if err != nil {
		return err
	}
	opts.Delimiter = delim
	if strings.EqualFold(filepath.Ext(out), ".xlsx") {
		opts.Format = table.FormatXLSX
	}

	if out == "" || out == "-" {
		return table.Write(os.Stdout, tbl, opts)
	}

	data, err := table.Marshal(tbl, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logInfo("Wrote %s rows to %s (%s).",
		humanize.Comma(int64(tbl.RowCount())), out, humanize.Bytes(uint64(len(data))))
	return nil
}

// outputPath resolves the -o flag. "auto" picks a name derived from source.
func outputPath(out, source, action string) string {
	if out != "auto" {
		return out
	}
	format := table.FormatCSV
	if strings.EqualFold(filepath.Ext(source), ".xlsx") {
		format = table.FormatXLSX
	}
	if source == "-" {
		source = ""
	}
	return table.SuggestedName(source, action, format)
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
