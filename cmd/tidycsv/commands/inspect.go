package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tidycsv/internal/output"
	"github.com/jmylchreest/tidycsv/pkg/table"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Show rows, columns and inferred column types",
	Long: `Load a file and describe its columns: inferred type (text, numeric,
categorical), non-null count and distinct value count.

Use "-" as FILE to read stdin.

Examples:
  tidycsv inspect products.csv
  tidycsv inspect products.tsv -d tab --format json
  tidycsv inspect products.csv --unique category
  tidycsv inspect products.csv --range price`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	flags := inspectCmd.Flags()
	flags.StringP("format", "f", "text", "output format: text, json, jsonl, yaml")
	flags.String("unique", "", "list the distinct values of this column")
	flags.String("range", "", "show the numeric range of this column")
}

func runInspect(cmd *cobra.Command, args []string) error {
	formatStr, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	tbl, err := loadTable(args[0])
	if err != nil {
		return err
	}

	w, err := output.NewWriter(os.Stdout, format)
	if err != nil {
		return err
	}

	switch unique, rangeCol := flagString(cmd, "unique"), flagString(cmd, "range"); {
	case unique != "":
		values, err := table.Unique(tbl, unique)
		if err != nil {
			return err
		}
		records := make([]any, len(values))
		for i, v := range values {
			records[i] = v
		}
		if err := w.WriteAll(records); err != nil {
			return err
		}
	case rangeCol != "":
		lo, hi, err := table.Range(tbl, rangeCol)
		if err != nil {
			return err
		}
		if format == output.FormatText {
			if err := w.Write(fmt.Sprintf("%s: %g to %g", rangeCol, lo, hi)); err != nil {
				return err
			}
		} else if err := w.Write(map[string]any{"column": rangeCol, "min": lo, "max": hi}); err != nil {
			return err
		}
	default:
		if err := w.WriteAll(output.NewColumnRecords(table.Describe(tbl))); err != nil {
			return err
		}
	}

	return w.Close()
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
