package commands

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tidycsv/internal/logger"
	"github.com/jmylchreest/tidycsv/pkg/table"
)

var filterCmd = &cobra.Command{
	Use:   "filter FILE",
	Short: "Keep rows whose column matches a value",
	Long: `Filter rows by one column. How --value is interpreted depends on the
column's inferred type:

  numeric       inclusive range "min:max" (either side may be omitted),
                or a single number for an exact match
  categorical   exact value
  text          case-insensitive substring

Row order is preserved. Use "-o auto" to write <name>_filtered.csv.

Examples:
  tidycsv filter products.csv --column price --value 10:50 -o mid.csv
  tidycsv filter products.csv --column category --value books
  tidycsv filter reviews.csv --column body --value "refund" -o auto`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	flags := filterCmd.Flags()
	flags.StringP("column", "c", "", "column to filter on (required)")
	flags.StringP("value", "v", "", "value, range or substring to match")
	flags.StringP("output", "o", "", "output file (default: stdout; .xlsx writes a workbook; auto derives a name)")

	_ = filterCmd.MarkFlagRequired("column")
}

func runFilter(cmd *cobra.Command, args []string) error {
	column := flagString(cmd, "column")
	value := flagString(cmd, "value")

	tbl, err := loadTable(args[0])
	if err != nil {
		return err
	}

	col, err := tbl.Column(column)
	if err != nil {
		return err
	}
	pred, err := table.PredicateFor(col, value)
	if err != nil {
		return err
	}
	logger.Debug("filtering", "column", column, "type", col.Type, "predicate", pred.String())

	filtered, err := table.Filter(tbl, column, pred)
	if err != nil {
		return err
	}
	logInfo("Showing %s of %s rows (%s %s).",
		humanize.Comma(int64(filtered.RowCount())), humanize.Comma(int64(tbl.RowCount())), column, pred)

	return writeTable(filtered, outputPath(flagString(cmd, "output"), args[0], "filtered"))
}
