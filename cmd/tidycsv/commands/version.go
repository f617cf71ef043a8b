package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tidycsv/internal/output"
	"github.com/jmylchreest/tidycsv/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatStr, _ := cmd.Flags().GetString("format")
		if formatStr == "" || formatStr == "text" {
			fmt.Println(version.Full())
			return nil
		}
		format, err := output.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		w, err := output.NewWriter(os.Stdout, format)
		if err != nil {
			return err
		}
		if err := w.Write(version.Get()); err != nil {
			return err
		}
		return w.Close()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().StringP("format", "f", "text", "output format: text, json, yaml")
	rootCmd.Version = version.String()
}
