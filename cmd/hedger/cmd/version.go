package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the hedger CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "hedger version %s\n", version)
		fmt.Fprintln(out, "FX hedging strategy pricer and backtester")
		fmt.Fprintln(out, "https://github.com/rustyeddy/hedger")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
