package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/hedger/strategy"
)

var presetsCmd = &cobra.Command{
	Use:   "presets [name]",
	Short: "List strategy templates or print one as YAML",
	Long: `Without arguments, list the built-in strategy templates. With a name,
print the template's legs as YAML ready to paste into a config file.

Examples:
  hedger presets
  hedger presets seagull`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		p, ok := strategy.LookupPreset(args[0])
		if !ok {
			return fmt.Errorf("unknown preset %q", args[0])
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any{"strategy": map[string]any{"name": p.Name, "legs": p.Legs}}); err != nil {
			return err
		}
		return enc.Close()
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLEGS\tDESCRIPTION")
	for _, p := range strategy.Presets() {
		fmt.Fprintf(w, "%s\t%d\t%s\n", p.Name, len(p.Legs), p.Description)
	}
	return w.Flush()
}
