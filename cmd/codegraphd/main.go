// Command codegraphd is a thin cobra CLI exercising every codegraph query
// operation end to end, mirroring the teacher's cmd/canopy layout: one
// subcommand per operation, --format json|text on the root command, the
// database path taken positionally per subcommand (spec's one required
// input).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagFormat   string
	flagAlgoBin  string
	flagAlgoVer  string
	flagTiming   bool
	errorHandled bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "codegraphd",
	Short:         "Deterministic, machine-parseable queries over a pre-built codegraph database",
	Long:          "codegraphd is a read-only query engine over a codegraph database: symbols, references, calls, AST nodes, and metrics, produced by an external indexer.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")
	rootCmd.PersistentFlags().StringVar(&flagAlgoBin, "algo-bin", "", "path to the external graph-algorithm tool (enables ast/find_ast on relational databases)")
	rootCmd.PersistentFlags().StringVar(&flagAlgoVer, "algo-version", "", "required version string the algorithm tool must report")
	rootCmd.PersistentFlags().BoolVar(&flagTiming, "timing", false, "attach phase-duration timing to the response")

	searchCmd.AddCommand(searchSymbolsCmd)
	searchCmd.AddCommand(searchReferencesCmd)
	searchCmd.AddCommand(searchCallsCmd)

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(findASTCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(labelsCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search symbols, references, or calls",
}

func validateFormat(format string) error {
	if format != "json" && format != "text" {
		return fmt.Errorf("invalid --format %q: must be json or text", format)
	}
	return nil
}
