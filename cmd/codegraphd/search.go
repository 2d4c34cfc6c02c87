package main

import (
	"context"

	"github.com/spf13/cobra"
)

var searchSymbolsFlags = &searchFlags{}
var searchReferencesFlags = &searchFlags{}
var searchCallsFlags = &searchFlags{}

var searchSymbolsCmd = &cobra.Command{
	Use:   "symbols <db> [query]",
	Short: "Search symbols",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSearchSymbols,
}

var searchReferencesCmd = &cobra.Command{
	Use:   "references <db> [query]",
	Short: "Search references",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSearchReferences,
}

var searchCallsCmd = &cobra.Command{
	Use:   "calls <db> [query]",
	Short: "Search calls",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSearchCalls,
}

func init() {
	registerSearchFlags(searchSymbolsCmd, searchSymbolsFlags)
	registerSearchFlags(searchReferencesCmd, searchReferencesFlags)
	registerSearchFlags(searchCallsCmd, searchCallsFlags)

	searchSymbolsCmd.Flags().StringVar(&flagAlgorithm, "algorithm", "", "run a graph algorithm (reachability|dead_code|scc|cycle_members|backward_slice|forward_slice|paths) and filter by its result SymbolSet")
	searchSymbolsCmd.Flags().StringVar(&flagAlgorithmRoot, "algorithm-root", "", "algorithm root: a SymbolId, or a name to resolve with --algorithm-fqn-hint")
	searchSymbolsCmd.Flags().StringVar(&flagAlgorithmFQNHint, "algorithm-fqn-hint", "", "FQN hint used to resolve --algorithm-root when it is a name, not a SymbolId")
	searchSymbolsCmd.Flags().StringVar(&flagAlgorithmTarget, "algorithm-target", "", "second endpoint, for slicing/path-enumeration algorithms")
	searchSymbolsCmd.Flags().IntVar(&flagAlgorithmMaxDepth, "algorithm-max-depth", 0, "bound for the paths algorithm (0 uses algobridge.DefaultMaxDepth)")
	searchSymbolsCmd.Flags().IntVar(&flagAlgorithmMaxPaths, "algorithm-max-paths", 0, "bound for the paths algorithm (0 uses algobridge.DefaultMaxPaths)")
}

func queryArg(args []string) string {
	if len(args) < 2 {
		return ""
	}
	return args[1]
}

func runSearchSymbols(cmd *cobra.Command, args []string) error {
	const command = "search symbols"
	ctx := context.Background()

	b, err := openBackend(args[0])
	if err != nil {
		return outputError(command, err)
	}
	defer b.Close()

	opts := searchSymbolsFlags.buildOptions(queryArg(args))
	algoSet, err := algorithmSymbolSet(ctx)
	if err != nil {
		return outputError(command, err)
	}
	opts.AlgorithmSymbolSet = algoSet

	resp, err := b.SearchSymbols(ctx, opts)
	if err != nil {
		return outputError(command, err)
	}
	return outputResult(resp)
}

func runSearchReferences(cmd *cobra.Command, args []string) error {
	const command = "search references"
	b, err := openBackend(args[0])
	if err != nil {
		return outputError(command, err)
	}
	defer b.Close()

	opts := searchReferencesFlags.buildOptions(queryArg(args))
	resp, err := b.SearchReferences(context.Background(), opts)
	if err != nil {
		return outputError(command, err)
	}
	return outputResult(resp)
}

func runSearchCalls(cmd *cobra.Command, args []string) error {
	const command = "search calls"
	b, err := openBackend(args[0])
	if err != nil {
		return outputError(command, err)
	}
	defer b.Close()

	opts := searchCallsFlags.buildOptions(queryArg(args))
	resp, err := b.SearchCalls(context.Background(), opts)
	if err != nil {
		return outputError(command, err)
	}
	return outputResult(resp)
}
