package main

import (
	"context"

	"github.com/spf13/cobra"
)

var completeLimit int

var completeCmd = &cobra.Command{
	Use:   "complete <db> <prefix>",
	Short: "Complete a partial fully-qualified name",
	Long:  "Requires a native-format database; a relational database reports requires_native_backend.",
	Args:  cobra.ExactArgs(2),
	RunE:  runComplete,
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <db> <fqn>",
	Short: "Resolve a fully-qualified name to its symbol",
	Long:  "Requires a native-format database; a relational database reports requires_native_backend.",
	Args:  cobra.ExactArgs(2),
	RunE:  runLookup,
}

var labelsCmd = &cobra.Command{
	Use:   "labels <db> <name>",
	Short: "Search symbols tagged with a label",
	Long:  "Requires a native-format database; a relational database reports requires_native_backend.",
	Args:  cobra.ExactArgs(2),
	RunE:  runLabels,
}

func init() {
	completeCmd.Flags().IntVar(&completeLimit, "limit", 20, "maximum completions returned")
}

func runComplete(cmd *cobra.Command, args []string) error {
	const command = "complete"
	b, err := openBackend(args[0])
	if err != nil {
		return outputError(command, err)
	}
	defer b.Close()

	resp, err := b.Complete(context.Background(), args[1], completeLimit)
	if err != nil {
		return outputError(command, err)
	}
	return outputResult(resp)
}

func runLookup(cmd *cobra.Command, args []string) error {
	const command = "lookup"
	b, err := openBackend(args[0])
	if err != nil {
		return outputError(command, err)
	}
	defer b.Close()

	resp, err := b.Lookup(context.Background(), args[1])
	if err != nil {
		return outputError(command, err)
	}
	return outputResult(resp)
}

func runLabels(cmd *cobra.Command, args []string) error {
	const command = "labels"
	b, err := openBackend(args[0])
	if err != nil {
		return outputError(command, err)
	}
	defer b.Close()

	resp, err := b.SearchByLabel(context.Background(), args[1])
	if err != nil {
		return outputError(command, err)
	}
	return outputResult(resp)
}
