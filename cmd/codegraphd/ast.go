package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	astPosition string
	astLimit    int
)

var astCmd = &cobra.Command{
	Use:   "ast <db> <file>",
	Short: "List AST nodes for a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runAST,
}

var findASTCmd = &cobra.Command{
	Use:   "find-ast <db> <kind>",
	Short: "Find every AST node of a given kind",
	Args:  cobra.ExactArgs(2),
	RunE:  runFindAST,
}

func init() {
	astCmd.Flags().StringVar(&astPosition, "position", "", "byte offset; only nodes whose span contains it are returned")
	astCmd.Flags().IntVar(&astLimit, "limit", 0, "maximum nodes returned (0 means unlimited)")
}

func runAST(cmd *cobra.Command, args []string) error {
	const command = "ast"
	b, err := openBackend(args[0])
	if err != nil {
		return outputError(command, err)
	}
	defer b.Close()

	var position *int
	if astPosition != "" {
		p, perr := strconv.Atoi(astPosition)
		if perr != nil {
			return outputError(command, perr)
		}
		position = &p
	}

	resp, err := b.AST(context.Background(), args[1], position, astLimit)
	if err != nil {
		return outputError(command, err)
	}
	return outputResult(resp)
}

func runFindAST(cmd *cobra.Command, args []string) error {
	const command = "find-ast"
	b, err := openBackend(args[0])
	if err != nil {
		return outputError(command, err)
	}
	defer b.Close()

	resp, err := b.FindAST(context.Background(), args[1])
	if err != nil {
		return outputError(command, err)
	}
	return outputResult(resp)
}
