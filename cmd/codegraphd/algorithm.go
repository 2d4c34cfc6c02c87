package main

import (
	"context"
	"fmt"

	"github.com/jward/codegraph/algobridge"
)

var (
	flagAlgorithm         string
	flagAlgorithmRoot     string
	flagAlgorithmFQNHint  string
	flagAlgorithmTarget   string
	flagAlgorithmMaxDepth int
	flagAlgorithmMaxPaths int
)

// algorithmSymbolSet runs the configured --algorithm, if any, against the
// external algorithm-bridge tool and returns the SymbolIds it produced
// (spec §4.5's "algorithm-derived SymbolSet filter"). It returns nil, nil
// when --algorithm was not given.
func algorithmSymbolSet(ctx context.Context) ([]string, error) {
	if flagAlgorithm == "" {
		return nil, nil
	}
	if flagAlgoBin == "" {
		return nil, fmt.Errorf("--algorithm %q requires --algo-bin", flagAlgorithm)
	}

	bridge := algobridge.New(flagAlgoBin, flagAlgoVer)
	if err := bridge.CheckVersion(ctx); err != nil {
		return nil, err
	}

	res, err := bridge.Run(ctx, algobridge.Algorithm(flagAlgorithm), algobridge.Params{
		Root:     flagAlgorithmRoot,
		FQNHint:  flagAlgorithmFQNHint,
		Target:   flagAlgorithmTarget,
		MaxDepth: flagAlgorithmMaxDepth,
		MaxPaths: flagAlgorithmMaxPaths,
	})
	if err != nil {
		return nil, err
	}
	return res.SymbolIDs, nil
}
