package main

import (
	"fmt"

	"github.com/jward/codegraph/backend"
	"github.com/jward/codegraph/dispatch"
)

// timingEnabler is implemented by both concrete backends but left out of
// backend.Backend itself -- AST/FindAST/Complete/Lookup/SearchByLabel take
// no query.Options to carry a Timing field, so the CLI toggles it here
// instead, once, right after dispatch picks the backend.
type timingEnabler interface {
	EnableTiming(enabled bool)
}

// openBackend resolves dbPath to a backend.Backend via the header-sniffing
// dispatcher and applies --timing.
func openBackend(dbPath string) (backend.Backend, error) {
	b, err := dispatch.Open(dbPath, &dispatch.AlgorithmTool{BinPath: flagAlgoBin, WantVersion: flagAlgoVer})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if te, ok := b.(timingEnabler); ok {
		te.EnableTiming(flagTiming)
	}
	return b, nil
}
