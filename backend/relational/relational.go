// Package relational implements backend.Backend over internal/store's
// SQLite-backed schema. search_symbols/search_references/search_calls are
// built from dynamic SQL fetches followed by the shared query-core
// predicate, scoring, and ordering passes; ast/find_ast hand off to the
// algorithm bridge as a subprocess because the relational schema exposes
// no rich tree-walk API of its own (spec §4.7).
package relational

import (
	"github.com/jward/codegraph/algobridge"
	"github.com/jward/codegraph/backend"
	"github.com/jward/codegraph/internal/store"
)

// Backend is the relational (SQLite) implementation of backend.Backend.
type Backend struct {
	store  *store.Store
	bridge *algobridge.Bridge // may be nil: ast/find_ast then fail with AlgorithmToolNotFound
	timing bool               // applies to AST/FindAST/Complete/Lookup/SearchByLabel, which take no query.Options
}

var _ backend.Backend = (*Backend)(nil)

// Open wraps an already-migrated store.Store. bridge may be nil if no
// algorithm tool is configured.
func Open(s *store.Store, bridge *algobridge.Bridge) *Backend {
	return &Backend{store: s, bridge: bridge}
}

// EnableTiming turns on the phase-duration block (spec §4.10) for the
// operations that don't carry a query.Options of their own.
func (b *Backend) EnableTiming(enabled bool) { b.timing = enabled }

func (b *Backend) Kind() backend.Kind { return backend.KindRelational }

func (b *Backend) Close() error { return b.store.Close() }
