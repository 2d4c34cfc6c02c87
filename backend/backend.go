// Package backend declares the uniform contract both storage backends
// (relational, native) implement. The dispatcher picks one by sniffing the
// database file's header; callers above it never know which is in play.
package backend

import (
	"context"

	"github.com/jward/codegraph/output"
	"github.com/jward/codegraph/query"
)

// Kind identifies which concrete backend is serving a call, surfaced in
// output.Performance.Backend.
type Kind string

const (
	KindRelational Kind = "relational"
	KindNative     Kind = "native"
)

// Backend is the uniform read-only query contract over a codegraph
// database, implemented once per storage format.
type Backend interface {
	Kind() Kind
	Close() error

	SearchSymbols(ctx context.Context, opts query.Options) (*output.Response, error)
	SearchReferences(ctx context.Context, opts query.Options) (*output.Response, error)
	SearchCalls(ctx context.Context, opts query.Options) (*output.Response, error)

	// AST returns nodes for file in parent->child order. If position is
	// non-nil, only nodes whose span contains the offset are returned. At
	// most limit nodes are returned if limit > 0.
	AST(ctx context.Context, file string, position *int, limit int) (*output.Response, error)
	FindAST(ctx context.Context, kind string) (*output.Response, error)

	// Complete, Lookup, and SearchByLabel require the native backend's KV
	// side tables; the relational backend returns errs.RequiresNativeBackend.
	Complete(ctx context.Context, prefix string, limit int) (*output.Response, error)
	Lookup(ctx context.Context, fqn string) (*output.Response, error)
	SearchByLabel(ctx context.Context, name string) (*output.Response, error)
}
