package relational

import (
	"context"

	"github.com/jward/codegraph/errs"
	"github.com/jward/codegraph/output"
)

// Complete, Lookup, and SearchByLabel need the native backend's KV side
// tables (spec §4.7); the relational backend has no equivalent index and
// reports RequiresNativeBackend rather than emulating one with slow scans.

func (b *Backend) Complete(ctx context.Context, prefix string, limit int) (*output.Response, error) {
	return nil, errs.RequiresNativeBackend("complete", "this database")
}

func (b *Backend) Lookup(ctx context.Context, fqn string) (*output.Response, error) {
	return nil, errs.RequiresNativeBackend("lookup", "this database")
}

func (b *Backend) SearchByLabel(ctx context.Context, name string) (*output.Response, error) {
	return nil, errs.RequiresNativeBackend("search_by_label", "this database")
}
