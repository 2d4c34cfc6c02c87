package native

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jward/codegraph/query"
)

func TestSearchReferences_MatchesByName(t *testing.T) {
	b := newTestBackend(t, fixtureSegment())
	resp, err := b.SearchReferences(context.Background(), query.Options{QueryString: "DoThing"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	require.Equal(t, "11111111111111111111111111111111", resp.Results[0].TargetSymbolID)
}

func TestSearchReferences_PathPrefixFilters(t *testing.T) {
	b := newTestBackend(t, fixtureSegment())
	resp, err := b.SearchReferences(context.Background(), query.Options{PathPrefix: "pkg/foo.go"})
	require.NoError(t, err)
	require.Empty(t, resp.Results)
}

func TestSearchReferences_KindFilterResolvesThroughTarget(t *testing.T) {
	b := newTestBackend(t, fixtureSegment())
	resp, err := b.SearchReferences(context.Background(), query.Options{Kinds: []string{"function"}})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
}
