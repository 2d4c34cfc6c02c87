package native

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func newTestBackend(t *testing.T, seg *GraphSegment) *Backend {
	t.Helper()
	if seg.Labels == nil {
		seg.Labels = map[string][]string{}
	}
	b, err := openInMemory(seg)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func fixtureSegment() *GraphSegment {
	return &GraphSegment{
		Files: []File{
			{ID: 1, Path: "pkg/foo.go", Language: "go"},
			{ID: 2, Path: "pkg/bar.go", Language: "go"},
		},
		Symbols: []Symbol{
			{
				ID: 1, FileID: 1, SymbolID: "11111111111111111111111111111111",
				Name: "DoThing", Kind: "function", KindNormalized: "function",
				CanonicalFQN: "pkg.DoThing", DisplayFQN: "pkg.DoThing", SimpleFQN: "DoThing",
				Language: "go", ByteStart: 10, ByteEnd: 40, StartLine: 2, EndLine: 4,
			},
			{
				ID: 2, FileID: 2, SymbolID: "22222222222222222222222222222222",
				Name: "helper", Kind: "function", KindNormalized: "function",
				CanonicalFQN: "pkg.helper", DisplayFQN: "pkg.helper", SimpleFQN: "helper",
				Language: "go", ByteStart: 0, ByteEnd: 20, StartLine: 1, EndLine: 2,
			},
		},
		References: []Reference{
			{ID: 1, FileID: 2, ByteStart: 5, ByteEnd: 12, Name: "DoThing", TargetSymbolID: ptr(1)},
		},
		Calls: []Call{
			{ID: 1, FileID: 2, ByteStart: 5, ByteEnd: 13, CallerName: "helper", CallerSymbolID: ptr(2), CalleeName: "DoThing", CalleeSymbolID: ptr(1)},
		},
		Metrics: []Metrics{
			{SymbolID: 1, FanIn: 2, FanOut: 0, CyclomaticComplexity: 1},
		},
		Labels: map[string][]string{
			"entrypoints": {"11111111111111111111111111111111"},
		},
	}
}

func TestOpen_KindIsNative(t *testing.T) {
	b := newTestBackend(t, fixtureSegment())
	require.Equal(t, "native", string(b.Kind()))
}

func TestOpen_ReadsSegmentFromDisk(t *testing.T) {
	path := writeSegmentFile(t, fixtureSegment())
	b, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	require.Equal(t, "native", string(b.Kind()))
	require.Len(t, b.idx.allSymbols(), 2)
}
