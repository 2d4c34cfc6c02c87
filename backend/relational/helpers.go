package relational

import (
	"time"

	"github.com/google/uuid"

	"github.com/jward/codegraph/astkind"
	"github.com/jward/codegraph/internal/store"
	"github.com/jward/codegraph/output"
	"github.com/jward/codegraph/query"
	"github.com/jward/codegraph/timing"
)

// fileCache memoizes file-row lookups for one call.
type fileCache struct {
	store *store.Store
	byID  map[int64]*store.File
}

func newFileCache(s *store.Store) *fileCache {
	return &fileCache{store: s, byID: make(map[int64]*store.File)}
}

func (c *fileCache) get(id int64) (*store.File, error) {
	if f, ok := c.byID[id]; ok {
		return f, nil
	}
	f, err := c.store.FileByID(id)
	if err != nil {
		return nil, err
	}
	c.byID[id] = f
	return f, nil
}

func pathPrefixOK(path, prefix string) bool {
	return query.PathMatches(path, prefix)
}

func kindOK(kind string, kinds []string) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func languageOK(lang string, want string) bool {
	return want == "" || lang == want
}

// astLookup adapts internal/store to astkind.ChildrenLookup, used for
// depth, containment, and the symbol<->node defining-node join.
type astLookup struct {
	store  *store.Store
	fileID int64
}

func (l astLookup) NodeByID(id int64) (astkind.Node, bool) {
	n, err := l.store.ASTNodeByID(id)
	if err != nil || n == nil {
		return astkind.Node{}, false
	}
	return toASTKindNode(n), true
}

func (l astLookup) ChildrenOf(id int64) []astkind.Node {
	children, err := l.store.ASTNodesByParent(id)
	if err != nil {
		return nil
	}
	out := make([]astkind.Node, len(children))
	for i, c := range children {
		out[i] = toASTKindNode(c)
	}
	return out
}

func toASTKindNode(n *store.ASTNode) astkind.Node {
	return astkind.Node{ID: n.ID, ParentID: n.ParentID, Kind: n.Kind, ByteStart: n.ByteStart, ByteEnd: n.ByteEnd}
}

// definingNode finds sym's defining AST node in fileID, or ok=false if the
// file has no AST data (HasASTNodes probe) or no node overlaps the span.
func definingNode(s *store.Store, fileID int64, sym *store.Symbol, preference []string) (astkind.Node, bool, error) {
	has, err := s.HasASTNodes(fileID)
	if err != nil || !has {
		return astkind.Node{}, false, err
	}
	overlapping, err := s.ASTNodesOverlapping(fileID, sym.ByteStart, sym.ByteEnd)
	if err != nil {
		return astkind.Node{}, false, err
	}
	nodes := make([]astkind.Node, len(overlapping))
	for i, n := range overlapping {
		nodes[i] = toASTKindNode(n)
	}
	node, ok := astkind.DefiningNode(nodes, preference)
	return node, ok, nil
}

func newExecutionID() string { return uuid.NewString() }

func newResponse(q, mode string, tr *timing.Tracker, backendKind string) *output.Response {
	resp := &output.Response{
		Query:       q,
		Mode:        mode,
		Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),
		ExecutionID: newExecutionID(),
	}
	if perf := tr.Timings(); perf != nil {
		resp.Performance = &output.Performance{Phases: *perf, Backend: backendKind}
	}
	return resp
}

// metricsFor fetches the metrics row for symbolRowID, returning nil, nil,
// nil when none exists -- callers must not confuse "no row" with zeros.
func metricsFor(s *store.Store, symbolRowID int64) (*store.MetricsRow, error) {
	return s.MetricsBySymbol(symbolRowID)
}

// metricValue extracts one *int field from an optionally-nil metrics row.
func metricValue(m *store.MetricsRow, field string) *int {
	if m == nil {
		return nil
	}
	switch field {
	case "fan_in":
		v := m.FanIn
		return &v
	case "fan_out":
		v := m.FanOut
		return &v
	case "complexity":
		v := m.CyclomaticComplexity
		return &v
	}
	return nil
}

func applyMetricFilters(mf query.MetricFilters, m *store.MetricsRow) bool {
	return mf.FanIn.Satisfies(metricValue(m, "fan_in")) &&
		mf.FanOut.Satisfies(metricValue(m, "fan_out")) &&
		mf.Complexity.Satisfies(metricValue(m, "complexity"))
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
