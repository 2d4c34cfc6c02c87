package native

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jward/codegraph/astkind"
	"github.com/jward/codegraph/output"
	"github.com/jward/codegraph/query"
	"github.com/jward/codegraph/timing"
)

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

func languageOK(lang, want string) bool {
	return want == "" || lang == want
}

// fqnPatternMatch implements the same substring-with-wildcard FQN-pattern
// semantics as the relational backend, duplicated here since it is a tiny
// pure helper and backend/native intentionally has no dependency on
// backend/relational.
func fqnPatternMatch(pattern, fqn string) bool {
	if pattern == "" {
		return true
	}
	var b strings.Builder
	for _, part := range strings.Split(pattern, "*") {
		b.WriteString(regexp.QuoteMeta(part))
		b.WriteString(".*")
	}
	reSrc := strings.TrimSuffix(b.String(), ".*")
	re, err := regexp.Compile(reSrc)
	if err != nil {
		return strings.Contains(fqn, pattern)
	}
	return re.MatchString(fqn)
}

func inSet(id string, set []string) bool {
	for _, s := range set {
		if s == id {
			return true
		}
	}
	return false
}

func containsStr(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// astLookup adapts graphIndex to astkind.ChildrenLookup.
type astLookup struct {
	idx *graphIndex
}

func (l astLookup) NodeByID(id int64) (astkind.Node, bool) {
	n, ok := l.idx.astByID[id]
	if !ok {
		return astkind.Node{}, false
	}
	return toASTKindNode(n), true
}

func (l astLookup) ChildrenOf(id int64) []astkind.Node {
	children := l.idx.astByParent[id]
	out := make([]astkind.Node, len(children))
	for i, c := range children {
		out[i] = toASTKindNode(c)
	}
	return out
}

func toASTKindNode(n *ASTNode) astkind.Node {
	return astkind.Node{ID: n.ID, ParentID: n.ParentID, Kind: n.Kind, ByteStart: n.ByteStart, ByteEnd: n.ByteEnd}
}

// astPreference mirrors the relational backend's defining-node tie-break.
var astPreference = []string{
	"function_declaration", "method_declaration", "function_definition",
	"function_item", "class_declaration", "struct_item", "identifier",
}

// definingNode finds sym's defining AST node within fileID, or ok=false if
// the file has no AST data or nothing overlaps the symbol's span.
func definingNode(idx *graphIndex, fileID int64, byteStart, byteEnd int) (astkind.Node, bool) {
	nodes := idx.astByFile[fileID]
	if len(nodes) == 0 {
		return astkind.Node{}, false
	}
	var overlapping []astkind.Node
	for _, n := range nodes {
		if n.ByteStart < byteEnd && n.ByteEnd > byteStart {
			overlapping = append(overlapping, toASTKindNode(n))
		}
	}
	return astkind.DefiningNode(overlapping, astPreference)
}

func symbolDepth(idx *graphIndex, sym *Symbol) int {
	node, ok := definingNode(idx, sym.FileID, sym.ByteStart, sym.ByteEnd)
	if !ok {
		return 0
	}
	return astkind.Depth(astLookup{idx: idx}, node, sym.Language)
}

func metricField(idx *graphIndex, symbolRowID int64, field string) int {
	m, ok := idx.metricsBySymbol[symbolRowID]
	if !ok {
		return 0
	}
	switch field {
	case "fan_in":
		return m.FanIn
	case "fan_out":
		return m.FanOut
	case "complexity":
		return m.CyclomaticComplexity
	}
	return 0
}

func metricValue(idx *graphIndex, symbolRowID int64, field string) *int {
	m, ok := idx.metricsBySymbol[symbolRowID]
	if !ok {
		return nil
	}
	var v int
	switch field {
	case "fan_in":
		v = m.FanIn
	case "fan_out":
		v = m.FanOut
	case "complexity":
		v = m.CyclomaticComplexity
	default:
		return nil
	}
	return &v
}

func applyMetricFilters(idx *graphIndex, mf query.MetricFilters, symbolRowID int64) bool {
	return mf.FanIn.Satisfies(metricValue(idx, symbolRowID, "fan_in")) &&
		mf.FanOut.Satisfies(metricValue(idx, symbolRowID, "fan_out")) &&
		mf.Complexity.Satisfies(metricValue(idx, symbolRowID, "complexity"))
}

func scoreRegexOrName(name string, opts query.Options) int {
	if opts.Regex {
		return query.ScoreRegex(opts.QueryString)
	}
	return query.Score(name, opts.QueryString)
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
