package native

import (
	"context"
	"sort"

	"github.com/jward/codegraph/errs"
	"github.com/jward/codegraph/output"
	"github.com/jward/codegraph/timing"
)

// AST returns nodes for file directly from the graph index's AST
// accessors, per spec §4.8 -- unlike the relational backend, the native
// backend never shells out to the algorithm-bridge subprocess for this.
func (b *Backend) AST(ctx context.Context, file string, position *int, limit int) (*output.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tr := timing.New(b.timing)
	tr.Start(timing.PhaseQueryExecution)

	f, ok := b.idx.filesByPath[file]
	if !ok {
		return nil, errs.PathValidationFailed(file, "file not found in this database")
	}
	nodes := append([]*ASTNode(nil), b.idx.astByFile[f.ID]...)
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].ByteStart < nodes[j].ByteStart })
	if position != nil {
		var filtered []*ASTNode
		for _, n := range nodes {
			if n.ByteStart <= *position && *position < n.ByteEnd {
				filtered = append(filtered, n)
			}
		}
		nodes = filtered
	}
	total := len(nodes)
	partial := false
	if limit > 0 && len(nodes) > limit {
		nodes = nodes[:limit]
		partial = true
	}
	tr.Stop(timing.PhaseQueryExecution)

	tr.Start(timing.PhaseOutputFormatting)
	resp := newResponse(file, "ast", tr, string(b.Kind()))
	resp.TotalCount, resp.Partial = total, partial
	for _, n := range nodes {
		resp.Results = append(resp.Results, b.astNodeRecord(n, f))
	}
	resp.Returned = len(resp.Results)
	tr.Stop(timing.PhaseOutputFormatting)
	return resp, nil
}

// FindAST returns every node of kind across the whole database, again via
// the in-memory index rather than a subprocess.
func (b *Backend) FindAST(ctx context.Context, kind string) (*output.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tr := timing.New(b.timing)
	tr.Start(timing.PhaseQueryExecution)
	nodes := append([]*ASTNode(nil), b.idx.astByKind[kind]...)
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].FileID != nodes[j].FileID {
			return nodes[i].FileID < nodes[j].FileID
		}
		return nodes[i].ByteStart < nodes[j].ByteStart
	})
	tr.Stop(timing.PhaseQueryExecution)

	tr.Start(timing.PhaseOutputFormatting)
	resp := newResponse(kind, "find_ast", tr, string(b.Kind()))
	resp.TotalCount = len(nodes)
	for _, n := range nodes {
		resp.Results = append(resp.Results, b.astNodeRecord(n, b.idx.filesByID[n.FileID]))
	}
	resp.Returned = len(resp.Results)
	tr.Stop(timing.PhaseOutputFormatting)
	return resp, nil
}

func (b *Backend) astNodeRecord(n *ASTNode, f *File) output.Record {
	rec := output.Record{
		Name: n.Kind,
		Kind: n.Kind,
		Span: output.Span{ByteStart: n.ByteStart, ByteEnd: n.ByteEnd},
	}
	if f != nil {
		rec.Span.Path = f.Path
	}
	return rec
}
