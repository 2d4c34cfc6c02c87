package relational

import (
	"context"

	"github.com/jward/codegraph/algobridge"
	"github.com/jward/codegraph/errs"
	"github.com/jward/codegraph/output"
	"github.com/jward/codegraph/timing"
)

// AST hands off to the algorithm-bridge subprocess per spec §4.7: the
// relational schema exposes no rich tree-walk API of its own. limit is
// applied here by truncating the decoded result, since the external
// tool's own limit argument is not universally supported.
func (b *Backend) AST(ctx context.Context, file string, position *int, limit int) (*output.Response, error) {
	if b.bridge == nil {
		return nil, errs.AlgorithmToolNotFound("(unconfigured)")
	}
	tr := timing.New(b.timing)
	tr.Start(timing.PhaseQueryExecution)
	nodes, err := b.bridge.AST(ctx, file, position)
	if err != nil {
		return nil, err
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
		resp.Results = append(resp.Results, astNodeRecord(n))
	}
	resp.Returned = len(resp.Results)
	tr.Stop(timing.PhaseOutputFormatting)
	return resp, nil
}

// FindAST hands off to the algorithm-bridge subprocess for the same reason
// as AST.
func (b *Backend) FindAST(ctx context.Context, kind string) (*output.Response, error) {
	if b.bridge == nil {
		return nil, errs.AlgorithmToolNotFound("(unconfigured)")
	}
	tr := timing.New(b.timing)
	tr.Start(timing.PhaseQueryExecution)
	nodes, err := b.bridge.FindAST(ctx, kind)
	if err != nil {
		return nil, err
	}
	tr.Stop(timing.PhaseQueryExecution)

	tr.Start(timing.PhaseOutputFormatting)
	resp := newResponse(kind, "find_ast", tr, string(b.Kind()))
	resp.TotalCount = len(nodes)
	for _, n := range nodes {
		resp.Results = append(resp.Results, astNodeRecord(n))
	}
	resp.Returned = len(resp.Results)
	tr.Stop(timing.PhaseOutputFormatting)
	return resp, nil
}

func astNodeRecord(n algobridge.ASTNode) output.Record {
	return output.Record{
		Name: n.Kind,
		Kind: n.Kind,
		Span: output.Span{Path: n.FilePath, ByteStart: n.ByteStart, ByteEnd: n.ByteEnd},
	}
}
