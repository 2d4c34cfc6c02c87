package relational

import (
	"context"
	"fmt"

	"github.com/jward/codegraph/internal/store"
	"github.com/jward/codegraph/output"
	"github.com/jward/codegraph/query"
	"github.com/jward/codegraph/timing"
)

// SearchCalls mirrors SearchSymbols/SearchReferences over the call-graph
// edge table; scoring is max(caller_score, callee_score) per spec §4.6.
func (b *Backend) SearchCalls(ctx context.Context, opts query.Options) (*output.Response, error) {
	tr := timing.New(opts.Timing)
	tr.Start(timing.PhaseQueryExecution)

	edges, err := b.expandCallCandidates(opts)
	if err != nil {
		return nil, fmt.Errorf("search calls: expand candidates: %w", err)
	}

	files := newFileCache(b.store)
	var scored []query.Candidate
	for _, e := range edges {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var file *store.File
		if e.FileID != nil {
			file, err = files.get(*e.FileID)
			if err != nil {
				return nil, err
			}
		}
		if file != nil && !pathPrefixOK(file.Path, opts.PathPrefix) {
			continue
		}
		callerScore := scoreRegexOrName(e.CallerName, opts)
		calleeScore := scoreRegexOrName(e.CalleeName, opts)
		score := query.CallScore(callerScore, calleeScore)
		path := ""
		if file != nil {
			path = file.Path
		}
		scored = append(scored, query.Candidate{
			Name: e.CallerName, Score: score, FilePath: path, ByteStart: e.ByteStart, Payload: e,
		})
	}

	query.Sort(scored, opts.Order, opts.QueryString)
	page, total, partial := query.Page(scored, opts.Limit)
	tr.Stop(timing.PhaseQueryExecution)

	tr.Start(timing.PhaseOutputFormatting)
	resp := newResponse(opts.QueryString, "search_calls", tr, string(b.Kind()))
	resp.TotalCount, resp.Partial = total, partial
	for _, c := range page {
		e := c.Payload.(*store.CallEdge)
		rec := output.Record{
			Caller: e.CallerName, Callee: e.CalleeName,
			Span: output.Span{ByteStart: e.ByteStart, ByteEnd: e.ByteEnd, StartLine: e.Line, StartCol: e.Col},
		}
		if e.FileID != nil {
			if file, err := files.get(*e.FileID); err == nil && file != nil {
				rec.Span.Path = file.Path
			}
		}
		if opts.Order == query.OrderRelevance || opts.Order == "" {
			s := c.Score
			rec.Score = &s
		}
		if e.CallerSymbolID != nil {
			if sym, err := b.store.SymbolByID(*e.CallerSymbolID); err == nil && sym != nil {
				rec.CallerSymbolID = sym.SymbolID
			}
		}
		if e.CalleeSymbolID != nil {
			if sym, err := b.store.SymbolByID(*e.CalleeSymbolID); err == nil && sym != nil {
				rec.CalleeSymbolID = sym.SymbolID
			}
		}
		resp.Results = append(resp.Results, rec)
	}
	resp.Returned = len(resp.Results)
	tr.Stop(timing.PhaseOutputFormatting)
	return resp, nil
}

func (b *Backend) expandCallCandidates(opts query.Options) ([]*store.CallEdge, error) {
	switch {
	case opts.Regex:
		re, err := query.CompileRegex(opts.QueryString, query.MinRegexByteCap)
		if err != nil {
			return nil, err
		}
		all, err := b.store.AllCallEdgesLimit(opts.EffectiveCandidateCap())
		if err != nil {
			return nil, err
		}
		var matched []*store.CallEdge
		for _, e := range all {
			if re.MatchString(e.CallerName) || re.MatchString(e.CalleeName) {
				matched = append(matched, e)
			}
		}
		return matched, nil
	case opts.QueryString != "":
		callers, err := b.store.CallEdgesByCallerName(opts.QueryString)
		if err != nil {
			return nil, err
		}
		callees, err := b.store.CallEdgesByCalleeName(opts.QueryString)
		if err != nil {
			return nil, err
		}
		return dedupeEdges(append(callers, callees...)), nil
	default:
		return b.store.AllCallEdgesLimit(opts.EffectiveCandidateCap())
	}
}

func dedupeEdges(edges []*store.CallEdge) []*store.CallEdge {
	seen := make(map[int64]bool, len(edges))
	out := make([]*store.CallEdge, 0, len(edges))
	for _, e := range edges {
		if !seen[e.ID] {
			seen[e.ID] = true
			out = append(out, e)
		}
	}
	return out
}
