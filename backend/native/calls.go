package native

import (
	"context"

	"github.com/jward/codegraph/output"
	"github.com/jward/codegraph/query"
	"github.com/jward/codegraph/timing"
)

// SearchCalls mirrors SearchSymbols/SearchReferences over the call-graph
// edge slice; scoring is max(caller_score, callee_score) per spec §4.6.
func (b *Backend) SearchCalls(ctx context.Context, opts query.Options) (*output.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tr := timing.New(opts.Timing)
	tr.Start(timing.PhaseQueryExecution)

	edges := b.expandCallCandidates(opts)

	var scored []query.Candidate
	for _, e := range edges {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		file := b.idx.filesByID[e.FileID]
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
		e := c.Payload.(*Call)
		rec := output.Record{
			Caller: e.CallerName, Callee: e.CalleeName,
			Span: output.Span{ByteStart: e.ByteStart, ByteEnd: e.ByteEnd, StartLine: e.Line, StartCol: e.Col},
		}
		if file, ok := b.idx.filesByID[e.FileID]; ok {
			rec.Span.Path = file.Path
		}
		if opts.Order == query.OrderRelevance || opts.Order == "" {
			s := c.Score
			rec.Score = &s
		}
		if e.CallerSymbolID != nil {
			if sym, ok := b.idx.symbolsByRowID[*e.CallerSymbolID]; ok {
				rec.CallerSymbolID = sym.SymbolID
			}
		}
		if e.CalleeSymbolID != nil {
			if sym, ok := b.idx.symbolsByRowID[*e.CalleeSymbolID]; ok {
				rec.CalleeSymbolID = sym.SymbolID
			}
		}
		resp.Results = append(resp.Results, rec)
	}
	resp.Returned = len(resp.Results)
	tr.Stop(timing.PhaseOutputFormatting)
	return resp, nil
}

func (b *Backend) expandCallCandidates(opts query.Options) []*Call {
	switch {
	case opts.Regex:
		re, err := query.CompileRegex(opts.QueryString, query.MinRegexByteCap)
		if err != nil {
			return nil
		}
		var matched []*Call
		for _, e := range b.idx.allCalls() {
			if re.MatchString(e.CallerName) || re.MatchString(e.CalleeName) {
				matched = append(matched, e)
			}
		}
		return matched
	case opts.QueryString != "":
		var matched []*Call
		for _, e := range b.idx.allCalls() {
			if e.CallerName == opts.QueryString || e.CalleeName == opts.QueryString {
				matched = append(matched, e)
			}
		}
		return matched
	default:
		return b.idx.allCalls()
	}
}
