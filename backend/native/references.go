package native

import (
	"context"

	"github.com/jward/codegraph/output"
	"github.com/jward/codegraph/query"
	"github.com/jward/codegraph/timing"
)

// SearchReferences mirrors SearchSymbols but iterates the reference table.
func (b *Backend) SearchReferences(ctx context.Context, opts query.Options) (*output.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tr := timing.New(opts.Timing)
	tr.Start(timing.PhaseQueryExecution)

	refs := b.expandReferenceCandidates(opts)

	var scored []query.Candidate
	for _, ref := range refs {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		file, ok := b.idx.filesByID[ref.FileID]
		if !ok {
			continue
		}
		if !pathPrefixOK(file.Path, opts.PathPrefix) {
			continue
		}
		if opts.FQNPattern != "" || len(opts.SymbolSet) > 0 || len(opts.Kinds) > 0 || opts.Language != "" {
			if ref.TargetSymbolID == nil {
				continue
			}
			target, ok := b.idx.symbolsByRowID[*ref.TargetSymbolID]
			if !ok {
				continue
			}
			if !kindOK(target.Kind, opts.Kinds) {
				continue
			}
			if !languageOK(target.Language, opts.Language) {
				continue
			}
			if opts.FQNPattern != "" && !fqnPatternMatch(opts.FQNPattern, target.CanonicalFQN) {
				continue
			}
			if len(opts.SymbolSet) > 0 && !inSet(target.SymbolID, opts.SymbolSet) {
				continue
			}
		}
		score := 1
		if opts.Order == "" || opts.Order == query.OrderRelevance {
			score = scoreRegexOrName(ref.Name, opts)
		}
		scored = append(scored, query.Candidate{
			Name: ref.Name, Score: score, FilePath: file.Path, ByteStart: ref.ByteStart, Payload: ref,
		})
	}

	query.Sort(scored, opts.Order, opts.QueryString)
	page, total, partial := query.Page(scored, opts.Limit)
	tr.Stop(timing.PhaseQueryExecution)

	tr.Start(timing.PhaseOutputFormatting)
	resp := newResponse(opts.QueryString, "search_references", tr, string(b.Kind()))
	resp.TotalCount, resp.Partial = total, partial
	fileContent := query.NewFileCache()
	for _, c := range page {
		ref := c.Payload.(*Reference)
		file := b.idx.filesByID[ref.FileID]
		rec := output.Record{
			Name: ref.Name,
			Span: output.Span{
				Path: file.Path, ByteStart: ref.ByteStart, ByteEnd: ref.ByteEnd,
				StartLine: ref.StartLine, StartCol: ref.StartCol, EndLine: ref.EndLine, EndCol: ref.EndCol,
			},
			ReferencedSymbol: ref.Name,
		}
		if opts.Order == query.OrderRelevance || opts.Order == "" {
			s := c.Score
			rec.Score = &s
		}
		if ref.TargetSymbolID != nil {
			if target, ok := b.idx.symbolsByRowID[*ref.TargetSymbolID]; ok {
				rec.TargetSymbolID = target.SymbolID
			}
		}
		if opts.Context != nil {
			if content, err := fileContent.Get(file.Path); err == nil {
				ctx := query.ExtractContext(content, ref.ByteStart, *opts.Context)
				rec.Context = &output.Context{LinesBefore: ctx.LinesBefore, LinesAfter: ctx.LinesAfter, Truncated: ctx.Truncated}
			}
		}
		if opts.Snippet != nil {
			if content, err := fileContent.Get(file.Path); err == nil {
				text, _ := query.ExtractSnippet(content, ref.ByteStart, ref.ByteEnd, opts.Snippet.MaxBytes)
				rec.Snippet = text
			}
		}
		resp.Results = append(resp.Results, rec)
	}
	resp.Returned = len(resp.Results)
	tr.Stop(timing.PhaseOutputFormatting)
	return resp, nil
}

func (b *Backend) expandReferenceCandidates(opts query.Options) []*Reference {
	switch {
	case opts.Regex:
		re, err := query.CompileRegex(opts.QueryString, query.MinRegexByteCap)
		if err != nil {
			return nil
		}
		var matched []*Reference
		for _, r := range b.idx.allReferences() {
			if re.MatchString(r.Name) {
				matched = append(matched, r)
			}
		}
		return matched
	case opts.QueryString != "":
		var matched []*Reference
		for _, r := range b.idx.allReferences() {
			if r.Name == opts.QueryString {
				matched = append(matched, r)
			}
		}
		return matched
	default:
		return b.idx.allReferences()
	}
}
