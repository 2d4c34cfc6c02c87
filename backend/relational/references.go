package relational

import (
	"context"
	"fmt"

	"github.com/jward/codegraph/internal/store"
	"github.com/jward/codegraph/output"
	"github.com/jward/codegraph/query"
	"github.com/jward/codegraph/timing"
)

// SearchReferences mirrors SearchSymbols but the candidate set is the
// reference table and scoring uses the referenced symbol's name.
func (b *Backend) SearchReferences(ctx context.Context, opts query.Options) (*output.Response, error) {
	tr := timing.New(opts.Timing)
	tr.Start(timing.PhaseQueryExecution)

	refs, err := b.expandReferenceCandidates(opts)
	if err != nil {
		return nil, fmt.Errorf("search references: expand candidates: %w", err)
	}

	files := newFileCache(b.store)
	var scored []query.Candidate
	for _, ref := range refs {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		file, err := files.get(ref.FileID)
		if err != nil || file == nil {
			continue
		}
		if !pathPrefixOK(file.Path, opts.PathPrefix) {
			continue
		}
		if opts.FQNPattern != "" || len(opts.SymbolSet) > 0 || len(opts.Kinds) > 0 || opts.Language != "" {
			// Reference records have no kind/language/FQN of their own;
			// these filters only make sense once resolved to a target
			// symbol, which is optional for a reference.
			if ref.TargetSymbolID == nil {
				continue
			}
			target, err := b.store.SymbolByID(*ref.TargetSymbolID)
			if err != nil || target == nil {
				continue
			}
			if !kindOK(target.Kind, opts.Kinds) {
				continue
			}
			if !languageOK(derefStr(target.Language), opts.Language) {
				continue
			}
			if opts.FQNPattern != "" && !fqnPatternMatch(opts.FQNPattern, derefStr(target.CanonicalFQN)) {
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
		ref := c.Payload.(*store.Reference)
		file, err := files.get(ref.FileID)
		if err != nil {
			return nil, err
		}
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
			if target, err := b.store.SymbolByID(*ref.TargetSymbolID); err == nil && target != nil {
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

func (b *Backend) expandReferenceCandidates(opts query.Options) ([]*store.Reference, error) {
	switch {
	case opts.Regex:
		re, err := query.CompileRegex(opts.QueryString, query.MinRegexByteCap)
		if err != nil {
			return nil, err
		}
		all, err := b.store.AllReferences(opts.EffectiveCandidateCap())
		if err != nil {
			return nil, err
		}
		var matched []*store.Reference
		for _, r := range all {
			if re.MatchString(r.Name) {
				matched = append(matched, r)
			}
		}
		return matched, nil
	case opts.QueryString != "":
		return b.store.ReferencesByName(opts.QueryString)
	default:
		return b.store.AllReferences(opts.EffectiveCandidateCap())
	}
}

func scoreRegexOrName(name string, opts query.Options) int {
	if opts.Regex {
		return query.ScoreRegex(opts.QueryString)
	}
	return query.Score(name, opts.QueryString)
}
