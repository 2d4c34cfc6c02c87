package native

import (
	"context"
	"fmt"

	"github.com/jward/codegraph/astkind"
	"github.com/jward/codegraph/output"
	"github.com/jward/codegraph/query"
	"github.com/jward/codegraph/timing"
)

// SearchSymbols implements the symbol search pipeline entirely in-memory
// over graphIndex, mirroring backend/relational's predicate/scoring/
// ordering pipeline without any SQL round trips.
func (b *Backend) SearchSymbols(ctx context.Context, opts query.Options) (*output.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tr := timing.New(opts.Timing)
	tr.Start(timing.PhaseQueryExecution)

	candidates := b.expandSymbolCandidates(opts)

	var scored []query.Candidate
	for _, sym := range candidates {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		file, ok := b.symbolPasses(sym, opts)
		if !ok {
			continue
		}
		score := 1
		if opts.Order == "" || opts.Order == query.OrderRelevance {
			score = scoreSymbol(sym, opts)
		}
		scored = append(scored, query.Candidate{
			Name: sym.Name, Score: score, FilePath: file.Path, ByteStart: sym.ByteStart,
			FanIn: metricField(b.idx, sym.ID, "fan_in"), FanOut: metricField(b.idx, sym.ID, "fan_out"),
			Complexity: metricField(b.idx, sym.ID, "complexity"),
			Depth:      symbolDepth(b.idx, sym),
			Payload:    sym,
		})
	}

	query.Sort(scored, opts.Order, opts.QueryString)
	page, total, partial := query.Page(scored, opts.Limit)
	tr.Stop(timing.PhaseQueryExecution)

	tr.Start(timing.PhaseOutputFormatting)
	resp := newResponse(opts.QueryString, "search_symbols", tr, string(b.Kind()))
	resp.TotalCount = total
	resp.Partial = partial
	fileContent := query.NewFileCache()
	for _, c := range page {
		sym := c.Payload.(*Symbol)
		file := b.idx.filesByID[sym.FileID]
		rec, err := b.buildSymbolRecord(sym, file, c.Score, opts, fileContent)
		if err != nil {
			return nil, fmt.Errorf("search symbols: build record: %w", err)
		}
		resp.Results = append(resp.Results, rec)
	}
	resp.Returned = len(resp.Results)
	tr.Stop(timing.PhaseOutputFormatting)
	return resp, nil
}

func (b *Backend) expandSymbolCandidates(opts query.Options) []*Symbol {
	switch {
	case query.IsSymbolID(opts.QueryString):
		if sym, ok := b.idx.symbolsBySymID[opts.QueryString]; ok {
			return []*Symbol{sym}
		}
		return nil

	case opts.ExactFQN != "":
		if sym, ok := b.idx.symbolsByCanonicalFQN[opts.ExactFQN]; ok {
			return []*Symbol{sym}
		}
		return nil

	case len(opts.SymbolSet) > 0 && opts.QueryString == "":
		out := make([]*Symbol, 0, len(opts.SymbolSet))
		for _, id := range opts.SymbolSet {
			if sym, ok := b.idx.symbolsBySymID[id]; ok {
				out = append(out, sym)
			}
		}
		return out

	case opts.Regex:
		re, err := query.CompileRegex(opts.QueryString, query.MinRegexByteCap)
		if err != nil {
			return nil
		}
		var matched []*Symbol
		for _, s := range b.idx.allSymbols() {
			if re.MatchString(s.Name) {
				matched = append(matched, s)
			}
		}
		return matched

	default:
		var matched []*Symbol
		for _, s := range b.idx.allSymbols() {
			if opts.QueryString == "" || containsSubstring(s.Name, opts.QueryString) {
				matched = append(matched, s)
			}
		}
		names := make([]string, len(matched))
		byName := make(map[string][]*Symbol, len(matched))
		for i, s := range matched {
			names[i] = s.Name
			byName[s.Name] = append(byName[s.Name], s)
		}
		query.SubstringTiebreak(names, opts.QueryString)
		ordered := make([]*Symbol, 0, len(matched))
		for _, n := range names {
			group := byName[n]
			if len(group) == 0 {
				continue
			}
			ordered = append(ordered, group[0])
			byName[n] = group[1:]
		}
		return ordered
	}
}

func containsSubstring(name, q string) bool {
	if q == "" {
		return true
	}
	for i := 0; i+len(q) <= len(name); i++ {
		if name[i:i+len(q)] == q {
			return true
		}
	}
	return false
}

func (b *Backend) symbolPasses(sym *Symbol, opts query.Options) (*File, bool) {
	file, ok := b.idx.filesByID[sym.FileID]
	if !ok {
		return nil, false
	}
	if !pathPrefixOK(file.Path, opts.PathPrefix) {
		return file, false
	}
	if !kindOK(sym.Kind, opts.Kinds) {
		return file, false
	}
	if !languageOK(sym.Language, opts.Language) {
		return file, false
	}
	if opts.FQNPattern != "" && !fqnPatternMatch(opts.FQNPattern, sym.CanonicalFQN) {
		return file, false
	}
	if len(opts.SymbolSet) > 0 && opts.QueryString != "" && !inSet(sym.SymbolID, opts.SymbolSet) {
		return file, false
	}
	if len(opts.AlgorithmSymbolSet) > 0 && !inSet(sym.SymbolID, opts.AlgorithmSymbolSet) {
		return file, false
	}
	if !applyMetricFilters(b.idx, opts.Metrics, sym.ID) {
		return file, false
	}
	if len(opts.ASTKinds) > 0 || opts.DepthMin != nil || opts.DepthMax != nil || opts.InsideKind != "" || opts.ContainsKind != "" {
		if !b.symbolASTPredicatesPass(sym, opts) {
			return file, false
		}
	}
	return file, true
}

func (b *Backend) symbolASTPredicatesPass(sym *Symbol, opts query.Options) bool {
	node, ok := definingNode(b.idx, sym.FileID, sym.ByteStart, sym.ByteEnd)
	if !ok {
		return false
	}
	if len(opts.ASTKinds) > 0 && !containsStr(opts.ASTKinds, node.Kind) {
		return false
	}
	lookup := astLookup{idx: b.idx}
	depth := astkind.Depth(lookup, node, sym.Language)
	if opts.DepthMin != nil && depth < *opts.DepthMin {
		return false
	}
	if opts.DepthMax != nil && depth > *opts.DepthMax {
		return false
	}
	if opts.InsideKind != "" && !astkind.Inside(lookup, node, opts.InsideKind) {
		return false
	}
	if opts.ContainsKind != "" && !astkind.Contains(lookup, node, opts.ContainsKind) {
		return false
	}
	return true
}

func scoreSymbol(sym *Symbol, opts query.Options) int {
	if opts.Regex {
		return query.ScoreRegex(opts.QueryString)
	}
	return query.Score(sym.Name, opts.QueryString)
}

func (b *Backend) buildSymbolRecord(sym *Symbol, file *File, score int, opts query.Options, files *query.FileCache) (output.Record, error) {
	rec := output.Record{
		Name: sym.Name, Kind: sym.Kind, KindNormalized: sym.KindNormalized,
		Span: output.Span{
			Path: file.Path, ByteStart: sym.ByteStart, ByteEnd: sym.ByteEnd,
			StartLine: sym.StartLine, StartCol: sym.StartCol, EndLine: sym.EndLine, EndCol: sym.EndCol,
		},
		Language:     sym.Language,
		SymbolID:     sym.SymbolID,
		CanonicalFQN: sym.CanonicalFQN,
		DisplayFQN:   sym.DisplayFQN,
		SimpleFQN:    sym.SimpleFQN,
		ContentHash:  sym.ContentHash,
	}
	if opts.Order == query.OrderRelevance || opts.Order == "" {
		s := score
		rec.Score = &s
	}
	if m, ok := b.idx.metricsBySymbol[sym.ID]; ok {
		fi, fo, cc := m.FanIn, m.FanOut, m.CyclomaticComplexity
		rec.FanIn, rec.FanOut, rec.Complexity = &fi, &fo, &cc
	}
	if opts.Context != nil {
		content, err := files.Get(file.Path)
		if err == nil {
			ctx := query.ExtractContext(content, sym.ByteStart, *opts.Context)
			rec.Context = &output.Context{LinesBefore: ctx.LinesBefore, LinesAfter: ctx.LinesAfter, Truncated: ctx.Truncated}
		}
	}
	if opts.Snippet != nil {
		content, err := files.Get(file.Path)
		if err == nil {
			text, _ := query.ExtractSnippet(content, sym.ByteStart, sym.ByteEnd, opts.Snippet.MaxBytes)
			rec.Snippet = text
		}
	}
	if node, ok := definingNode(b.idx, file.ID, sym.ByteStart, sym.ByteEnd); ok {
		lookup := astLookup{idx: b.idx}
		children := b.idx.astByParent[node.ID]
		childCounts := make(map[string]int)
		for _, c := range children {
			childCounts[c.Kind]++
		}
		var parentKind string
		if node.ParentID != nil {
			if p, ok := lookup.NodeByID(*node.ParentID); ok {
				parentKind = p.Kind
			}
		}
		depth := astkind.Depth(lookup, node, sym.Language)
		rec.AST = &output.ASTContext{
			NodeID:              fmt.Sprintf("%d", node.ID),
			Kind:                node.Kind,
			Depth:               depth,
			ParentKind:          parentKind,
			ChildrenCountByKind: childCounts,
			DecisionPoints:      depth,
			ByteRange:           [2]int{node.ByteStart, node.ByteEnd},
		}
	}
	return rec, nil
}
