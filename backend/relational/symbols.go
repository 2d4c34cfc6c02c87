package relational

import (
	"context"
	"fmt"

	"github.com/jward/codegraph/astkind"
	"github.com/jward/codegraph/internal/store"
	"github.com/jward/codegraph/output"
	"github.com/jward/codegraph/query"
	"github.com/jward/codegraph/timing"
)

// astPreference is the defining-node tie-break preference for symbol
// records: prefer the narrowest declaration-shaped node over a bare
// identifier when spans tie exactly.
var astPreference = []string{
	"function_declaration", "method_declaration", "function_definition",
	"function_item", "class_declaration", "struct_item", "identifier",
}

func (b *Backend) SearchSymbols(ctx context.Context, opts query.Options) (*output.Response, error) {
	tr := timing.New(opts.Timing)
	tr.Start(timing.PhaseQueryExecution)

	candidates, err := b.expandSymbolCandidates(opts)
	if err != nil {
		return nil, fmt.Errorf("search symbols: expand candidates: %w", err)
	}

	files := newFileCache(b.store)
	var scored []query.Candidate
	for _, sym := range candidates {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		ok, file, err := b.symbolPasses(sym, opts, files)
		if err != nil {
			return nil, fmt.Errorf("search symbols: filter: %w", err)
		}
		if !ok {
			continue
		}
		score := 1
		if opts.Order == "" || opts.Order == query.OrderRelevance {
			score = scoreSymbol(sym, opts)
		}
		scored = append(scored, query.Candidate{
			Name: sym.Name, Score: score, FilePath: file.Path, ByteStart: sym.ByteStart,
			FanIn: metricField(b.store, sym.ID, "fan_in"), FanOut: metricField(b.store, sym.ID, "fan_out"),
			Complexity: metricField(b.store, sym.ID, "complexity"),
			Depth:      symbolDepth(b.store, file.ID, sym),
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
		sym := c.Payload.(*store.Symbol)
		file, err := files.get(*sym.FileID)
		if err != nil {
			return nil, err
		}
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

func (b *Backend) expandSymbolCandidates(opts query.Options) ([]*store.Symbol, error) {
	candidateCap := opts.EffectiveCandidateCap()

	switch {
	case query.IsSymbolID(opts.QueryString):
		sym, err := b.store.SymbolBySymbolID(opts.QueryString)
		if err != nil || sym == nil {
			return nil, err
		}
		return []*store.Symbol{sym}, nil

	case opts.ExactFQN != "":
		sym, err := b.store.SymbolByCanonicalFQN(opts.ExactFQN)
		if err != nil || sym == nil {
			return nil, err
		}
		return []*store.Symbol{sym}, nil

	case len(opts.SymbolSet) > 0 && opts.QueryString == "":
		return b.store.SymbolsBySymbolIDSet(opts.SymbolSet)

	case opts.Regex:
		re, err := query.CompileRegex(opts.QueryString, query.MinRegexByteCap)
		if err != nil {
			return nil, err
		}
		all, err := b.store.AllSymbols(candidateCap)
		if err != nil {
			return nil, err
		}
		var matched []*store.Symbol
		for _, s := range all {
			if re.MatchString(s.Name) {
				matched = append(matched, s)
			}
		}
		return matched, nil

	default:
		matched, err := b.store.SymbolsByNameSubstring(opts.QueryString, candidateCap)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(matched))
		byName := make(map[string][]*store.Symbol, len(matched))
		for i, s := range matched {
			names[i] = s.Name
			byName[s.Name] = append(byName[s.Name], s)
		}
		query.SubstringTiebreak(names, opts.QueryString)
		ordered := make([]*store.Symbol, 0, len(matched))
		for _, n := range names {
			group := byName[n]
			if len(group) == 0 {
				continue
			}
			ordered = append(ordered, group[0])
			byName[n] = group[1:]
		}
		return ordered, nil
	}
}

func (b *Backend) symbolPasses(sym *store.Symbol, opts query.Options, files *fileCache) (bool, *store.File, error) {
	if sym.FileID == nil {
		return false, nil, nil
	}
	file, err := files.get(*sym.FileID)
	if err != nil || file == nil {
		return false, nil, err
	}
	if !pathPrefixOK(file.Path, opts.PathPrefix) {
		return false, file, nil
	}
	if !kindOK(sym.Kind, opts.Kinds) {
		return false, file, nil
	}
	if !languageOK(derefStr(sym.Language), opts.Language) {
		return false, file, nil
	}
	if opts.FQNPattern != "" && !fqnPatternMatch(opts.FQNPattern, derefStr(sym.CanonicalFQN)) {
		return false, file, nil
	}
	if len(opts.SymbolSet) > 0 && opts.QueryString != "" && !inSet(sym.SymbolID, opts.SymbolSet) {
		return false, file, nil
	}
	if len(opts.AlgorithmSymbolSet) > 0 && !inSet(sym.SymbolID, opts.AlgorithmSymbolSet) {
		return false, file, nil
	}
	m, err := metricsFor(b.store, sym.ID)
	if err != nil {
		return false, file, err
	}
	if !applyMetricFilters(opts.Metrics, m) {
		return false, file, nil
	}
	if len(opts.ASTKinds) > 0 || opts.DepthMin != nil || opts.DepthMax != nil || opts.InsideKind != "" || opts.ContainsKind != "" {
		ok, passErr := b.symbolASTPredicatesPass(sym, file.ID, opts)
		if passErr != nil {
			return false, file, passErr
		}
		if !ok {
			return false, file, nil
		}
	}
	return true, file, nil
}

func (b *Backend) symbolASTPredicatesPass(sym *store.Symbol, fileID int64, opts query.Options) (bool, error) {
	node, ok, err := definingNode(b.store, fileID, sym, astPreference)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if len(opts.ASTKinds) > 0 && !containsStr(opts.ASTKinds, node.Kind) {
		return false, nil
	}
	lookup := astLookup{store: b.store, fileID: fileID}
	depth := astkind.Depth(lookup, node, derefStr(sym.Language))
	if opts.DepthMin != nil && depth < *opts.DepthMin {
		return false, nil
	}
	if opts.DepthMax != nil && depth > *opts.DepthMax {
		return false, nil
	}
	if opts.InsideKind != "" && !astkind.Inside(lookup, node, opts.InsideKind) {
		return false, nil
	}
	if opts.ContainsKind != "" && !astkind.Contains(lookup, node, opts.ContainsKind) {
		return false, nil
	}
	return true, nil
}

func scoreSymbol(sym *store.Symbol, opts query.Options) int {
	if opts.Regex {
		return query.ScoreRegex(opts.QueryString)
	}
	return query.Score(sym.Name, opts.QueryString)
}

func metricField(s *store.Store, symbolID int64, field string) int {
	m, err := s.MetricsBySymbol(symbolID)
	if err != nil || m == nil {
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

func symbolDepth(s *store.Store, fileID int64, sym *store.Symbol) int {
	node, ok, err := definingNode(s, fileID, sym, astPreference)
	if err != nil || !ok {
		return 0
	}
	return astkind.Depth(astLookup{store: s, fileID: fileID}, node, derefStr(sym.Language))
}

func (b *Backend) buildSymbolRecord(sym *store.Symbol, file *store.File, score int, opts query.Options, files *query.FileCache) (output.Record, error) {
	rec := output.Record{
		Name: sym.Name, Kind: sym.Kind, KindNormalized: sym.KindNormalized,
		Span: output.Span{
			Path: file.Path, ByteStart: sym.ByteStart, ByteEnd: sym.ByteEnd,
			StartLine: sym.StartLine, StartCol: sym.StartCol, EndLine: sym.EndLine, EndCol: sym.EndCol,
		},
		Language:     derefStr(sym.Language),
		SymbolID:     sym.SymbolID,
		CanonicalFQN: derefStr(sym.CanonicalFQN),
		DisplayFQN:   derefStr(sym.DisplayFQN),
		SimpleFQN:    derefStr(sym.SimpleFQN),
		ContentHash:  derefStr(sym.ContentHash),
	}
	if opts.Order == query.OrderRelevance || opts.Order == "" {
		s := score
		rec.Score = &s
	}
	if m, err := b.store.MetricsBySymbol(sym.ID); err == nil && m != nil {
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
		text, err := b.snippetFor(sym, file, files, opts.Snippet.MaxBytes)
		if err == nil {
			rec.Snippet = text
		}
	}
	if node, ok, err := definingNode(b.store, file.ID, sym, astPreference); err == nil && ok {
		lookup := astLookup{store: b.store, fileID: file.ID}
		children, _ := b.store.ASTNodesByParent(node.ID)
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
		rec.AST = &output.ASTContext{
			NodeID:              fmt.Sprintf("%d", node.ID),
			Kind:                node.Kind,
			Depth:               astkind.Depth(lookup, node, derefStr(sym.Language)),
			ParentKind:          parentKind,
			ChildrenCountByKind: childCounts,
			DecisionPoints:      astkind.Depth(lookup, node, derefStr(sym.Language)),
			ByteRange:           [2]int{node.ByteStart, node.ByteEnd},
		}
	}
	return rec, nil
}

// snippetFor implements the snippet-extraction pipeline: chunk store
// first, then raw file read.
func (b *Backend) snippetFor(sym *store.Symbol, file *store.File, files *query.FileCache, maxBytes int) (string, error) {
	if chunk, err := b.store.ChunkBySymbol(sym.ID, file.Path, sym.ByteStart, sym.ByteEnd); err == nil && chunk != nil {
		text := chunk.Content
		if maxBytes > 0 {
			truncated, _ := truncateString(text, maxBytes)
			return truncated, nil
		}
		return text, nil
	}
	content, err := files.Get(file.Path)
	if err != nil {
		return "", err
	}
	text, _ := query.ExtractSnippet(content, sym.ByteStart, sym.ByteEnd, maxBytes)
	return text, nil
}

func truncateString(s string, maxBytes int) (string, bool) {
	if len(s) <= maxBytes {
		return s, false
	}
	return s[:maxBytes], true
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
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
