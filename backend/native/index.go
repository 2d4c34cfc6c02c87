package native

// graphIndex is the in-memory reverse-index view over one GraphSegment,
// built once at Open time: file-grouped symbol lists plus reverse maps for
// callers/callees, mirroring the linear-iteration-plus-reverse-index
// searcher shape (spec §4.8 supplement).
type graphIndex struct {
	seg *GraphSegment

	filesByID            map[int64]*File
	filesByPath          map[string]*File
	symbolsByRowID       map[int64]*Symbol
	symbolsBySymID       map[string]*Symbol
	symbolsBySimpleFQN   map[string]*Symbol
	symbolsByCanonicalFQN map[string]*Symbol
	symbolsByFile        map[int64][]*Symbol
	referencesByFile map[int64][]*Reference
	callsByFile     map[int64][]*Call
	callersOf       map[int64][]*Call // keyed by callee symbol row id
	calleesOf       map[int64][]*Call // keyed by caller symbol row id
	astByFile       map[int64][]*ASTNode
	astByKind       map[string][]*ASTNode
	astByID         map[int64]*ASTNode
	astByParent     map[int64][]*ASTNode
	metricsBySymbol map[int64]*Metrics
}

func buildIndex(seg *GraphSegment) *graphIndex {
	idx := &graphIndex{
		seg:                  seg,
		filesByID:            make(map[int64]*File, len(seg.Files)),
		filesByPath:          make(map[string]*File, len(seg.Files)),
		symbolsByRowID:       make(map[int64]*Symbol, len(seg.Symbols)),
		symbolsBySymID:       make(map[string]*Symbol, len(seg.Symbols)),
		symbolsBySimpleFQN:   make(map[string]*Symbol, len(seg.Symbols)),
		symbolsByCanonicalFQN: make(map[string]*Symbol, len(seg.Symbols)),
		symbolsByFile:        make(map[int64][]*Symbol),
		referencesByFile: make(map[int64][]*Reference),
		callsByFile:     make(map[int64][]*Call),
		callersOf:       make(map[int64][]*Call),
		calleesOf:       make(map[int64][]*Call),
		astByFile:       make(map[int64][]*ASTNode),
		astByKind:       make(map[string][]*ASTNode),
		astByID:         make(map[int64]*ASTNode),
		astByParent:     make(map[int64][]*ASTNode),
		metricsBySymbol: make(map[int64]*Metrics, len(seg.Metrics)),
	}

	for i := range seg.Files {
		f := &seg.Files[i]
		idx.filesByID[f.ID] = f
		idx.filesByPath[f.Path] = f
	}
	for i := range seg.Symbols {
		s := &seg.Symbols[i]
		idx.symbolsByRowID[s.ID] = s
		idx.symbolsBySymID[s.SymbolID] = s
		if s.SimpleFQN != "" {
			idx.symbolsBySimpleFQN[s.SimpleFQN] = s
		}
		if s.CanonicalFQN != "" {
			idx.symbolsByCanonicalFQN[s.CanonicalFQN] = s
		}
		idx.symbolsByFile[s.FileID] = append(idx.symbolsByFile[s.FileID], s)
	}
	for i := range seg.References {
		r := &seg.References[i]
		idx.referencesByFile[r.FileID] = append(idx.referencesByFile[r.FileID], r)
	}
	for i := range seg.Calls {
		c := &seg.Calls[i]
		idx.callsByFile[c.FileID] = append(idx.callsByFile[c.FileID], c)
		if c.CalleeSymbolID != nil {
			idx.callersOf[*c.CalleeSymbolID] = append(idx.callersOf[*c.CalleeSymbolID], c)
		}
		if c.CallerSymbolID != nil {
			idx.calleesOf[*c.CallerSymbolID] = append(idx.calleesOf[*c.CallerSymbolID], c)
		}
	}
	for i := range seg.ASTNodes {
		n := &seg.ASTNodes[i]
		idx.astByFile[n.FileID] = append(idx.astByFile[n.FileID], n)
		idx.astByKind[n.Kind] = append(idx.astByKind[n.Kind], n)
		idx.astByID[n.ID] = n
		if n.ParentID != nil {
			idx.astByParent[*n.ParentID] = append(idx.astByParent[*n.ParentID], n)
		}
	}
	for i := range seg.Metrics {
		m := &seg.Metrics[i]
		idx.metricsBySymbol[m.SymbolID] = m
	}
	return idx
}

func (idx *graphIndex) allSymbols() []*Symbol {
	out := make([]*Symbol, len(idx.seg.Symbols))
	for i := range idx.seg.Symbols {
		out[i] = &idx.seg.Symbols[i]
	}
	return out
}

func (idx *graphIndex) allReferences() []*Reference {
	out := make([]*Reference, len(idx.seg.References))
	for i := range idx.seg.References {
		out[i] = &idx.seg.References[i]
	}
	return out
}

func (idx *graphIndex) allCalls() []*Call {
	out := make([]*Call, len(idx.seg.Calls))
	for i := range idx.seg.Calls {
		out[i] = &idx.seg.Calls[i]
	}
	return out
}
