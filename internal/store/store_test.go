package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.Close() })
	return s
}

func ptr[T any](v T) *T { return &v }

// insertTestFile is a helper that inserts a file and returns it with ID set.
func insertTestFile(t *testing.T, s *Store, path, lang string) *File {
	t.Helper()
	f := &File{Path: path, Language: lang, LastIndexed: time.Now().Truncate(time.Second)}
	id, err := s.InsertFile(f)
	require.NoError(t, err)
	require.Positive(t, id)
	return f
}

// insertTestSymbol inserts a symbol with minimal required fields.
// symbolID must be unique per test database.
func insertTestSymbol(t *testing.T, s *Store, fileID *int64, symbolID, name, kind string) *Symbol {
	t.Helper()
	sym := &Symbol{
		FileID: fileID, SymbolID: symbolID, Name: name, Kind: kind, KindNormalized: kind,
		ByteStart: 0, ByteEnd: 10, StartLine: 0, StartCol: 0, EndLine: 9, EndCol: 0,
	}
	id, err := s.InsertSymbol(sym)
	require.NoError(t, err)
	require.Positive(t, id)
	return sym
}

// =============================================================================
// Schema & Lifecycle
// =============================================================================

func TestMigrate_AllTablesExist(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	expectedTables := []string{
		"files", "symbols", "references_", "call_graph",
		"ast_nodes", "code_chunks", "symbol_metrics",
	}

	for _, table := range expectedTables {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Migrate())
}

func TestMigrate_WALMode(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	var mode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "wal", mode)
}

// =============================================================================
// File operations
// =============================================================================

func TestFile_InsertAndRetrieve(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	now := time.Now().Truncate(time.Second)
	f := &File{Path: "/src/main.go", Language: "go", LastIndexed: now}
	id, err := s.InsertFile(f)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := s.FileByPath("/src/main.go")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "/src/main.go", got.Path)
	assert.Equal(t, "go", got.Language)

	byID, err := s.FileByID(id)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, got.Path, byID.Path)
}

func TestFile_ByPathNotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	got, err := s.FileByPath("/nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFile_ByLanguage(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	insertTestFile(t, s, "/a.go", "go")
	insertTestFile(t, s, "/b.go", "go")
	insertTestFile(t, s, "/c.py", "python")

	goFiles, err := s.FilesByLanguage("go")
	require.NoError(t, err)
	assert.Len(t, goFiles, 2)

	pyFiles, err := s.FilesByLanguage("python")
	require.NoError(t, err)
	assert.Len(t, pyFiles, 1)
}

// =============================================================================
// Symbol operations
// =============================================================================

func TestSymbol_InsertAndQueryByFile(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")

	sym := &Symbol{
		FileID: &f.ID, SymbolID: "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4", Name: "Foo", Kind: "function",
		KindNormalized: "fn", CanonicalFQN: ptr("pkg::Foo"), DisplayFQN: ptr("pkg.Foo"), SimpleFQN: ptr("Foo"),
		Language: ptr("go"), ByteStart: 40, ByteEnd: 190,
		StartLine: 4, StartCol: 0, EndLine: 19, EndCol: 1,
	}
	id, err := s.InsertSymbol(sym)
	require.NoError(t, err)
	require.Positive(t, id)

	symbols, err := s.SymbolsByFile(f.ID)
	require.NoError(t, err)
	require.Len(t, symbols, 1)
	assert.Equal(t, "Foo", symbols[0].Name)
	assert.Equal(t, "function", symbols[0].Kind)
	assert.Equal(t, "fn", symbols[0].KindNormalized)
	assert.Equal(t, "pkg::Foo", *symbols[0].CanonicalFQN)
	assert.Equal(t, 4, symbols[0].StartLine)

	bySymbolID, err := s.SymbolBySymbolID("a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4")
	require.NoError(t, err)
	require.NotNil(t, bySymbolID)
	assert.Equal(t, id, bySymbolID.ID)

	byFQN, err := s.SymbolByCanonicalFQN("pkg::Foo")
	require.NoError(t, err)
	require.NotNil(t, byFQN)
	assert.Equal(t, id, byFQN.ID)
}

func TestSymbol_QueryByName(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")
	insertTestSymbol(t, s, &f.ID, "1111111111111111111111111111111a", "Foo", "function")
	insertTestSymbol(t, s, &f.ID, "2222222222222222222222222222222a", "Bar", "function")

	syms, err := s.SymbolsByName("Foo")
	require.NoError(t, err)
	require.Len(t, syms, 1)
	assert.Equal(t, "Foo", syms[0].Name)
}

func TestSymbol_QueryByKind(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")
	insertTestSymbol(t, s, &f.ID, "3333333333333333333333333333333a", "Foo", "function")
	insertTestSymbol(t, s, &f.ID, "4444444444444444444444444444444a", "MyStruct", "struct")

	syms, err := s.SymbolsByKind("struct")
	require.NoError(t, err)
	require.Len(t, syms, 1)
	assert.Equal(t, "MyStruct", syms[0].Name)
}

func TestSymbol_Children(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")
	parent := insertTestSymbol(t, s, &f.ID, "5555555555555555555555555555555a"[:32], "MyClass", "class")

	child := &Symbol{
		FileID: &f.ID, SymbolID: "6666666666666666666666666666666a"[:32], Name: "myMethod", Kind: "method",
		KindNormalized: "method", ParentSymbolID: &parent.ID,
		ByteStart: 2, ByteEnd: 8, StartLine: 2, StartCol: 0, EndLine: 7, EndCol: 0,
	}
	_, err := s.InsertSymbol(child)
	require.NoError(t, err)

	children, err := s.SymbolChildren(parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "myMethod", children[0].Name)
}

func TestSymbol_NilFileID(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	sym := &Symbol{SymbolID: "7777777777777777777777777777777a"[:32], Name: "mypkg", Kind: "package", KindNormalized: "package"}
	id, err := s.InsertSymbol(sym)
	require.NoError(t, err)
	require.Positive(t, id)

	syms, err := s.SymbolsByName("mypkg")
	require.NoError(t, err)
	require.Len(t, syms, 1)
	assert.Nil(t, syms[0].FileID)
}

func TestSymbol_NamePrefixAndSubstring(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")
	insertTestSymbol(t, s, &f.ID, "8888888888888888888888888888888a"[:32], "parse", "function")
	insertTestSymbol(t, s, &f.ID, "9999999999999999999999999999999a"[:32], "parser", "function")
	insertTestSymbol(t, s, &f.ID, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "unparse", "function")

	prefixed, err := s.SymbolsByNamePrefix("parse", 10)
	require.NoError(t, err)
	assert.Len(t, prefixed, 2)

	substr, err := s.SymbolsByNameSubstring("parse", 10)
	require.NoError(t, err)
	assert.Len(t, substr, 3)
}

// =============================================================================
// Reference operations
// =============================================================================

func TestReference_InsertAndQuery(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")
	sym := insertTestSymbol(t, s, &f.ID, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "Bar", "function")

	ref := &Reference{
		FileID: f.ID, Name: "Bar", TargetSymbolID: &sym.ID,
		ByteStart: 90, ByteEnd: 93, StartLine: 9, StartCol: 5, EndLine: 9, EndCol: 8,
	}
	id, err := s.InsertReference(ref)
	require.NoError(t, err)
	require.Positive(t, id)

	refs, err := s.ReferencesByFile(f.ID)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Bar", refs[0].Name)
	assert.Equal(t, sym.ID, *refs[0].TargetSymbolID)
	assert.Equal(t, 9, refs[0].StartLine)
	assert.Equal(t, 5, refs[0].StartCol)

	byTarget, err := s.ReferencesByTarget(sym.ID)
	require.NoError(t, err)
	require.Len(t, byTarget, 1)
}

func TestReference_ByName(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")
	s.InsertReference(&Reference{FileID: f.ID, Name: "Foo", StartLine: 0, EndLine: 0})
	s.InsertReference(&Reference{FileID: f.ID, Name: "Bar", StartLine: 1, EndLine: 1})

	refs, err := s.ReferencesByName("Foo")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Foo", refs[0].Name)
}

// =============================================================================
// CallEdge operations
// =============================================================================

func TestCallEdge_InsertAndQuery(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")
	caller := insertTestSymbol(t, s, &f.ID, "cccccccccccccccccccccccccccccccc", "Foo", "function")
	callee := insertTestSymbol(t, s, &f.ID, "dddddddddddddddddddddddddddddddd", "Bar", "function")

	edge := &CallEdge{
		CallerName: "Foo", CallerSymbolID: &caller.ID,
		CalleeName: "Bar", CalleeSymbolID: &callee.ID,
		FileID: &f.ID, Line: 14, Col: 3,
	}
	id, err := s.InsertCallEdge(edge)
	require.NoError(t, err)
	require.Positive(t, id)

	callers, err := s.CallersByCallee(callee.ID)
	require.NoError(t, err)
	require.Len(t, callers, 1)
	assert.Equal(t, caller.ID, *callers[0].CallerSymbolID)

	callees, err := s.CalleesByCaller(caller.ID)
	require.NoError(t, err)
	require.Len(t, callees, 1)
	assert.Equal(t, callee.ID, *callees[0].CalleeSymbolID)

	byCallerName, err := s.CallEdgesByCallerName("Foo")
	require.NoError(t, err)
	require.Len(t, byCallerName, 1)
}

func TestCallEdge_UnresolvedEnds(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")

	edge := &CallEdge{CallerName: "foo", CalleeName: "bar", FileID: &f.ID, Line: 1, Col: 0}
	id, err := s.InsertCallEdge(edge)
	require.NoError(t, err)
	require.Positive(t, id)

	all, err := s.AllCallEdges()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Nil(t, all[0].CallerSymbolID)
	assert.Nil(t, all[0].CalleeSymbolID)
}

// =============================================================================
// ASTNode operations
// =============================================================================

func TestASTNode_InsertAndQuery(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")
	sym := insertTestSymbol(t, s, &f.ID, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", "Foo", "function")

	root := &ASTNode{FileID: f.ID, Kind: "source_file", ByteStart: 0, ByteEnd: 100}
	_, err := s.InsertASTNode(root)
	require.NoError(t, err)

	fn := &ASTNode{ParentID: &root.ID, FileID: f.ID, Kind: "function_definition", ByteStart: 0, ByteEnd: 50, SymbolID: &sym.ID}
	_, err = s.InsertASTNode(fn)
	require.NoError(t, err)

	ifNode := &ASTNode{ParentID: &fn.ID, FileID: f.ID, Kind: "if_expression", ByteStart: 10, ByteEnd: 40}
	_, err = s.InsertASTNode(ifNode)
	require.NoError(t, err)

	nodes, err := s.ASTNodesByFile(f.ID)
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	byKind, err := s.ASTNodesByKind("if_expression")
	require.NoError(t, err)
	require.Len(t, byKind, 1)

	overlapping, err := s.ASTNodesOverlapping(f.ID, 15, 20)
	require.NoError(t, err)
	assert.Len(t, overlapping, 3)

	containing, err := s.ASTNodeContainingPosition(f.ID, 20)
	require.NoError(t, err)
	assert.Len(t, containing, 3)

	hasAST, err := s.HasASTNodes(f.ID)
	require.NoError(t, err)
	assert.True(t, hasAST)
}

func TestASTNode_HasASTNodesFalseForUnindexedFile(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/empty.go", "go")

	hasAST, err := s.HasASTNodes(f.ID)
	require.NoError(t, err)
	assert.False(t, hasAST)
}

// =============================================================================
// Chunk operations
// =============================================================================

func TestChunk_InsertAndLookup(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")
	sym := insertTestSymbol(t, s, &f.ID, "ffffffffffffffffffffffffffffffff", "Foo", "function")

	c := &Chunk{
		SHA256: "abc123", SymbolID: &sym.ID, ByteStart: 0, ByteEnd: 10,
		FilePath: "/main.go", Content: "func Foo()",
	}
	require.NoError(t, s.InsertChunk(c))

	got, err := s.ChunkBySymbol(sym.ID, "/main.go", 0, 10)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "func Foo()", got.Content)

	bySHA, err := s.ChunkBySHA256("abc123")
	require.NoError(t, err)
	require.NotNil(t, bySHA)
	assert.Equal(t, sym.ID, *bySHA.SymbolID)
}

func TestChunk_MissingLookupReturnsNil(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	got, err := s.ChunkBySHA256("doesnotexist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// =============================================================================
// MetricsRow operations
// =============================================================================

func TestMetrics_UpsertAndLookup(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")
	sym := insertTestSymbol(t, s, &f.ID, "10101010101010101010101010101010", "Foo", "function")

	m := &MetricsRow{SymbolID: sym.ID, FanIn: 3, FanOut: 1, CyclomaticComplexity: 5, EstimatedLOC: ptr(20)}
	require.NoError(t, s.UpsertMetrics(m))

	got, err := s.MetricsBySymbol(sym.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.FanIn)
	assert.Equal(t, 1, got.FanOut)
	assert.Equal(t, 5, got.CyclomaticComplexity)
	require.NotNil(t, got.EstimatedLOC)
	assert.Equal(t, 20, *got.EstimatedLOC)

	// Upsert replaces the existing row rather than erroring.
	require.NoError(t, s.UpsertMetrics(&MetricsRow{SymbolID: sym.ID, FanIn: 4, FanOut: 2, CyclomaticComplexity: 6}))
	got2, err := s.MetricsBySymbol(sym.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got2.FanIn)
}

func TestMetrics_MissingRowIsNilNotZero(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")
	sym := insertTestSymbol(t, s, &f.ID, "20202020202020202020202020202020", "Unmeasured", "function")

	got, err := s.MetricsBySymbol(sym.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "a symbol with no metrics row must be distinguishable from one with a zero-valued triple")
}

// =============================================================================
// DeleteFileData
// =============================================================================

func TestDeleteFileData(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")

	sym := insertTestSymbol(t, s, &f.ID, "30303030303030303030303030303030", "Foo", "function")
	s.InsertReference(&Reference{FileID: f.ID, Name: "Bar", TargetSymbolID: &sym.ID, StartLine: 9, EndLine: 9})
	s.InsertCallEdge(&CallEdge{CallerName: "Foo", CallerSymbolID: &sym.ID, CalleeName: "Foo", CalleeSymbolID: &sym.ID, FileID: &f.ID, Line: 14})
	s.InsertASTNode(&ASTNode{FileID: f.ID, Kind: "function_definition", ByteStart: 0, ByteEnd: 10, SymbolID: &sym.ID})
	require.NoError(t, s.UpsertMetrics(&MetricsRow{SymbolID: sym.ID, FanIn: 1}))

	err := s.DeleteFileData(f.ID)
	require.NoError(t, err)

	syms, _ := s.SymbolsByFile(f.ID)
	assert.Empty(t, syms)

	refs, _ := s.ReferencesByFile(f.ID)
	assert.Empty(t, refs)

	nodes, _ := s.ASTNodesByFile(f.ID)
	assert.Empty(t, nodes)

	metrics, _ := s.MetricsBySymbol(sym.ID)
	assert.Nil(t, metrics)
}

func TestDeleteFileData_ReindexWithNewData(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	f := insertTestFile(t, s, "/main.go", "go")

	insertTestSymbol(t, s, &f.ID, "40404040404040404040404040404040", "OldFunc", "function")
	syms, _ := s.SymbolsByFile(f.ID)
	require.Len(t, syms, 1)

	require.NoError(t, s.DeleteFileData(f.ID))
	insertTestSymbol(t, s, &f.ID, "50505050505050505050505050505050", "NewFunc", "function")

	syms, err := s.SymbolsByFile(f.ID)
	require.NoError(t, err)
	require.Len(t, syms, 1)
	assert.Equal(t, "NewFunc", syms[0].Name)
}
