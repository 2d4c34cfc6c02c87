package store

import "time"

// File is one indexed source file.
type File struct {
	ID          int64
	Path        string
	Language    string
	LastIndexed time.Time
}

// Symbol is a defined function, type, method, or other named entity.
//
// SymbolID is the indexer's 32-lowercase-hex-character content digest,
// distinct from ID, the relational row id used for joins within this
// database. CanonicalFQN, DisplayFQN, and SimpleFQN are three independent
// views of the same symbol's fully-qualified name; any of the three may be
// nil if the indexer did not record it.
type Symbol struct {
	ID             int64
	FileID         *int64
	SymbolID       string
	Name           string
	Kind           string
	KindNormalized string
	CanonicalFQN   *string
	DisplayFQN     *string
	SimpleFQN      *string
	Language       *string
	ByteStart      int
	ByteEnd        int
	StartLine      int
	StartCol       int
	EndLine        int
	EndCol         int
	ContentHash    *string
	ParentSymbolID *int64
}

// Reference is a point of use that points at a defined symbol.
type Reference struct {
	ID             int64
	FileID         int64
	ByteStart      int
	ByteEnd        int
	StartLine      int
	StartCol       int
	EndLine        int
	EndCol         int
	Name           string
	TargetSymbolID *int64
}

// CallEdge is a directed caller->callee edge anchored at a call site.
//
// CallerSymbolID/CalleeSymbolID are nullable: the indexer may record a call
// site before both ends are resolved to a symbol row.
type CallEdge struct {
	ID             int64
	FileID         *int64
	ByteStart      int
	ByteEnd        int
	Line           int
	Col            int
	CallerName     string
	CallerSymbolID *int64
	CalleeName     string
	CalleeSymbolID *int64
}

// ASTNode is one node of a file's parsed syntax tree.
type ASTNode struct {
	ID        int64
	ParentID  *int64
	FileID    int64
	Kind      string
	ByteStart int
	ByteEnd   int
	SymbolID  *int64
}

// Chunk is a pre-extracted, content-addressed code fragment.
type Chunk struct {
	SHA256    string
	SymbolID  *int64
	ByteStart int
	ByteEnd   int
	FilePath  string
	Content   string
}

// MetricsRow is the per-symbol {fan_in, fan_out, cyclomatic_complexity} triple.
//
// SymbolID here is the relational row id (symbols.id), not the 32-hex
// SymbolId string -- the metrics foreign key binds to the integer row id,
// not the hex SymbolId.
type MetricsRow struct {
	SymbolID             int64
	FanIn                int
	FanOut               int
	CyclomaticComplexity int
	EstimatedLOC         *int
	LastUpdated          *time.Time
}
