// Package output is the engine's response shape: a stable, machine-parseable
// JSON envelope with deterministic field ordering and elision of absent
// optional fields (never emitted as null). Every query operation produces
// one Response.
package output

// Response is the top-level JSON envelope returned by every query
// operation.
type Response struct {
	Query       string   `json:"query"`
	Mode        string   `json:"mode"`
	Timestamp   string   `json:"timestamp"`
	ExecutionID string   `json:"execution_id"`
	Results     []Record `json:"results"`
	TotalCount  int      `json:"total_count"`
	Returned    int      `json:"returned"`
	Partial     bool     `json:"partial"`
	Notice      string   `json:"notice,omitempty"`
	Performance *Performance `json:"performance,omitempty"`
}

// Context is the optional surrounding-lines window attached to a record.
type Context struct {
	LinesBefore []string `json:"lines_before,omitempty"`
	LinesAfter  []string `json:"lines_after,omitempty"`
	Truncated   bool     `json:"truncated,omitempty"`
}

// ASTContext is the optional AST-neighborhood block attached to a symbol
// record when AST data is available.
type ASTContext struct {
	NodeID              string         `json:"node_id"`
	Kind                string         `json:"kind"`
	Depth               int            `json:"depth"`
	ParentKind          string         `json:"parent_kind,omitempty"`
	ChildrenCountByKind map[string]int `json:"children_count_by_kind,omitempty"`
	DecisionPoints      int            `json:"decision_points"`
	ByteRange           [2]int         `json:"byte_range"`
}

// Span is a symbol or reference's location within a file.
type Span struct {
	Path       string `json:"path"`
	ByteStart  int    `json:"byte_start"`
	ByteEnd    int    `json:"byte_end"`
	StartLine  int    `json:"start_line"`
	StartCol   int    `json:"start_col"`
	EndLine    int    `json:"end_line"`
	EndCol     int    `json:"end_col"`
}

// Record is one result row. It covers all three record families (symbol,
// reference, call) with the family-specific fields left zero/omitted for
// the other two -- the spec requires a stable field order within a record,
// which a single struct with fixed json-tag order gives for free.
type Record struct {
	Name           string  `json:"name"`
	Kind           string  `json:"kind,omitempty"`
	KindNormalized string  `json:"kind_normalized,omitempty"`
	Span           Span    `json:"span"`
	Context        *Context `json:"context,omitempty"`
	Snippet        string  `json:"snippet,omitempty"`
	ContentHash    string  `json:"content_hash,omitempty"`
	Language       string  `json:"language,omitempty"`
	Score          *int    `json:"score,omitempty"`
	FanIn          *int    `json:"fan_in,omitempty"`
	FanOut         *int    `json:"fan_out,omitempty"`
	Complexity     *int    `json:"cyclomatic_complexity,omitempty"`
	SymbolID       string  `json:"symbol_id,omitempty"`
	CanonicalFQN   string  `json:"canonical_fqn,omitempty"`
	DisplayFQN     string  `json:"display_fqn,omitempty"`
	SimpleFQN      string  `json:"simple_fqn,omitempty"`
	AST            *ASTContext `json:"ast,omitempty"`

	// Reference-record fields.
	ReferencedSymbol string `json:"referenced_symbol,omitempty"`
	TargetSymbolID   string `json:"target_symbol_id,omitempty"`

	// Call-record fields.
	Caller         string `json:"caller,omitempty"`
	Callee         string `json:"callee,omitempty"`
	CallerSymbolID string `json:"caller_symbol_id,omitempty"`
	CalleeSymbolID string `json:"callee_symbol_id,omitempty"`
}

// PhaseTimings holds the three monotonic phase durations, in
// milliseconds, attached to a response when timing was requested.
type PhaseTimings struct {
	BackendDetectionMs int64 `json:"backend_detection_ms"`
	QueryExecutionMs   int64 `json:"query_execution_ms"`
	OutputFormattingMs int64 `json:"output_formatting_ms"`
}

// Performance is the optional block carrying phase timings and, as a
// supplemented feature grounded in ckb's BackendContribution/Provenance
// pattern, which backend variant served the call.
type Performance struct {
	Phases  PhaseTimings `json:"phases"`
	Backend string       `json:"backend,omitempty"`
}
