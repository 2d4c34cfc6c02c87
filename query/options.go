// Package query holds the backend-agnostic pieces of the query pipeline:
// candidate classification, scoring, tie-breaking, ordering, and context
// and snippet extraction. Both the relational and native backends fetch
// candidates their own way, then run them through these shared helpers so
// scoring and ordering stay identical across backends.
package query

// Order selects how final results are sorted.
type Order string

const (
	OrderRelevance  Order = "relevance"
	OrderPosition   Order = "position"
	OrderFanIn      Order = "fan_in"
	OrderFanOut     Order = "fan_out"
	OrderComplexity Order = "complexity"
	OrderDepth      Order = "depth"
)

// MetricRange is an optional [min, max] bound on one metric.
type MetricRange struct {
	Min *int
	Max *int
}

// Satisfies reports whether value (nil meaning "no metrics row") satisfies
// r. A min bound fails on a missing row; a max bound passes a missing row
// only if it has no min paired with it (i.e. the predicate is effectively
// "at most max", which an absent metric trivially satisfies) -- per spec
// §4.6's "missing metrics fail a min_* predicate and pass a max_* predicate
// only if the predicate is = None" rule, a bare max_* filter on a missing
// row passes.
func (r MetricRange) Satisfies(value *int) bool {
	if r.Min == nil && r.Max == nil {
		return true
	}
	if value == nil {
		return r.Min == nil
	}
	if r.Min != nil && *value < *r.Min {
		return false
	}
	if r.Max != nil && *value > *r.Max {
		return false
	}
	return true
}

// MetricFilters bundles the three metric-range predicates.
type MetricFilters struct {
	FanIn      MetricRange
	FanOut     MetricRange
	Complexity MetricRange
}

// ContextOptions configures surrounding-line extraction.
type ContextOptions struct {
	LinesBefore int
	LinesAfter  int
	MaxLines    int
}

// SnippetOptions configures snippet extraction.
type SnippetOptions struct {
	MaxBytes int
}

// Options bundles one query call's filters, independent of record kind
// (symbol/reference/call) or backend.
type Options struct {
	QueryString string
	Regex       bool
	ExactFQN    string
	FQNPattern  string

	PathPrefix string
	Kinds      []string
	Language   string

	SymbolSet          []string
	AlgorithmSymbolSet []string

	Metrics MetricFilters

	ASTKinds     []string
	DepthMin     *int
	DepthMax     *int
	InsideKind   string
	ContainsKind string

	Order Order
	Limit int

	// CandidateCap bounds candidate expansion before predicate filtering;
	// <= 0 means DefaultCandidateCap.
	CandidateCap int

	Context *ContextOptions
	Snippet *SnippetOptions

	// Timing requests the phase-duration block on the response (spec
	// §4.10: absent by default).
	Timing bool
}

// SymbolSetInlineThreshold is the |set| above which the relational backend
// switches from an inline IN-list to a temp-table join, per spec §4.6.
const SymbolSetInlineThreshold = 1000

// DefaultCandidateCap bounds candidate expansion when Options.CandidateCap
// is unset.
const DefaultCandidateCap = 5000

// EffectiveCandidateCap returns o.CandidateCap or DefaultCandidateCap.
func (o Options) EffectiveCandidateCap() int {
	if o.CandidateCap > 0 {
		return o.CandidateCap
	}
	return DefaultCandidateCap
}
