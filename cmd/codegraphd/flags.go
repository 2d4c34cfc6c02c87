package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jward/codegraph/query"
)

// searchFlags holds the CLI flag destinations shared by search
// symbols|references|calls. Each *Cmd registers a subset via
// registerSearchFlags and reads them back in buildOptions.
type searchFlags struct {
	pathPrefix string
	kinds      []string
	language   string
	regex      bool
	exactFQN   string
	fqnPattern string
	symbolSet  []string

	fanInMin, fanInMax         int
	fanOutMin, fanOutMax       int
	complexityMin, complexityMax int

	astKinds     []string
	depthMin     int
	depthMax     int
	insideKind   string
	containsKind string

	order string
	limit int

	contextBefore, contextAfter, contextMaxLines int
	snippetMaxBytes                              int
}

// unsetMetric is the sentinel meaning "flag not given" for the metric and
// depth range flags below, since 0 is itself a meaningful bound.
const unsetMetric = -1

func registerSearchFlags(cmd *cobra.Command, f *searchFlags) {
	cmd.Flags().StringVar(&f.pathPrefix, "path-prefix", "", "only match symbols/files under this path prefix")
	cmd.Flags().StringSliceVar(&f.kinds, "kind", nil, "restrict to these symbol kinds (repeatable, comma-separated)")
	cmd.Flags().StringVar(&f.language, "language", "", "restrict to this language")
	cmd.Flags().BoolVar(&f.regex, "regex", false, "treat the query string as a regular expression")
	cmd.Flags().StringVar(&f.exactFQN, "exact-fqn", "", "match exactly this canonical FQN")
	cmd.Flags().StringVar(&f.fqnPattern, "fqn-pattern", "", "glob-style pattern over canonical FQNs")
	cmd.Flags().StringSliceVar(&f.symbolSet, "symbol-set", nil, "restrict to this set of symbol IDs (repeatable, comma-separated)")

	cmd.Flags().IntVar(&f.fanInMin, "fan-in-min", unsetMetric, "minimum fan-in")
	cmd.Flags().IntVar(&f.fanInMax, "fan-in-max", unsetMetric, "maximum fan-in")
	cmd.Flags().IntVar(&f.fanOutMin, "fan-out-min", unsetMetric, "minimum fan-out")
	cmd.Flags().IntVar(&f.fanOutMax, "fan-out-max", unsetMetric, "maximum fan-out")
	cmd.Flags().IntVar(&f.complexityMin, "complexity-min", unsetMetric, "minimum cyclomatic complexity")
	cmd.Flags().IntVar(&f.complexityMax, "complexity-max", unsetMetric, "maximum cyclomatic complexity")

	cmd.Flags().StringSliceVar(&f.astKinds, "ast-kind", nil, "restrict to symbols whose defining AST node has one of these kinds")
	cmd.Flags().IntVar(&f.depthMin, "depth-min", unsetMetric, "minimum AST nesting depth")
	cmd.Flags().IntVar(&f.depthMax, "depth-max", unsetMetric, "maximum AST nesting depth")
	cmd.Flags().StringVar(&f.insideKind, "inside-kind", "", "require an ancestor AST node of this kind")
	cmd.Flags().StringVar(&f.containsKind, "contains-kind", "", "require a descendant AST node of this kind")

	cmd.Flags().StringVar(&f.order, "order", "", "sort order: relevance|position|fan_in|fan_out|complexity|depth")
	cmd.Flags().IntVar(&f.limit, "limit", 50, "maximum results returned")

	cmd.Flags().IntVar(&f.contextBefore, "context-before", 0, "lines of context before each result")
	cmd.Flags().IntVar(&f.contextAfter, "context-after", 0, "lines of context after each result")
	cmd.Flags().IntVar(&f.contextMaxLines, "context-max-lines", 0, "cap on total context lines")
	cmd.Flags().IntVar(&f.snippetMaxBytes, "snippet-max-bytes", 0, "attach a source snippet, capped at this many bytes")
}

func metricRange(min, max int) query.MetricRange {
	var r query.MetricRange
	if min != unsetMetric {
		v := min
		r.Min = &v
	}
	if max != unsetMetric {
		v := max
		r.Max = &v
	}
	return r
}

func optionalInt(v int) *int {
	if v == unsetMetric {
		return nil
	}
	return &v
}

// buildOptions assembles a query.Options from the parsed flags and the
// positional query string.
func (f *searchFlags) buildOptions(queryString string) query.Options {
	opts := query.Options{
		QueryString: queryString,
		Regex:       f.regex,
		ExactFQN:    f.exactFQN,
		FQNPattern:  f.fqnPattern,
		PathPrefix:  f.pathPrefix,
		Kinds:       f.kinds,
		Language:    f.language,
		SymbolSet:   f.symbolSet,
		Metrics: query.MetricFilters{
			FanIn:      metricRange(f.fanInMin, f.fanInMax),
			FanOut:     metricRange(f.fanOutMin, f.fanOutMax),
			Complexity: metricRange(f.complexityMin, f.complexityMax),
		},
		ASTKinds:     f.astKinds,
		DepthMin:     optionalInt(f.depthMin),
		DepthMax:     optionalInt(f.depthMax),
		InsideKind:   f.insideKind,
		ContainsKind: f.containsKind,
		Order:        query.Order(strings.ToLower(f.order)),
		Limit:        f.limit,
		Timing:       flagTiming,
	}
	if f.contextBefore > 0 || f.contextAfter > 0 || f.contextMaxLines > 0 {
		opts.Context = &query.ContextOptions{
			LinesBefore: f.contextBefore,
			LinesAfter:  f.contextAfter,
			MaxLines:    f.contextMaxLines,
		}
	}
	if f.snippetMaxBytes > 0 {
		opts.Snippet = &query.SnippetOptions{MaxBytes: f.snippetMaxBytes}
	}
	return opts
}
