package main

import "testing"

func TestMetricRange_BothUnset(t *testing.T) {
	r := metricRange(unsetMetric, unsetMetric)
	if r.Min != nil || r.Max != nil {
		t.Fatalf("expected both bounds nil, got min=%v max=%v", r.Min, r.Max)
	}
}

func TestMetricRange_BothSet(t *testing.T) {
	r := metricRange(2, 10)
	if r.Min == nil || *r.Min != 2 {
		t.Fatalf("expected min=2, got %v", r.Min)
	}
	if r.Max == nil || *r.Max != 10 {
		t.Fatalf("expected max=10, got %v", r.Max)
	}
}

func TestMetricRange_ZeroIsNotUnset(t *testing.T) {
	r := metricRange(0, unsetMetric)
	if r.Min == nil || *r.Min != 0 {
		t.Fatalf("expected min=0 to be a real bound, got %v", r.Min)
	}
	if r.Max != nil {
		t.Fatalf("expected max unset, got %v", r.Max)
	}
}

func TestOptionalInt(t *testing.T) {
	if got := optionalInt(unsetMetric); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	got := optionalInt(3)
	if got == nil || *got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
}

func TestBuildOptions_Defaults(t *testing.T) {
	f := &searchFlags{
		fanInMin: unsetMetric, fanInMax: unsetMetric,
		fanOutMin: unsetMetric, fanOutMax: unsetMetric,
		complexityMin: unsetMetric, complexityMax: unsetMetric,
		depthMin: unsetMetric, depthMax: unsetMetric,
		limit: 50,
	}
	opts := f.buildOptions("foo")
	if opts.QueryString != "foo" {
		t.Fatalf("expected query string foo, got %q", opts.QueryString)
	}
	if opts.Context != nil {
		t.Fatalf("expected nil context by default, got %+v", opts.Context)
	}
	if opts.Snippet != nil {
		t.Fatalf("expected nil snippet by default, got %+v", opts.Snippet)
	}
	if opts.DepthMin != nil || opts.DepthMax != nil {
		t.Fatalf("expected unset depth bounds, got min=%v max=%v", opts.DepthMin, opts.DepthMax)
	}
}

func TestBuildOptions_ContextAndSnippet(t *testing.T) {
	f := &searchFlags{
		fanInMin: unsetMetric, fanInMax: unsetMetric,
		fanOutMin: unsetMetric, fanOutMax: unsetMetric,
		complexityMin: unsetMetric, complexityMax: unsetMetric,
		depthMin: unsetMetric, depthMax: unsetMetric,
		contextBefore: 3, snippetMaxBytes: 200,
	}
	opts := f.buildOptions("bar")
	if opts.Context == nil || opts.Context.LinesBefore != 3 {
		t.Fatalf("expected context with LinesBefore=3, got %+v", opts.Context)
	}
	if opts.Snippet == nil || opts.Snippet.MaxBytes != 200 {
		t.Fatalf("expected snippet with MaxBytes=200, got %+v", opts.Snippet)
	}
}
