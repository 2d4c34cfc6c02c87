package graphfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jward/codegraph/errs"
	"github.com/jward/codegraph/output"
)

func sampleResponse() *output.Response {
	return &output.Response{
		Query:      "foo",
		Mode:       "search_symbols",
		Returned:   1,
		TotalCount: 1,
		Results: []output.Record{
			{Name: "foo", Kind: "function", Span: output.Span{Path: "a.go", StartLine: 3, StartCol: 1}},
		},
	}
}

func TestWriteResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResult(&buf, "json", sampleResponse()); err != nil {
		t.Fatal(err)
	}
	var decoded output.Response
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Query != "foo" || decoded.Returned != 1 {
		t.Fatalf("unexpected decoded response: %+v", decoded)
	}
}

func TestWriteResult_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResult(&buf, "text", sampleResponse()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "search_symbols") || !strings.Contains(out, "foo") {
		t.Fatalf("expected text output to mention mode and record name, got: %s", out)
	}
	if !strings.Contains(out, "a.go:3:1") {
		t.Fatalf("expected text output to include location, got: %s", out)
	}
}

func TestWriteResult_TextPartialNotice(t *testing.T) {
	resp := sampleResponse()
	resp.Partial = true
	resp.Notice = "capped at candidate expansion limit"
	var buf bytes.Buffer
	if err := WriteResult(&buf, "text", resp); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "partial") {
		t.Fatalf("expected partial marker, got: %s", out)
	}
	if !strings.Contains(out, "note: capped at candidate expansion limit") {
		t.Fatalf("expected notice line, got: %s", out)
	}
}

func TestWriteError_JSONIncludesCode(t *testing.T) {
	var buf bytes.Buffer
	err := errs.SymbolNotFound("pkg.Foo", "db.sqlite", "pkg.Fo")
	if werr := WriteError(&buf, "json", "lookup", err); werr != nil {
		t.Fatal(werr)
	}
	var env ErrorEnvelope
	if jerr := json.Unmarshal(buf.Bytes(), &env); jerr != nil {
		t.Fatalf("output is not valid JSON: %v", jerr)
	}
	if env.Code != string(errs.CodeSymbolNotFound) {
		t.Fatalf("expected code %s, got %s", errs.CodeSymbolNotFound, env.Code)
	}
	if env.Command != "lookup" {
		t.Fatalf("expected command lookup, got %s", env.Command)
	}
}

func TestWriteError_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteError(&buf, "text", "lookup", errs.SymbolNotFound("pkg.Foo", "db.sqlite", "pkg.Fo")); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "Error: ") {
		t.Fatalf("expected text error to start with 'Error: ', got: %s", buf.String())
	}
}
