// Package graphfmt renders a query response or an error to an io.Writer in
// either of the CLI's two output formats (json, text), mirroring the teacher's
// outputResult/outputError dual-format encoder pair.
package graphfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jward/codegraph/errs"
	"github.com/jward/codegraph/output"
)

// ErrorEnvelope is the JSON-format error shape: a stable error code plus
// the human message, so callers can branch on Code without string-parsing
// Message.
type ErrorEnvelope struct {
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
	Command string `json:"command,omitempty"`
}

// WriteResult renders resp to w in format ("json" or "text").
func WriteResult(w io.Writer, format string, resp *output.Response) error {
	if format == "text" {
		return writeResultText(w, resp)
	}
	return writeJSON(w, resp)
}

// WriteError renders err to w in format, tagging it with command. Callers
// use this for both json and text modes -- the teacher's canopy writes
// text errors to stderr and json errors to stdout as an envelope; here the
// caller decides the stream, this just decides the shape.
func WriteError(w io.Writer, format, command string, err error) error {
	if format == "text" {
		_, werr := fmt.Fprintf(w, "Error: %s\n", err)
		return werr
	}
	env := ErrorEnvelope{Error: err.Error(), Command: command}
	if e, ok := errs.AsError(err); ok {
		env.Code = string(e.Code)
	}
	return writeJSON(w, env)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResultText(w io.Writer, resp *output.Response) error {
	if _, err := fmt.Fprintf(w, "%s  %s  (%d/%d results%s)\n",
		resp.Mode, resp.Query, resp.Returned, resp.TotalCount, partialSuffix(resp.Partial)); err != nil {
		return err
	}
	for _, r := range resp.Results {
		if err := writeRecordText(w, r); err != nil {
			return err
		}
	}
	if resp.Notice != "" {
		_, err := fmt.Fprintf(w, "note: %s\n", resp.Notice)
		return err
	}
	return nil
}

func partialSuffix(partial bool) string {
	if partial {
		return ", partial"
	}
	return ""
}

func writeRecordText(w io.Writer, r output.Record) error {
	loc := r.Span.Path
	if loc != "" {
		loc = fmt.Sprintf("%s:%d:%d", r.Span.Path, r.Span.StartLine, r.Span.StartCol)
	}
	name := r.Name
	if r.Caller != "" || r.Callee != "" {
		name = fmt.Sprintf("%s -> %s", r.Caller, r.Callee)
	}
	_, err := fmt.Fprintf(w, "  %-40s %-10s %s\n", name, r.Kind, loc)
	return err
}
