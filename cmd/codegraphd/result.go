package main

import (
	"os"

	"github.com/jward/codegraph/internal/graphfmt"
	"github.com/jward/codegraph/output"
)

// outputResult renders resp to stdout in the selected --format.
func outputResult(resp *output.Response) error {
	return graphfmt.WriteResult(os.Stdout, flagFormat, resp)
}

// outputError renders err for command, marks it handled so main doesn't
// print it a second time, and returns it so RunE can propagate the exit
// code to cobra. Text-format errors go to stderr; json-format errors are
// written to stdout as an envelope, mirroring the teacher's
// outputResult/outputError split.
func outputError(command string, err error) error {
	errorHandled = true
	w := os.Stdout
	if flagFormat == "text" {
		w = os.Stderr
	}
	_ = graphfmt.WriteError(w, flagFormat, command, err)
	return err
}
