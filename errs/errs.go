// Package errs is the engine's classified error model. Every failure the
// query core, backends, and algorithm bridge can produce maps to one
// variant with a stable code in the LLM-E001..E999 range, a severity tier,
// a human message, and a remediation hint.
//
// Codes are grouped by concern and must never be renumbered once assigned;
// adding a new code is compatible, reusing or shuffling one is not:
//
//	000-099  input validation
//	100-199  query/parsing
//	200-299  storage/backend
//	300-399  symbol resolution (semantic)
//	400-499  algorithm bridge
package errs

import (
	"errors"
	"fmt"
)

// Severity is the tier a variant is reported at.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code is a stable, documented error code in the LLM-E001..E999 range.
type Code string

const (
	CodeInvalidRegex         Code = "LLM-E001"
	CodeRegexTooLarge        Code = "LLM-E002"
	CodePathValidationFailed Code = "LLM-E003"

	CodeSearchFailed    Code = "LLM-E101"
	CodeAmbiguousSymbol Code = "LLM-E102"

	CodeDatabaseNotFound         Code = "LLM-E201"
	CodeDatabaseCorrupted        Code = "LLM-E202"
	CodeBackendDetectionFailed   Code = "LLM-E203"
	CodeNativeBackendNotSupported Code = "LLM-E204"
	CodeRequiresNativeBackend    Code = "LLM-E205"

	CodeSymbolNotFound Code = "LLM-E301"

	CodeAlgorithmToolNotFound     Code = "LLM-E401"
	CodeAlgorithmVersionMismatch  Code = "LLM-E402"
	CodeAlgorithmFailed           Code = "LLM-E403"
)

// Error is the engine's one error type. Consumers key on Code; Fields
// carries the variant's structured data (path, query, reason, and so on)
// for programmatic inspection without string-parsing Message.
type Error struct {
	Code        Code
	Severity    Severity
	Message     string
	Remediation string
	Fields      map[string]any
}

func (e *Error) Error() string {
	if e.Remediation == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Remediation)
}

// AsError reports whether err is (or wraps) an *Error, returning it on
// success the way errors.As would.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func DatabaseNotFound(path string) *Error {
	return &Error{
		Code: CodeDatabaseNotFound, Severity: SeverityError,
		Message:     fmt.Sprintf("database not found: %s", path),
		Remediation: "check the path and that the indexer has run",
		Fields:      map[string]any{"path": path},
	}
}

func DatabaseCorrupted(reason string) *Error {
	return &Error{
		Code: CodeDatabaseCorrupted, Severity: SeverityError,
		Message:     fmt.Sprintf("database header detected but body unreadable: %s", reason),
		Remediation: "re-index; the database file may be truncated or damaged",
		Fields:      map[string]any{"reason": reason},
	}
}

func BackendDetectionFailed(reason string) *Error {
	return &Error{
		Code: CodeBackendDetectionFailed, Severity: SeverityError,
		Message:     fmt.Sprintf("could not determine backend from file header: %s", reason),
		Remediation: "verify the file is a codegraph database produced by the indexer",
		Fields:      map[string]any{"reason": reason},
	}
}

func NativeBackendNotSupported(path string) *Error {
	return &Error{
		Code: CodeNativeBackendNotSupported, Severity: SeverityError,
		Message:     fmt.Sprintf("native header detected but this build lacks native backend support: %s", path),
		Remediation: "rebuild with native backend support enabled",
		Fields:      map[string]any{"path": path},
	}
}

func RequiresNativeBackend(command, path string) *Error {
	return &Error{
		Code: CodeRequiresNativeBackend, Severity: SeverityError,
		Message:     fmt.Sprintf("%s requires the native backend; %s is relational", command, path),
		Remediation: "re-index with native storage to use this command",
		Fields:      map[string]any{"command": command, "path": path},
	}
}

func SymbolNotFound(fqn, db, partial string) *Error {
	return &Error{
		Code: CodeSymbolNotFound, Severity: SeverityError,
		Message:     fmt.Sprintf("no symbol found for fqn %q in %s", fqn, db),
		Remediation: fmt.Sprintf("try `complete` with prefix %q", partial),
		Fields:      map[string]any{"fqn": fqn, "db": db, "partial": partial},
	}
}

func AmbiguousSymbol(name string, candidateCount int) *Error {
	return &Error{
		Code: CodeAmbiguousSymbol, Severity: SeverityError,
		Message:     fmt.Sprintf("%d symbols match %q", candidateCount, name),
		Remediation: "disambiguate with a SymbolId or a fuller FQN",
		Fields:      map[string]any{"name": name, "candidate_count": candidateCount},
	}
}

func AlgorithmToolNotFound(name string) *Error {
	return &Error{
		Code: CodeAlgorithmToolNotFound, Severity: SeverityError,
		Message:     fmt.Sprintf("algorithm tool %q not found in PATH", name),
		Remediation: "install the graph-algorithm tool or set its path",
		Fields:      map[string]any{"tool": name},
	}
}

func AlgorithmVersionMismatch(got, want string) *Error {
	return &Error{
		Code: CodeAlgorithmVersionMismatch, Severity: SeverityError,
		Message:     fmt.Sprintf("algorithm tool version %q is incompatible, expected %q", got, want),
		Remediation: "upgrade or downgrade the algorithm tool to a compatible version",
		Fields:      map[string]any{"got": got, "want": want},
	}
}

func AlgorithmFailed(stdout, stderr string) *Error {
	return &Error{
		Code: CodeAlgorithmFailed, Severity: SeverityError,
		Message:     fmt.Sprintf("algorithm tool exited non-zero: %s", stderr),
		Remediation: "inspect the tool's stderr for details",
		Fields:      map[string]any{"stdout": stdout, "stderr": stderr},
	}
}

func InvalidRegex(pattern string, cause error) *Error {
	return &Error{
		Code: CodeInvalidRegex, Severity: SeverityError,
		Message:     fmt.Sprintf("invalid regex %q: %v", pattern, cause),
		Remediation: "fix the regular expression syntax",
		Fields:      map[string]any{"pattern": pattern},
	}
}

func RegexTooLarge(size, limit int) *Error {
	return &Error{
		Code: CodeRegexTooLarge, Severity: SeverityError,
		Message:     fmt.Sprintf("regex pattern is %d bytes, exceeding the %d byte limit", size, limit),
		Remediation: "simplify the pattern",
		Fields:      map[string]any{"size": size, "limit": limit},
	}
}

func PathValidationFailed(path, reason string) *Error {
	return &Error{
		Code: CodePathValidationFailed, Severity: SeverityError,
		Message:     fmt.Sprintf("invalid path %q: %s", path, reason),
		Remediation: "check the path-prefix filter value",
		Fields:      map[string]any{"path": path, "reason": reason},
	}
}

func SearchFailed(reason string) *Error {
	return &Error{
		Code: CodeSearchFailed, Severity: SeverityError,
		Message: fmt.Sprintf("search failed: %s", reason),
		Fields:  map[string]any{"reason": reason},
	}
}
