// Package native implements backend.Backend over a binary graph store with
// badger KV side tables (spec §4.8), the alternative to the relational
// (SQLite) backend behind the same uniform contract.
package native

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/jward/codegraph/errs"
)

// MagicHeader is the first 16 bytes of a native-format graph-segment file,
// what the backend dispatcher sniffs to pick this backend over relational.
var MagicHeader = [16]byte{'C', 'G', 'N', 'A', 'T', 'I', 'V', 'E', 'M', 'A', 'G', '2', 0, 0, 0, 0}

// File is one indexed source file.
type File struct {
	ID       int64
	Path     string
	Language string
}

// Symbol mirrors internal/store's Symbol shape; kept independent so the
// native backend has no dependency on the relational store package.
type Symbol struct {
	ID             int64
	FileID         int64
	SymbolID       string
	Name           string
	Kind           string
	KindNormalized string
	CanonicalFQN   string
	DisplayFQN     string
	SimpleFQN      string
	Language       string
	ByteStart      int
	ByteEnd        int
	StartLine      int
	StartCol       int
	EndLine        int
	EndCol         int
	ContentHash    string
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

// Call is a directed caller->callee edge anchored at a call site.
type Call struct {
	ID             int64
	FileID         int64
	ByteStart      int
	ByteEnd        int
	Line           int
	Col            int
	CallerName     string
	CallerSymbolID *int64
	CalleeName     string
	CalleeSymbolID *int64
}

// ASTNode is one parsed syntax node.
type ASTNode struct {
	ID        int64
	ParentID  *int64
	FileID    int64
	Kind      string
	ByteStart int
	ByteEnd   int
	SymbolID  *int64
}

// Metrics is one symbol's precomputed metric triple.
type Metrics struct {
	SymbolID             int64
	FanIn                int
	FanOut               int
	CyclomaticComplexity int
}

// GraphSegment is the full decoded contents of a native-format database:
// the binary graph store's node/edge tables plus the label index the KV
// side tables are derived from.
type GraphSegment struct {
	Files      []File
	Symbols    []Symbol
	References []Reference
	Calls      []Call
	ASTNodes   []ASTNode
	Metrics    []Metrics
	Labels     map[string][]string // label name -> SymbolId (hex) list
}

// ReadGraphSegment validates the 16-byte magic header and gob-decodes the
// remainder of path into a GraphSegment.
func ReadGraphSegment(path string) (*GraphSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read native database: %w", err)
	}
	if len(data) < 16 {
		return nil, errs.DatabaseCorrupted(fmt.Sprintf("%s: file shorter than native header", path))
	}
	var header [16]byte
	copy(header[:], data[:16])
	if header != MagicHeader {
		return nil, errs.DatabaseCorrupted(fmt.Sprintf("%s: native magic header mismatch", path))
	}
	var seg GraphSegment
	dec := gob.NewDecoder(bytes.NewReader(data[16:]))
	if err := dec.Decode(&seg); err != nil {
		return nil, errs.DatabaseCorrupted(fmt.Sprintf("%s: decoding graph segment: %v", path, err))
	}
	return &seg, nil
}

// HasNativeHeader reports whether the first 16 bytes of data are the native
// magic header, used by the backend dispatcher's header sniff.
func HasNativeHeader(data []byte) bool {
	if len(data) < 16 {
		return false
	}
	var header [16]byte
	copy(header[:], data[:16])
	return header == MagicHeader
}
