// Package dispatch picks the storage backend for a codegraph database by
// sniffing its first 16 bytes (spec §4.9): the SQLite magic string selects
// the relational backend, the native magic header selects the native
// backend, anything else is a fatal detection failure.
//
// Open returns a plain backend.Backend value. The returned value carries
// no Send/Sync guarantee of its own beyond what the concrete backend
// provides -- the native backend in particular is usable from one
// goroutine at a time (see backend/native's interior-mutability note).
package dispatch

import (
	"fmt"
	"os"

	"github.com/jward/codegraph/algobridge"
	"github.com/jward/codegraph/backend"
	"github.com/jward/codegraph/backend/native"
	"github.com/jward/codegraph/backend/relational"
	"github.com/jward/codegraph/errs"
	"github.com/jward/codegraph/internal/store"
)

const headerSize = 16

// sqliteMagic is the fixed 16-byte header every SQLite3 database file
// starts with.
var sqliteMagic = [headerSize]byte{
	'S', 'Q', 'L', 'i', 't', 'e', ' ', 'f', 'o', 'r', 'm', 'a', 't', ' ', '3', 0,
}

// AlgorithmTool configures the external algorithm-bridge subprocess the
// relational backend shells out to for ast/find_ast (spec §4.7). A nil
// *algobridge.Bridge is valid -- the relational backend reports
// AlgorithmToolNotFound lazily, only when ast/find_ast is actually called.
type AlgorithmTool struct {
	BinPath     string
	WantVersion string
}

// Open reads path's header and returns the matching backend.Backend,
// opened and ready for queries.
func Open(path string, tool *AlgorithmTool) (backend.Backend, error) {
	header, err := readHeader(path)
	if err != nil {
		return nil, err
	}

	switch {
	case header == sqliteMagic:
		return openRelational(path, tool)
	case native.HasNativeHeader(header[:]):
		return native.Open(path)
	default:
		return nil, errs.BackendDetectionFailed(fmt.Sprintf("unrecognized 16-byte header for %s", path))
	}
}

func readHeader(path string) ([headerSize]byte, error) {
	var header [headerSize]byte
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return header, errs.DatabaseNotFound(path)
		}
		return header, fmt.Errorf("open database: %w", err)
	}
	defer f.Close()
	n, err := f.Read(header[:])
	if err != nil || n < headerSize {
		return header, errs.DatabaseCorrupted(fmt.Sprintf("%s: file shorter than a 16-byte header", path))
	}
	return header, nil
}

// openRelational opens path read-only (spec §4.9: "the relational backend
// achieves [a consistent snapshot] via read-only open"; the engine never
// mutates the database, so it never migrates one either -- that is an
// indexer's job, against a store opened with store.NewStore).
func openRelational(path string, tool *AlgorithmTool) (backend.Backend, error) {
	s, err := store.NewReadOnlyStore(path)
	if err != nil {
		return nil, fmt.Errorf("open relational database: %w", err)
	}
	var bridge *algobridge.Bridge
	if tool != nil && tool.BinPath != "" {
		bridge = algobridge.New(tool.BinPath, tool.WantVersion)
	}
	return relational.Open(s, bridge), nil
}
