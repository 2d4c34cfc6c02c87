package native

import (
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/jward/codegraph/backend"
)

// Backend is the native (badger KV + graph-segment) implementation of
// backend.Backend.
//
// Interior-mutability note (spec §4.8): the backend is exposed as a shared
// reference externally, but one call runs at a time against the underlying
// badger handle -- mu enforces that. The type is safe to pass across
// threads but not to share concurrently across them.
type Backend struct {
	mu     sync.Mutex
	idx    *graphIndex
	kv     *badger.DB
	timing bool // applies to AST/FindAST/Complete/Lookup/SearchByLabel, which take no query.Options
}

var _ backend.Backend = (*Backend)(nil)

// Open reads the native-format graph segment at path, builds its in-memory
// reverse index, and (re)populates the badger KV side tables before
// returning.
func Open(path string) (*Backend, error) {
	seg, err := ReadGraphSegment(path)
	if err != nil {
		return nil, err
	}
	opts := badger.DefaultOptions(path + ".kv").WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open native kv store: %w", err)
	}
	if err := populateKV(db, seg); err != nil {
		db.Close()
		return nil, err
	}
	return &Backend{idx: buildIndex(seg), kv: db}, nil
}

// openInMemory builds a Backend over an in-memory badger instance, used by
// tests that don't want to touch disk for the KV side tables.
func openInMemory(seg *GraphSegment) (*Backend, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory native kv store: %w", err)
	}
	if err := populateKV(db, seg); err != nil {
		db.Close()
		return nil, err
	}
	return &Backend{idx: buildIndex(seg), kv: db}, nil
}

// EnableTiming turns on the phase-duration block (spec §4.10) for the
// operations that don't carry a query.Options of their own.
func (b *Backend) EnableTiming(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.timing = enabled
}

func (b *Backend) Kind() backend.Kind { return backend.KindNative }

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.kv.Close()
}
