package native

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

// KV key-namespace scheme, per spec §4.8.
const (
	kvPrefixFQN   = "sym:fqn:"
	kvPrefixSymID = "sym:id:"
	kvPrefixLabel = "label:"
	kvPrefixMetric = "sm:symbol:"
)

func keyFQN(simpleFQN string) []byte   { return []byte(kvPrefixFQN + simpleFQN) }
func keySymID(symbolID string) []byte  { return []byte(kvPrefixSymID + symbolID) }
func keyLabel(name string) []byte      { return []byte(kvPrefixLabel + name) }
func keyMetric(symbolRowID int64) []byte {
	return []byte(kvPrefixMetric + strconv.FormatInt(symbolRowID, 10))
}

// metricTriple is the "encoded metrics triple" spec §4.8 names for the
// sm:symbol:{id} value.
type metricTriple struct {
	FanIn      int `json:"fan_in"`
	FanOut     int `json:"fan_out"`
	Complexity int `json:"complexity"`
}

// populateKV derives the badger side tables from a decoded GraphSegment.
// The engine never builds a graph segment itself (non-goal: no indexing),
// but the KV tables are a read-path derivative of data already on disk, so
// rebuilding them at Open time keeps the on-disk format to one file while
// still exercising badger's real Set/Get/prefix-scan API.
func populateKV(db *badger.DB, seg *GraphSegment) error {
	wb := db.NewWriteBatch()
	defer wb.Cancel()

	for _, s := range seg.Symbols {
		if s.SimpleFQN != "" {
			if err := wb.Set(keyFQN(s.SimpleFQN), []byte(s.SymbolID)); err != nil {
				return fmt.Errorf("populate kv: set fqn key: %w", err)
			}
		}
		if err := wb.Set(keySymID(s.SymbolID), []byte(strconv.FormatInt(s.ID, 10))); err != nil {
			return fmt.Errorf("populate kv: set id key: %w", err)
		}
	}
	for name, ids := range seg.Labels {
		encoded, err := json.Marshal(ids)
		if err != nil {
			return fmt.Errorf("populate kv: encode label %s: %w", name, err)
		}
		if err := wb.Set(keyLabel(name), encoded); err != nil {
			return fmt.Errorf("populate kv: set label key: %w", err)
		}
	}
	for _, m := range seg.Metrics {
		encoded, err := json.Marshal(metricTriple{FanIn: m.FanIn, FanOut: m.FanOut, Complexity: m.CyclomaticComplexity})
		if err != nil {
			return fmt.Errorf("populate kv: encode metrics: %w", err)
		}
		if err := wb.Set(keyMetric(m.SymbolID), encoded); err != nil {
			return fmt.Errorf("populate kv: set metric key: %w", err)
		}
	}
	return wb.Flush()
}

// completeFQNs scans keys under kvPrefixFQN whose simple FQN starts with
// search, returning the full simple FQNs (not just the unmatched suffix)
// in the KV store's natural byte order, capped at limit (<=0 unlimited).
func completeFQNs(db *badger.DB, search string, limit int) ([]string, error) {
	scanPrefix := kvPrefixFQN + search
	var out []string
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(scanPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek([]byte(scanPrefix)); it.Valid(); it.Next() {
			if limit > 0 && len(out) >= limit {
				break
			}
			key := string(it.Item().Key())
			out = append(out, key[len(kvPrefixFQN):])
		}
		return nil
	})
	return out, err
}

func kvGet(db *badger.DB, key []byte) ([]byte, bool, error) {
	var val []byte
	found := false
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return val, found, nil
}
