package store

import (
	"fmt"

	"github.com/google/uuid"
)

// SymbolSetInlineThreshold mirrors query.SymbolSetInlineThreshold; kept as
// a local constant so internal/store has no import on the query package.
const SymbolSetInlineThreshold = 1000

// SymbolsBySymbolIDSet resolves a caller- or algorithm-supplied SymbolSet
// (32-hex SymbolId strings) to symbol rows. Up to and including the inline
// threshold it binds an `IN (...)` list positionally; above it, it creates a
// uniquely named TEMP TABLE, bulk-inserts the set, inner-joins, and drops
// the table before returning, so one oversized set never becomes an
// oversized positional-parameter list.
func (s *Store) SymbolsBySymbolIDSet(ids []string) ([]*Symbol, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) <= SymbolSetInlineThreshold {
		return s.symbolsBySetInline(ids)
	}
	return s.symbolsBySetTempTable(ids)
}

func (s *Store) symbolsBySetInline(ids []string) ([]*Symbol, error) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return s.querySymbols(
		"SELECT "+SymbolCols+" FROM symbols WHERE symbol_id IN ("+placeholderList(len(ids))+")",
		args...,
	)
}

func (s *Store) symbolsBySetTempTable(ids []string) ([]*Symbol, error) {
	table := "temp_symset_" + uuid.NewString()[:8]

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("symbol set temp table: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf(`CREATE TEMP TABLE %s (symbol_id TEXT NOT NULL)`, table)); err != nil {
		return nil, fmt.Errorf("symbol set temp table: create: %w", err)
	}

	const batchSize = 500
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]
		args := make([]any, len(batch))
		for i, id := range batch {
			args[i] = id
		}
		stmt := fmt.Sprintf(
			`INSERT INTO %s (symbol_id) VALUES %s`,
			table,
			valuesList(len(batch)),
		)
		if _, err := tx.Exec(stmt, args...); err != nil {
			return nil, fmt.Errorf("symbol set temp table: insert: %w", err)
		}
	}

	rows, err := tx.Query(fmt.Sprintf(
		`SELECT %s FROM symbols s JOIN %s t ON s.symbol_id = t.symbol_id`, qualifiedSymbolCols("s"), table,
	))
	if err != nil {
		return nil, fmt.Errorf("symbol set temp table: select: %w", err)
	}
	var out []*Symbol
	for rows.Next() {
		sym, err := s.scanSymbol(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("symbol set temp table: scan: %w", err)
		}
		out = append(out, sym)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if _, err := tx.Exec(fmt.Sprintf(`DROP TABLE %s`, table)); err != nil {
		return nil, fmt.Errorf("symbol set temp table: drop: %w", err)
	}
	return out, tx.Commit()
}

func valuesList(n int) string {
	out := "(?)"
	for i := 1; i < n; i++ {
		out += ",(?)"
	}
	return out
}

// qualifiedSymbolCols returns SymbolCols with each column prefixed by
// alias, for use in joined queries.
func qualifiedSymbolCols(alias string) string {
	cols := []string{
		"id", "file_id", "symbol_id", "name", "kind", "kind_normalized",
		"canonical_fqn", "display_fqn", "simple_fqn", "language",
		"byte_start", "byte_end", "start_line", "start_col", "end_line", "end_col",
		"content_hash", "parent_symbol_id",
	}
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += alias + "." + c
	}
	return out
}
