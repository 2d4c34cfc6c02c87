package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for the relational backend's schema:
// files, symbols, references_, call_graph, ast_nodes, code_chunks, and
// symbol_metrics. It is also used by tests to build throwaway fixture
// databases; the query engine itself only ever reads through it.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled, ready
// for migration and writes. Used by the indexer and by tests that build
// throwaway fixture databases.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewReadOnlyStore opens dbPath read-only: the connection itself is
// SQLITE_OPEN_READONLY, and query_only additionally rejects any statement
// that would write, including an implicit schema migration. This is the
// query engine's only open path -- it never creates or migrates a
// database, only an indexer does that.
func NewReadOnlyStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?mode=ro&_query_only=1&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database read-only: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by the relational backend's
// dynamic SQL construction and transient temp-table strategy.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates all tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS files (
  id              INTEGER PRIMARY KEY,
  path            TEXT NOT NULL UNIQUE,
  language        TEXT NOT NULL,
  last_indexed    TIMESTAMP
);

CREATE TABLE IF NOT EXISTS symbols (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER REFERENCES files(id),
  symbol_id       TEXT NOT NULL UNIQUE,
  name            TEXT NOT NULL,
  kind            TEXT NOT NULL,
  kind_normalized TEXT NOT NULL,
  canonical_fqn   TEXT,
  display_fqn     TEXT,
  simple_fqn      TEXT,
  language        TEXT,
  byte_start      INTEGER NOT NULL,
  byte_end        INTEGER NOT NULL,
  start_line      INTEGER NOT NULL,
  start_col       INTEGER NOT NULL,
  end_line        INTEGER NOT NULL,
  end_col         INTEGER NOT NULL,
  content_hash    TEXT,
  parent_symbol_id INTEGER REFERENCES symbols(id)
);

CREATE TABLE IF NOT EXISTS references_ (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id),
  byte_start      INTEGER NOT NULL,
  byte_end        INTEGER NOT NULL,
  start_line      INTEGER NOT NULL,
  start_col       INTEGER NOT NULL,
  end_line        INTEGER NOT NULL,
  end_col         INTEGER NOT NULL,
  name            TEXT NOT NULL,
  target_symbol_id INTEGER REFERENCES symbols(id)
);

CREATE TABLE IF NOT EXISTS call_graph (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER REFERENCES files(id),
  byte_start      INTEGER NOT NULL,
  byte_end        INTEGER NOT NULL,
  line            INTEGER NOT NULL,
  col             INTEGER NOT NULL,
  caller_name     TEXT NOT NULL,
  caller_symbol_id INTEGER REFERENCES symbols(id),
  callee_name     TEXT NOT NULL,
  callee_symbol_id INTEGER REFERENCES symbols(id)
);

CREATE TABLE IF NOT EXISTS ast_nodes (
  id              INTEGER PRIMARY KEY,
  parent_id       INTEGER REFERENCES ast_nodes(id),
  file_id         INTEGER NOT NULL REFERENCES files(id),
  kind            TEXT NOT NULL,
  byte_start      INTEGER NOT NULL,
  byte_end        INTEGER NOT NULL,
  symbol_id       INTEGER REFERENCES symbols(id)
);

CREATE TABLE IF NOT EXISTS code_chunks (
  sha256          TEXT PRIMARY KEY,
  symbol_id       INTEGER REFERENCES symbols(id),
  byte_start      INTEGER NOT NULL,
  byte_end        INTEGER NOT NULL,
  file_path       TEXT NOT NULL,
  content         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS symbol_metrics (
  symbol_id            INTEGER PRIMARY KEY REFERENCES symbols(id),
  fan_in               INTEGER NOT NULL DEFAULT 0,
  fan_out              INTEGER NOT NULL DEFAULT 0,
  cyclomatic_complexity INTEGER NOT NULL DEFAULT 0,
  estimated_loc        INTEGER,
  last_updated         TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_files_language ON files(language);
CREATE INDEX IF NOT EXISTS idx_symbols_file ON symbols(file_id);
CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name);
CREATE INDEX IF NOT EXISTS idx_symbols_kind ON symbols(kind);
CREATE INDEX IF NOT EXISTS idx_symbols_kind_normalized ON symbols(kind_normalized);
CREATE INDEX IF NOT EXISTS idx_symbols_parent ON symbols(parent_symbol_id);
CREATE INDEX IF NOT EXISTS idx_symbols_simple_fqn ON symbols(simple_fqn);
CREATE INDEX IF NOT EXISTS idx_references_file ON references_(file_id);
CREATE INDEX IF NOT EXISTS idx_references_name ON references_(name);
CREATE INDEX IF NOT EXISTS idx_references_target ON references_(target_symbol_id);
CREATE INDEX IF NOT EXISTS idx_call_graph_caller ON call_graph(caller_symbol_id);
CREATE INDEX IF NOT EXISTS idx_call_graph_callee ON call_graph(callee_symbol_id);
CREATE INDEX IF NOT EXISTS idx_call_graph_file ON call_graph(file_id);
CREATE INDEX IF NOT EXISTS idx_ast_nodes_file ON ast_nodes(file_id);
CREATE INDEX IF NOT EXISTS idx_ast_nodes_parent ON ast_nodes(parent_id);
CREATE INDEX IF NOT EXISTS idx_ast_nodes_kind ON ast_nodes(kind);
CREATE INDEX IF NOT EXISTS idx_ast_nodes_symbol ON ast_nodes(symbol_id);
CREATE INDEX IF NOT EXISTS idx_code_chunks_symbol ON code_chunks(symbol_id);
CREATE INDEX IF NOT EXISTS idx_code_chunks_file_path ON code_chunks(file_path);
`

// DeleteFileData transactionally removes all rows touching a file, in
// reverse-dependency order so foreign key constraints hold throughout.
func (s *Store) DeleteFileData(fileID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query("SELECT id FROM symbols WHERE file_id = ?", fileID)
	if err != nil {
		return fmt.Errorf("query symbols: %w", err)
	}
	var symbolIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan symbol id: %w", err)
		}
		symbolIDs = append(symbolIDs, id)
	}
	rows.Close()

	if len(symbolIDs) > 0 {
		placeholders := placeholderList(len(symbolIDs))
		args := int64sToArgs(symbolIDs)

		for _, q := range []string{
			"DELETE FROM symbol_metrics WHERE symbol_id IN (" + placeholders + ")",
			"DELETE FROM code_chunks WHERE symbol_id IN (" + placeholders + ")",
			"DELETE FROM ast_nodes WHERE symbol_id IN (" + placeholders + ")",
			"DELETE FROM references_ WHERE target_symbol_id IN (" + placeholders + ")",
			"DELETE FROM call_graph WHERE caller_symbol_id IN (" + placeholders + ") OR callee_symbol_id IN (" + placeholders + ")",
		} {
			expandedArgs := args
			count := countSubstring(q, "("+placeholders+")")
			if count > 1 {
				expandedArgs = repeatArgs(args, count)
			}
			if _, err := tx.Exec(q, expandedArgs...); err != nil {
				return fmt.Errorf("delete dependent data for symbols: %w", err)
			}
		}
	}

	for _, q := range []string{
		"DELETE FROM ast_nodes WHERE file_id = ?",
		"DELETE FROM references_ WHERE file_id = ?",
		"DELETE FROM call_graph WHERE file_id = ?",
		"DELETE FROM symbols WHERE file_id = ?",
	} {
		if _, err := tx.Exec(q, fileID); err != nil {
			return fmt.Errorf("delete file data: %w", err)
		}
	}

	return tx.Commit()
}
