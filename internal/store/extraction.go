package store

import (
	"database/sql"
	"fmt"
)

// --- File operations ---

func (s *Store) InsertFile(f *File) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO files (path, language, last_indexed) VALUES (?, ?, ?)",
		f.Path, f.Language, f.LastIndexed,
	)
	if err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	f.ID = id
	return id, nil
}

func (s *Store) FileByPath(path string) (*File, error) {
	f := &File{}
	err := s.db.QueryRow(
		"SELECT id, path, language, last_indexed FROM files WHERE path = ?", path,
	).Scan(&f.ID, &f.Path, &f.Language, &f.LastIndexed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by path: %w", err)
	}
	return f, nil
}

func (s *Store) FileByID(id int64) (*File, error) {
	f := &File{}
	err := s.db.QueryRow(
		"SELECT id, path, language, last_indexed FROM files WHERE id = ?", id,
	).Scan(&f.ID, &f.Path, &f.Language, &f.LastIndexed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by id: %w", err)
	}
	return f, nil
}

func (s *Store) FilesByLanguage(language string) ([]*File, error) {
	rows, err := s.db.Query(
		"SELECT id, path, language, last_indexed FROM files WHERE language = ?", language,
	)
	if err != nil {
		return nil, fmt.Errorf("files by language: %w", err)
	}
	defer rows.Close()
	var files []*File
	for rows.Next() {
		f := &File{}
		if err := rows.Scan(&f.ID, &f.Path, &f.Language, &f.LastIndexed); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// --- Symbol operations ---

func (s *Store) InsertSymbol(sym *Symbol) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO symbols (file_id, symbol_id, name, kind, kind_normalized,
			canonical_fqn, display_fqn, simple_fqn, language,
			byte_start, byte_end, start_line, start_col, end_line, end_col,
			content_hash, parent_symbol_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sym.FileID, sym.SymbolID, sym.Name, sym.Kind, sym.KindNormalized,
		sym.CanonicalFQN, sym.DisplayFQN, sym.SimpleFQN, sym.Language,
		sym.ByteStart, sym.ByteEnd, sym.StartLine, sym.StartCol, sym.EndLine, sym.EndCol,
		sym.ContentHash, sym.ParentSymbolID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert symbol: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	sym.ID = id
	return id, nil
}

func (s *Store) scanSymbol(scanner interface{ Scan(...any) error }) (*Symbol, error) {
	sym := &Symbol{}
	err := scanner.Scan(
		&sym.ID, &sym.FileID, &sym.SymbolID, &sym.Name, &sym.Kind, &sym.KindNormalized,
		&sym.CanonicalFQN, &sym.DisplayFQN, &sym.SimpleFQN, &sym.Language,
		&sym.ByteStart, &sym.ByteEnd, &sym.StartLine, &sym.StartCol, &sym.EndLine, &sym.EndCol,
		&sym.ContentHash, &sym.ParentSymbolID,
	)
	if err != nil {
		return nil, err
	}
	return sym, nil
}

// ScanSymbolRow scans a single row into a Symbol. Exported for use by the
// query core's dynamic SQL construction.
func (s *Store) ScanSymbolRow(scanner interface{ Scan(...any) error }) (*Symbol, error) {
	return s.scanSymbol(scanner)
}

// SymbolCols is the column list for symbol queries, exported for use by the
// query core's dynamic SQL construction.
const SymbolCols = `id, file_id, symbol_id, name, kind, kind_normalized,
	canonical_fqn, display_fqn, simple_fqn, language,
	byte_start, byte_end, start_line, start_col, end_line, end_col,
	content_hash, parent_symbol_id`

func (s *Store) querySymbols(query string, args ...any) ([]*Symbol, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var symbols []*Symbol
	for rows.Next() {
		sym, err := s.scanSymbol(rows)
		if err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

func (s *Store) SymbolByID(id int64) (*Symbol, error) {
	row := s.db.QueryRow("SELECT "+SymbolCols+" FROM symbols WHERE id = ?", id)
	sym, err := s.scanSymbol(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("symbol by id: %w", err)
	}
	return sym, nil
}

func (s *Store) SymbolBySymbolID(symbolID string) (*Symbol, error) {
	row := s.db.QueryRow("SELECT "+SymbolCols+" FROM symbols WHERE symbol_id = ?", symbolID)
	sym, err := s.scanSymbol(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("symbol by symbol id: %w", err)
	}
	return sym, nil
}

func (s *Store) SymbolByCanonicalFQN(fqn string) (*Symbol, error) {
	row := s.db.QueryRow("SELECT "+SymbolCols+" FROM symbols WHERE canonical_fqn = ?", fqn)
	sym, err := s.scanSymbol(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("symbol by canonical fqn: %w", err)
	}
	return sym, nil
}

func (s *Store) SymbolsByFile(fileID int64) ([]*Symbol, error) {
	return s.querySymbols("SELECT "+SymbolCols+" FROM symbols WHERE file_id = ?", fileID)
}

func (s *Store) SymbolsByName(name string) ([]*Symbol, error) {
	return s.querySymbols("SELECT "+SymbolCols+" FROM symbols WHERE name = ?", name)
}

func (s *Store) SymbolsByKind(kind string) ([]*Symbol, error) {
	return s.querySymbols("SELECT "+SymbolCols+" FROM symbols WHERE kind = ?", kind)
}

func (s *Store) SymbolChildren(symbolID int64) ([]*Symbol, error) {
	return s.querySymbols("SELECT "+SymbolCols+" FROM symbols WHERE parent_symbol_id = ?", symbolID)
}

// SymbolsByNamePrefix backs substring/prefix candidate expansion in the
// query core when a regex was not requested.
func (s *Store) SymbolsByNamePrefix(prefix string, limit int) ([]*Symbol, error) {
	return s.querySymbols(
		"SELECT "+SymbolCols+" FROM symbols WHERE name LIKE ? ESCAPE '\\' ORDER BY name LIMIT ?",
		escapeLike(prefix)+"%", limit,
	)
}

// SymbolsByNameSubstring backs arbitrary-substring candidate expansion.
func (s *Store) SymbolsByNameSubstring(substr string, limit int) ([]*Symbol, error) {
	return s.querySymbols(
		"SELECT "+SymbolCols+" FROM symbols WHERE name LIKE ? ESCAPE '\\' ORDER BY name LIMIT ?",
		"%"+escapeLike(substr)+"%", limit,
	)
}

// AllSymbols backs regex candidate expansion, which must evaluate the
// pattern in Go after fetching name-matching rows from the store.
func (s *Store) AllSymbols(limit int) ([]*Symbol, error) {
	return s.querySymbols("SELECT "+SymbolCols+" FROM symbols LIMIT ?", limit)
}
