package store

import (
	"database/sql"
	"fmt"
)

// --- Chunk operations ---

func (s *Store) InsertChunk(c *Chunk) error {
	_, err := s.db.Exec(
		`INSERT INTO code_chunks (sha256, symbol_id, byte_start, byte_end, file_path, content)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.SHA256, c.SymbolID, c.ByteStart, c.ByteEnd, c.FilePath, c.Content,
	)
	if err != nil {
		return fmt.Errorf("insert chunk: %w", err)
	}
	return nil
}

const chunkCols = `sha256, symbol_id, byte_start, byte_end, file_path, content`

func (s *Store) scanChunk(scanner interface{ Scan(...any) error }) (*Chunk, error) {
	c := &Chunk{}
	return c, scanner.Scan(&c.SHA256, &c.SymbolID, &c.ByteStart, &c.ByteEnd, &c.FilePath, &c.Content)
}

// ChunkBySymbol is the snippet extraction first attempt: lookup by
// symbol's byte span and file path before falling back to a raw file read.
func (s *Store) ChunkBySymbol(symbolID int64, filePath string, byteStart, byteEnd int) (*Chunk, error) {
	row := s.db.QueryRow(
		`SELECT `+chunkCols+` FROM code_chunks
		 WHERE symbol_id = ? AND file_path = ? AND byte_start = ? AND byte_end = ?`,
		symbolID, filePath, byteStart, byteEnd,
	)
	c, err := s.scanChunk(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("chunk by symbol: %w", err)
	}
	return c, nil
}

func (s *Store) ChunkBySHA256(sha string) (*Chunk, error) {
	row := s.db.QueryRow("SELECT "+chunkCols+" FROM code_chunks WHERE sha256 = ?", sha)
	c, err := s.scanChunk(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("chunk by sha256: %w", err)
	}
	return c, nil
}
