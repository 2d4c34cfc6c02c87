package store

import "fmt"

// --- ASTNode operations ---

func (s *Store) InsertASTNode(n *ASTNode) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO ast_nodes (parent_id, file_id, kind, byte_start, byte_end, symbol_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.ParentID, n.FileID, n.Kind, n.ByteStart, n.ByteEnd, n.SymbolID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert ast node: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	n.ID = id
	return id, nil
}

func (s *Store) scanASTNode(scanner interface{ Scan(...any) error }) (*ASTNode, error) {
	n := &ASTNode{}
	return n, scanner.Scan(&n.ID, &n.ParentID, &n.FileID, &n.Kind, &n.ByteStart, &n.ByteEnd, &n.SymbolID)
}

// ASTNodeCols is the column list for AST node queries.
const ASTNodeCols = `id, parent_id, file_id, kind, byte_start, byte_end, symbol_id`

func (s *Store) queryASTNodes(query string, args ...any) ([]*ASTNode, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var nodes []*ASTNode
	for rows.Next() {
		n, err := s.scanASTNode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ast node: %w", err)
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// ASTNodesByFile returns a file's nodes in parent-id order, the shape
// `ast(file, ...)` retrieves before in-memory parent-first reordering.
func (s *Store) ASTNodesByFile(fileID int64) ([]*ASTNode, error) {
	return s.queryASTNodes("SELECT "+ASTNodeCols+" FROM ast_nodes WHERE file_id = ? ORDER BY id", fileID)
}

// ASTNodesByKind backs find_ast(kind) across every indexed file.
func (s *Store) ASTNodesByKind(kind string) ([]*ASTNode, error) {
	return s.queryASTNodes("SELECT "+ASTNodeCols+" FROM ast_nodes WHERE kind = ?", kind)
}

// ASTNodeByID fetches one node, used while walking parent links for
// decision-depth and structural-containment computation.
func (s *Store) ASTNodeByID(id int64) (*ASTNode, error) {
	row := s.db.QueryRow("SELECT "+ASTNodeCols+" FROM ast_nodes WHERE id = ?", id)
	n, err := s.scanASTNode(row)
	if err != nil {
		return nil, fmt.Errorf("ast node by id: %w", err)
	}
	return n, nil
}

// ASTNodesOverlapping returns every node in fileID whose span overlaps
// [byteStart, byteEnd), used by the symbol<->AST defining-node join.
func (s *Store) ASTNodesOverlapping(fileID int64, byteStart, byteEnd int) ([]*ASTNode, error) {
	return s.queryASTNodes(
		`SELECT `+ASTNodeCols+` FROM ast_nodes
		 WHERE file_id = ? AND byte_start < ? AND byte_end > ?`,
		fileID, byteEnd, byteStart,
	)
}

// ASTNodeContainingPosition returns every node in fileID whose span
// contains the half-open byte offset, for `ast(file, position, ...)`.
func (s *Store) ASTNodeContainingPosition(fileID int64, pos int) ([]*ASTNode, error) {
	return s.queryASTNodes(
		`SELECT `+ASTNodeCols+` FROM ast_nodes
		 WHERE file_id = ? AND byte_start <= ? AND byte_end > ?
		 ORDER BY id`,
		fileID, pos, pos,
	)
}

// ASTNodesByParent returns the direct children of parentID, backing
// structural `contains KIND` descent.
func (s *Store) ASTNodesByParent(parentID int64) ([]*ASTNode, error) {
	return s.queryASTNodes("SELECT "+ASTNodeCols+" FROM ast_nodes WHERE parent_id = ?", parentID)
}

// HasASTNodes probes whether the AST table carries any data for fileID,
// backing the relational backend's lightweight per-call existence probe
// before adding AST joins to search_symbols.
func (s *Store) HasASTNodes(fileID int64) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM ast_nodes WHERE file_id = ?)", fileID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has ast nodes: %w", err)
	}
	return exists == 1, nil
}
