package store

import "fmt"

// --- Reference operations ---

func (s *Store) InsertReference(ref *Reference) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO references_ (file_id, byte_start, byte_end, start_line, start_col, end_line, end_col, name, target_symbol_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ref.FileID, ref.ByteStart, ref.ByteEnd, ref.StartLine, ref.StartCol, ref.EndLine, ref.EndCol,
		ref.Name, ref.TargetSymbolID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert reference: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	ref.ID = id
	return id, nil
}

func (s *Store) scanReference(scanner interface{ Scan(...any) error }) (*Reference, error) {
	r := &Reference{}
	return r, scanner.Scan(
		&r.ID, &r.FileID, &r.ByteStart, &r.ByteEnd, &r.StartLine, &r.StartCol, &r.EndLine, &r.EndCol,
		&r.Name, &r.TargetSymbolID,
	)
}

// ReferenceCols is the column list for reference queries, exported for use
// by the query core's dynamic SQL construction.
const ReferenceCols = `id, file_id, byte_start, byte_end, start_line, start_col, end_line, end_col, name, target_symbol_id`

func (s *Store) queryReferences(query string, args ...any) ([]*Reference, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var refs []*Reference
	for rows.Next() {
		r, err := s.scanReference(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

func (s *Store) ReferencesByFile(fileID int64) ([]*Reference, error) {
	return s.queryReferences("SELECT "+ReferenceCols+" FROM references_ WHERE file_id = ?", fileID)
}

func (s *Store) ReferencesByName(name string) ([]*Reference, error) {
	return s.queryReferences("SELECT "+ReferenceCols+" FROM references_ WHERE name = ?", name)
}

func (s *Store) ReferencesByTarget(symbolID int64) ([]*Reference, error) {
	return s.queryReferences("SELECT "+ReferenceCols+" FROM references_ WHERE target_symbol_id = ?", symbolID)
}

// AllReferences backs regex candidate expansion over reference names.
func (s *Store) AllReferences(limit int) ([]*Reference, error) {
	return s.queryReferences("SELECT "+ReferenceCols+" FROM references_ LIMIT ?", limit)
}

// --- CallEdge operations ---

func (s *Store) InsertCallEdge(edge *CallEdge) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO call_graph (file_id, byte_start, byte_end, line, col, caller_name, caller_symbol_id, callee_name, callee_symbol_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		edge.FileID, edge.ByteStart, edge.ByteEnd, edge.Line, edge.Col,
		edge.CallerName, edge.CallerSymbolID, edge.CalleeName, edge.CalleeSymbolID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert call edge: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	edge.ID = id
	return id, nil
}

func (s *Store) scanCallEdge(scanner interface{ Scan(...any) error }) (*CallEdge, error) {
	e := &CallEdge{}
	return e, scanner.Scan(
		&e.ID, &e.FileID, &e.ByteStart, &e.ByteEnd, &e.Line, &e.Col,
		&e.CallerName, &e.CallerSymbolID, &e.CalleeName, &e.CalleeSymbolID,
	)
}

// CallEdgeCols is the column list for call-edge queries, exported for use
// by the query core's dynamic SQL construction.
const CallEdgeCols = `id, file_id, byte_start, byte_end, line, col, caller_name, caller_symbol_id, callee_name, callee_symbol_id`

func (s *Store) queryCallEdges(query string, args ...any) ([]*CallEdge, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var edges []*CallEdge
	for rows.Next() {
		e, err := s.scanCallEdge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan call edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// AllCallEdges returns all call graph edges. Used for bulk-loading into
// in-memory adjacency maps for transitive traversal (e.g. the algorithm
// bridge's reachability and cycle-detection inputs).
func (s *Store) AllCallEdges() ([]*CallEdge, error) {
	return s.queryCallEdges("SELECT " + CallEdgeCols + " FROM call_graph")
}

func (s *Store) CallersByCallee(calleeSymbolID int64) ([]*CallEdge, error) {
	return s.queryCallEdges(
		"SELECT "+CallEdgeCols+" FROM call_graph WHERE callee_symbol_id = ?", calleeSymbolID,
	)
}

func (s *Store) CalleesByCaller(callerSymbolID int64) ([]*CallEdge, error) {
	return s.queryCallEdges(
		"SELECT "+CallEdgeCols+" FROM call_graph WHERE caller_symbol_id = ?", callerSymbolID,
	)
}

// CallEdgesByCallerName/CallEdgesByCalleeName back search_calls candidate
// expansion, which matches on the recorded name before resolving to a
// symbol row.
func (s *Store) CallEdgesByCallerName(name string) ([]*CallEdge, error) {
	return s.queryCallEdges("SELECT "+CallEdgeCols+" FROM call_graph WHERE caller_name = ?", name)
}

func (s *Store) CallEdgesByCalleeName(name string) ([]*CallEdge, error) {
	return s.queryCallEdges("SELECT "+CallEdgeCols+" FROM call_graph WHERE callee_name = ?", name)
}

// AllCallEdgesLimit backs regex candidate expansion over caller/callee names.
func (s *Store) AllCallEdgesLimit(limit int) ([]*CallEdge, error) {
	return s.queryCallEdges("SELECT "+CallEdgeCols+" FROM call_graph LIMIT ?", limit)
}
