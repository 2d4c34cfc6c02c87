package store

import (
	"database/sql"
	"fmt"
)

// --- MetricsRow operations ---

func (s *Store) UpsertMetrics(m *MetricsRow) error {
	_, err := s.db.Exec(
		`INSERT INTO symbol_metrics (symbol_id, fan_in, fan_out, cyclomatic_complexity, estimated_loc, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(symbol_id) DO UPDATE SET
		   fan_in = excluded.fan_in,
		   fan_out = excluded.fan_out,
		   cyclomatic_complexity = excluded.cyclomatic_complexity,
		   estimated_loc = excluded.estimated_loc,
		   last_updated = excluded.last_updated`,
		m.SymbolID, m.FanIn, m.FanOut, m.CyclomaticComplexity, m.EstimatedLOC, m.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("upsert metrics: %w", err)
	}
	return nil
}

const metricsCols = `symbol_id, fan_in, fan_out, cyclomatic_complexity, estimated_loc, last_updated`

// MetricsBySymbol returns nil, nil when no row exists: callers must treat a
// missing metrics row as "no metrics", distinct from a zero-valued triple,
// per the metric-filter failure semantics.
func (s *Store) MetricsBySymbol(symbolID int64) (*MetricsRow, error) {
	m := &MetricsRow{}
	err := s.db.QueryRow("SELECT "+metricsCols+" FROM symbol_metrics WHERE symbol_id = ?", symbolID).Scan(
		&m.SymbolID, &m.FanIn, &m.FanOut, &m.CyclomaticComplexity, &m.EstimatedLOC, &m.LastUpdated,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("metrics by symbol: %w", err)
	}
	return m, nil
}
