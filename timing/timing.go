// Package timing records the three phase durations the backends attach
// to a response when timing was requested: backend detection,
// query execution, and output formatting.
package timing

import (
	"time"

	"github.com/jward/codegraph/output"
)

// Phase names one of the three tracked phases.
type Phase int

const (
	PhaseBackendDetection Phase = iota
	PhaseQueryExecution
	PhaseOutputFormatting
	phaseCount
)

// Tracker accumulates phase durations for one query call. The zero value
// is not usable; use New.
type Tracker struct {
	enabled bool
	started [phaseCount]time.Time
	elapsed [phaseCount]time.Duration
}

// New returns a Tracker. When enabled is false, Start/Stop are no-ops and
// Timings returns nil, matching the spec's "absence of this block is the
// default" rule.
func New(enabled bool) *Tracker {
	return &Tracker{enabled: enabled}
}

// Start marks the beginning of phase p.
func (t *Tracker) Start(p Phase) {
	if !t.enabled {
		return
	}
	t.started[p] = time.Now()
}

// Stop records the elapsed time since the matching Start call.
func (t *Tracker) Stop(p Phase) {
	if !t.enabled || t.started[p].IsZero() {
		return
	}
	t.elapsed[p] += time.Since(t.started[p])
}

// Timings returns the recorded durations, or nil if timing was disabled.
func (t *Tracker) Timings() *output.PhaseTimings {
	if !t.enabled {
		return nil
	}
	return &output.PhaseTimings{
		BackendDetectionMs: t.elapsed[PhaseBackendDetection].Milliseconds(),
		QueryExecutionMs:   t.elapsed[PhaseQueryExecution].Milliseconds(),
		OutputFormattingMs: t.elapsed[PhaseOutputFormatting].Milliseconds(),
	}
}
