package native

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jward/codegraph/errs"
	"github.com/jward/codegraph/output"
	"github.com/jward/codegraph/timing"
)

// Complete implements prefix completion over the badger sym:fqn: side
// table, returning matches in natural byte order (spec §4.8).
func (b *Backend) Complete(ctx context.Context, prefix string, limit int) (*output.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tr := timing.New(b.timing)
	tr.Start(timing.PhaseQueryExecution)
	matches, err := completeFQNs(b.kv, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}
	tr.Stop(timing.PhaseQueryExecution)

	tr.Start(timing.PhaseOutputFormatting)
	resp := newResponse(prefix, "complete", tr, string(b.Kind()))
	resp.TotalCount = len(matches)
	for _, fqn := range matches {
		rec := output.Record{Name: fqn, SimpleFQN: fqn}
		if sym, ok := b.idx.symbolsBySimpleFQN[fqn]; ok {
			rec.SymbolID = sym.SymbolID
			rec.Kind = sym.Kind
			rec.CanonicalFQN = sym.CanonicalFQN
		}
		resp.Results = append(resp.Results, rec)
	}
	resp.Returned = len(resp.Results)
	tr.Stop(timing.PhaseOutputFormatting)
	return resp, nil
}

// Lookup resolves fqn to its symbol via one KV get of its SymbolId plus an
// in-memory index lookup by that SymbolId, per spec §4.8. A miss reports SymbolNotFound with the last FQN segment as the
// remediation's suggested completion prefix.
func (b *Backend) Lookup(ctx context.Context, fqn string) (*output.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tr := timing.New(b.timing)
	tr.Start(timing.PhaseQueryExecution)
	val, found, err := kvGet(b.kv, keyFQN(fqn))
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}
	if !found {
		return nil, errs.SymbolNotFound(fqn, "this database", lastFQNSegment(fqn))
	}
	sym, ok := b.idx.symbolsBySymID[string(val)]
	if !ok {
		return nil, errs.SymbolNotFound(fqn, "this database", lastFQNSegment(fqn))
	}
	file := b.idx.filesByID[sym.FileID]
	tr.Stop(timing.PhaseQueryExecution)

	tr.Start(timing.PhaseOutputFormatting)
	resp := newResponse(fqn, "lookup", tr, string(b.Kind()))
	rec := output.Record{
		Name: sym.Name, Kind: sym.Kind, KindNormalized: sym.KindNormalized,
		Language: sym.Language, SymbolID: sym.SymbolID,
		CanonicalFQN: sym.CanonicalFQN, DisplayFQN: sym.DisplayFQN, SimpleFQN: sym.SimpleFQN,
		ContentHash: sym.ContentHash,
	}
	if file != nil {
		rec.Span = output.Span{
			Path: file.Path, ByteStart: sym.ByteStart, ByteEnd: sym.ByteEnd,
			StartLine: sym.StartLine, StartCol: sym.StartCol, EndLine: sym.EndLine, EndCol: sym.EndCol,
		}
	}
	resp.Results = append(resp.Results, rec)
	resp.TotalCount, resp.Returned = 1, 1
	tr.Stop(timing.PhaseOutputFormatting)
	return resp, nil
}

// SearchByLabel resolves the symbols tagged with name via the badger
// label: side table. An absent label key is an empty result, not an
// error, per spec §4.8.
func (b *Backend) SearchByLabel(ctx context.Context, name string) (*output.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tr := timing.New(b.timing)
	tr.Start(timing.PhaseQueryExecution)
	val, found, err := kvGet(b.kv, keyLabel(name))
	if err != nil {
		return nil, fmt.Errorf("search by label: %w", err)
	}
	var ids []string
	if found {
		if err := json.Unmarshal(val, &ids); err != nil {
			return nil, fmt.Errorf("search by label: decode label %s: %w", name, err)
		}
	}
	tr.Stop(timing.PhaseQueryExecution)

	tr.Start(timing.PhaseOutputFormatting)
	resp := newResponse(name, "search_by_label", tr, string(b.Kind()))
	for _, id := range ids {
		sym, ok := b.idx.symbolsBySymID[id]
		if !ok {
			continue
		}
		rec := output.Record{
			Name: sym.Name, Kind: sym.Kind, KindNormalized: sym.KindNormalized,
			SymbolID: sym.SymbolID, CanonicalFQN: sym.CanonicalFQN,
			DisplayFQN: sym.DisplayFQN, SimpleFQN: sym.SimpleFQN,
		}
		if file, ok := b.idx.filesByID[sym.FileID]; ok {
			rec.Span = output.Span{
				Path: file.Path, ByteStart: sym.ByteStart, ByteEnd: sym.ByteEnd,
				StartLine: sym.StartLine, StartCol: sym.StartCol, EndLine: sym.EndLine, EndCol: sym.EndCol,
			}
		}
		resp.Results = append(resp.Results, rec)
	}
	resp.TotalCount = len(resp.Results)
	resp.Returned = len(resp.Results)
	tr.Stop(timing.PhaseOutputFormatting)
	return resp, nil
}

func lastFQNSegment(fqn string) string {
	idx := strings.LastIndexAny(fqn, ".:")
	if idx < 0 {
		return fqn
	}
	return fqn[idx+1:]
}
