package astkind

// DefiningNode picks a symbol's defining AST node out of candidates, which
// must already be filtered to nodes whose span overlaps the symbol's span
// (see internal/store.ASTNodesOverlapping). It returns the smallest node
// by byte width; ties are broken by preferring a kind present earlier in
// preference. Exact-span matching is insufficient because indexer-recorded
// symbol spans do not always coincide exactly with AST spans.
func DefiningNode(candidates []Node, preference []string) (Node, bool) {
	if len(candidates) == 0 {
		return Node{}, false
	}
	rank := make(map[string]int, len(preference))
	for i, k := range preference {
		rank[k] = i
	}
	const unranked = 1 << 30

	best := candidates[0]
	bestWidth := width(best)
	bestRank := rankOf(rank, best.Kind, unranked)
	for _, c := range candidates[1:] {
		w := width(c)
		r := rankOf(rank, c.Kind, unranked)
		if w < bestWidth || (w == bestWidth && r < bestRank) {
			best, bestWidth, bestRank = c, w, r
		}
	}
	return best, true
}

func width(n Node) int {
	return n.ByteEnd - n.ByteStart
}

func rankOf(rank map[string]int, kind string, unranked int) int {
	if r, ok := rank[kind]; ok {
		return r
	}
	return unranked
}
