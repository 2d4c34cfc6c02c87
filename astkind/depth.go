package astkind

// decisionPointKinds returns the set of grammar kinds that count as
// decision points for lang: the union of that language's loop and
// conditional kinds (if/match/while/for/loop and their analogues). Root
// declarations, which are never loops or conditionals, have depth 0.
func decisionPointKinds(lang string) map[string]bool {
	set := make(map[string]bool)
	for _, k := range ExpandKinds(lang, []string{string(ShorthandLoops), string(ShorthandConditionals)}) {
		set[k] = true
	}
	return set
}

// Depth walks n's ancestor chain via lookup and counts how many ancestors
// are decision points, per lang's grammar. Depth is defined over
// decision-point ancestors, not raw AST nesting -- a symbol ten levels
// deep in braces but inside no loop or conditional has depth 0.
func Depth(lookup Lookup, n Node, lang string) int {
	decision := decisionPointKinds(lang)
	depth := 0
	cur := n
	for cur.ParentID != nil {
		parent, ok := lookup.NodeByID(*cur.ParentID)
		if !ok {
			break
		}
		if decision[parent.Kind] {
			depth++
		}
		cur = parent
	}
	return depth
}
