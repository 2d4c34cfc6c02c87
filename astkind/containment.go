package astkind

// Inside reports whether n has an ancestor of the given kind, walking the
// parent-id chain via lookup. Backs the `inside KIND` structural filter.
func Inside(lookup Lookup, n Node, kind string) bool {
	cur := n
	for cur.ParentID != nil {
		parent, ok := lookup.NodeByID(*cur.ParentID)
		if !ok {
			return false
		}
		if parent.Kind == kind {
			return true
		}
		cur = parent
	}
	return false
}

// ChildrenLookup resolves the direct children of a node, the access
// pattern Contains needs against the parent-id relation.
type ChildrenLookup interface {
	Lookup
	ChildrenOf(id int64) []Node
}

// Contains reports whether n has a descendant of the given kind. Backs
// the `contains KIND` structural filter.
func Contains(lookup ChildrenLookup, n Node, kind string) bool {
	for _, child := range lookup.ChildrenOf(n.ID) {
		if child.Kind == kind {
			return true
		}
		if Contains(lookup, child, kind) {
			return true
		}
	}
	return false
}
