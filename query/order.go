package query

import "sort"

// Candidate is one scored/filtered record, backend-agnostic enough to
// sort: the backend attaches its own record via Payload and reads it back
// off the sorted slice.
type Candidate struct {
	Name       string
	Score      int
	FilePath   string
	ByteStart  int
	FanIn      int
	FanOut     int
	Complexity int
	Depth      int
	Payload    any
}

// Sort orders candidates in place per order. For OrderRelevance, ties are
// broken by (a) smaller |name|-|q|, (b) lexicographic name, (c) file path,
// (d) byte_start -- q is the normalized query string driving the current
// call's relevance scoring.
func Sort(candidates []Candidate, order Order, q string) {
	switch order {
	case OrderPosition:
		sort.SliceStable(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if a.FilePath != b.FilePath {
				return a.FilePath < b.FilePath
			}
			return a.ByteStart < b.ByteStart
		})
	case OrderFanIn:
		sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].FanIn > candidates[j].FanIn })
	case OrderFanOut:
		sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].FanOut > candidates[j].FanOut })
	case OrderComplexity:
		sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Complexity > candidates[j].Complexity })
	case OrderDepth:
		sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Depth > candidates[j].Depth })
	default: // OrderRelevance
		sort.SliceStable(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if a.Score != b.Score {
				return a.Score > b.Score
			}
			da, db := abs(len(a.Name)-len(q)), abs(len(b.Name)-len(q))
			if da != db {
				return da < db
			}
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			if a.FilePath != b.FilePath {
				return a.FilePath < b.FilePath
			}
			return a.ByteStart < b.ByteStart
		})
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Page applies limit, returning the retained slice, the pre-truncation
// count, and whether truncation occurred.
func Page(candidates []Candidate, limit int) (page []Candidate, totalCount int, partial bool) {
	totalCount = len(candidates)
	if limit <= 0 || limit >= totalCount {
		return candidates, totalCount, false
	}
	return candidates[:limit], totalCount, true
}
