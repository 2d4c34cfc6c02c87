package query

import "strings"

// Score computes the deterministic [0, 100] relevance score of name
// against normalized query q.
func Score(name, q string) int {
	if name == q {
		return 100
	}
	if strings.HasPrefix(name, q) {
		penalty := len(name) - len(q)
		if penalty > 10 {
			penalty = 10
		}
		return 80 - penalty
	}
	if idx := strings.Index(name, q); idx >= 0 {
		if wordBoundaryAligned(name, idx) {
			return 65
		}
		return 40
	}
	return 1
}

// ScoreRegex scores a regex match: 55 when the pattern begins with ^, 30
// for any other pattern.
func ScoreRegex(pattern string) int {
	if strings.HasPrefix(pattern, "^") {
		return 55
	}
	return 30
}

// wordBoundaryAligned reports whether the substring match starting at idx
// in name is preceded by an underscore, hyphen, or camel-hump boundary
// (the preceding rune is lowercase and the rune at idx is uppercase), or
// begins at the start of name.
func wordBoundaryAligned(name string, idx int) bool {
	if idx == 0 {
		return true
	}
	prev := name[idx-1]
	switch prev {
	case '_', '-':
		return true
	}
	cur := name[idx]
	if isLower(prev) && isUpper(cur) {
		return true
	}
	return false
}

func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

// CallScore is max(callerScore, calleeScore), the scoring rule for call
// records.
func CallScore(callerScore, calleeScore int) int {
	if callerScore > calleeScore {
		return callerScore
	}
	return calleeScore
}
