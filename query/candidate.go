package query

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jward/codegraph/errs"
)

// IsSymbolID reports whether q is a 32-lowercase-hex SymbolId, the first
// candidate-expansion check.
func IsSymbolID(q string) bool {
	if len(q) != 32 {
		return false
	}
	for _, r := range q {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}

// MinRegexByteCap is the floor for the regex byte-size limit (measured on
// the pattern text); callers may raise it but never lower it below this, per spec
// §4.6's "hard byte-size limit (>= 10000)".
const MinRegexByteCap = 10000

// CompileRegex compiles pattern, rejecting both invalid syntax and a
// pattern whose text (as re.String() returns it) is longer than maxBytes
// (which is raised to MinRegexByteCap if given lower). The size of the
// compiled program is not measured.
func CompileRegex(pattern string, maxBytes int) (*regexp.Regexp, error) {
	if maxBytes < MinRegexByteCap {
		maxBytes = MinRegexByteCap
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errs.InvalidRegex(pattern, err)
	}
	if size := len(re.String()); size > maxBytes {
		return nil, errs.RegexTooLarge(size, maxBytes)
	}
	return re, nil
}

// SubstringTiebreak orders names by the deterministic exact > prefix >
// infix tiebreak spec §4.6 requires for substring-match candidate
// expansion, before any cap is applied.
func SubstringTiebreak(names []string, q string) {
	rank := func(n string) int {
		switch {
		case n == q:
			return 0
		case strings.HasPrefix(n, q):
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
}
