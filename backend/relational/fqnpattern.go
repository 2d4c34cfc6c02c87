package relational

import (
	"regexp"
	"strings"
)

// fqnPatternMatch implements the FQN-pattern filter's "substring with
// wildcard semantics": '*' matches any run of characters and everything
// else must match literally. The generated regex is never anchored, so a
// pattern matches anywhere in the FQN whether or not it starts or ends
// with '*'.
func fqnPatternMatch(pattern, fqn string) bool {
	if pattern == "" {
		return true
	}
	var b strings.Builder
	for _, part := range strings.Split(pattern, "*") {
		b.WriteString(regexp.QuoteMeta(part))
		b.WriteString(".*")
	}
	reSrc := strings.TrimSuffix(b.String(), ".*")
	re, err := regexp.Compile(reSrc)
	if err != nil {
		return strings.Contains(fqn, pattern)
	}
	return re.MatchString(fqn)
}
