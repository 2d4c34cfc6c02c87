package query

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathMatches implements the path-prefix filter. Most callers pass a plain
// directory prefix, matched with a simple HasPrefix. If the filter looks
// like a glob (contains '*', '?', or '['), it is matched as a doublestar
// pattern instead, so a caller can scope a query to e.g. "internal/**/*.go".
func PathMatches(path, filter string) bool {
	if filter == "" {
		return true
	}
	if !looksLikeGlob(filter) {
		return strings.HasPrefix(path, filter)
	}
	ok, err := doublestar.Match(filter, path)
	if err != nil {
		return strings.HasPrefix(path, filter)
	}
	return ok
}

func looksLikeGlob(s string) bool {
	return strings.ContainsAny(s, "*?[")
}
