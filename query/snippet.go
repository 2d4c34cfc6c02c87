package query

import "github.com/jward/codegraph/safeslice"

// ExtractSnippet extracts [byteStart, byteEnd) from content, truncating to
// maxBytes on a UTF-8 boundary if the span exceeds it. maxBytes <= 0 means
// unbounded.
func ExtractSnippet(content []byte, byteStart, byteEnd, maxBytes int) (text string, truncated bool) {
	r := safeslice.Slice(content, byteStart, byteEnd)
	b := r.Bytes
	if maxBytes > 0 {
		b, truncated = safeslice.TruncateToByteLimit(b, maxBytes)
	}
	return string(b), truncated
}
