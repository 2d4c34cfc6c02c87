// Package safeslice extracts byte ranges from source text without ever
// splitting a UTF-8 scalar, regardless of where the indexer's recorded
// span endpoints fall.
package safeslice

import "unicode/utf8"

// Result is a safely extracted byte range, possibly wider than requested
// if the endpoints needed to snap outward to scalar boundaries.
type Result struct {
	Start int
	End   int
	Bytes []byte
	// Lossy is true when b contained invalid UTF-8 and Bytes was produced
	// by best-effort lossy decoding rather than a clean boundary snap.
	Lossy bool
}

// Slice returns the smallest range [start', end') with start' <= start <=
// end <= end' whose endpoints lie on UTF-8 scalar boundaries, given bytes
// b and a requested half-open span [start, end). start and end are
// clamped to [0, len(b)].
func Slice(b []byte, start, end int) Result {
	if start < 0 {
		start = 0
	}
	if end > len(b) {
		end = len(b)
	}
	if start > end {
		start = end
	}

	if !utf8.Valid(b) {
		return Result{Start: start, End: end, Bytes: lossyFallback(b[start:end]), Lossy: true}
	}

	s := snapBackward(b, start)
	e := snapForward(b, end)
	return Result{Start: s, End: e, Bytes: append([]byte(nil), b[s:e]...)}
}

// snapBackward moves i left until it lands on a scalar boundary.
func snapBackward(b []byte, i int) int {
	for i > 0 && isContinuation(b, i) {
		i--
	}
	return i
}

// snapForward moves i right until it lands on a scalar boundary.
func snapForward(b []byte, i int) int {
	for i < len(b) && isContinuation(b, i) {
		i++
	}
	return i
}

// isContinuation reports whether byte i is a UTF-8 continuation byte
// (10xxxxxx), meaning it cannot be a scalar boundary.
func isContinuation(b []byte, i int) bool {
	if i <= 0 || i >= len(b) {
		return false
	}
	return b[i]&0xC0 == 0x80
}

// lossyFallback decodes invalid UTF-8 rune-by-rune, substituting the
// replacement character for ill-formed sequences, and flags the caller
// via Result.Lossy instead of silently returning garbage.
func lossyFallback(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		out = utf8.AppendRune(out, r)
		b = b[size:]
	}
	return out
}

// TruncateToByteLimit returns the longest prefix of b no longer than
// maxBytes that ends on a UTF-8 scalar boundary, plus whether truncation
// occurred.
func TruncateToByteLimit(b []byte, maxBytes int) ([]byte, bool) {
	if maxBytes < 0 || len(b) <= maxBytes {
		return b, false
	}
	end := snapBackward(b, maxBytes)
	return b[:end], true
}
