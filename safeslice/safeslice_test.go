package safeslice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice_AlignedSpanUnchanged(t *testing.T) {
	b := []byte("hello world")
	r := Slice(b, 0, 5)
	assert.Equal(t, "hello", string(r.Bytes))
	assert.False(t, r.Lossy)
	assert.Equal(t, 0, r.Start)
	assert.Equal(t, 5, r.End)
}

func TestSlice_SnapsOutwardAcrossMultibyteRune(t *testing.T) {
	// "a\xF0\x9F\x98\x80b" is "a" + U+1F600 (4 bytes) + "b".
	b := []byte("a\U0001F600b")
	require.Equal(t, 6, len(b))

	// Request a span landing mid-emoji (bytes 2..3 are continuation bytes).
	r := Slice(b, 2, 3)
	assert.False(t, r.Lossy)
	// The snapped range must start at or before 2 and end at or after 3,
	// and must land on a scalar boundary (index 1 or 5).
	assert.LessOrEqual(t, r.Start, 2)
	assert.GreaterOrEqual(t, r.End, 3)
	assert.Contains(t, []int{1}, r.Start)
	assert.Contains(t, []int{5}, r.End)
}

func TestSlice_ClampsOutOfRangeEndpoints(t *testing.T) {
	b := []byte("short")
	r := Slice(b, -5, 100)
	assert.Equal(t, "short", string(r.Bytes))
}

func TestSlice_StartAfterEndClampsToEmpty(t *testing.T) {
	b := []byte("hello")
	r := Slice(b, 10, 2)
	assert.Equal(t, "", string(r.Bytes))
}

func TestSlice_InvalidUTF8FallsBackToLossyDecoding(t *testing.T) {
	b := []byte{'a', 0xFF, 0xFE, 'b'}
	r := Slice(b, 0, len(b))
	assert.True(t, r.Lossy)
	assert.Contains(t, string(r.Bytes), "a")
	assert.Contains(t, string(r.Bytes), "b")
	// Never emits nothing for invalid bytes; replacement runes appear.
	assert.Greater(t, len(r.Bytes), 2)
}

func TestTruncateToByteLimit_NoTruncationNeeded(t *testing.T) {
	b := []byte("hi")
	out, truncated := TruncateToByteLimit(b, 10)
	assert.False(t, truncated)
	assert.Equal(t, "hi", string(out))
}

func TestTruncateToByteLimit_SnapsBoundaryOnMultibyteRune(t *testing.T) {
	b := []byte("a\U0001F600b") // 6 bytes: a + 4-byte rune + b
	out, truncated := TruncateToByteLimit(b, 3)
	assert.True(t, truncated)
	// Cutting at byte 3 lands mid-rune (rune occupies bytes 1..4); must
	// snap back to 1.
	assert.Equal(t, "a", string(out))
}

func TestTruncateToByteLimit_NegativeLimitReturnsUnchanged(t *testing.T) {
	b := []byte("hello")
	out, truncated := TruncateToByteLimit(b, -1)
	assert.False(t, truncated)
	assert.Equal(t, b, out)
}
