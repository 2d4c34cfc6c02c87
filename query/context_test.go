package query

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContext_ReturnsSurroundingLines(t *testing.T) {
	content := []byte("line0\nline1\nline2\nline3\nline4\n")
	// byteStart inside "line2" (offset 12).
	got := ExtractContext(content, 12, ContextOptions{LinesBefore: 1, LinesAfter: 1, MaxLines: 10})
	assert.Equal(t, []string{"line1"}, got.LinesBefore)
	assert.Equal(t, []string{"line3"}, got.LinesAfter)
	assert.False(t, got.Truncated)
}

func TestExtractContext_CapsCombinedLinesAndFlagsTruncation(t *testing.T) {
	content := []byte("l0\nl1\nl2\nl3\nl4\nl5\nl6\n")
	got := ExtractContext(content, 9, ContextOptions{LinesBefore: 3, LinesAfter: 3, MaxLines: 3})
	assert.True(t, got.Truncated)
	assert.LessOrEqual(t, len(got.LinesBefore)+len(got.LinesAfter)+1, 3)
}

func TestExtractContext_ClampsAtFileBoundaries(t *testing.T) {
	content := []byte("only\n")
	got := ExtractContext(content, 0, ContextOptions{LinesBefore: 5, LinesAfter: 5, MaxLines: 100})
	assert.Empty(t, got.LinesBefore)
	assert.False(t, got.Truncated)
}

func TestFileCache_CachesAcrossCalls(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.go")
	require.NoError(t, os.WriteFile(path, []byte("package x\n"), 0o644))

	c := NewFileCache()
	b1, err := c.Get(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))
	b2, err := c.Get(path)
	require.NoError(t, err)
	assert.Equal(t, b1, b2) // second read hits cache, not the mutated file
}
