package relational

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_ReturnsRequiresNativeBackend(t *testing.T) {
	b, _ := newTestBackend(t)
	_, err := b.Complete(context.Background(), "pkg.", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM-E205")
}

func TestLookup_ReturnsRequiresNativeBackend(t *testing.T) {
	b, _ := newTestBackend(t)
	_, err := b.Lookup(context.Background(), "pkg.Foo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM-E205")
}

func TestSearchByLabel_ReturnsRequiresNativeBackend(t *testing.T) {
	b, _ := newTestBackend(t)
	_, err := b.SearchByLabel(context.Background(), "entry_point")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM-E205")
}
