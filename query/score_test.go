package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_ExactMatch(t *testing.T) {
	assert.Equal(t, 100, Score("foo", "foo"))
}

func TestScore_PrefixMatchPenalizesLengthDiffCappedAtTen(t *testing.T) {
	assert.Equal(t, 80-2, Score("foobar", "foob")) // diff=2
	assert.Equal(t, 80-10, Score("foo_a_very_long_suffix_indeed", "foo"))
}

func TestScore_WordBoundarySubstring(t *testing.T) {
	assert.Equal(t, 65, Score("get_foo", "foo"))
	assert.Equal(t, 65, Score("getFoo", "Foo"))
}

func TestScore_ArbitrarySubstring(t *testing.T) {
	assert.Equal(t, 40, Score("xfooy", "foo"))
}

func TestScore_NoMatchFallback(t *testing.T) {
	assert.Equal(t, 1, Score("bar", "xyz"))
}

func TestScoreRegex_AnchoredVsUnanchored(t *testing.T) {
	assert.Equal(t, 55, ScoreRegex("^foo.*"))
	assert.Equal(t, 30, ScoreRegex("foo.*"))
}

func TestCallScore_PicksMax(t *testing.T) {
	assert.Equal(t, 80, CallScore(80, 40))
	assert.Equal(t, 80, CallScore(40, 80))
}
