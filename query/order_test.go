package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort_RelevanceBreaksTiesByNameLengthThenLexThenPosition(t *testing.T) {
	cands := []Candidate{
		{Name: "fooz", Score: 80, FilePath: "b.go", ByteStart: 5},
		{Name: "foo", Score: 80, FilePath: "a.go", ByteStart: 1},
		{Name: "fooa", Score: 80, FilePath: "a.go", ByteStart: 2},
	}
	Sort(cands, OrderRelevance, "foo")
	require.Len(t, cands, 3)
	assert.Equal(t, "foo", cands[0].Name) // exact length match wins tie
}

func TestSort_PositionOrdersByPathThenByteStart(t *testing.T) {
	cands := []Candidate{
		{Name: "b", FilePath: "z.go", ByteStart: 1},
		{Name: "a", FilePath: "a.go", ByteStart: 9},
		{Name: "c", FilePath: "a.go", ByteStart: 2},
	}
	Sort(cands, OrderPosition, "")
	assert.Equal(t, []string{"c", "a", "b"}, []string{cands[0].Name, cands[1].Name, cands[2].Name})
}

func TestSort_FanInDescending(t *testing.T) {
	cands := []Candidate{{Name: "low", FanIn: 1}, {Name: "high", FanIn: 9}}
	Sort(cands, OrderFanIn, "")
	assert.Equal(t, "high", cands[0].Name)
}

func TestPage_TruncatesAndReportsTotals(t *testing.T) {
	cands := []Candidate{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	page, total, partial := Page(cands, 2)
	assert.Len(t, page, 2)
	assert.Equal(t, 3, total)
	assert.True(t, partial)
}

func TestPage_NoLimitReturnsAll(t *testing.T) {
	cands := []Candidate{{Name: "a"}, {Name: "b"}}
	page, total, partial := Page(cands, 0)
	assert.Len(t, page, 2)
	assert.Equal(t, 2, total)
	assert.False(t, partial)
}
