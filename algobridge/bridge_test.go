package algobridge

import (
	"context"
	"encoding/json"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSymbolSet_AcceptsWellFormedIDs(t *testing.T) {
	err := ValidateSymbolSet([]string{
		"0123456789abcdef0123456789abcdef",
		"ffffffffffffffffffffffffffffffff"[:32],
	})
	assert.NoError(t, err)
}

func TestValidateSymbolSet_RejectsWrongLength(t *testing.T) {
	err := ValidateSymbolSet([]string{"abc"})
	require.Error(t, err)
}

func TestValidateSymbolSet_RejectsUppercase(t *testing.T) {
	err := ValidateSymbolSet([]string{"0123456789ABCDEF0123456789abcdef"})
	require.Error(t, err)
}

func TestBuildArgs_PathsAlgorithmIncludesBounds(t *testing.T) {
	args := buildArgs(AlgoPaths, Params{Root: "abc", Target: "def"})
	joined := ""
	for _, a := range args {
		joined += a + " "
	}
	assert.Contains(t, joined, "--max-depth 100")
	assert.Contains(t, joined, "--max-paths 1000")
	assert.Contains(t, joined, "--root abc")
	assert.Contains(t, joined, "--target def")
}

func TestBuildArgs_NonPathsAlgorithmOmitsBounds(t *testing.T) {
	args := buildArgs(AlgoReachability, Params{Root: "abc"})
	for _, a := range args {
		assert.NotEqual(t, "--max-depth", a)
	}
}

func TestBuildArgs_CustomBoundsOverrideDefaults(t *testing.T) {
	args := buildArgs(AlgoPaths, Params{MaxDepth: 5, MaxPaths: 10})
	joined := ""
	for _, a := range args {
		joined += a + " "
	}
	assert.Contains(t, joined, "--max-depth 5")
	assert.Contains(t, joined, "--max-paths 10")
}

// fakeRunner lets tests stand in for the external binary without an
// actual subprocess.
func fakeRunner(stdout, stderr []byte, err error) func(context.Context, string, ...string) ([]byte, []byte, error) {
	return func(context.Context, string, ...string) ([]byte, []byte, error) {
		return stdout, stderr, err
	}
}

func TestCheckVersion_MatchReturnsNil(t *testing.T) {
	b := New("codegraph-algo", "v1.2.0")
	b.runner = fakeRunner([]byte("v1.2.0\n"), nil, nil)
	assert.NoError(t, b.CheckVersion(context.Background()))
}

func TestCheckVersion_MismatchReturnsVersionError(t *testing.T) {
	b := New("codegraph-algo", "v1.2.0")
	b.runner = fakeRunner([]byte("v0.9.0\n"), nil, nil)
	err := b.CheckVersion(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM-E402")
}

// TestRun_DecodesSetShape decodes a "symbol_ids" payload for a
// reachability call; the payload also carries "bounded_hit" (the
// path-enumeration field), so BoundedHit is checked as well.
func TestRun_DecodesSetShape(t *testing.T) {
	payload := []byte(`{"symbol_ids": ["a", "b"], "bounded_hit": true}`)

	b := New("codegraph-algo", "v1.2.0")
	b.runner = fakeRunner(payload, nil, nil)
	res, err := b.Run(context.Background(), AlgoReachability, Params{Root: "a"})
	require.NoError(t, err)
	assert.True(t, res.BoundedHit)
	assert.Equal(t, []string{"a", "b"}, res.SymbolIDs)
	assert.Empty(t, res.Supernodes)
}

// TestRun_DecodesCondensationShape decodes a literal spec §4.5
// "condensation" payload: supernodes is an array of
// {representative, members} objects, not a map.
func TestRun_DecodesCondensationShape(t *testing.T) {
	payload := []byte(`{"supernodes": [{"representative": "a", "members": ["a", "b", "c"]}]}`)

	b := New("codegraph-algo", "v1.2.0")
	b.runner = fakeRunner(payload, nil, nil)
	res, err := b.Run(context.Background(), AlgoSCC, Params{})
	require.NoError(t, err)
	require.Len(t, res.Supernodes, 1)
	assert.Equal(t, "a", res.Supernodes[0].Representative)
	assert.Equal(t, []string{"a", "b", "c"}, res.Supernodes[0].Members)
	assert.Empty(t, res.SymbolIDs)
}

func TestFind_SingleMatchReturnsSymbolID(t *testing.T) {
	payload, _ := json.Marshal([]string{"abc123"})
	b := New("codegraph-algo", "v1.2.0")
	b.runner = fakeRunner(payload, nil, nil)
	id, err := b.Find(context.Background(), "pkg.Foo")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
}

func TestFind_AmbiguousReturnsAmbiguousSymbolError(t *testing.T) {
	payload, _ := json.Marshal([]string{"abc123", "def456"})
	b := New("codegraph-algo", "v1.2.0")
	b.runner = fakeRunner(payload, nil, nil)
	_, err := b.Find(context.Background(), "Foo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM-E102")
}

func TestAST_DecodesNodeList(t *testing.T) {
	payload, _ := json.Marshal([]ASTNode{{Kind: "function_declaration", FilePath: "a.go", ByteStart: 0, ByteEnd: 10}})
	b := New("codegraph-algo", "v1.2.0")
	b.runner = fakeRunner(payload, nil, nil)
	nodes, err := b.AST(context.Background(), "a.go", nil)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "function_declaration", nodes[0].Kind)
}

func TestAST_ToolNotFoundWrapsError(t *testing.T) {
	b := New("codegraph-algo", "v1.2.0")
	b.runner = fakeRunner(nil, nil, &exec.Error{Name: "codegraph-algo", Err: exec.ErrNotFound})
	_, err := b.AST(context.Background(), "a.go", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM-E401")
}

func TestFindAST_DecodesNodeList(t *testing.T) {
	payload, _ := json.Marshal([]ASTNode{{Kind: "call_expression", FilePath: "b.go"}})
	b := New("codegraph-algo", "v1.2.0")
	b.runner = fakeRunner(payload, nil, nil)
	nodes, err := b.FindAST(context.Background(), "call_expression")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "b.go", nodes[0].FilePath)
}

func TestFind_NoMatchReturnsSymbolNotFound(t *testing.T) {
	payload, _ := json.Marshal([]string{})
	b := New("codegraph-algo", "v1.2.0")
	b.runner = fakeRunner(payload, nil, nil)
	_, err := b.Find(context.Background(), "Foo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM-E301")
}
