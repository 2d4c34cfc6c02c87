// Package algobridge delegates whole-graph algorithms -- reachability,
// dead-code, SCC/condensation, cycle detection, slicing, bounded path
// enumeration -- to an external graph-algorithm binary invoked as a
// subprocess, since the query core itself only ever walks local
// relations (parent-id, caller/callee edges), never a whole-graph
// traversal.
package algobridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/jward/codegraph/errs"
)

// Algorithm names the bridge's supported operations.
type Algorithm string

const (
	AlgoReachability  Algorithm = "reachability"
	AlgoDeadCode      Algorithm = "dead_code"
	AlgoSCC           Algorithm = "scc"
	AlgoCycleMembers  Algorithm = "cycle_members"
	AlgoBackwardSlice Algorithm = "backward_slice"
	AlgoForwardSlice  Algorithm = "forward_slice"
	AlgoPaths         Algorithm = "paths"
)

const (
	DefaultMaxDepth = 100
	DefaultMaxPaths = 1000
)

// Bridge wraps one external algorithm binary. CheckVersion verifies that
// the binary reports the required version each time it is called; Run and
// the other methods do not run that check themselves.
type Bridge struct {
	binPath     string
	wantVersion string
	runner      func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// New returns a Bridge that invokes binPath, requiring it to report
// wantVersion on a version handshake.
func New(binPath, wantVersion string) *Bridge {
	return &Bridge{binPath: binPath, wantVersion: wantVersion, runner: runSubprocess}
}

func runSubprocess(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// CheckVersion verifies the tool exists and reports a compatible version.
func (b *Bridge) CheckVersion(ctx context.Context) error {
	stdout, stderr, err := b.runner(ctx, b.binPath, "version")
	if err != nil {
		if isNotFound(err) {
			return errs.AlgorithmToolNotFound(b.binPath)
		}
		return errs.AlgorithmFailed(string(stdout), string(stderr))
	}
	got := bytes.TrimSpace(stdout)
	if string(got) != b.wantVersion {
		return errs.AlgorithmVersionMismatch(string(got), b.wantVersion)
	}
	return nil
}

func isNotFound(err error) bool {
	var perr *exec.Error
	return errors.As(err, &perr)
}

// Params are the algorithm-specific parameters for one Run call.
type Params struct {
	Root     string // SymbolId or, combined with FQNHint, a name to resolve
	FQNHint  string
	MaxDepth int
	MaxPaths int
	Target   string // second endpoint, for slicing / path enumeration
}

// Supernode is one condensation group: a representative SymbolId plus the
// SymbolIds it stands in for.
type Supernode struct {
	Representative string   `json:"representative"`
	Members        []string `json:"members"`
}

// Result is the decoded output of one algorithm invocation. The tool emits
// one of three shapes depending on algo (spec §4.5): a set or a path
// enumeration populate SymbolIDs (the latter also BoundedHit); a
// condensation populates Supernodes instead.
type Result struct {
	SymbolIDs  []string    `json:"symbol_ids,omitempty"`
	Supernodes []Supernode `json:"supernodes,omitempty"`
	BoundedHit bool        `json:"bounded_hit,omitempty"`
}

// Run invokes algo with params, decoding its JSON-output directive into a
// Result.
func (b *Bridge) Run(ctx context.Context, algo Algorithm, p Params) (*Result, error) {
	args := buildArgs(algo, p)
	stdout, stderr, err := b.runner(ctx, b.binPath, args...)
	if err != nil {
		return nil, errs.AlgorithmFailed(string(stdout), string(stderr))
	}
	var res Result
	if err := json.Unmarshal(stdout, &res); err != nil {
		return nil, errs.AlgorithmFailed(string(stdout), fmt.Sprintf("invalid json output: %v", err))
	}
	return &res, nil
}

func buildArgs(algo Algorithm, p Params) []string {
	args := []string{string(algo), "--json"}
	if p.Root != "" {
		args = append(args, "--root", p.Root)
	}
	if p.FQNHint != "" {
		args = append(args, "--fqn-hint", p.FQNHint)
	}
	if p.Target != "" {
		args = append(args, "--target", p.Target)
	}
	maxDepth := p.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	maxPaths := p.MaxPaths
	if maxPaths <= 0 {
		maxPaths = DefaultMaxPaths
	}
	if algo == AlgoPaths {
		args = append(args, "--max-depth", strconv.Itoa(maxDepth), "--max-paths", strconv.Itoa(maxPaths))
	}
	return args
}

// ASTNode is one node in an ast/find_ast subprocess response.
type ASTNode struct {
	Kind      string `json:"kind"`
	FilePath  string `json:"file_path"`
	ByteStart int    `json:"byte_start"`
	ByteEnd   int    `json:"byte_end"`
	ParentID  int64  `json:"parent_id"`
}

// AST invokes the tool's `ast` subcommand for one file, in parent->child
// order. Used by the relational backend, whose schema has no tree-walk API
// of its own (spec §4.7). The limit argument is not universally supported
// by the tool, so callers truncate the returned slice themselves.
func (b *Bridge) AST(ctx context.Context, file string, position *int) ([]ASTNode, error) {
	args := []string{"ast", "--json", "--file", file}
	if position != nil {
		args = append(args, "--position", strconv.Itoa(*position))
	}
	return b.runASTCommand(ctx, args)
}

// FindAST invokes the tool's `find_ast` subcommand across every indexed
// file.
func (b *Bridge) FindAST(ctx context.Context, kind string) ([]ASTNode, error) {
	return b.runASTCommand(ctx, []string{"find_ast", "--json", "--kind", kind})
}

func (b *Bridge) runASTCommand(ctx context.Context, args []string) ([]ASTNode, error) {
	stdout, stderr, err := b.runner(ctx, b.binPath, args...)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.AlgorithmToolNotFound(b.binPath)
		}
		return nil, errs.AlgorithmFailed(string(stdout), string(stderr))
	}
	var nodes []ASTNode
	if err := json.Unmarshal(stdout, &nodes); err != nil {
		return nil, errs.AlgorithmFailed(string(stdout), fmt.Sprintf("invalid json output: %v", err))
	}
	return nodes, nil
}

// Find resolves an FQN hint to a SymbolId via the tool's `find`
// subcommand, reporting ambiguity as errs.AmbiguousSymbol rather than
// picking arbitrarily.
func (b *Bridge) Find(ctx context.Context, fqn string) (string, error) {
	stdout, stderr, err := b.runner(ctx, b.binPath, "find", "--json", "--fqn", fqn)
	if err != nil {
		return "", errs.AlgorithmFailed(string(stdout), string(stderr))
	}
	var matches []string
	if err := json.Unmarshal(stdout, &matches); err != nil {
		return "", errs.AlgorithmFailed(string(stdout), fmt.Sprintf("invalid json output: %v", err))
	}
	switch len(matches) {
	case 0:
		return "", errs.SymbolNotFound(fqn, b.binPath, fqn)
	case 1:
		return matches[0], nil
	default:
		return "", errs.AmbiguousSymbol(fqn, len(matches))
	}
}
