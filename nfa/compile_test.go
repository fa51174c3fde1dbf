package nfa_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oarkflow/goregex/errs"
	"github.com/oarkflow/goregex/lexer"
	"github.com/oarkflow/goregex/nfa"
	"github.com/oarkflow/goregex/postfix"
)

// graphShape is a pointer-free snapshot of a compiled NFA, suitable for
// structural comparison across two independently compiled pools: Token
// fields hold *lexer.Token pointers that are never equal across pools
// even when the patterns are identical, so shape comparisons flatten
// them down to the kind/payload they carry.
type graphShape struct {
	Kind      nfa.Kind
	TokenKind lexer.Kind
	C0, C1    byte
}

// snapshotGraph walks the graph rooted at start in a fixed Out-then-Out1
// order and returns one graphShape per state in visitation order, so two
// graphs with the same shape produce byte-for-byte equal snapshots
// regardless of which pool indices their states happen to occupy.
func snapshotGraph(pool *nfa.Pool, start int) []graphShape {
	var out []graphShape
	visited := map[int]bool{}
	var walk func(idx int)
	walk = func(idx int) {
		if idx == nfa.NoState || visited[idx] {
			return
		}
		visited[idx] = true
		s := pool.Get(idx)
		shape := graphShape{Kind: s.Kind}
		if s.Token != nil {
			shape.TokenKind = s.Token.Kind
			shape.C0 = s.Token.C0
			shape.C1 = s.Token.C1
		}
		out = append(out, shape)
		walk(s.Out)
		walk(s.Out1)
	}
	walk(start)
	return out
}

func compilePattern(t *testing.T, pattern string) (*nfa.Pool, int) {
	t.Helper()
	pool := lexer.NewPool(128)
	lexed, err := lexer.Lex(pattern, pool, zap.NewNop())
	require.NoError(t, err)
	folded, err := lexer.FoldClasses(lexed, pool)
	require.NoError(t, err)
	post, err := postfix.Translate(folded, pool, zap.NewNop())
	require.NoError(t, err)
	states := nfa.NewPool(256)
	start, err := nfa.Compile(post, states, 64, 128, zap.NewNop())
	require.NoError(t, err)
	return states, start
}

func TestCompileLiteralConcat(t *testing.T) {
	states, start := compilePattern(t, "ab")
	s0 := states.Get(start)
	require.Equal(t, nfa.NONE, s0.Kind)
	assert.Equal(t, lexer.CHAR, s0.Token.Kind)
	assert.Equal(t, byte('a'), s0.Token.C0)

	s1 := states.Get(s0.Out)
	assert.Equal(t, lexer.CHAR, s1.Token.Kind)
	assert.Equal(t, byte('b'), s1.Token.C0)

	s2 := states.Get(s1.Out)
	assert.Equal(t, nfa.MATCH, s2.Kind)
}

func TestCompileStarEntryIsSplit(t *testing.T) {
	states, start := compilePattern(t, "a*")
	s0 := states.Get(start)
	// Per the Design Notes resolution, '*' must be skippable: its entry
	// is the SPLIT, not the body's own consuming state.
	require.Equal(t, nfa.SPLIT, s0.Kind)
}

func TestCompilePlusEntryIsBodyStart(t *testing.T) {
	states, start := compilePattern(t, "a+")
	s0 := states.Get(start)
	// '+' must run its body at least once before the split is reachable.
	require.Equal(t, nfa.NONE, s0.Kind)
	assert.Equal(t, lexer.CHAR, s0.Token.Kind)
}

func TestCompileAlternationSplitsToBothBranches(t *testing.T) {
	states, start := compilePattern(t, "a|b")
	s0 := states.Get(start)
	require.Equal(t, nfa.SPLIT, s0.Kind)
	left := states.Get(s0.Out)
	right := states.Get(s0.Out1)
	assert.Equal(t, byte('a'), left.Token.C0)
	assert.Equal(t, byte('b'), right.Token.C0)
}

func TestCompileEndsInExactlyOneMatchState(t *testing.T) {
	states, start := compilePattern(t, "a(b|c)*d")
	matches := 0
	visited := map[int]bool{}
	var walk func(idx int)
	walk = func(idx int) {
		if idx == nfa.NoState || visited[idx] {
			return
		}
		visited[idx] = true
		s := states.Get(idx)
		if s.Kind == nfa.MATCH {
			matches++
			return
		}
		walk(s.Out)
		walk(s.Out1)
	}
	walk(start)
	assert.Equal(t, 1, matches)
}

func TestCompileIsDeterministicAcrossIndependentPools(t *testing.T) {
	const pattern = "a(b|c)*[0-9]+d?"
	states1, start1 := compilePattern(t, pattern)
	states2, start2 := compilePattern(t, pattern)

	shape1 := snapshotGraph(states1, start1)
	shape2 := snapshotGraph(states2, start2)
	if diff := cmp.Diff(shape1, shape2); diff != "" {
		t.Fatalf("compiling %q twice produced different graph shapes (-first +second):\n%s", pattern, diff)
	}
}

func TestCompileStateOverflowReportsPoolExhausted(t *testing.T) {
	pool := lexer.NewPool(128)
	lexed, err := lexer.Lex("a(b|c)(d|e)(f|g)(h|i)", pool, zap.NewNop())
	require.NoError(t, err)
	folded, err := lexer.FoldClasses(lexed, pool)
	require.NoError(t, err)
	post, err := postfix.Translate(folded, pool, zap.NewNop())
	require.NoError(t, err)

	states := nfa.NewPool(3) // deliberately too small
	_, err = nfa.Compile(post, states, 16, 32, zap.NewNop())
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.PoolExhausted, e.Kind)
}
