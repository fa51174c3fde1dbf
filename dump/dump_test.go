package dump_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oarkflow/goregex/dump"
	"github.com/oarkflow/goregex/lexer"
	"github.com/oarkflow/goregex/nfa"
	"github.com/oarkflow/goregex/postfix"
)

func TestSprintRendersLiteralsAndClasses(t *testing.T) {
	pool := lexer.NewPool(64)
	lexed, err := lexer.Lex("a[0-9]+", pool, zap.NewNop())
	require.NoError(t, err)
	folded, err := lexer.FoldClasses(lexed, pool)
	require.NoError(t, err)

	out := dump.Sprint(folded)
	assert.Equal(t, "a[0-9]+", out)
}

func TestDumpGraphTerminatesOnCycles(t *testing.T) {
	pool := lexer.NewPool(64)
	lexed, err := lexer.Lex("a*", pool, zap.NewNop())
	require.NoError(t, err)
	folded, err := lexer.FoldClasses(lexed, pool)
	require.NoError(t, err)
	post, err := postfix.Translate(folded, pool, zap.NewNop())
	require.NoError(t, err)

	states := nfa.NewPool(32)
	start, err := nfa.Compile(post, states, 16, 32, zap.NewNop())
	require.NoError(t, err)

	out := dump.DumpGraph(states, start)
	require.NotEmpty(t, out)
	assert.True(t, strings.Contains(out, "SPLIT"))
	assert.True(t, strings.Contains(out, "MATCH"))
	assert.True(t, strings.Contains(out, "visited"))
}
