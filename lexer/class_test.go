package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oarkflow/goregex/errs"
	"github.com/oarkflow/goregex/lexer"
)

func foldPattern(t *testing.T, pattern string) *lexer.List {
	t.Helper()
	pool := lexer.NewPool(64)
	lexed, err := lexer.Lex(pattern, pool, zap.NewNop())
	require.NoError(t, err)
	folded, err := lexer.FoldClasses(lexed, pool)
	require.NoError(t, err)
	return folded
}

func TestFoldClassesPositive(t *testing.T) {
	list := foldPattern(t, "[0-9a]")
	require.Equal(t, 1, list.Len())
	cls := list.At(0)
	assert.Equal(t, lexer.CCLASS, cls.Kind)

	var members []lexer.Kind
	for m := cls.Next; m != nil; m = m.Next {
		members = append(members, m.Kind)
	}
	assert.Equal(t, []lexer.Kind{lexer.RANGE, lexer.CHAR}, members)
}

func TestFoldClassesNegated(t *testing.T) {
	list := foldPattern(t, "[^0-9]")
	require.Equal(t, 1, list.Len())
	assert.Equal(t, lexer.CCLASS_NEGATED, list.At(0).Kind)
}

func TestFoldClassesSurroundingTokensUntouched(t *testing.T) {
	list := foldPattern(t, "a[0-9]b")
	require.Equal(t, 3, list.Len())
	assert.Equal(t, lexer.CHAR, list.At(0).Kind)
	assert.Equal(t, lexer.CCLASS, list.At(1).Kind)
	assert.Equal(t, lexer.CHAR, list.At(2).Kind)
}

func TestFoldClassesUnmatchedOpenBracket(t *testing.T) {
	pool := lexer.NewPool(8)
	lexed, err := lexer.Lex("a[", pool, zap.NewNop())
	require.NoError(t, err)
	_, err = lexer.FoldClasses(lexed, pool)
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.MalformedClass, e.Kind)
}

func TestFoldClassesUnmatchedCloseBracket(t *testing.T) {
	pool := lexer.NewPool(8)
	lexed, err := lexer.Lex("a]", pool, zap.NewNop())
	require.NoError(t, err)
	_, err = lexer.FoldClasses(lexed, pool)
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.MalformedClass, e.Kind)
}

func TestFoldClassesCaretPastOpeningStaysMember(t *testing.T) {
	list := foldPattern(t, "[a^b]")
	require.Equal(t, 1, list.Len())
	cls := list.At(0)
	assert.Equal(t, lexer.CCLASS, cls.Kind) // not negated: '^' isn't first

	var members []lexer.Kind
	for m := cls.Next; m != nil; m = m.Next {
		members = append(members, m.Kind)
	}
	assert.Equal(t, []lexer.Kind{lexer.CHAR, lexer.CARET, lexer.CHAR}, members)
	// A bare CARET member matches nothing per §4.2's open-question resolution.
	assert.False(t, members[1] == lexer.CARET && cls.Next.Next.Accepts('^'))
}
