package regex_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	regex "github.com/oarkflow/goregex"
)

func unmarker(s string) string {
	if s == "(empty)" {
		return ""
	}
	return s
}

func TestScenarios(t *testing.T) {
	ar, err := txtar.ParseFile("testdata/scenarios.txtar")
	require.NoError(t, err)

	for _, f := range ar.Files {
		f := f
		t.Run(f.Name, func(t *testing.T) {
			lines := strings.Split(strings.TrimRight(string(f.Data), "\n"), "\n")
			require.Len(t, lines, 3, "scenario file must have exactly 3 lines")
			pattern, input, expected := lines[0], unmarker(lines[1]), lines[2]

			p, err := regex.Compile(pattern)
			if strings.HasPrefix(expected, "Err ") {
				require.Error(t, err)
				e, ok := regex.AsError(err)
				require.True(t, ok)
				assert.Equal(t, strings.TrimPrefix(expected, "Err "), e.Kind.String())
				return
			}
			require.NoError(t, err)

			res, err := p.MatchString(input)
			require.NoError(t, err)

			switch {
			case expected == "NoMatch":
				assert.False(t, res.Matched(), "expected no match")
			case strings.HasPrefix(expected, "Ok "):
				require.True(t, res.Matched(), "expected a match")
				want := unmarker(strings.TrimPrefix(expected, "Ok "))
				assert.Equal(t, want, string(res.Bytes))
			default:
				t.Fatalf("unrecognized expectation %q", expected)
			}
		})
	}
}

func TestCompileReportsSyntaxErrorForReservedTokens(t *testing.T) {
	for _, pattern := range []string{"a$", `a\`, "a{2,3}"} {
		_, err := regex.Compile(pattern)
		require.Error(t, err, pattern)
		e, ok := regex.AsError(err)
		require.True(t, ok, pattern)
		assert.Equal(t, regex.SyntaxError, e.Kind, pattern)
	}
}

func TestPatternIsReusableAcrossMatches(t *testing.T) {
	p, err := regex.Compile(`[a-z]+`)
	require.NoError(t, err)

	for _, input := range []string{"hello world", "foo", "123"} {
		_, err := p.MatchString(input)
		require.NoError(t, err)
	}
}

func TestBufferFullSurfacesAsError(t *testing.T) {
	p, err := regex.Compile("a+")
	require.NoError(t, err)
	res, err := p.Match("aaaaaa", make([]byte, 2))
	require.Error(t, err)
	e, ok := regex.AsError(err)
	require.True(t, ok)
	assert.Equal(t, regex.BufferFull, e.Kind)
	// The partial prefix consumed before the buffer filled up is still
	// reported alongside the error, per §7.
	assert.Equal(t, "aa", string(res.Bytes))
}
