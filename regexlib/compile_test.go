package regexlib

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileScenarioErrors(t *testing.T) {
	_, err := Compile("[a-]")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRange))
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, MalformedRange, se.Kind)
	assert.Contains(t, err.Error(), `parse "[a-]"`)

	_, err = Compile("(a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnbalancedDelimiter))
}

func TestCompileDerivesAlphabet(t *testing.T) {
	c := compileOK(t, "[a-c]x|y")
	assert.Equal(t, Alphabet{'a', 'b', 'c', 'x', 'y'}, c.Alphabet)
	assert.Equal(t, c.Alphabet, c.DFA.Alphabet())
	assert.Equal(t, c.Alphabet, c.Minimal.Alphabet())
}

func TestCompileWildcardNeedsAlphabet(t *testing.T) {
	for _, p := range []string{".", "a.", "(x|.)*"} {
		_, err := Compile(p)
		require.Error(t, err, "pattern: %s", p)
		assert.True(t, errors.Is(err, ErrWildcardNeedsAlphabet), "pattern: %s", p)
	}

	c := compileOK(t, ".", WithAlphabet('x', 'y'))
	assert.True(t, dfaAccepts(c.Minimal, "x"))
	assert.True(t, dfaAccepts(c.Minimal, "y"))
	assert.False(t, dfaAccepts(c.Minimal, ""))
}

func TestCompileWithAlphabet(t *testing.T) {
	c := compileOK(t, "a.", WithAlphabet('b', 'a'))
	assert.Equal(t, Alphabet{'a', 'b'}, c.Alphabet)
	assert.True(t, dfaAccepts(c.Minimal, "aa"))
	assert.True(t, dfaAccepts(c.Minimal, "ab"))
	assert.False(t, dfaAccepts(c.Minimal, "ba"))
	assert.Equal(t, 3, c.Minimal.NumStates())
}

func TestCompileLimits(t *testing.T) {
	_, err := Compile("[a-z]", WithMaxAlphabet(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlphabetTooLarge))

	_, err = Compile("(a|b)*a(a|b)(a|b)(a|b)", WithMaxStates(8))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManyStates))

	c := compileOK(t, "[\u0100-\u2100]", WithMaxAlphabet(0))
	assert.Len(t, c.Alphabet, 0x2001)
	_, err = Compile("[\u0100-\u2100]")
	assert.True(t, errors.Is(err, ErrAlphabetTooLarge))

	_, err = Compile("((a))", WithMaxDepth(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNestingTooDeep))
}

func TestCompileLogsEveryStage(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	compileOK(t, "ab*c", WithLogger(logger))

	out := buf.String()
	for _, stage := range []string{"tokenize", "parse", "nfa", "alphabet", "dfa", "minimize"} {
		assert.Contains(t, out, `"stage":"`+stage+`"`)
	}
	assert.Contains(t, out, `"pattern":"ab*c"`)
	assert.Contains(t, out, `"ast":"ab*c"`)
}

func TestCompileIndependentRuns(t *testing.T) {
	first := compileOK(t, "(a|b)*abb")
	second := compileOK(t, "(a|b)*abb")
	assert.Equal(t, first.NFA.Edges(), second.NFA.Edges())
	assert.True(t, Isomorphic(first.Minimal, second.Minimal))
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("(") })
	assert.NotPanics(t, func() { MustCompile("a") })
}
