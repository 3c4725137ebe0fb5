package regexlib

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDeterministic(t *testing.T, d *DFA, pattern string) {
	t.Helper()
	type key struct {
		from State
		sym  rune
	}
	seen := make(map[key]bool)
	for _, e := range d.Edges() {
		require.False(t, e.Label.IsEpsilon(), "epsilon edge in DFA of %s", pattern)
		sym, ok := e.Label.Symbol()
		require.True(t, ok, "edge label %s of %s is not one symbol", e.Label, pattern)
		k := key{e.From, sym}
		require.False(t, seen[k], "state %d has two edges on %q in %s", e.From, sym, pattern)
		seen[k] = true
	}
}

func TestBuildDFAScenarios(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"a", []string{"a"}, []string{"b", "", "aa"}},
		{"ab*c", []string{"ac", "abc", "abbbc"}, []string{"a", "abcc", "", "bc"}},
		{"a|b", []string{"a", "b"}, []string{"c", "", "ab"}},
		{"[a-c]+", []string{"a", "abc", "ccccb"}, []string{"", "d", "abd"}},
		{"(ab)?c", []string{"c", "abc"}, []string{"ab", "", "ababc"}},
	}
	for _, tt := range tests {
		c := compileOK(t, tt.pattern)
		for _, d := range []*DFA{c.DFA, c.Minimal} {
			assertDeterministic(t, d, tt.pattern)
			for _, w := range tt.accept {
				assert.True(t, dfaAccepts(d, w), "%s should accept %q", tt.pattern, w)
			}
			for _, w := range tt.reject {
				assert.False(t, dfaAccepts(d, w), "%s should reject %q", tt.pattern, w)
			}
		}
	}
}

func TestBuildDFASingleLiteral(t *testing.T) {
	c := compileOK(t, "a")
	assert.Equal(t, 2, c.DFA.NumStates())
	assert.Equal(t, State(0), c.DFA.Start())
	assert.Equal(t, []State{1}, c.DFA.Accepting())
	assert.Equal(t, State(1), c.DFA.Next(0, 'a'))
	assert.Equal(t, NoState, c.DFA.Next(0, 'b'))
	assert.Equal(t, NoState, c.DFA.Next(1, 'a'))
}

func TestBuildDFAMembersAreClosures(t *testing.T) {
	c := compileOK(t, "(a|b)*c")
	n := c.NFA
	assert.Equal(t, n.EpsilonClosure(n.Start()), c.DFA.Members(c.DFA.Start()))
	for _, s := range c.DFA.States() {
		members := c.DFA.Members(s)
		assert.Equal(t, containsState(members, n.Accept()), c.DFA.IsAccepting(s), "state %d", s)
		assert.Equal(t, n.EpsilonClosure(members...), members, "state %d is closed", s)
	}
}

func TestBuildDFAExplicitAlphabet(t *testing.T) {
	n := buildNFA(t, "a.c")
	d, err := BuildDFA(n, NewAlphabet('a', 'b', 'c'))
	require.NoError(t, err)
	assert.True(t, dfaAccepts(d, "abc"))
	assert.True(t, dfaAccepts(d, "acc"))
	assert.False(t, dfaAccepts(d, "ac"))
	assert.False(t, dfaAccepts(d, "adc"))
}

func TestBuildDFAEmptyAlphabet(t *testing.T) {
	d, err := BuildDFA(buildNFA(t, "a"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, d.NumStates())
	assert.Empty(t, d.Edges())
	assert.False(t, d.IsAccepting(d.Start()))

	d, err = BuildDFA(buildNFA(t, "a*"), nil)
	require.NoError(t, err)
	assert.True(t, d.IsAccepting(d.Start()))
}

func TestBuildDFARejectsBadAlphabet(t *testing.T) {
	n := buildNFA(t, "ab")
	tests := []Alphabet{
		{'b', 'a'},
		{'a', 'a'},
		{'a', 0xD800},
		{-1},
	}
	for _, alpha := range tests {
		_, err := BuildDFA(n, alpha)
		require.Error(t, err, "alphabet %v", []rune(alpha))
		assert.True(t, errors.Is(err, ErrInvalidAlphabetSymbol), "alphabet %v", []rune(alpha))
		var ae *AlphabetError
		assert.True(t, errors.As(err, &ae))
	}
}

func TestBuildDFAStateLimit(t *testing.T) {
	n := buildNFA(t, "(a|b)*a(a|b)(a|b)(a|b)")
	_, err := BuildDFA(n, NewAlphabet('a', 'b'), WithStateLimit(4))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManyStates))

	d, err := BuildDFA(n, NewAlphabet('a', 'b'), WithStateLimit(0))
	require.NoError(t, err)
	assert.Greater(t, d.NumStates(), 4)
	assert.Equal(t, 16, Minimize(d).NumStates())
}

func TestNewDFA(t *testing.T) {
	edges := []Edge{
		{From: 0, To: 1, Label: NewLabel(Char('a'))},
		{From: 1, To: 1, Label: NewLabel(Char('b'))},
	}
	d, err := NewDFA(2, 0, []State{1}, edges)
	require.NoError(t, err)
	assert.Equal(t, Alphabet{'a', 'b'}, d.Alphabet())
	assert.True(t, dfaAccepts(d, "abbb"))
	assert.False(t, dfaAccepts(d, "b"))
	assert.Nil(t, d.Members(0))
}

func TestNewDFAValidates(t *testing.T) {
	a := NewLabel(Char('a'))
	tests := []struct {
		name      string
		numStates int
		start     State
		accepting []State
		edges     []Edge
	}{
		{"no states", 0, 0, nil, nil},
		{"start out of range", 1, 1, nil, nil},
		{"accepting out of range", 1, 0, []State{3}, nil},
		{"edge out of range", 1, 0, nil, []Edge{{From: 0, To: 5, Label: a}}},
		{"epsilon edge", 2, 0, nil, []Edge{{From: 0, To: 1, Label: Epsilon}}},
		{"range edge", 2, 0, nil, []Edge{{From: 0, To: 1, Label: NewLabel(Range('a', 'c'))}}},
		{"nondeterministic", 3, 0, nil, []Edge{{From: 0, To: 1, Label: a}, {From: 0, To: 2, Label: a}}},
	}
	for _, tt := range tests {
		_, err := NewDFA(tt.numStates, tt.start, tt.accepting, tt.edges)
		require.Error(t, err, tt.name)
		assert.True(t, errors.Is(err, ErrInvalidAutomaton), "%s: %v", tt.name, err)
	}
}

func TestBuildDFALongLiteral(t *testing.T) {
	const size = 2000
	pattern := strings.Repeat("ab", size/2)
	c := compileOK(t, pattern)
	assert.Equal(t, size+1, c.DFA.NumStates())
	assert.Equal(t, size+1, c.Minimal.NumStates())
	assert.True(t, dfaAccepts(c.Minimal, pattern))
	assert.False(t, dfaAccepts(c.Minimal, pattern[1:]))
}
