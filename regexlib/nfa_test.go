package regexlib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildNFA(t *testing.T, pattern string) *NFA {
	t.Helper()
	return BuildNFA(parseOK(t, pattern))
}

func countEpsilon(n *NFA) int {
	count := 0
	for _, e := range n.Edges() {
		if e.Label.IsEpsilon() {
			count++
		}
	}
	return count
}

func TestBuildNFAShapes(t *testing.T) {
	tests := []struct {
		input   string
		states  int
		edges   int
		epsilon int
	}{
		{"a", 2, 1, 0},
		{"[a-c]", 2, 1, 0},
		{".", 2, 1, 0},
		{"ab", 4, 3, 1},
		{"a|b", 6, 6, 4},
		{"a*", 4, 5, 4},
		{"a+", 4, 4, 3},
		{"a?", 4, 4, 3},
	}
	for _, tt := range tests {
		n := buildNFA(t, tt.input)
		assert.Equal(t, tt.states, n.NumStates(), "states of %s", tt.input)
		assert.Equal(t, tt.edges, len(n.Edges()), "edges of %s", tt.input)
		assert.Equal(t, tt.epsilon, countEpsilon(n), "epsilon edges of %s", tt.input)
	}
}

func TestBuildNFASingleStartAndAccept(t *testing.T) {
	for _, input := range []string{
		"a", "ab*c", "a|b", "[a-c]+", "(ab)?c", "((a|b)*c)+|d?", "(a*)*", "x(y|z)*[0-9]?",
	} {
		n := buildNFA(t, input)
		accepting := 0
		for _, s := range n.States() {
			if n.IsAccepting(s) {
				accepting++
			}
		}
		assert.Equal(t, 1, accepting, "accept states of %s", input)
		assert.NotEqual(t, n.Start(), n.Accept(), "input: %s", input)
		assert.Zero(t, n.OutDegree(n.Accept()), "accept of %s has outgoing edges", input)
		for _, e := range n.Edges() {
			assert.NotEqual(t, n.Start(), e.To, "edge into start of %s", input)
		}
	}
}

func TestBuildNFAStarEdges(t *testing.T) {
	n := buildNFA(t, "a*")
	// Literal fragment first (0 -a-> 1), then the star wrapper (2, 3).
	require.Equal(t, State(2), n.Start())
	require.Equal(t, State(3), n.Accept())
	expected := []Edge{
		{From: 0, To: 1, Label: NewLabel(Char('a'))},
		{From: 2, To: 0, Label: Epsilon},
		{From: 2, To: 3, Label: Epsilon},
		{From: 1, To: 3, Label: Epsilon},
		{From: 1, To: 0, Label: Epsilon},
	}
	assert.Equal(t, expected, n.Edges())
	assert.Equal(t, 2, n.OutDegree(1))
	assert.Equal(t, Edge{From: 1, To: 3, Label: Epsilon}, n.Edge(1, 0))
}

func TestEpsilonClosure(t *testing.T) {
	n := buildNFA(t, "a*")
	assert.Equal(t, []State{0, 2, 3}, n.EpsilonClosure(n.Start()))
	assert.Equal(t, []State{0, 1, 3}, n.EpsilonClosure(1))
	assert.Empty(t, n.EpsilonClosure())
}

func TestEpsilonClosureTerminatesOnCycles(t *testing.T) {
	n := buildNFA(t, "((a*)*)*")
	closure := n.EpsilonClosure(n.Start())
	assert.Contains(t, closure, n.Accept())
	assert.Less(t, len(closure), n.NumStates())
}

func TestMove(t *testing.T) {
	n := buildNFA(t, "a*")
	assert.Equal(t, []State{1}, n.Move([]State{0, 2, 3}, 'a'))
	assert.Empty(t, n.Move([]State{0, 2, 3}, 'b'))

	n = buildNFA(t, "[a-c]")
	start := n.EpsilonClosure(n.Start())
	assert.Equal(t, []State{n.Accept()}, n.Move(start, 'b'))
	assert.Empty(t, n.Move(start, 'd'))

	n = buildNFA(t, ".")
	assert.Equal(t, []State{n.Accept()}, n.Move([]State{n.Start()}, 'z'))
}

func TestClosureAndMoveShareMarks(t *testing.T) {
	n := buildNFA(t, "a*")
	marks := newStateMarks(n.NumStates())
	for i := 0; i < 3; i++ {
		assert.Equal(t, []State{0, 2, 3}, n.closure(marks, []State{n.Start()}))
		assert.Equal(t, []State{1}, n.move(marks, []State{0, 2, 3}, 'a'))
		assert.Equal(t, []State{0, 1, 3}, n.closure(marks, []State{1}))
	}

	marks.gen = ^uint32(0)
	assert.Equal(t, []State{0, 2, 3}, n.closure(marks, []State{n.Start()}))
	assert.Equal(t, uint32(1), marks.gen)
}

func TestBuildNFADeepTree(t *testing.T) {
	const size = 50000
	n := buildNFA(t, strings.Repeat("a", size))
	assert.Equal(t, 2*size, n.NumStates())
	assert.Equal(t, size-1, countEpsilon(n))
}

func TestBuildNFAHandlesEveryNodeKind(t *testing.T) {
	lit := &Literal{Char: 'a'}
	nodes := []Node{
		lit,
		&CharClass{Items: []Item{Range('a', 'c')}},
		&Concat{Left: lit, Right: lit},
		&Alternation{Left: lit, Right: lit},
		&Star{Child: lit},
		&Plus{Child: lit},
		&Optional{Child: lit},
	}
	for _, node := range nodes {
		assert.NotPanics(t, func() { BuildNFA(node) }, "%T", node)
	}
}
