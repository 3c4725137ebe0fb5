package regexlib

import "sort"

// NFA is a Thompson automaton with exactly one start and one accept state.
// It is immutable once built.
type NFA struct {
	start, accept State
	numStates     int
	edges         []Edge
	out           [][]int // edge indices leaving each state
}

func (n *NFA) Start() State               { return n.start }
func (n *NFA) Accept() State              { return n.accept }
func (n *NFA) NumStates() int             { return n.numStates }
func (n *NFA) States() []State            { return stateRange(n.numStates) }
func (n *NFA) IsAccepting(s State) bool   { return s == n.accept }
func (n *NFA) Edges() []Edge              { return append([]Edge(nil), n.edges...) }
func (n *NFA) OutDegree(s State) int      { return len(n.out[s]) }
func (n *NFA) Edge(s State, i int) Edge   { return n.edges[n.out[s][i]] }

// EpsilonClosure returns the sorted set of states reachable from states
// through epsilon edges alone, states included.
func (n *NFA) EpsilonClosure(states ...State) []State {
	return n.closure(newStateMarks(n.numStates), states)
}

// Move returns the sorted set of states entered from set on symbol.
func (n *NFA) Move(set []State, symbol rune) []State {
	return n.move(newStateMarks(n.numStates), set, symbol)
}

// stateMarks is a visited set over NFA states. reset clears it in constant
// time by moving to a new generation, so one set serves a whole subset
// construction.
type stateMarks struct {
	gen  uint32
	mark []uint32
	work []State
}

func newStateMarks(n int) *stateMarks {
	return &stateMarks{mark: make([]uint32, n)}
}

func (m *stateMarks) reset() {
	m.gen++
	if m.gen == 0 {
		for i := range m.mark {
			m.mark[i] = 0
		}
		m.gen = 1
	}
}

// visit marks s and reports whether it was unmarked before.
func (m *stateMarks) visit(s State) bool {
	if m.mark[s] == m.gen {
		return false
	}
	m.mark[s] = m.gen
	return true
}

func (n *NFA) closure(m *stateMarks, states []State) []State {
	m.reset()
	work := m.work[:0]
	var closure []State
	for _, s := range states {
		if m.visit(s) {
			work = append(work, s)
			closure = append(closure, s)
		}
	}
	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]
		for _, ei := range n.out[s] {
			e := n.edges[ei]
			if e.Label.IsEpsilon() && m.visit(e.To) {
				work = append(work, e.To)
				closure = append(closure, e.To)
			}
		}
	}
	m.work = work
	sortStates(closure)
	return closure
}

func (n *NFA) move(m *stateMarks, set []State, symbol rune) []State {
	m.reset()
	var next []State
	for _, s := range set {
		for _, ei := range n.out[s] {
			e := n.edges[ei]
			if e.Label.IsEpsilon() || !e.Label.Contains(symbol) {
				continue
			}
			if m.visit(e.To) {
				next = append(next, e.To)
			}
		}
	}
	sortStates(next)
	return next
}

func sortStates(s []State) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}

type fragment struct {
	start, accept State
}

type nfaBuilder struct {
	numStates int
	edges     []Edge
}

func (b *nfaBuilder) newState() State {
	b.numStates++
	return State(b.numStates - 1)
}

func (b *nfaBuilder) connect(from, to State, l Label) {
	b.edges = append(b.edges, Edge{From: from, To: to, Label: l})
}

// BuildNFA runs Thompson's construction over root. The tree is walked with an
// explicit stack, so AST depth is bounded only by memory.
func BuildNFA(root Node) *NFA {
	type frame struct {
		node     Node
		expanded bool
	}
	b := &nfaBuilder{}
	var frags []fragment
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f.expanded {
			stack = append(stack, frame{node: f.node, expanded: true})
			kids := f.node.children()
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: kids[i]})
			}
			continue
		}
		arity := len(f.node.children())
		operands := frags[len(frags)-arity:]
		frag := b.build(f.node, operands)
		frags = append(frags[:len(frags)-arity], frag)
	}

	top := frags[0]
	n := &NFA{
		start:     top.start,
		accept:    top.accept,
		numStates: b.numStates,
		edges:     b.edges,
		out:       make([][]int, b.numStates),
	}
	for i, e := range n.edges {
		n.out[e.From] = append(n.out[e.From], i)
	}
	return n
}

// build applies the construction rule for one node whose children have
// already been turned into operands, left to right.
func (b *nfaBuilder) build(node Node, operands []fragment) fragment {
	switch node := node.(type) {
	case *Literal:
		s, a := b.newState(), b.newState()
		b.connect(s, a, NewLabel(Char(node.Char)))
		return fragment{s, a}
	case *CharClass:
		s, a := b.newState(), b.newState()
		b.connect(s, a, NewLabel(node.Items...))
		return fragment{s, a}
	case *Concat:
		left, right := operands[0], operands[1]
		b.connect(left.accept, right.start, Epsilon)
		return fragment{left.start, right.accept}
	case *Alternation:
		left, right := operands[0], operands[1]
		s, a := b.newState(), b.newState()
		b.connect(s, left.start, Epsilon)
		b.connect(s, right.start, Epsilon)
		b.connect(left.accept, a, Epsilon)
		b.connect(right.accept, a, Epsilon)
		return fragment{s, a}
	case *Star:
		return b.loop(operands[0], true, true)
	case *Plus:
		return b.loop(operands[0], false, true)
	case *Optional:
		return b.loop(operands[0], true, false)
	default:
		panic("regexlib: unknown AST node")
	}
}

// loop wraps inner with a fresh start and accept. skip adds the
// zero-repetition edge, repeat the edge back to inner's start.
func (b *nfaBuilder) loop(inner fragment, skip, repeat bool) fragment {
	s, a := b.newState(), b.newState()
	b.connect(s, inner.start, Epsilon)
	if skip {
		b.connect(s, a, Epsilon)
	}
	b.connect(inner.accept, a, Epsilon)
	if repeat {
		b.connect(inner.accept, inner.start, Epsilon)
	}
	return fragment{s, a}
}
