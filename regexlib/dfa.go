package regexlib

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// DFA is a deterministic, epsilon-free automaton over an explicit alphabet.
// Missing transitions reject. A DFA is immutable once built.
type DFA struct {
	start     State
	alphabet  Alphabet
	accepting []bool
	trans     [][]State // [state][symbol index], NoState when absent
	edges     []Edge
	members   [][]State
}

func (d *DFA) Start() State             { return d.start }
func (d *DFA) NumStates() int           { return len(d.accepting) }
func (d *DFA) States() []State          { return stateRange(len(d.accepting)) }
func (d *DFA) IsAccepting(s State) bool { return d.accepting[s] }
func (d *DFA) Edges() []Edge            { return append([]Edge(nil), d.edges...) }
func (d *DFA) Alphabet() Alphabet       { return append(Alphabet(nil), d.alphabet...) }

// Accepting lists the accepting states in index order.
func (d *DFA) Accepting() []State {
	var out []State
	for s, ok := range d.accepting {
		if ok {
			out = append(out, State(s))
		}
	}
	return out
}

// Next returns the target of s on symbol, or NoState.
func (d *DFA) Next(s State, symbol rune) State {
	i := d.alphabet.Index(symbol)
	if i < 0 {
		return NoState
	}
	return d.trans[s][i]
}

// Members returns the states of the source automaton that s stands for: the
// NFA closure set for a subset-constructed DFA, the merged DFA states for a
// minimized one. States Minimize dropped as dead or unreachable belong to no
// block. It is nil for a DFA built by NewDFA.
func (d *DFA) Members(s State) []State {
	if d.members == nil {
		return nil
	}
	return append([]State(nil), d.members[s]...)
}

// DefaultMaxStates bounds subset construction.
const DefaultMaxStates = 10000

type dfaConfig struct {
	maxStates int
}

// DFAOption tunes BuildDFA.
type DFAOption func(*dfaConfig)

// WithStateLimit caps the number of composite states subset construction may
// discover. n <= 0 removes the cap.
func WithStateLimit(n int) DFAOption {
	return func(c *dfaConfig) { c.maxStates = n }
}

func checkAlphabet(alphabet Alphabet) error {
	for i, r := range alphabet {
		if !utf8.ValidRune(r) {
			return &AlphabetError{Symbol: r, Reason: "not a valid Unicode scalar value"}
		}
		if i > 0 && r <= alphabet[i-1] {
			return &AlphabetError{Symbol: r, Reason: "alphabet is not strictly increasing"}
		}
	}
	return nil
}

// BuildDFA runs subset construction over n. Only composite states reachable
// from the start closure are materialized, each identified by its closure set
// before any edge to it is recorded.
func BuildDFA(n *NFA, alphabet Alphabet, opts ...DFAOption) (*DFA, error) {
	cfg := dfaConfig{maxStates: DefaultMaxStates}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := checkAlphabet(alphabet); err != nil {
		return nil, err
	}

	d := &DFA{alphabet: append(Alphabet(nil), alphabet...)}
	index := make(map[string]State)
	register := func(set []State) (State, bool, error) {
		k := setKey(set)
		if s, ok := index[k]; ok {
			return s, false, nil
		}
		if cfg.maxStates > 0 && len(d.members) >= cfg.maxStates {
			return NoState, false, errors.Wrapf(ErrTooManyStates, "limit %d reached", cfg.maxStates)
		}
		s := State(len(d.members))
		index[k] = s
		d.members = append(d.members, set)
		d.accepting = append(d.accepting, containsState(set, n.accept))
		d.trans = append(d.trans, newRow(len(alphabet)))
		return s, true, nil
	}

	marks := newStateMarks(n.numStates)
	start, _, err := register(n.closure(marks, []State{n.start}))
	if err != nil {
		return nil, err
	}
	d.start = start

	queue := []State{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i, sym := range alphabet {
			target := n.closure(marks, n.move(marks, d.members[cur], sym))
			if len(target) == 0 {
				continue
			}
			to, fresh, err := register(target)
			if err != nil {
				return nil, err
			}
			if fresh {
				queue = append(queue, to)
			}
			d.trans[cur][i] = to
			d.edges = append(d.edges, Edge{From: cur, To: to, Label: NewLabel(Char(sym))})
		}
	}
	return d, nil
}

// NewDFA assembles a DFA from plain data, as when importing an exported
// automaton. Every edge must carry exactly one character, no two edges may
// leave the same state on the same symbol, and all states must be in range.
// The alphabet is the set of symbols on the edges.
func NewDFA(numStates int, start State, accepting []State, edges []Edge) (*DFA, error) {
	if numStates <= 0 {
		return nil, errors.Wrap(ErrInvalidAutomaton, "no states")
	}
	inRange := func(s State) bool { return s >= 0 && int(s) < numStates }
	if !inRange(start) {
		return nil, errors.Wrapf(ErrInvalidAutomaton, "start state %d out of range", start)
	}

	symbols := make([]rune, 0, len(edges))
	for _, e := range edges {
		if !inRange(e.From) || !inRange(e.To) {
			return nil, errors.Wrapf(ErrInvalidAutomaton, "edge %d->%d out of range", e.From, e.To)
		}
		sym, ok := e.Label.Symbol()
		if !ok {
			return nil, errors.Wrapf(ErrInvalidAutomaton, "edge %d->%d label %s is not a single symbol", e.From, e.To, e.Label)
		}
		symbols = append(symbols, sym)
	}
	alphabet := NewAlphabet(symbols...)
	if err := checkAlphabet(alphabet); err != nil {
		return nil, err
	}

	d := &DFA{
		start:     start,
		alphabet:  alphabet,
		accepting: make([]bool, numStates),
		trans:     make([][]State, numStates),
	}
	for i := range d.trans {
		d.trans[i] = newRow(len(alphabet))
	}
	for _, s := range accepting {
		if !inRange(s) {
			return nil, errors.Wrapf(ErrInvalidAutomaton, "accepting state %d out of range", s)
		}
		d.accepting[s] = true
	}
	for _, e := range edges {
		sym, _ := e.Label.Symbol()
		i := alphabet.Index(sym)
		if d.trans[e.From][i] != NoState {
			return nil, errors.Wrapf(ErrInvalidAutomaton, "state %d has two edges on %q", e.From, sym)
		}
		d.trans[e.From][i] = e.To
		d.edges = append(d.edges, Edge{From: e.From, To: e.To, Label: NewLabel(Char(sym))})
	}
	return d, nil
}

func newRow(n int) []State {
	row := make([]State, n)
	for i := range row {
		row[i] = NoState
	}
	return row
}

func containsState(set []State, s State) bool {
	for _, x := range set {
		if x == s {
			return true
		}
	}
	return false
}

// setKey encodes a sorted state set as a map key.
func setKey(set []State) string {
	var b strings.Builder
	for i, s := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(s)))
	}
	return b.String()
}
