// Package export converts automata to and from the state-table document
// format, serialized as JSON or YAML:
//
//	{
//	  "startingState": "S0",
//	  "S0": {"isTerminatingState": false, "a": "S1"},
//	  "S1": {"isTerminatingState": true}
//	}
//
// Every key besides startingState names a state. Inside a state, every key
// besides isTerminatingState is a transition: a symbol, a class such as
// [a-c], "." for the wildcard, or epsilon<N> for the Nth epsilon edge.
package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"regexdfa/regexlib"
)

const (
	startingStateKey = "startingState"
	terminatingKey   = "isTerminatingState"
	epsilonPrefix    = "epsilon"
)

// ErrInvalidDocument is wrapped by every validation failure of ToDFA.
var ErrInvalidDocument = errors.New("invalid automaton document")

// Transition is one outgoing edge of a state.
type Transition struct {
	Key    string
	Target string
}

// State is one named state and its transitions in document order.
type State struct {
	Name        string
	Terminating bool
	Transitions []Transition
}

// Document is an ordered state table.
type Document struct {
	StartingState string
	States        []State
}

// FromAutomaton names the states of a S0, S1, ... in discovery order and
// lists each state's edges in insertion order.
func FromAutomaton(a regexlib.Automaton) *Document {
	order := regexlib.DiscoveryOrder(a)
	names := make(map[regexlib.State]string, len(order))
	for i, s := range order {
		names[s] = fmt.Sprintf("S%d", i)
	}
	out := make(map[regexlib.State][]regexlib.Edge, len(order))
	for _, e := range a.Edges() {
		out[e.From] = append(out[e.From], e)
	}

	doc := &Document{StartingState: names[a.Start()], States: make([]State, 0, len(order))}
	for _, s := range order {
		st := State{Name: names[s], Terminating: a.IsAccepting(s)}
		epsilons := 0
		for _, e := range out[s] {
			key := labelKey(e.Label)
			if key == "" {
				epsilons++
				key = fmt.Sprintf("%s%d", epsilonPrefix, epsilons)
			}
			st.Transitions = append(st.Transitions, Transition{Key: key, Target: names[e.To]})
		}
		doc.States = append(doc.States, st)
	}
	return doc
}

// labelKey returns "" for epsilon labels.
func labelKey(l regexlib.Label) string {
	if l.IsEpsilon() {
		return ""
	}
	if r, ok := l.Symbol(); ok {
		return string(r)
	}
	return l.String()
}

// ToDFA rebuilds a DFA from a document. States are numbered in document
// order. All problems found are returned together.
func ToDFA(doc *Document) (*regexlib.DFA, error) {
	var result *multierror.Error
	invalid := func(format string, args ...interface{}) {
		result = multierror.Append(result, errors.Wrapf(ErrInvalidDocument, format, args...))
	}

	if len(doc.States) == 0 {
		invalid("document has no states")
		return nil, result.ErrorOrNil()
	}

	index := make(map[string]regexlib.State, len(doc.States))
	for i, st := range doc.States {
		if _, dup := index[st.Name]; dup {
			invalid("state %s is defined twice", st.Name)
			continue
		}
		index[st.Name] = regexlib.State(i)
	}

	start, ok := index[doc.StartingState]
	switch {
	case doc.StartingState == "":
		invalid("%s is missing", startingStateKey)
	case !ok:
		invalid("%s names unknown state %s", startingStateKey, doc.StartingState)
	}

	var accepting []regexlib.State
	var edges []regexlib.Edge
	for i, st := range doc.States {
		from := regexlib.State(i)
		if st.Terminating {
			accepting = append(accepting, from)
		}
		seen := make(map[string]bool, len(st.Transitions))
		for _, tr := range st.Transitions {
			to, known := index[tr.Target]
			if !known {
				invalid("state %s: transition %q targets unknown state %s", st.Name, tr.Key, tr.Target)
			}
			if strings.HasPrefix(tr.Key, epsilonPrefix) {
				invalid("state %s: %s is an epsilon transition", st.Name, tr.Key)
				continue
			}
			if utf8.RuneCountInString(tr.Key) != 1 {
				invalid("state %s: transition %q is not a single symbol", st.Name, tr.Key)
				continue
			}
			if seen[tr.Key] {
				invalid("state %s: transition %q is defined twice", st.Name, tr.Key)
				continue
			}
			seen[tr.Key] = true
			if known {
				sym, _ := utf8.DecodeRuneInString(tr.Key)
				edges = append(edges, regexlib.Edge{From: from, To: to, Label: regexlib.NewLabel(regexlib.Char(sym))})
			}
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	d, err := regexlib.NewDFA(len(doc.States), start, accepting, edges)
	if err != nil {
		return nil, errors.Wrap(err, "rebuild DFA")
	}
	return d, nil
}
