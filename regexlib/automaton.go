package regexlib

// State identifies a state by its index in the automaton's state arena.
type State int

// NoState marks a missing transition.
const NoState State = -1

// Edge is a transition between two states of the same automaton.
type Edge struct {
	From, To State
	Label    Label
}

// Automaton is the read-only view shared by NFAs and DFAs, enough to
// serialize or draw one.
type Automaton interface {
	Start() State
	States() []State
	IsAccepting(s State) bool
	Edges() []Edge
}

// DiscoveryOrder lists the states of a in breadth-first order from the start,
// following each state's edges in insertion order. States that cannot be
// reached come last in index order.
func DiscoveryOrder(a Automaton) []State {
	all := a.States()
	out := make(map[State][]State, len(all))
	for _, e := range a.Edges() {
		out[e.From] = append(out[e.From], e.To)
	}

	seen := make(map[State]bool, len(all))
	order := make([]State, 0, len(all))
	queue := []State{a.Start()}
	seen[a.Start()] = true
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		order = append(order, s)
		for _, t := range out[s] {
			if !seen[t] {
				seen[t] = true
				queue = append(queue, t)
			}
		}
	}
	for _, s := range all {
		if !seen[s] {
			order = append(order, s)
		}
	}
	return order
}

func stateRange(n int) []State {
	states := make([]State, n)
	for i := range states {
		states[i] = State(i)
	}
	return states
}
