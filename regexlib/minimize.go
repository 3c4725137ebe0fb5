package regexlib

import (
	"strconv"
	"strings"
)

// Minimize returns the minimal DFA equivalent to d using Moore's partition
// refinement. States that are unreachable from the start, or that can never
// reach an accepting state, are dropped first along with the edges into them,
// so a dead state never survives as a stand-in for the implicit reject sink.
// The remaining states start as accepting versus non-accepting and are split
// by transition signature until a full pass splits nothing. The result
// numbers its states in breadth-first order from the start block, so its
// start is state 0. The start state is always kept, even when it is dead.
func Minimize(d *DFA) *DFA {
	keep := trim(d)
	blocks := initialPartition(d, keep)
	blockOf := make([]int, d.NumStates())
	for i := range blockOf {
		blockOf[i] = -1
	}
	assign := func() {
		for b, members := range blocks {
			for _, s := range members {
				blockOf[s] = b
			}
		}
	}
	assign()

	for {
		split := false
		next := make([][]State, 0, len(blocks))
		for _, members := range blocks {
			if len(members) < 2 {
				next = append(next, members)
				continue
			}
			groups := refine(d, members, blockOf)
			if len(groups) > 1 {
				split = true
			}
			next = append(next, groups...)
		}
		blocks = next
		assign()
		if !split {
			break
		}
	}

	return collapse(d, blocks, blockOf)
}

// trim marks the states that are reachable from the start and can reach an
// accepting state. The start is always marked.
func trim(d *DFA) []bool {
	n := d.NumStates()
	reached := make([]bool, n)
	reached[d.start] = true
	queue := []State{d.start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, t := range d.trans[s] {
			if t != NoState && !reached[t] {
				reached[t] = true
				queue = append(queue, t)
			}
		}
	}

	into := make([][]State, n)
	for s := 0; s < n; s++ {
		for _, t := range d.trans[s] {
			if t != NoState {
				into[t] = append(into[t], State(s))
			}
		}
	}
	live := make([]bool, n)
	queue = queue[:0]
	for s := 0; s < n; s++ {
		if d.accepting[s] {
			live[s] = true
			queue = append(queue, State(s))
		}
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, p := range into[s] {
			if !live[p] {
				live[p] = true
				queue = append(queue, p)
			}
		}
	}

	keep := make([]bool, n)
	for s := range keep {
		keep[s] = reached[s] && live[s]
	}
	keep[d.start] = true
	return keep
}

func initialPartition(d *DFA, keep []bool) [][]State {
	var accepting, rejecting []State
	for s := 0; s < d.NumStates(); s++ {
		if !keep[s] {
			continue
		}
		if d.accepting[s] {
			accepting = append(accepting, State(s))
		} else {
			rejecting = append(rejecting, State(s))
		}
	}
	var blocks [][]State
	for _, b := range [][]State{accepting, rejecting} {
		if len(b) > 0 {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// refine groups members by the block each symbol leads to. A missing
// transition and one into a dropped state both count as the "no block"
// value. Groups keep the order in which their first member appears.
func refine(d *DFA, members []State, blockOf []int) [][]State {
	var order []string
	groups := make(map[string][]State)
	for _, s := range members {
		sig := signature(d.trans[s], blockOf)
		if _, ok := groups[sig]; !ok {
			order = append(order, sig)
		}
		groups[sig] = append(groups[sig], s)
	}
	out := make([][]State, len(order))
	for i, sig := range order {
		out[i] = groups[sig]
	}
	return out
}

func signature(row []State, blockOf []int) string {
	var b strings.Builder
	for i, t := range row {
		if i > 0 {
			b.WriteByte(',')
		}
		if t == NoState || blockOf[t] < 0 {
			b.WriteByte('-')
			continue
		}
		b.WriteString(strconv.Itoa(blockOf[t]))
	}
	return b.String()
}

// collapse builds one state per block. Transitions come from the first
// member, which is as good as any since every member shares its signature.
func collapse(d *DFA, blocks [][]State, blockOf []int) *DFA {
	renumber := make([]State, len(blocks))
	for i := range renumber {
		renumber[i] = NoState
	}
	var order []int
	visit := func(b int) {
		if renumber[b] == NoState {
			renumber[b] = State(len(order))
			order = append(order, b)
		}
	}
	visit(blockOf[d.start])
	for i := 0; i < len(order); i++ {
		rep := blocks[order[i]][0]
		for _, t := range d.trans[rep] {
			if t != NoState && blockOf[t] >= 0 {
				visit(blockOf[t])
			}
		}
	}
	for b := range blocks {
		visit(b)
	}

	m := &DFA{
		start:     0,
		alphabet:  d.alphabet,
		accepting: make([]bool, len(blocks)),
		trans:     make([][]State, len(blocks)),
		members:   make([][]State, len(blocks)),
	}
	for ns, b := range order {
		rep := blocks[b][0]
		m.accepting[ns] = d.accepting[rep]
		m.members[ns] = append([]State(nil), blocks[b]...)
		row := newRow(len(d.alphabet))
		for i, t := range d.trans[rep] {
			if t == NoState || blockOf[t] < 0 {
				continue
			}
			row[i] = renumber[blockOf[t]]
			m.edges = append(m.edges, Edge{From: State(ns), To: row[i], Label: NewLabel(Char(d.alphabet[i]))})
		}
		m.trans[ns] = row
	}
	return m
}
