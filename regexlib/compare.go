package regexlib

// Equivalent reports whether a and b accept the same strings. It walks the
// product automaton over the union of both alphabets; a missing transition
// steps into an implicit rejecting sink on that side.
func Equivalent(a, b *DFA) bool {
	type pair struct{ i, j State }
	alpha := NewAlphabet(append(a.Alphabet(), b.Alphabet()...)...)
	accepts := func(d *DFA, s State) bool { return s != NoState && d.accepting[s] }
	step := func(d *DFA, s State, c rune) State {
		if s == NoState {
			return NoState
		}
		return d.Next(s, c)
	}

	start := pair{a.start, b.start}
	seen := map[pair]bool{start: true}
	queue := []pair{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if accepts(a, p.i) != accepts(b, p.j) {
			return false
		}
		for _, c := range alpha {
			np := pair{step(a, p.i, c), step(b, p.j, c)}
			if np.i == NoState && np.j == NoState {
				continue
			}
			if !seen[np] {
				seen[np] = true
				queue = append(queue, np)
			}
		}
	}
	return true
}

// Isomorphic reports whether the parts of a and b reachable from their start
// states are the same automaton up to renaming of states: same alphabet and
// a bijection between the reachable states that maps start to start,
// preserves acceptance and every transition. Unreachable states are ignored.
func Isomorphic(a, b *DFA) bool {
	if a.alphabet.String() != b.alphabet.String() {
		return false
	}
	mapping := map[State]State{a.start: b.start}
	used := map[State]bool{b.start: true}
	queue := []State{a.start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		t := mapping[s]
		if a.accepting[s] != b.accepting[t] {
			return false
		}
		for i := range a.alphabet {
			ns, nt := a.trans[s][i], b.trans[t][i]
			if (ns == NoState) != (nt == NoState) {
				return false
			}
			if ns == NoState {
				continue
			}
			if m, ok := mapping[ns]; ok {
				if m != nt {
					return false
				}
				continue
			}
			if used[nt] {
				return false
			}
			mapping[ns] = nt
			used[nt] = true
			queue = append(queue, ns)
		}
	}
	// every mapped state's transitions were matched, so the image is closed
	// and covers all of b's reachable states
	return true
}
