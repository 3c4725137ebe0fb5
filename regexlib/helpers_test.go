package regexlib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func compileOK(t *testing.T, pattern string, opts ...Option) *Compiled {
	t.Helper()
	c, err := Compile(pattern, opts...)
	require.NoError(t, err, "compile %q", pattern)
	return c
}

// nfaAccepts simulates n directly with epsilon closures and moves.
func nfaAccepts(n *NFA, w string) bool {
	cur := n.EpsilonClosure(n.Start())
	for _, r := range w {
		cur = n.EpsilonClosure(n.Move(cur, r)...)
		if len(cur) == 0 {
			return false
		}
	}
	return containsState(cur, n.Accept())
}

func dfaAccepts(d *DFA, w string) bool {
	s := d.Start()
	for _, r := range w {
		s = d.Next(s, r)
		if s == NoState {
			return false
		}
	}
	return d.IsAccepting(s)
}

// words lists every string over alpha of length at most maxLen.
func words(alpha Alphabet, maxLen int) []string {
	out := []string{""}
	layer := []string{""}
	for n := 0; n < maxLen; n++ {
		var next []string
		for _, w := range layer {
			for _, r := range alpha {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		layer = next
	}
	return out
}
