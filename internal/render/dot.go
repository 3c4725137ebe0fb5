// Package render draws automata as Graphviz digraphs.
package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"regexdfa/regexlib"
)

// WriteDOT prints a in DOT syntax. States are named S0, S1, ... in discovery
// order so the picture lines up with an exported document.
func WriteDOT(w io.Writer, a regexlib.Automaton) error {
	bw := bufio.NewWriter(w)
	order := regexlib.DiscoveryOrder(a)
	names := make(map[regexlib.State]string, len(order))
	for i, s := range order {
		names[s] = fmt.Sprintf("S%d", i)
	}

	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "    rankdir=LR;")
	for _, s := range order {
		shape := "circle"
		if a.IsAccepting(s) {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "    %s [shape=%s];\n", names[s], shape)
	}
	for _, e := range a.Edges() {
		fmt.Fprintf(bw, "    %s -> %s [label=%q];\n", names[e.From], names[e.To], edgeLabel(e.Label))
	}
	fmt.Fprintf(bw, "    _start [shape=point]; _start -> %s;\n", names[a.Start()])
	fmt.Fprintln(bw, "}")
	return errors.Wrap(bw.Flush(), "write DOT")
}

func edgeLabel(l regexlib.Label) string {
	if l.IsEpsilon() {
		return "epsilon"
	}
	if r, ok := l.Symbol(); ok {
		return string(r)
	}
	return l.String()
}
