package regexlib

import "strings"

// Node is an AST node. The set of implementations is closed: *Literal,
// *CharClass, *Concat, *Alternation, *Star, *Plus and *Optional.
type Node interface {
	String() string
	children() []Node
}

type Literal struct {
	Char rune
}

// CharClass matches one character out of Items. The wildcard is a class
// holding a single ItemAny.
type CharClass struct {
	Items []Item
}

type Concat struct {
	Left, Right Node
}

type Alternation struct {
	Left, Right Node
}

type Star struct {
	Child Node
}

type Plus struct {
	Child Node
}

type Optional struct {
	Child Node
}

func (n *Literal) children() []Node     { return nil }
func (n *CharClass) children() []Node   { return nil }
func (n *Concat) children() []Node      { return []Node{n.Left, n.Right} }
func (n *Alternation) children() []Node { return []Node{n.Left, n.Right} }
func (n *Star) children() []Node        { return []Node{n.Child} }
func (n *Plus) children() []Node        { return []Node{n.Child} }
func (n *Optional) children() []Node    { return []Node{n.Child} }

func (n *Literal) String() string { return escapeRune(n.Char, false) }

func (n *CharClass) String() string {
	if len(n.Items) == 1 && n.Items[0].Kind == ItemAny {
		return "."
	}
	var b strings.Builder
	b.WriteByte('[')
	for _, it := range n.Items {
		switch it.Kind {
		case ItemChar:
			b.WriteString(escapeRune(it.Low, true))
		default:
			b.WriteString(it.String())
		}
	}
	b.WriteByte(']')
	return b.String()
}

func (n *Concat) String() string {
	return group(n.Left, isAlternation) + group(n.Right, isAlternation)
}

func (n *Alternation) String() string {
	return n.Left.String() + "|" + n.Right.String()
}

func (n *Star) String() string     { return group(n.Child, isCompound) + "*" }
func (n *Plus) String() string     { return group(n.Child, isCompound) + "+" }
func (n *Optional) String() string { return group(n.Child, isCompound) + "?" }

func isAlternation(n Node) bool {
	_, ok := n.(*Alternation)
	return ok
}

func isCompound(n Node) bool {
	switch n.(type) {
	case *Literal, *CharClass:
		return false
	}
	return true
}

func group(n Node, needs func(Node) bool) string {
	if needs(n) {
		return "(" + n.String() + ")"
	}
	return n.String()
}
