package regexlib

import (
	"sort"
	"strings"
)

// ItemKind tells what an Item of a Label stands for.
type ItemKind int

const (
	ItemChar    ItemKind = iota // a single character
	ItemRange                   // Low..High inclusive, codepoint order
	ItemEpsilon                 // no input consumed, NFA only
	ItemAny                     // every symbol of the alphabet in use
)

// Item is one element of a Label. For ItemChar Low == High.
type Item struct {
	Kind      ItemKind
	Low, High rune
}

func Char(r rune) Item       { return Item{Kind: ItemChar, Low: r, High: r} }
func Range(lo, hi rune) Item { return Item{Kind: ItemRange, Low: lo, High: hi} }
func EpsilonItem() Item      { return Item{Kind: ItemEpsilon} }
func AnyItem() Item          { return Item{Kind: ItemAny} }

func (it Item) matches(r rune) bool {
	switch it.Kind {
	case ItemChar:
		return it.Low == r
	case ItemRange:
		return it.Low <= r && r <= it.High
	case ItemAny:
		return true
	}
	return false
}

func (it Item) String() string {
	switch it.Kind {
	case ItemChar:
		return escapeRune(it.Low, false)
	case ItemRange:
		return escapeRune(it.Low, true) + "-" + escapeRune(it.High, true)
	case ItemEpsilon:
		return "epsilon"
	case ItemAny:
		return "."
	}
	return "?"
}

// Label is the set of symbols an edge can be taken on. Labels are kept
// sorted and free of duplicates; build them with NewLabel.
type Label []Item

// Epsilon is the label of an edge taken without consuming input.
var Epsilon = Label{EpsilonItem()}

// NewLabel returns the normalized label holding items.
func NewLabel(items ...Item) Label {
	l := make(Label, 0, len(items))
	seen := make(map[Item]struct{}, len(items))
	for _, it := range items {
		if it.Kind == ItemRange && it.Low == it.High {
			it = Char(it.Low)
		}
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		l = append(l, it)
	}
	sort.Slice(l, func(i, j int) bool {
		if l[i].Kind != l[j].Kind {
			return l[i].Kind < l[j].Kind
		}
		if l[i].Low != l[j].Low {
			return l[i].Low < l[j].Low
		}
		return l[i].High < l[j].High
	})
	return l
}

// IsEpsilon reports whether the label carries the epsilon marker.
func (l Label) IsEpsilon() bool {
	for _, it := range l {
		if it.Kind == ItemEpsilon {
			return true
		}
	}
	return false
}

// Contains reports whether symbol r is in the label. Ranges are tested by
// codepoint order, never expanded.
func (l Label) Contains(r rune) bool {
	for _, it := range l {
		if it.matches(r) {
			return true
		}
	}
	return false
}

// Symbol returns the only character of a single-character label.
func (l Label) Symbol() (rune, bool) {
	if len(l) != 1 || l[0].Kind != ItemChar {
		return 0, false
	}
	return l[0].Low, true
}

// String renders the label the way it would be written in a pattern: a bare
// character, "." for the wildcard, "epsilon", or a bracketed class.
func (l Label) String() string {
	if len(l) == 1 && l[0].Kind != ItemRange {
		return l[0].String()
	}
	var b strings.Builder
	b.WriteByte('[')
	for _, it := range l {
		if it.Kind == ItemChar {
			b.WriteString(escapeRune(it.Low, true))
			continue
		}
		b.WriteString(it.String())
	}
	b.WriteByte(']')
	return b.String()
}

func escapeRune(r rune, inClass bool) string {
	if r == escapeChar {
		return `\\`
	}
	if _, meta := metaChars[r]; meta {
		if !inClass || r == '-' || r == ']' {
			return `\` + string(r)
		}
	}
	return string(r)
}
