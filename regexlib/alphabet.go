package regexlib

import (
	"sort"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// DefaultMaxAlphabet is the limit Compile applies to a derived alphabet. Wide
// ranges such as [\x00-\U0010FFFF] would otherwise expand to a million
// symbols.
const DefaultMaxAlphabet = 4096

// Alphabet is a strictly increasing list of input symbols.
type Alphabet []rune

// NewAlphabet sorts symbols and drops duplicates.
func NewAlphabet(symbols ...rune) Alphabet {
	a := append(Alphabet(nil), symbols...)
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	out := a[:0]
	for i, r := range a {
		if i == 0 || r != a[i-1] {
			out = append(out, r)
		}
	}
	return out
}

// Index returns the position of r, or -1.
func (a Alphabet) Index(r rune) int {
	i := sort.Search(len(a), func(i int) bool { return a[i] >= r })
	if i < len(a) && a[i] == r {
		return i
	}
	return -1
}

func (a Alphabet) Contains(r rune) bool { return a.Index(r) >= 0 }

func (a Alphabet) String() string { return string([]rune(a)) }

// DeriveAlphabet collects the symbols named on the edges of n: each literal
// character and every valid character of each range. Wildcard and epsilon
// labels add nothing, see HasWildcard. It fails with ErrAlphabetTooLarge once
// more than limit symbols are collected; limit <= 0 removes the cap.
func DeriveAlphabet(n *NFA, limit int) (Alphabet, error) {
	set := make(map[rune]struct{})
	add := func(r rune) error {
		set[r] = struct{}{}
		if limit > 0 && len(set) > limit {
			return errors.Wrapf(ErrAlphabetTooLarge, "more than %d symbols", limit)
		}
		return nil
	}
	for _, e := range n.edges {
		for _, it := range e.Label {
			switch it.Kind {
			case ItemChar:
				if err := add(it.Low); err != nil {
					return nil, err
				}
			case ItemRange:
				for r := it.Low; r <= it.High; r++ {
					if !utf8.ValidRune(r) {
						continue
					}
					if err := add(r); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	symbols := make([]rune, 0, len(set))
	for r := range set {
		symbols = append(symbols, r)
	}
	return NewAlphabet(symbols...), nil
}

// HasWildcard reports whether any edge of n is labelled with the wildcard.
// Such an NFA has no finite alphabet of its own.
func HasWildcard(n *NFA) bool {
	for _, e := range n.edges {
		for _, it := range e.Label {
			if it.Kind == ItemAny {
				return true
			}
		}
	}
	return false
}
