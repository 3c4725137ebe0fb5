// Package precheck validates a pattern against a broader regular expression
// grammar than the compiler accepts. It is advisory: it points out syntax the
// compiler would take literally, and catches patterns no regex engine would
// accept, before compilation starts.
package precheck

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var regexLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Escaped", Pattern: `\\[\s\S]`},
	{Name: "Repeat", Pattern: `\{[0-9]+(,[0-9]*)?\}`},
	{Name: "Punct", Pattern: `[|*+?()^$.\[]`},
	{Name: "Close", Pattern: `\]`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Char", Pattern: `[^\\]`},
})

type Expression struct {
	Alternatives []*Sequence `parser:"@@ ( '|' @@ )*"`
}

type Sequence struct {
	Items []*Repetition `parser:"@@+"`
}

type Repetition struct {
	Pos         lexer.Position
	Atom        *Atom    `parser:"@@"`
	Quantifiers []string `parser:"( @'*' | @'+' | @'?' | @Repeat )*"`
}

type Atom struct {
	Pos     lexer.Position
	Group   *Expression `parser:"  '(' @@ ')'"`
	Class   *Class      `parser:"| '[' @@ ']'"`
	Anchor  string      `parser:"| @( '^' | '$' )"`
	Any     bool        `parser:"| @'.'"`
	Escaped string      `parser:"| @Escaped"`
	Char    string      `parser:"| @( Char | Dash | Close )"`
}

type Class struct {
	Pos     lexer.Position
	Negated bool         `parser:"@'^'?"`
	Items   []*ClassItem `parser:"@@+"`
}

type ClassItem struct {
	Low  string `parser:"@( Char | Escaped | Punct )"`
	High string `parser:"( Dash @( Char | Escaped | Punct ) )?"`
}

var parser = participle.MustBuild[Expression](participle.Lexer(regexLexer))

// Warning flags a construct the compiler treats differently from a full
// regex engine.
type Warning struct {
	Offset  int // byte offset in the pattern
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("offset %d: %s", w.Offset, w.Message)
}

// Report is the outcome of a successful check.
type Report struct {
	Expression *Expression
	Warnings   []Warning
}

// Check parses pattern with the broad grammar. A pattern the grammar rejects
// is an error; one it accepts may still carry warnings.
func Check(pattern string) (*Report, error) {
	expr, err := parser.ParseString("", pattern)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, errors.Errorf("invalid regular expression at offset %d: %s", perr.Position().Offset, perr.Message())
		}
		return nil, errors.Wrap(err, "invalid regular expression")
	}
	r := &Report{Expression: expr}
	r.walkExpression(expr)
	return r, nil
}

func (r *Report) warn(pos lexer.Position, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, Warning{Offset: pos.Offset, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) walkExpression(e *Expression) {
	for _, seq := range e.Alternatives {
		for _, rep := range seq.Items {
			r.walkRepetition(rep)
		}
	}
}

func (r *Report) walkRepetition(rep *Repetition) {
	r.walkAtom(rep.Atom)
	for i, q := range rep.Quantifiers {
		switch {
		case strings.HasPrefix(q, "{"):
			r.warn(rep.Pos, "bounded repetition %s is compiled as literal characters", q)
		case i > 0:
			r.warn(rep.Pos, "stacked quantifier %s is rejected by the compiler", q)
		}
	}
}

func (r *Report) walkAtom(a *Atom) {
	switch {
	case a.Group != nil:
		r.walkExpression(a.Group)
	case a.Class != nil:
		if a.Class.Negated {
			r.warn(a.Class.Pos, "negated class is compiled as a class containing '^'")
		}
		for _, it := range a.Class.Items {
			r.checkEscape(a.Class.Pos, it.Low)
			r.checkEscape(a.Class.Pos, it.High)
		}
	case a.Anchor != "":
		r.warn(a.Pos, "anchor %s is compiled as a literal character", a.Anchor)
	case a.Escaped != "":
		r.checkEscape(a.Pos, a.Escaped)
	}
}

// shorthands are escapes that mean a character class or control character
// elsewhere but only the letter itself here.
const shorthands = "dDwWsSbBnrtfv0123456789"

func (r *Report) checkEscape(pos lexer.Position, text string) {
	if len(text) == 2 && text[0] == '\\' && strings.IndexByte(shorthands, text[1]) >= 0 {
		r.warn(pos, "escape %s is compiled as the literal %q", text, text[1:])
	}
}
