package regexlib

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnexpectedEndOfInput  = errors.New("unexpected end of input")
	ErrUnbalancedDelimiter   = errors.New("unbalanced delimiter")
	ErrMalformedRange        = errors.New("malformed range")
	ErrNestingTooDeep        = errors.New("nesting too deep")
	ErrInvalidAlphabetSymbol = errors.New("invalid alphabet symbol")
	ErrAlphabetTooLarge      = errors.New("alphabet too large")
	ErrTooManyStates         = errors.New("too many DFA states")
	ErrInvalidAutomaton      = errors.New("invalid automaton")
	ErrWildcardNeedsAlphabet = errors.New("wildcard needs an explicit alphabet")
)

// ErrorKind classifies a SyntaxError.
type ErrorKind int

const (
	UnexpectedEndOfInput ErrorKind = iota + 1
	UnbalancedDelimiter
	MalformedRange
	NestingTooDeep
)

func (k ErrorKind) sentinel() error {
	switch k {
	case UnexpectedEndOfInput:
		return ErrUnexpectedEndOfInput
	case UnbalancedDelimiter:
		return ErrUnbalancedDelimiter
	case MalformedRange:
		return ErrMalformedRange
	case NestingTooDeep:
		return ErrNestingTooDeep
	}
	return nil
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// SyntaxError reports a pattern the parser cannot accept. Pos is the rune
// offset of the offending token, or the pattern length when input ran out.
type SyntaxError struct {
	Kind    ErrorKind
	Pos     int
	Token   string // offending token, empty at end of input
	Message string
}

func (e *SyntaxError) Error() string {
	at := "end of input"
	if e.Token != "" {
		at = e.Token
	}
	return fmt.Sprintf("%s at position %d (%s): %s", e.Kind, e.Pos, at, e.Message)
}

// Unwrap lets errors.Is match the kind's sentinel, e.g. ErrMalformedRange.
func (e *SyntaxError) Unwrap() error { return e.Kind.sentinel() }

// AlphabetError reports a symbol the DFA builder refuses to use.
type AlphabetError struct {
	Symbol rune
	Reason string
}

func (e *AlphabetError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidAlphabetSymbol, e.Symbol, e.Reason)
}

func (e *AlphabetError) Unwrap() error { return ErrInvalidAlphabetSymbol }
