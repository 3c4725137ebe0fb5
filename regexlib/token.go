package regexlib

import "fmt"

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenOr         TokenKind = iota // |
	TokenStar                        // *
	TokenPlus                        // +
	TokenQuestion                    // ?
	TokenOpenParen                   // (
	TokenCloseParen                  // )
	TokenOpenClass                   // [
	TokenCloseClass                  // ]
	TokenDash                        // -
	TokenLiteral                     // any other character, or an escaped one
	TokenWildcard                    // .
)

var tokenNames = map[TokenKind]string{
	TokenOr:         "'|'",
	TokenStar:       "'*'",
	TokenPlus:       "'+'",
	TokenQuestion:   "'?'",
	TokenOpenParen:  "'('",
	TokenCloseParen: "')'",
	TokenOpenClass:  "'['",
	TokenCloseClass: "']'",
	TokenDash:       "'-'",
	TokenLiteral:    "literal",
	TokenWildcard:   "'.'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single lexical unit of a pattern.
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     int // rune offset in the pattern
	End     int // rune offset just past the token
}

func (t Token) String() string {
	if t.Kind == TokenLiteral {
		return fmt.Sprintf("literal %q", t.Literal)
	}
	return t.Kind.String()
}

const escapeChar = '\\'

var metaChars = map[rune]TokenKind{
	'|': TokenOr,
	'*': TokenStar,
	'+': TokenPlus,
	'?': TokenQuestion,
	'(': TokenOpenParen,
	')': TokenCloseParen,
	'[': TokenOpenClass,
	']': TokenCloseClass,
	'-': TokenDash,
	'.': TokenWildcard,
}

// Tokenize splits pattern into tokens. A backslash makes the following
// character a literal whatever its usual meaning. A backslash at the very end
// of the pattern escapes nothing and is dropped.
func Tokenize(pattern string) []Token {
	tokens := make([]Token, 0, len(pattern))
	pos := 0
	escaped := false
	escapePos := 0
	for _, r := range pattern {
		switch {
		case escaped:
			tokens = append(tokens, Token{Kind: TokenLiteral, Literal: string(r), Pos: escapePos, End: pos + 1})
			escaped = false
		case r == escapeChar:
			escaped = true
			escapePos = pos
		default:
			kind, ok := metaChars[r]
			if !ok {
				kind = TokenLiteral
			}
			tokens = append(tokens, Token{Kind: kind, Literal: string(r), Pos: pos, End: pos + 1})
		}
		pos++
	}
	return tokens
}
