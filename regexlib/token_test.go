package regexlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeMetaCharacters(t *testing.T) {
	tokens := Tokenize("|*+?()[]-.")
	expected := []TokenKind{
		TokenOr, TokenStar, TokenPlus, TokenQuestion, TokenOpenParen,
		TokenCloseParen, TokenOpenClass, TokenCloseClass, TokenDash, TokenWildcard,
	}
	assert.Equal(t, expected, kinds(tokens))
	for i, tok := range tokens {
		assert.Equal(t, i, tok.Pos, "token %d", i)
	}
}

func TestTokenizeLiterals(t *testing.T) {
	tokens := Tokenize("aZ0 é")
	require.Len(t, tokens, 5)
	for _, tok := range tokens {
		assert.Equal(t, TokenLiteral, tok.Kind)
	}
	assert.Equal(t, "é", tokens[4].Literal)
	assert.Equal(t, 4, tokens[4].Pos)
}

func TestTokenizeEscapes(t *testing.T) {
	tokens := Tokenize(`a\*\\\[b`)
	require.Len(t, tokens, 5)
	assert.Equal(t, []TokenKind{TokenLiteral, TokenLiteral, TokenLiteral, TokenLiteral, TokenLiteral}, kinds(tokens))
	assert.Equal(t, "*", tokens[1].Literal)
	assert.Equal(t, 1, tokens[1].Pos, "escaped token sits at its backslash")
	assert.Equal(t, 3, tokens[1].End, "escaped token ends after its character")
	assert.Equal(t, `\`, tokens[2].Literal)
	assert.Equal(t, 3, tokens[2].Pos)
	assert.Equal(t, "[", tokens[3].Literal)
	assert.Equal(t, "b", tokens[4].Literal)
	assert.Equal(t, 7, tokens[4].Pos)
	assert.Equal(t, 8, tokens[4].End)
}

func TestTokenizeTrailingEscapeIsDropped(t *testing.T) {
	tokens := Tokenize(`ab\`)
	require.Len(t, tokens, 2)
	assert.Equal(t, "b", tokens[1].Literal)
	assert.Empty(t, Tokenize(`\`))
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, `literal "a"`, Token{Kind: TokenLiteral, Literal: "a"}.String())
	assert.Equal(t, "'|'", Token{Kind: TokenOr, Literal: "|"}.String())
	assert.Equal(t, "TokenKind(99)", TokenKind(99).String())
}
