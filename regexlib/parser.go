package regexlib

import (
	"fmt"
	"unicode/utf8"
)

// DefaultMaxDepth bounds how deeply groups may nest.
const DefaultMaxDepth = 1000

// Parse builds the AST for a token stream produced by Tokenize.
//
//	regex       := alternation
//	alternation := concat ('|' concat)*
//	concat      := quantified quantified*
//	quantified  := base ('*' | '+' | '?')?
//	base        := LITERAL | '.' | '(' regex ')' | '[' class ']'
//	class       := (LITERAL | LITERAL '-' LITERAL)+
//
// A '-' outside a class is taken as a literal.
func Parse(tokens []Token) (Node, error) {
	end := 0
	if n := len(tokens); n > 0 {
		last := tokens[n-1]
		end = last.End
		if end <= last.Pos {
			end = last.Pos + 1
		}
	}
	return parse(tokens, end, DefaultMaxDepth)
}

// ParseString tokenizes and parses pattern.
func ParseString(pattern string) (Node, error) {
	return parse(Tokenize(pattern), utf8.RuneCountInString(pattern), DefaultMaxDepth)
}

func parse(tokens []Token, end, maxDepth int) (Node, error) {
	p := &parser{tokens: tokens, end: end, maxDepth: maxDepth}
	root, pos, err := p.parseRegex(0)
	if err != nil {
		return nil, err
	}
	if pos < len(tokens) {
		return nil, p.unexpected(tokens[pos])
	}
	return root, nil
}

type parser struct {
	tokens   []Token
	end      int
	depth    int
	maxDepth int
}

func (p *parser) errorAt(kind ErrorKind, pos int, format string, args ...interface{}) error {
	e := &SyntaxError{Kind: kind, Pos: p.end, Message: fmt.Sprintf(format, args...)}
	if pos < len(p.tokens) {
		e.Pos = p.tokens[pos].Pos
		e.Token = p.tokens[pos].String()
	}
	return e
}

// unexpected classifies a token that cannot continue the expression.
func (p *parser) unexpected(tok Token) error {
	e := &SyntaxError{Pos: tok.Pos, Token: tok.String()}
	switch tok.Kind {
	case TokenCloseParen:
		if p.depth > 0 {
			e.Kind, e.Message = UnexpectedEndOfInput, "group has no content"
		} else {
			e.Kind, e.Message = UnbalancedDelimiter, "')' without matching '('"
		}
	case TokenCloseClass:
		e.Kind, e.Message = UnbalancedDelimiter, "']' without matching '['"
	case TokenStar, TokenPlus, TokenQuestion:
		e.Kind, e.Message = UnexpectedEndOfInput, "quantifier has nothing to repeat"
	default:
		e.Kind, e.Message = UnexpectedEndOfInput, "expected an operand"
	}
	return e
}

func (p *parser) parseRegex(pos int) (Node, int, error) {
	return p.parseAlternation(pos)
}

func (p *parser) parseAlternation(pos int) (Node, int, error) {
	left, pos, err := p.parseConcat(pos)
	if err != nil {
		return nil, pos, err
	}
	for pos < len(p.tokens) && p.tokens[pos].Kind == TokenOr {
		var right Node
		right, pos, err = p.parseConcat(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		left = &Alternation{Left: left, Right: right}
	}
	return left, pos, nil
}

func (p *parser) parseConcat(pos int) (Node, int, error) {
	left, pos, err := p.parseQuantified(pos)
	if err != nil {
		return nil, pos, err
	}
	for pos < len(p.tokens) && startsOperand(p.tokens[pos].Kind) {
		var right Node
		right, pos, err = p.parseQuantified(pos)
		if err != nil {
			return nil, pos, err
		}
		left = &Concat{Left: left, Right: right}
	}
	return left, pos, nil
}

func startsOperand(k TokenKind) bool {
	switch k {
	case TokenLiteral, TokenWildcard, TokenOpenParen, TokenOpenClass, TokenDash:
		return true
	}
	return false
}

func (p *parser) parseQuantified(pos int) (Node, int, error) {
	base, pos, err := p.parseBase(pos)
	if err != nil {
		return nil, pos, err
	}
	if pos >= len(p.tokens) {
		return base, pos, nil
	}
	switch p.tokens[pos].Kind {
	case TokenStar:
		return &Star{Child: base}, pos + 1, nil
	case TokenPlus:
		return &Plus{Child: base}, pos + 1, nil
	case TokenQuestion:
		return &Optional{Child: base}, pos + 1, nil
	}
	return base, pos, nil
}

func (p *parser) parseBase(pos int) (Node, int, error) {
	if pos >= len(p.tokens) {
		return nil, pos, p.errorAt(UnexpectedEndOfInput, pos, "expected an operand")
	}
	tok := p.tokens[pos]
	switch tok.Kind {
	case TokenLiteral, TokenDash:
		return &Literal{Char: tokenRune(tok)}, pos + 1, nil
	case TokenWildcard:
		return &CharClass{Items: []Item{AnyItem()}}, pos + 1, nil
	case TokenOpenParen:
		return p.parseGroup(pos)
	case TokenOpenClass:
		return p.parseClassExpr(pos)
	}
	return nil, pos, p.unexpected(tok)
}

func (p *parser) parseGroup(open int) (Node, int, error) {
	if p.depth >= p.maxDepth {
		return nil, open, p.errorAt(NestingTooDeep, open, "groups nest deeper than %d", p.maxDepth)
	}
	p.depth++
	inner, pos, err := p.parseRegex(open + 1)
	p.depth--
	if err != nil {
		return nil, pos, err
	}
	if pos >= len(p.tokens) {
		return nil, pos, p.errorAt(UnbalancedDelimiter, open, "'(' is never closed")
	}
	switch p.tokens[pos].Kind {
	case TokenCloseParen:
		return inner, pos + 1, nil
	case TokenCloseClass:
		return nil, pos, p.errorAt(UnbalancedDelimiter, pos, "'(' at position %d closed with ']'", p.tokens[open].Pos)
	}
	return nil, pos, p.unexpected(p.tokens[pos])
}

func (p *parser) parseClassExpr(open int) (Node, int, error) {
	items, pos, err := p.parseClass(open + 1)
	if err != nil {
		return nil, pos, err
	}
	if pos >= len(p.tokens) {
		if len(items) == 0 {
			return nil, pos, p.errorAt(UnexpectedEndOfInput, pos, "character class has no content")
		}
		return nil, pos, p.errorAt(UnbalancedDelimiter, open, "'[' is never closed")
	}
	if len(items) == 0 {
		return nil, pos, p.errorAt(UnexpectedEndOfInput, pos, "character class has no content")
	}
	return &CharClass{Items: NewLabel(items...)}, pos + 1, nil
}

// parseClass reads class members up to, not including, the closing ']'.
// Every token other than '-' and ']' stands for its own character.
func (p *parser) parseClass(pos int) ([]Item, int, error) {
	var items []Item
	canStartRange := false
	for pos < len(p.tokens) && p.tokens[pos].Kind != TokenCloseClass {
		tok := p.tokens[pos]
		if tok.Kind != TokenDash {
			items = append(items, Char(tokenRune(tok)))
			canStartRange = true
			pos++
			continue
		}
		if !canStartRange {
			return nil, pos, p.errorAt(MalformedRange, pos, "range has no start character")
		}
		if pos+1 >= len(p.tokens) || p.tokens[pos+1].Kind == TokenCloseClass {
			return nil, pos, p.errorAt(MalformedRange, pos, "range has no end character")
		}
		lo := items[len(items)-1].Low
		hi := tokenRune(p.tokens[pos+1])
		if lo > hi {
			return nil, pos, p.errorAt(MalformedRange, pos, "range %q-%q is out of order", lo, hi)
		}
		items[len(items)-1] = Range(lo, hi)
		canStartRange = false
		pos += 2
	}
	return items, pos, nil
}

func tokenRune(tok Token) rune {
	r, _ := utf8.DecodeRuneInString(tok.Literal)
	return r
}
