package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind classifies a lexical token
type TokenKind int

const (
	TokenEnd TokenKind = iota
	TokenNumber
	TokenWord
	TokenSymbol
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "number"
	case TokenWord:
		return "word"
	case TokenSymbol:
		return "symbol"
	default:
		return "end"
	}
}

// Token is one lexical item of a date expression.
//
// Text holds the digits of a Number (without its sign), the case-folded
// letters of a Word, or the raw bytes of a Symbol.
type Token struct {
	Kind   TokenKind
	Text   string
	Sign   byte // '+', '-' or 0; Number only
	Offset int  // byte offset in the original input
	Spaced bool // whitespace or a comment separates it from the previous token
}

func (t Token) String() string {
	if t.Kind == TokenEnd {
		return "end of input"
	}
	if t.Sign != 0 {
		return fmt.Sprintf("%s %q", t.Kind, string(t.Sign)+t.Text)
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// Int returns the signed value of a Number token.
// ok is false for non-numbers and for values that overflow int64.
func (t Token) Int() (int64, bool) {
	if t.Kind != TokenNumber {
		return 0, false
	}
	s := t.Text
	if t.Sign == '-' {
		s = "-" + s
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Normalize strips comments, folds case and collapses whitespace, rendering
// the token stream of input back to text. Tokenizing the result yields the
// same tokens as tokenizing input, and Normalize is a fixed point.
func Normalize(input string) (string, error) {
	toks, err := Tokenize(input)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, t := range toks {
		if t.Spaced {
			b.WriteByte(' ')
		}
		if t.Sign != 0 {
			b.WriteByte(t.Sign)
		}
		b.WriteString(t.Text)
	}
	return b.String(), nil
}

// Tokenize drains a Lexer over input. The trailing End token is not included.
func Tokenize(input string) ([]Token, error) {
	lx := NewLexer(input)
	var toks []Token
	for {
		t, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if t.Kind == TokenEnd {
			return toks, nil
		}
		toks = append(toks, t)
	}
}
