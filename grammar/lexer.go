package grammar

import "unicode/utf8"

// Lexer produces the tokens of a date expression on demand.
//
// Comments in balanced, possibly nested parentheses act as whitespace.
// Letters are folded to lower case. A '-' or '+' that is not immediately
// followed by a digit acts as whitespace; one that is becomes the sign of the
// following Number, unless it directly follows another Number, in which case
// it is a Symbol ("2021-02-14").
type Lexer struct {
	input     string
	pos       int
	afterNum  bool // the previous token is a Number with nothing in between
	separated bool // whitespace or a comment since the previous token
	started   bool // at least one token has been produced
}

// NewLexer creates a lexer positioned at the start of input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Reset rewinds the lexer to the start of its input
func (lx *Lexer) Reset() {
	*lx = Lexer{input: lx.input}
}

// Next returns the next token, or a Token of kind TokenEnd once the input is
// exhausted. The only error is an unterminated comment.
func (lx *Lexer) Next() (Token, error) {
	for lx.pos < len(lx.input) {
		c := lx.input[lx.pos]
		switch {
		case isSpace(c):
			lx.pos++
			lx.gap()
		case c == '(':
			if err := lx.skipComment(); err != nil {
				return Token{}, err
			}
			lx.gap()
		case c == '-' || c == '+':
			if lx.pos+1 >= len(lx.input) || !isDigit(lx.input[lx.pos+1]) {
				lx.pos++
				lx.gap()
				continue
			}
			if lx.afterNum {
				return lx.emit(Token{Kind: TokenSymbol, Text: string(c)}, 1), nil
			}
			n := lx.digitsFrom(lx.pos + 1)
			return lx.emit(Token{Kind: TokenNumber, Sign: c, Text: lx.input[lx.pos+1 : lx.pos+1+n]}, n+1), nil
		case isDigit(c):
			n := lx.digitsFrom(lx.pos)
			return lx.emit(Token{Kind: TokenNumber, Text: lx.input[lx.pos : lx.pos+n]}, n), nil
		case isLetter(c):
			n := 0
			word := make([]byte, 0, 8)
			for lx.pos+n < len(lx.input) && isLetter(lx.input[lx.pos+n]) {
				word = append(word, lower(lx.input[lx.pos+n]))
				n++
			}
			return lx.emit(Token{Kind: TokenWord, Text: string(word)}, n), nil
		default:
			_, size := utf8.DecodeRuneInString(lx.input[lx.pos:])
			return lx.emit(Token{Kind: TokenSymbol, Text: lx.input[lx.pos : lx.pos+size]}, size), nil
		}
	}
	return Token{Kind: TokenEnd, Offset: len(lx.input), Spaced: lx.started && lx.separated}, nil
}

func (lx *Lexer) emit(t Token, width int) Token {
	t.Offset = lx.pos
	t.Spaced = lx.started && lx.separated
	lx.pos += width
	lx.afterNum = t.Kind == TokenNumber
	lx.separated = false
	lx.started = true
	return t
}

func (lx *Lexer) gap() {
	lx.separated = true
	lx.afterNum = false
}

func (lx *Lexer) digitsFrom(start int) int {
	n := 0
	for start+n < len(lx.input) && isDigit(lx.input[start+n]) {
		n++
	}
	return n
}

func (lx *Lexer) skipComment() error {
	open := lx.pos
	depth := 0
	for lx.pos < len(lx.input) {
		switch lx.input[lx.pos] {
		case '(':
			depth++
		case ')':
			depth--
		}
		lx.pos++
		if depth == 0 {
			return nil
		}
	}
	return newParseError(ErrorKindLex, "unterminated comment").
		at(lx.input, open, len(lx.input)).
		WithSuggestion("close every '(' with a matching ')'")
}

// End returns the byte offset just past the token
func (t Token) End() int {
	end := t.Offset + len(t.Text)
	if t.Sign != 0 {
		end++
	}
	return end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
