package grammar

import "fmt"

// Item is a recognized fragment together with the input it was read from
type Item struct {
	Fragment Fragment
	Text     string
	Range    Range
}

// Parse splits a date expression into fragments, in input order.
func Parse(input string) ([]Fragment, error) {
	items, err := Recognize(input)
	if err != nil {
		return nil, err
	}
	frags := make([]Fragment, len(items))
	for i, it := range items {
		frags[i] = it.Fragment
	}
	return frags, nil
}

// Recognize runs the recognizers over input and reports every item with its
// source span. An input without tokens is a single Empty item.
func Recognize(input string) ([]Item, error) {
	toks, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	if frag, ok := recognizeEmpty(toks); ok {
		return []Item{{Fragment: frag, Range: RangeOf(input, 0, len(input))}}, nil
	}

	var items []Item
	pos := 0
	for pos < len(toks) {
		frag, n, perr := recognizeAt(toks[pos:])
		if perr != nil {
			return nil, perr.locate(input, toks[pos].End())
		}
		if n == 0 {
			bad := toks[pos]
			// "next frday": the modifier is fine, what follows it is not
			if _, ok := ordinalWords[bad.Text]; ok && bad.Kind == TokenWord && pos+1 < len(toks) {
				bad = toks[pos+1]
			}
			return nil, unrecognized(input, bad)
		}

		start, end := toks[pos].Offset, toks[pos+n-1].End()
		items = append(items, Item{Fragment: frag, Text: input[start:end], Range: RangeOf(input, start, end)})
		pos += n

		if pos < len(toks) && isSeparator(toks[pos]) {
			if pos+1 == len(toks) {
				return nil, newParseErrorf(ErrorKindInvalidInput, "expression ends with separator %q", toks[pos].Text).
					at(input, toks[pos].Offset, toks[pos].End())
			}
			pos++
		}
	}
	return items, nil
}

func recognizeAt(toks []Token) (Fragment, int, *ParseError) {
	for _, r := range recognizers {
		frag, n, err := r.match(toks)
		if err != nil {
			return nil, 0, err
		}
		if n > 0 {
			return frag, n, nil
		}
	}
	return nil, 0, nil
}

func isSeparator(t Token) bool {
	return isSym(t, ",") || (t.Kind == TokenWord && separatorWords[t.Text])
}

func unrecognized(input string, t Token) *ParseError {
	var msg string
	switch t.Kind {
	case TokenWord:
		msg = fmt.Sprintf("unrecognized word %q", t.Text)
	case TokenNumber:
		msg = fmt.Sprintf("unrecognized number %q", signText(t)+t.Text)
	default:
		msg = fmt.Sprintf("unexpected %q", t.Text)
	}
	e := newParseError(ErrorKindInvalidInput, msg).at(input, t.Offset, t.End())
	if t.Kind == TokenWord {
		if s, ok := suggestWord(t.Text); ok {
			e.WithSuggestion(fmt.Sprintf("did you mean %q?", s))
		}
	}
	if isSeparator(t) {
		e.WithSuggestion("separators may only appear between two items")
	}
	return e
}
