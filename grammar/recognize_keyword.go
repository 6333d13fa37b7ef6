package grammar

func recognizeKeyword(toks []Token) (Fragment, int, *ParseError) {
	t := at(toks, 0)
	if k, ok := keywordWords[t.Text]; ok && t.Kind == TokenWord {
		return k, 1, nil
	}
	return nil, 0, nil
}

// recognizePureNumber claims a bare unsigned number as the last resort
func recognizePureNumber(toks []Token) (Fragment, int, *ParseError) {
	t := at(toks, 0)
	if !isUnsigned(t) {
		return nil, 0, nil
	}
	return PureNumber{Digits: t.Text}, 1, nil
}

// recognizeEmpty matches only an input with no tokens at all
func recognizeEmpty(toks []Token) (Fragment, bool) {
	if len(toks) != 0 {
		return nil, false
	}
	return Empty{}, true
}
