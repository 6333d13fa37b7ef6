package grammar

// recognizeDateTime reads an ISO date and a time joined by "T" or
// whitespace as one item: "2021-02-14T06:37:47Z", "20210214 10:30".
func recognizeDateTime(toks []Token) (Fragment, int, *ParseError) {
	date, n, err := matchISODate(toks)
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		date, n, err = matchCompactDate(toks)
		if err != nil || n == 0 {
			return nil, 0, err
		}
	}

	sep := at(toks, n)
	switch {
	case isWord(sep, "t"):
		n++
	case sep.Kind == TokenEnd || !sep.Spaced:
		return nil, 0, nil
	}

	tod, tn, err := matchTime(toks[n:])
	if err != nil || tn == 0 {
		return nil, 0, err
	}
	return DateTime{Date: date, Time: tod}, n + tn, nil
}
