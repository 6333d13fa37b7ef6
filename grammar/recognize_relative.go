package grammar

// recognizeRelative reads one relative offset:
//
//	3 days   +3 days   -1 hour   day   next week   last year   this month
//	2 fortnights ago   1.5 seconds
//
// "ago" negates only the offset it follows.
func recognizeRelative(toks []Token) (Fragment, int, *ParseError) {
	r := RelativeOffset{Count: 1}
	n := 0
	t := at(toks, 0)
	switch t.Kind {
	case TokenWord:
		if v, ok := ordinalWords[t.Text]; ok {
			r.Count = int64(v)
			n = 1
		}
	case TokenNumber:
		frac, fn := fraction(toks, 1)
		unit := at(toks, 1+fn)
		if !isUnitWord(unit) {
			return nil, 0, nil
		}
		if fn > 0 && unitWords[unit.Text] != UnitSecond {
			return nil, 0, nil
		}
		v, ok := t.Int()
		if !ok {
			return nil, 0, errAt(t, ErrorKindOutOfRange, "count %s%s is out of range", signText(t), t.Text)
		}
		r.Count = v
		if fn > 0 {
			r.Nanos = frac
			if t.Sign == '-' {
				r.Nanos = -frac
			}
		}
		n = 1 + fn
	}

	unit := at(toks, n)
	u, ok := unitWords[unit.Text]
	if unit.Kind != TokenWord || !ok {
		return nil, 0, nil
	}
	r.Unit = u
	n++

	if isWord(at(toks, n), "ago") {
		if r.Count == minInt64 {
			return nil, 0, errAt(t, ErrorKindOutOfRange, "count %s%s is out of range", signText(t), t.Text)
		}
		r.Count, r.Nanos = -r.Count, -r.Nanos
		n++
	}
	return r, n, nil
}
