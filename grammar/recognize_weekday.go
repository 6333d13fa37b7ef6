package grammar

// maxOrdinal bounds weekday repetition counts and keeps week arithmetic
// far from overflow
const maxOrdinal = 1 << 24

// recognizeWeekday reads "friday", "fri.", "next friday", "last fri",
// "this friday", "third friday", "3rd friday", "-2 friday"
func recognizeWeekday(toks []Token) (Fragment, int, *ParseError) {
	n := 0
	w := Weekday{}
	t := at(toks, 0)
	switch t.Kind {
	case TokenWord:
		if v, ok := ordinalWords[t.Text]; ok {
			w.Ordinal, w.HasOrdinal = v, true
			n = 1
		}
	case TokenNumber:
		n = 1
		if suf := at(toks, 1); suf.Kind == TokenWord && adjacent(suf) && ordinalSuffixes[suf.Text] {
			n = 2
		}
		if !isWeekdayWord(at(toks, n).Text) || at(toks, n).Kind != TokenWord {
			return nil, 0, nil
		}
		v, ok := t.Int()
		if !ok || v > maxOrdinal || v < -maxOrdinal {
			return nil, 0, errAt(t, ErrorKindOutOfRange, "weekday count %s%s is out of range", signText(t), t.Text)
		}
		w.Ordinal, w.HasOrdinal = int(v), true
	}

	name := at(toks, n)
	day, ok := weekdayWords[name.Text]
	if name.Kind != TokenWord || !ok {
		return nil, 0, nil
	}
	w.Day = day
	n++
	if dot := at(toks, n); isSym(dot, ".") && adjacent(dot) {
		n++
	}
	return w, n, nil
}
