package grammar

// recognizeEpoch reads "@1344000", "@-5" and "@1.5".
// Negative fractional timestamps floor: "@-1.5" is 2 seconds before the
// epoch plus half a second.
func recognizeEpoch(toks []Token) (Fragment, int, *ParseError) {
	if !isSym(at(toks, 0), "@") {
		return nil, 0, nil
	}
	num := at(toks, 1)
	if num.Kind != TokenNumber || !adjacent(num) {
		return nil, 0, nil
	}
	secs, ok := num.Int()
	if !ok {
		return nil, 0, errAt(num, ErrorKindOutOfRange, "epoch seconds %s%s are out of range", signText(num), num.Text)
	}

	nanos, n := fraction(toks, 2)
	if nanos > 0 && num.Sign == '-' {
		if secs == minInt64 {
			return nil, 0, errAt(num, ErrorKindOutOfRange, "epoch seconds -%s.x are out of range", num.Text)
		}
		secs--
		nanos = 1e9 - nanos
	}
	return EpochSeconds{Seconds: secs, Nanos: nanos}, 2 + n, nil
}

const minInt64 = -1 << 63

func signText(t Token) string {
	if t.Sign == 0 {
		return ""
	}
	return string(t.Sign)
}
