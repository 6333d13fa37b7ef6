package grammar

import (
	"strconv"
	"strings"
)

// recognizeZone reads a standalone zone: "+0530", "-05:00", "+1", "utc",
// "utc+5", "cest", "est dst"
func recognizeZone(toks []Token) (Fragment, int, *ParseError) {
	z, n, err := matchNumericZone(toks, 0, false)
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		z, n, err = matchNamedZone(toks, 0)
		if err != nil || n == 0 {
			return nil, 0, err
		}
	}
	return z, n, nil
}

// matchNumericZone reads +H, +HH, +HMM, +HHMM and +HH:MM at toks[i].
// symbolSign also accepts a sign lexed as a Symbol, which happens when the
// offset is glued to a time ("10:00-05:00").
// A signed number that counts a unit ("+8 years") or a weekday ("+2 fri")
// is not a zone.
func matchNumericZone(toks []Token, i int, symbolSign bool) (ZoneOffset, int, *ParseError) {
	t := at(toks, i)
	var sign byte
	var digits Token
	n := 0
	switch {
	case isSigned(t):
		sign, digits, n = t.Sign, t, 1
	case symbolSign && (isSym(t, "+") || isSym(t, "-")) && adjacent(t) && isUnsigned(at(toks, i+1)) && adjacent(at(toks, i+1)):
		sign, digits, n = t.Text[0], at(toks, i+1), 2
	default:
		return ZoneOffset{}, 0, nil
	}
	if len(digits.Text) > 4 {
		return ZoneOffset{}, 0, nil
	}

	v, _ := strconv.Atoi(digits.Text)
	hours, minutes := v, 0
	if c, m := at(toks, i+n), at(toks, i+n+1); len(digits.Text) <= 2 && isSym(c, ":") && adjacent(c) && isUnsigned(m) && adjacent(m) && len(m.Text) == 2 {
		minutes, _ = strconv.Atoi(m.Text)
		n += 2
	} else if len(digits.Text) > 2 {
		hours, minutes = v/100, v%100
	}

	if next := at(toks, i+n); isUnitWord(next) || isWord(next, "ago") || (next.Kind == TokenWord && isWeekdayWord(next.Text)) {
		return ZoneOffset{}, 0, nil
	}
	if _, fn := fraction(toks, i+n); fn > 0 {
		return ZoneOffset{}, 0, nil
	}
	if hours > 24 {
		return ZoneOffset{}, 0, errAt(t, ErrorKindInvalidInput, "zone offset hours %d are out of range (0-24)", hours)
	}
	if minutes > 59 {
		return ZoneOffset{}, 0, errAt(t, ErrorKindInvalidInput, "zone offset minutes %d are out of range (0-59)", minutes)
	}
	total := hours*60 + minutes
	if sign == '-' {
		total = -total
	}
	return ZoneOffset{Minutes: total}, n, nil
}

// matchNamedZone reads an abbreviation, an optional explicit offset after
// utc/gmt/z, and an optional "dst"
func matchNamedZone(toks []Token, i int) (ZoneOffset, int, *ParseError) {
	t := at(toks, i)
	if t.Kind != TokenWord {
		return ZoneOffset{}, 0, nil
	}
	minutes, ok := zoneWords[t.Text]
	if !ok {
		return ZoneOffset{}, 0, nil
	}
	z := ZoneOffset{Minutes: minutes, Name: strings.ToUpper(t.Text)}
	n := 1
	if offsetBaseZones[t.Text] {
		off, on, err := matchNumericZone(toks, i+1, true)
		if err != nil {
			return ZoneOffset{}, 0, err
		}
		if on > 0 {
			z.Minutes += off.Minutes
			z.Name = ""
			n += on
		}
	}
	if isWord(at(toks, i+n), "dst") {
		z.Minutes += 60
		if z.Name != "" {
			z.Name += " DST"
		}
		n++
	}
	return z, n, nil
}

func isWeekdayWord(w string) bool {
	_, ok := weekdayWords[w]
	return ok
}
