package grammar

func recognizeTime(toks []Token) (Fragment, int, *ParseError) {
	tod, n, err := matchTime(toks)
	if err != nil || n == 0 {
		return nil, 0, err
	}
	return tod, n, nil
}

// matchTime reads a time of day:
//
//	10:30   10:30:15   06:37:47.123   3pm   3 p.m.   11:45am   noon   midnight
//
// optionally followed by a zone ("10:30 est", "06:37:47z", "10:00-05:00").
// A bare number without minutes or a meridiem is not a time.
func matchTime(toks []Token) (TimeOfDay, int, *ParseError) {
	first := at(toks, 0)
	if isWord(first, "noon") || isWord(first, "midnight") {
		var tod TimeOfDay
		if first.Text == "noon" {
			tod.Hour = 12
		}
		return withZoneSuffix(toks, tod, 1)
	}

	hour, ok := smallInt(first, 2)
	if !ok {
		return TimeOfDay{}, 0, nil
	}
	var tod TimeOfDay
	n := 1
	clock := false
	if c, m := at(toks, 1), at(toks, 2); isSym(c, ":") && adjacent(c) && isUnsigned(m) && adjacent(m) {
		minute, ok := smallInt(m, 2)
		if !ok {
			return TimeOfDay{}, 0, nil
		}
		tod.Minute = minute
		n, clock = 3, true
		if c, s := at(toks, 3), at(toks, 4); isSym(c, ":") && adjacent(c) && isUnsigned(s) && adjacent(s) {
			second, ok := smallInt(s, 2)
			if !ok {
				return TimeOfDay{}, 0, nil
			}
			tod.Second = second
			n = 5
			nanos, fn := fraction(toks, 5)
			tod.Nanos = int(nanos)
			n += fn
		}
	}

	mer, mn := meridiemAt(toks, n)
	if !clock && mn == 0 {
		return TimeOfDay{}, 0, nil
	}
	n += mn

	if mer != MeridiemNone {
		if hour < 1 || hour > 12 {
			return TimeOfDay{}, 0, errAt(first, ErrorKindInvalidInput, "hour %d is out of range for am/pm (1-12)", hour)
		}
		hour %= 12
		if mer == MeridiemPM {
			hour += 12
		}
	} else if hour > 23 {
		return TimeOfDay{}, 0, errAt(first, ErrorKindInvalidInput, "hour %d is out of range (0-23)", hour).
			WithSuggestion("use am/pm with hours 1-12, or a 24-hour clock with hours 0-23")
	}
	if tod.Minute > 59 {
		return TimeOfDay{}, 0, errAt(first, ErrorKindInvalidInput, "minute %d is out of range (0-59)", tod.Minute)
	}
	if tod.Second > 60 {
		return TimeOfDay{}, 0, errAt(first, ErrorKindInvalidInput, "second %d is out of range (0-60)", tod.Second)
	}
	tod.Hour = hour
	tod.Meridiem = mer
	return withZoneSuffix(toks, tod, n)
}

func withZoneSuffix(toks []Token, tod TimeOfDay, n int) (TimeOfDay, int, *ParseError) {
	zone, zn, err := matchNumericZone(toks, n, true)
	if err != nil {
		return TimeOfDay{}, 0, err
	}
	if zn == 0 {
		zone, zn, err = matchNamedZone(toks, n)
		if err != nil {
			return TimeOfDay{}, 0, err
		}
	}
	if zn > 0 {
		tod.Zone = &zone
		n += zn
	}
	return tod, n, nil
}

// meridiemAt reads "am", "pm", "a.m." or "p.m."
func meridiemAt(toks []Token, i int) (Meridiem, int) {
	t := at(toks, i)
	switch {
	case isWord(t, "am"):
		return MeridiemAM, 1
	case isWord(t, "pm"):
		return MeridiemPM, 1
	case isWord(t, "a") || isWord(t, "p"):
		dot, m := at(toks, i+1), at(toks, i+2)
		if !isSym(dot, ".") || !adjacent(dot) || !isWord(m, "m") || !adjacent(m) {
			return MeridiemNone, 0
		}
		n := 3
		if end := at(toks, i+3); isSym(end, ".") && adjacent(end) {
			n = 4
		}
		if t.Text == "a" {
			return MeridiemAM, n
		}
		return MeridiemPM, n
	}
	return MeridiemNone, 0
}
