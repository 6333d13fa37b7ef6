package grammar

import "time"

type dateMatcher func(toks []Token) (CalendarDate, int, *ParseError)

// recognizeDate reads a calendar date in any of the supported shapes:
//
//	2021-02-14   20210214   2/14   2/14/2021   2021/02/14
//	14 feb 2021  14-feb-21  2nd feb  feb 14, 2021  february 14th
func recognizeDate(toks []Token) (Fragment, int, *ParseError) {
	for _, match := range []dateMatcher{matchISODate, matchCompactDate, matchSlashDate, matchDayMonth, matchMonthDay} {
		d, n, err := match(toks)
		if err != nil {
			return nil, 0, err
		}
		if n > 0 {
			return d, n, nil
		}
	}
	return nil, 0, nil
}

// matchISODate reads Y-M-D
func matchISODate(toks []Token) (CalendarDate, int, *ParseError) {
	y, s1, m, s2, d := at(toks, 0), at(toks, 1), at(toks, 2), at(toks, 3), at(toks, 4)
	if !isUnsigned(y) ||
		!isSym(s1, "-") || !adjacent(s1) || !isUnsigned(m) || !adjacent(m) ||
		!isSym(s2, "-") || !adjacent(s2) || !isUnsigned(d) || !adjacent(d) {
		return CalendarDate{}, 0, nil
	}
	month, okM := smallInt(m, 2)
	day, okD := smallInt(d, 2)
	if !okM || !okD {
		return CalendarDate{}, 0, nil
	}
	year, err := yearOf(y)
	if err != nil {
		return CalendarDate{}, 0, err
	}
	date := CalendarDate{Year: year, HasYear: true, Month: time.Month(month), Day: day}
	if err := checkDate(y, date); err != nil {
		return CalendarDate{}, 0, err
	}
	return date, 5, nil
}

// matchCompactDate reads YYYYMMDD: five or more digits, the last four being
// month and day. "100000 seconds" is left to the relative recognizer.
func matchCompactDate(toks []Token) (CalendarDate, int, *ParseError) {
	t := at(toks, 0)
	if !isUnsigned(t) || len(t.Text) < 5 || blocksYear(at(toks, 1)) {
		return CalendarDate{}, 0, nil
	}
	digits := t.Text
	yearDigits := Token{Kind: TokenNumber, Text: digits[:len(digits)-4], Offset: t.Offset}
	year, err := yearOf(yearDigits)
	if err != nil {
		return CalendarDate{}, 0, err
	}
	month := int(digits[len(digits)-4]-'0')*10 + int(digits[len(digits)-3]-'0')
	day := int(digits[len(digits)-2]-'0')*10 + int(digits[len(digits)-1]-'0')
	date := CalendarDate{Year: year, HasYear: true, Month: time.Month(month), Day: day}
	if err := checkDate(t, date); err != nil {
		return CalendarDate{}, 0, err
	}
	return date, 1, nil
}

// matchSlashDate reads M/D, M/D/Y and Y/M/D (first part of four or more digits)
func matchSlashDate(toks []Token) (CalendarDate, int, *ParseError) {
	a, s1, b := at(toks, 0), at(toks, 1), at(toks, 2)
	if !isUnsigned(a) || !isSym(s1, "/") || !adjacent(s1) || !isUnsigned(b) || !adjacent(b) {
		return CalendarDate{}, 0, nil
	}
	s2, c := at(toks, 3), at(toks, 4)
	three := isSym(s2, "/") && adjacent(s2) && isUnsigned(c) && adjacent(c)

	var date CalendarDate
	n := 3
	if len(a.Text) >= 4 {
		month, okM := smallInt(b, 2)
		day, okD := smallInt(c, 2)
		if !three || !okM || !okD {
			return CalendarDate{}, 0, nil
		}
		year, err := yearOf(a)
		if err != nil {
			return CalendarDate{}, 0, err
		}
		date = CalendarDate{Year: year, HasYear: true, Month: time.Month(month), Day: day}
		n = 5
	} else {
		month, okM := smallInt(a, 2)
		day, okD := smallInt(b, 2)
		if !okM || !okD {
			return CalendarDate{}, 0, nil
		}
		date = CalendarDate{Month: time.Month(month), Day: day}
		if three {
			year, err := yearOf(c)
			if err != nil {
				return CalendarDate{}, 0, err
			}
			date.Year, date.HasYear = year, true
			n = 5
		}
	}
	if err := checkDate(a, date); err != nil {
		return CalendarDate{}, 0, err
	}
	return date, n, nil
}

// matchDayMonth reads "14 feb", "14 feb 2021", "14-feb-2021", "first feb"
func matchDayMonth(toks []Token) (CalendarDate, int, *ParseError) {
	day, n := dayAt(toks, 0)
	if n == 0 {
		return CalendarDate{}, 0, nil
	}
	mt := at(toks, n)
	month, ok := monthWords[mt.Text]
	if mt.Kind != TokenWord || !ok {
		return CalendarDate{}, 0, nil
	}
	n++
	date := CalendarDate{Month: month, Day: day}
	year, yn, err := yearAt(toks, n)
	if err != nil {
		return CalendarDate{}, 0, err
	}
	if yn > 0 {
		date.Year, date.HasYear = year, true
		n += yn
	}
	if err := checkDate(at(toks, 0), date); err != nil {
		return CalendarDate{}, 0, err
	}
	return date, n, nil
}

// matchMonthDay reads "feb 14", "feb. 14th", "feb 14, 2021", "feb-14-2021"
func matchMonthDay(toks []Token) (CalendarDate, int, *ParseError) {
	mt := at(toks, 0)
	month, ok := monthWords[mt.Text]
	if mt.Kind != TokenWord || !ok {
		return CalendarDate{}, 0, nil
	}
	n := 1
	if isSym(at(toks, 1), ".") && adjacent(at(toks, 1)) {
		n++
	}
	day, dn := dayAt(toks, n)
	if dn == 0 {
		return CalendarDate{}, 0, nil
	}
	n += dn
	date := CalendarDate{Month: month, Day: day}

	yearFrom := n
	if isSym(at(toks, n), ",") {
		yearFrom++
	}
	year, yn, err := yearAt(toks, yearFrom)
	if err != nil {
		return CalendarDate{}, 0, err
	}
	if yn > 0 {
		date.Year, date.HasYear = year, true
		n = yearFrom + yn
	}
	if err := checkDate(mt, date); err != nil {
		return CalendarDate{}, 0, err
	}
	return date, n, nil
}

// dayAt reads a day of the month: "14", "14th", "2nd", "first", "twelfth".
// A hyphen-joined "-14" directly after a month word counts as 14.
func dayAt(toks []Token, i int) (int, int) {
	t := at(toks, i)
	if t.Kind == TokenNumber && len(t.Text) <= 2 && (t.Sign == 0 || (t.Sign == '-' && i > 0 && adjacent(t))) {
		v, _ := smallInt(Token{Kind: TokenNumber, Text: t.Text}, 2)
		if suf := at(toks, i+1); suf.Kind == TokenWord && adjacent(suf) && ordinalSuffixes[suf.Text] {
			return v, 2
		}
		return v, 1
	}
	if t.Kind == TokenWord && t.Text != "next" {
		if v, ok := ordinalWords[t.Text]; ok && v >= 1 {
			return v, 1
		}
	}
	return 0, 0
}

// yearAt reads an optional year after a month-name date. A number that
// starts another item ("feb 14 10:30", "feb 14 3 days") is not a year.
func yearAt(toks []Token, i int) (int, int, *ParseError) {
	t := at(toks, i)
	n := 1
	if isSym(t, "-") && adjacent(t) {
		t = at(toks, i+1)
		if !isUnsigned(t) || !adjacent(t) {
			return 0, 0, nil
		}
		n = 2
	} else if t.Kind != TokenNumber || t.Sign == '+' || (t.Sign == '-' && !adjacent(t)) {
		return 0, 0, nil
	}
	if blocksYear(at(toks, i+n)) {
		return 0, 0, nil
	}
	year, err := yearOf(t)
	if err != nil {
		return 0, 0, err
	}
	return year, n, nil
}
