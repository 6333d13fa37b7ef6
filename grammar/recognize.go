package grammar

import (
	"strconv"
	"time"
)

// A recognizer tries to read one item from the front of toks.
//
// It returns the fragment and the number of tokens consumed (always > 0) on
// success, (nil, 0, nil) when the tokens do not have its shape, and an error
// when they have its shape but a value is out of range ("2021-13-01").
// A recognizer never consumes tokens without producing a fragment.
type recognizer func(toks []Token) (Fragment, int, *ParseError)

// recognizers in priority order: the first match at a position wins
var recognizers = []struct {
	flavour Flavour
	match   recognizer
}{
	{FlavourEpoch, recognizeEpoch},
	{FlavourDateTime, recognizeDateTime},
	{FlavourDate, recognizeDate},
	{FlavourTime, recognizeTime},
	{FlavourZone, recognizeZone},
	{FlavourWeekday, recognizeWeekday},
	{FlavourRelative, recognizeRelative},
	{FlavourKeyword, recognizeKeyword},
	{FlavourNumber, recognizePureNumber},
}

func at(toks []Token, i int) Token {
	if i >= 0 && i < len(toks) {
		return toks[i]
	}
	return Token{Kind: TokenEnd, Offset: -1}
}

func isSym(t Token, s string) bool {
	return t.Kind == TokenSymbol && t.Text == s
}

func isWord(t Token, w string) bool {
	return t.Kind == TokenWord && t.Text == w
}

func isUnsigned(t Token) bool {
	return t.Kind == TokenNumber && t.Sign == 0
}

func isSigned(t Token) bool {
	return t.Kind == TokenNumber && t.Sign != 0
}

// adjacent reports whether t directly follows the previous token
func adjacent(t Token) bool {
	return t.Kind != TokenEnd && !t.Spaced
}

func isUnitWord(t Token) bool {
	if t.Kind != TokenWord {
		return false
	}
	_, ok := unitWords[t.Text]
	return ok
}

func isMeridiemStart(t Token) bool {
	return isWord(t, "am") || isWord(t, "pm") || isWord(t, "a") || isWord(t, "p")
}

// blocksYear reports whether a number followed by t belongs to some other
// item: a time ("10:30"), a relative offset ("3 days"), a meridiem ("3 pm")
// or an ordinal ("3rd").
func blocksYear(t Token) bool {
	if isSym(t, ":") || (isSym(t, ".") && adjacent(t)) {
		return true
	}
	if t.Kind != TokenWord {
		return false
	}
	return isUnitWord(t) || isWord(t, "ago") || isMeridiemStart(t) || (adjacent(t) && ordinalSuffixes[t.Text])
}

// smallInt returns the value of an unsigned number of at most maxDigits
// digits, ignoring leading zeros beyond the limit
func smallInt(t Token, maxDigits int) (int, bool) {
	if !isUnsigned(t) || len(t.Text) > maxDigits {
		return 0, false
	}
	v, err := strconv.Atoi(t.Text)
	if err != nil {
		return 0, false
	}
	return v, true
}

// yearOf converts year digits; two-digit years pivot at 68 (00-68 → 20xx)
func yearOf(t Token) (int, *ParseError) {
	if len(t.Text) > 10 {
		return 0, errAt(t, ErrorKindOutOfRange, "year %s is out of range", t.Text)
	}
	v, err := strconv.Atoi(t.Text)
	if err != nil {
		return 0, errAt(t, ErrorKindOutOfRange, "year %s is out of range", t.Text)
	}
	if len(t.Text) == 2 {
		if v <= 68 {
			v += 2000
		} else {
			v += 1900
		}
	}
	return v, nil
}

// fraction reads an adjacent ".123" or ",123" at toks[i].
// It returns the fraction in nanoseconds and the tokens it spans.
func fraction(toks []Token, i int) (int64, int) {
	sep := at(toks, i)
	digits := at(toks, i+1)
	if !(isSym(sep, ".") || isSym(sep, ",")) || !adjacent(sep) || !isUnsigned(digits) || !adjacent(digits) {
		return 0, 0
	}
	return fractionNanos(digits.Text), 2
}

func fractionNanos(digits string) int64 {
	if len(digits) > 9 {
		digits = digits[:9]
	}
	var v int64
	for i := 0; i < 9; i++ {
		v *= 10
		if i < len(digits) {
			v += int64(digits[i] - '0')
		}
	}
	return v
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// checkDate validates a calendar date; without a year February 29 is allowed
func checkDate(t Token, d CalendarDate) *ParseError {
	if d.Month < time.January || d.Month > time.December {
		return errAt(t, ErrorKindInvalidInput, "month %d is out of range (1-12)", int(d.Month)).
			WithSuggestion("dates are written year-month-day or month/day/year")
	}
	if d.Day < 1 || d.Day > 31 {
		return errAt(t, ErrorKindInvalidInput, "day %d is out of range (1-31)", d.Day)
	}
	year := 2000
	if d.HasYear {
		year = d.Year
	}
	if d.Day > daysIn(d.Month, year) {
		if d.HasYear {
			return errAt(t, ErrorKindInvalidInput, "%s %d has no day %d", d.Month, d.Year, d.Day)
		}
		return errAt(t, ErrorKindInvalidInput, "%s has no day %d", d.Month, d.Day)
	}
	return nil
}
