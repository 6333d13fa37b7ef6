package grammar

import "time"

var monthWords = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var weekdayWords = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday, "wednes": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// "second" is deliberately absent: it is a unit
var ordinalWords = map[string]int{
	"last":     -1,
	"this":     0,
	"next":     1,
	"first":    1,
	"third":    3,
	"fourth":   4,
	"fifth":    5,
	"sixth":    6,
	"seventh":  7,
	"eighth":   8,
	"ninth":    9,
	"tenth":    10,
	"eleventh": 11,
	"twelfth":  12,
}

var unitWords = map[string]Unit{
	"second": UnitSecond, "seconds": UnitSecond, "sec": UnitSecond, "secs": UnitSecond,
	"minute": UnitMinute, "minutes": UnitMinute, "min": UnitMinute, "mins": UnitMinute,
	"hour": UnitHour, "hours": UnitHour,
	"day": UnitDay, "days": UnitDay,
	"week": UnitWeek, "weeks": UnitWeek,
	"fortnight": UnitFortnight, "fortnights": UnitFortnight,
	"month": UnitMonth, "months": UnitMonth,
	"year": UnitYear, "years": UnitYear,
}

var keywordWords = map[string]Keyword{
	"now":       KeywordNow,
	"today":     KeywordToday,
	"yesterday": KeywordYesterday,
	"tomorrow":  KeywordTomorrow,
}

var ordinalSuffixes = map[string]bool{"st": true, "nd": true, "rd": true, "th": true}

// Zone abbreviations in minutes east of UTC, including the military letters
var zoneWords = map[string]int{
	"z": 0, "utc": 0, "gmt": 0, "wet": 0,
	"west": 60, "wat": 60, "cet": 60, "a": 60,
	"cest": 120, "eet": 120, "sast": 120, "cat": 120, "b": 120,
	"eest": 180, "eat": 180, "msk": 180, "c": 180,
	"msd": 240, "gst": 240, "adt": 240, "d": 240,
	"e":   300,
	"bst": 360, "f": 360,
	"g":   420,
	"sgt": 480, "h": 480,
	"jst": 540, "i": 540,
	"k": 600,
	"l": 660,
	"m": 720, "nzst": 720,
	"nzdt": 780,
	"ist":  330,
	"n":    -60,
	"o":    -120,
	"p":    -180, "ast": -180, "art": -180, "brt": -180, "clst": -180,
	"q": -240, "edt": -240, "clt": -240,
	"r": -300, "est": -300, "cdt": -300,
	"s": -360, "cst": -360, "mdt": -360,
	"t": -420, "mst": -420, "pdt": -420,
	"u": -480, "pst": -480, "akdt": -480,
	"v": -540, "akst": -540,
	"w": -600, "hst": -600,
	"x": -660, "sst": -660,
	"y":   -720,
	"nst": -210,
	"ndt": -150,
	"brst": -120,
}

// Zones that may carry an explicit offset suffix ("utc+5", "gmt-03:30")
var offsetBaseZones = map[string]bool{"utc": true, "gmt": true, "z": true}

// separatorWords join fragments and carry no meaning of their own
var separatorWords = map[string]bool{"and": true, "at": true}

// LookupMonth returns the month named by a case-folded word
func LookupMonth(word string) (time.Month, bool) {
	m, ok := monthWords[word]
	return m, ok
}

// LookupWeekday returns the weekday named by a case-folded word
func LookupWeekday(word string) (time.Weekday, bool) {
	d, ok := weekdayWords[word]
	return d, ok
}

// LookupZone returns the offset in minutes of a case-folded abbreviation
func LookupZone(word string) (int, bool) {
	m, ok := zoneWords[word]
	return m, ok
}
