package grammar

import (
	"fmt"
	"time"
)

// Flavour names the category of date grammar a fragment belongs to
type Flavour string

const (
	FlavourEpoch    Flavour = "epoch"
	FlavourDateTime Flavour = "datetime"
	FlavourDate     Flavour = "date"
	FlavourTime     Flavour = "time"
	FlavourZone     Flavour = "zone"
	FlavourWeekday  Flavour = "weekday"
	FlavourRelative Flavour = "relative"
	FlavourKeyword  Flavour = "keyword"
	FlavourNumber   Flavour = "number"
	FlavourEmpty    Flavour = "empty"
)

// Fragment is one recognized piece of date/time meaning.
// The set of implementations is closed; resolvers switch over the concrete
// types below.
type Fragment interface {
	Flavour() Flavour
	String() string
	fragment()
}

// CalendarDate is a civil date; the year is optional
type CalendarDate struct {
	Year    int
	HasYear bool
	Month   time.Month
	Day     int
}

// Meridiem records an am/pm marker on a time of day
type Meridiem int

const (
	MeridiemNone Meridiem = iota
	MeridiemAM
	MeridiemPM
)

// TimeOfDay is a wall-clock time. Hour is already on the 24-hour clock.
type TimeOfDay struct {
	Hour     int
	Minute   int
	Second   int // 60 is accepted for leap-second input
	Nanos    int
	Meridiem Meridiem
	Zone     *ZoneOffset // zone attached to the time ("10:00 est", "06:37:47z")
}

// ZoneOffset is a fixed UTC offset
type ZoneOffset struct {
	Minutes int
	Name    string // upper-case abbreviation, empty for numeric offsets
}

// Weekday names a day of the week with an optional ordinal.
// Ordinal is -1 for "last", 0 for "this", 1 for "next"/"first" and n for a
// repetition count such as "3rd".
type Weekday struct {
	Day        time.Weekday
	Ordinal    int
	HasOrdinal bool
}

// Unit is the granularity of a relative offset
type Unit int

const (
	UnitSecond Unit = iota
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitFortnight
	UnitMonth
	UnitYear
)

var unitNames = [...]string{"second", "minute", "hour", "day", "week", "fortnight", "month", "year"}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("unit(%d)", int(u))
	}
	return unitNames[u]
}

// RelativeOffset is a signed count of one unit. Nanos carries the fraction
// of "1.5 seconds" and has the same sign as Count.
type RelativeOffset struct {
	Count int64
	Unit  Unit
	Nanos int64
}

// EpochSeconds is an "@N" Unix timestamp; Nanos is always in [0, 1e9)
type EpochSeconds struct {
	Seconds int64
	Nanos   int64
}

// Keyword is one of now, today, yesterday, tomorrow
type Keyword string

const (
	KeywordNow       Keyword = "now"
	KeywordToday     Keyword = "today"
	KeywordYesterday Keyword = "yesterday"
	KeywordTomorrow  Keyword = "tomorrow"
)

// Empty marks an expression with nothing in it: the start of the day
type Empty struct{}

// DateTime is a date and a time recognized together ("2021-02-14T06:37:47")
type DateTime struct {
	Date CalendarDate
	Time TimeOfDay
}

// PureNumber is a bare number no other item claimed. It becomes the year of
// a yearless date or an HHMM time of day during resolution.
type PureNumber struct {
	Digits string
}

func (CalendarDate) Flavour() Flavour   { return FlavourDate }
func (TimeOfDay) Flavour() Flavour      { return FlavourTime }
func (ZoneOffset) Flavour() Flavour     { return FlavourZone }
func (Weekday) Flavour() Flavour        { return FlavourWeekday }
func (RelativeOffset) Flavour() Flavour { return FlavourRelative }
func (EpochSeconds) Flavour() Flavour   { return FlavourEpoch }
func (Keyword) Flavour() Flavour        { return FlavourKeyword }
func (Empty) Flavour() Flavour          { return FlavourEmpty }
func (DateTime) Flavour() Flavour       { return FlavourDateTime }
func (PureNumber) Flavour() Flavour     { return FlavourNumber }

func (CalendarDate) fragment()   {}
func (TimeOfDay) fragment()      {}
func (ZoneOffset) fragment()     {}
func (Weekday) fragment()        {}
func (RelativeOffset) fragment() {}
func (EpochSeconds) fragment()   {}
func (Keyword) fragment()        {}
func (Empty) fragment()          {}
func (DateTime) fragment()       {}
func (PureNumber) fragment()     {}

func (d CalendarDate) String() string {
	if d.HasYear {
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
	}
	return fmt.Sprintf("--%02d-%02d", int(d.Month), d.Day)
}

func (t TimeOfDay) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanos != 0 {
		s += fmt.Sprintf(".%09d", t.Nanos)
	}
	if t.Zone != nil {
		s += " " + t.Zone.String()
	}
	return s
}

func (z ZoneOffset) String() string {
	sign := '+'
	m := z.Minutes
	if m < 0 {
		sign = '-'
		m = -m
	}
	s := fmt.Sprintf("%c%02d:%02d", sign, m/60, m%60)
	if z.Name != "" {
		s = z.Name + " (" + s + ")"
	}
	return s
}

func (w Weekday) String() string {
	if !w.HasOrdinal {
		return w.Day.String()
	}
	switch w.Ordinal {
	case -1:
		return "last " + w.Day.String()
	case 0:
		return "this " + w.Day.String()
	case 1:
		return "next " + w.Day.String()
	}
	return fmt.Sprintf("%s #%d", w.Day, w.Ordinal)
}

func (r RelativeOffset) String() string {
	if r.Nanos != 0 {
		secs := float64(r.Count) + float64(r.Nanos)/1e9
		return fmt.Sprintf("%+g seconds", secs)
	}
	return fmt.Sprintf("%+d %s", r.Count, r.Unit)
}

func (e EpochSeconds) String() string {
	if e.Nanos != 0 {
		return fmt.Sprintf("@%d.%09d", e.Seconds, e.Nanos)
	}
	return fmt.Sprintf("@%d", e.Seconds)
}

func (k Keyword) String() string    { return string(k) }
func (Empty) String() string        { return "start of day" }
func (n PureNumber) String() string { return n.Digits }

func (dt DateTime) String() string {
	return dt.Date.String() + "T" + dt.Time.String()
}
