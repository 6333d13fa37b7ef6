package resolve

import (
	"strconv"
	"time"

	"github.com/teranos/gnudate/grammar"
)

// Mode selects what a fragment list resolves to
type Mode int

const (
	// ModeAbsolute resolves to an instant relative to Options.Reference
	ModeAbsolute Mode = iota
	// ModeDuration resolves to a Delta and ignores anchoring items
	ModeDuration
)

func (m Mode) String() string {
	if m == ModeDuration {
		return "duration"
	}
	return "absolute"
}

// Options control a resolution
type Options struct {
	Mode      Mode
	Reference time.Time
}

// Result is either Absolute or Relative
type Result interface {
	result()
}

// Absolute is a resolved instant. When the expression named a zone the
// location is a fixed zone with that offset; otherwise it is the
// reference's location. Epoch timestamps resolve in UTC.
type Absolute struct {
	Time time.Time
}

// Relative is the summed relative offset of a duration expression
type Relative struct {
	Delta Delta
}

func (Absolute) result() {}
func (Relative) result() {}

// partition is the fold state: at most one of each anchor plus the summed
// relative offsets
type partition struct {
	date      *grammar.CalendarDate
	clock     *grammar.TimeOfDay
	zone      *grammar.ZoneOffset
	weekday   *grammar.Weekday
	epoch     *grammar.EpochSeconds
	number    *grammar.PureNumber
	empty     bool
	delta     Delta
	relatives int
}

// Resolve folds fragments into a single meaning.
//
// Fragment order never matters. Two items claiming the same slot (two dates,
// two times, a time zone given twice) are contradictory, as is an epoch
// timestamp combined with anything else.
func Resolve(frags []grammar.Fragment, opts Options) (Result, error) {
	p, err := fold(frags)
	if err != nil {
		return nil, err
	}
	if err := p.settleNumber(); err != nil {
		return nil, err
	}
	if opts.Mode == ModeDuration {
		return p.duration()
	}
	t, err := p.absolute(opts.Reference)
	if err != nil {
		return nil, err
	}
	return Absolute{Time: t}, nil
}

func fold(frags []grammar.Fragment) (*partition, error) {
	p := &partition{}
	for _, f := range frags {
		if err := p.add(f); err != nil {
			return nil, err
		}
	}
	if p.epoch != nil && (p.date != nil || p.clock != nil || p.zone != nil || p.weekday != nil ||
		p.number != nil || p.empty || p.relatives > 0) {
		return nil, contradictory("an epoch timestamp cannot be combined with other items")
	}
	return p, nil
}

func (p *partition) add(f grammar.Fragment) error {
	switch f := f.(type) {
	case grammar.EpochSeconds:
		if p.epoch != nil {
			return contradictory("two epoch timestamps: %s and %s", p.epoch, f)
		}
		p.epoch = &f
	case grammar.DateTime:
		if err := p.setDate(f.Date); err != nil {
			return err
		}
		return p.setClock(f.Time)
	case grammar.CalendarDate:
		return p.setDate(f)
	case grammar.TimeOfDay:
		return p.setClock(f)
	case grammar.ZoneOffset:
		if p.zone != nil {
			return contradictory("two time zones: %s and %s", p.zone, f)
		}
		if p.clock != nil && p.clock.Zone != nil {
			return contradictory("time zone %s given twice", f)
		}
		p.zone = &f
	case grammar.Weekday:
		if p.weekday != nil {
			return contradictory("two weekdays: %s and %s", p.weekday, f)
		}
		p.weekday = &f
	case grammar.RelativeOffset:
		return p.addRelative(f)
	case grammar.Keyword:
		switch f {
		case grammar.KeywordYesterday:
			return p.addRelative(grammar.RelativeOffset{Count: -1, Unit: grammar.UnitDay})
		case grammar.KeywordTomorrow:
			return p.addRelative(grammar.RelativeOffset{Count: 1, Unit: grammar.UnitDay})
		default:
			p.relatives++
		}
	case grammar.PureNumber:
		if p.number != nil {
			return contradictory("two bare numbers: %s and %s", p.number.Digits, f.Digits)
		}
		p.number = &f
	case grammar.Empty:
		p.empty = true
	default:
		return contradictory("unsupported item %s", f)
	}
	return nil
}

func (p *partition) setDate(d grammar.CalendarDate) error {
	if p.date != nil {
		return contradictory("two dates: %s and %s", p.date, d)
	}
	p.date = &d
	return nil
}

func (p *partition) setClock(t grammar.TimeOfDay) error {
	if p.clock != nil {
		return contradictory("two times of day: %s and %s", p.clock, t)
	}
	if t.Zone != nil && p.zone != nil {
		return contradictory("time zone %s given twice", p.zone)
	}
	p.clock = &t
	return nil
}

func (p *partition) addRelative(r grammar.RelativeOffset) error {
	d, err := p.delta.Add(r)
	if err != nil {
		return err
	}
	p.delta = d
	p.relatives++
	return nil
}

// settleNumber gives a bare number its meaning: the year of a yearless date,
// otherwise a time of day (H, HH, HMM or HHMM).
func (p *partition) settleNumber() error {
	n := p.number
	if n == nil {
		return nil
	}
	if p.date != nil && !p.date.HasYear {
		year, err := strconv.Atoi(n.Digits)
		if err != nil || len(n.Digits) > 10 {
			return outOfRange("year %s is out of range", n.Digits)
		}
		if len(n.Digits) == 2 {
			if year <= 68 {
				year += 2000
			} else {
				year += 1900
			}
		}
		p.date.Year, p.date.HasYear = year, true
		p.number = nil
		return nil
	}
	if p.clock != nil {
		return contradictory("number %s has no meaning next to time %s", n.Digits, p.clock)
	}
	if len(n.Digits) > 4 {
		return outOfRange("number %s is not a time of day", n.Digits)
	}
	v, err := strconv.Atoi(n.Digits)
	if err != nil {
		return outOfRange("number %s is not a time of day", n.Digits)
	}
	hour, min := v, 0
	if len(n.Digits) > 2 {
		hour, min = v/100, v%100
	}
	if hour > 23 || min > 59 {
		return outOfRange("%s is not a valid time of day", n.Digits)
	}
	p.clock = &grammar.TimeOfDay{Hour: hour, Minute: min}
	p.number = nil
	return nil
}

func (p *partition) duration() (Result, error) {
	if p.epoch != nil {
		return nil, notADuration("an epoch timestamp is an instant, not a duration")
	}
	if p.relatives == 0 {
		return nil, notADuration("expression names a point in time, not a duration")
	}
	return Relative{Delta: p.delta}, nil
}

func (p *partition) anchored() bool {
	return p.date != nil || p.clock != nil || p.zone != nil || p.weekday != nil || p.empty
}

func (p *partition) absolute(ref time.Time) (time.Time, error) {
	if p.epoch != nil {
		if p.epoch.Seconds < minUnix || p.epoch.Seconds > maxUnix {
			return time.Time{}, outOfRange("epoch timestamp %s is out of range", p.epoch)
		}
		return time.Unix(p.epoch.Seconds, p.epoch.Nanos).UTC(), nil
	}

	year, month, day := ref.Date()
	hour, min, sec := ref.Clock()
	nsec := ref.Nanosecond()
	if p.anchored() {
		hour, min, sec, nsec = 0, 0, 0, 0
	}

	if d := p.date; d != nil {
		if d.HasYear {
			year = d.Year
		}
		if err := checkYear(year); err != nil {
			return time.Time{}, err
		}
		month, day = d.Month, d.Day
		if day > daysIn(month, year) {
			return time.Time{}, outOfRange("%s %d has no day %d", month, year, day)
		}
	}
	if c := p.clock; c != nil {
		hour, min, sec, nsec = c.Hour, c.Minute, c.Second, c.Nanos
	}

	// a stated zone holds for the whole walk, so weekday and relative steps
	// never cross a transition of the reference location
	loc := ref.Location()
	if z := p.zoneOffset(); z != nil {
		loc = time.FixedZone(z.Name, z.Minutes*60)
	}
	t := time.Date(year, month, day, hour, min, sec, nsec, loc)
	if w := p.weekday; w != nil {
		t = applyWeekday(t, *w)
	}

	t, err := p.delta.ApplyTo(t)
	if err != nil {
		return time.Time{}, err
	}

	if err := checkYear(t.Year()); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func (p *partition) zoneOffset() *grammar.ZoneOffset {
	if p.zone != nil {
		return p.zone
	}
	if p.clock != nil {
		return p.clock.Zone
	}
	return nil
}

// applyWeekday moves t forward to the named day. Without an ordinal, or with
// "this", today counts; "next" and larger ordinals skip whole weeks; "last"
// moves backward.
func applyWeekday(t time.Time, w grammar.Weekday) time.Time {
	n := 0
	if w.HasOrdinal {
		n = w.Ordinal
	}
	cur := t.Weekday()
	if n > 0 && cur != w.Day {
		n--
	}
	days := (int(w.Day)-int(cur)+7)%7 + 7*n
	return t.AddDate(0, 0, days)
}
