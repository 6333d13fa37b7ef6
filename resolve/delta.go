package resolve

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/teranos/gnudate/grammar"
)

// Year bounds of a resolved instant
const (
	MinYear = -2147481748
	MaxYear = 2147485547
)

var (
	minUnix = time.Date(MinYear, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxUnix = time.Date(MaxYear, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

const (
	maxYearSpan  = int64(MaxYear) - int64(MinYear)
	maxMonthSpan = 12 * maxYearSpan
	maxDaySpan   = 366 * maxYearSpan
)

// Delta is an accumulated relative offset with signed totals per unit.
// Weeks and fortnights are folded into Days.
type Delta struct {
	Years   int64
	Months  int64
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
	Nanos   int64
}

// IsZero reports whether every total is zero
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Add returns d with one relative offset folded in
func (d Delta) Add(r grammar.RelativeOffset) (Delta, error) {
	var field *int64
	mult := int64(1)
	switch r.Unit {
	case grammar.UnitSecond:
		field = &d.Seconds
	case grammar.UnitMinute:
		field = &d.Minutes
	case grammar.UnitHour:
		field = &d.Hours
	case grammar.UnitDay:
		field = &d.Days
	case grammar.UnitWeek:
		field, mult = &d.Days, 7
	case grammar.UnitFortnight:
		field, mult = &d.Days, 14
	case grammar.UnitMonth:
		field = &d.Months
	case grammar.UnitYear:
		field = &d.Years
	default:
		return Delta{}, outOfRange("unknown unit %s", r.Unit)
	}

	v, ok := mulChecked(r.Count, mult)
	if !ok {
		return Delta{}, outOfRange("%s is out of range", r)
	}
	sum, ok := addChecked(*field, v)
	if !ok {
		return Delta{}, outOfRange("total %ss are out of range", r.Unit)
	}
	*field = sum

	if r.Nanos != 0 {
		d.Nanos += r.Nanos
		carry := d.Nanos / int64(time.Second)
		d.Nanos -= carry * int64(time.Second)
		if d.Seconds, ok = addChecked(d.Seconds, carry); !ok {
			return Delta{}, outOfRange("total seconds are out of range")
		}
	}
	return d, nil
}

// ApplyTo adds the delta to t: years, then months, then days, clamping the
// day of month after the year and month steps ("jan 31 + 1 month" is the
// last day of February), then the clock units as exact durations.
func (d Delta) ApplyTo(t time.Time) (time.Time, error) {
	if d.Years > maxYearSpan || d.Years < -maxYearSpan {
		return time.Time{}, outOfRange("%d years is out of range", d.Years)
	}
	t, err := addMonths(t, d.Years*12)
	if err != nil {
		return time.Time{}, err
	}
	if t, err = addMonths(t, d.Months); err != nil {
		return time.Time{}, err
	}

	if d.Days != 0 {
		if d.Days > maxDaySpan || d.Days < -maxDaySpan {
			return time.Time{}, outOfRange("%d days is out of range", d.Days)
		}
		t = t.AddDate(0, 0, int(d.Days))
		if err := checkYear(t.Year()); err != nil {
			return time.Time{}, err
		}
	}

	secs, ok := clockSeconds(d)
	if !ok {
		return time.Time{}, outOfRange("%s is out of range", d)
	}
	if secs != 0 || d.Nanos != 0 {
		unix, ok := addChecked(t.Unix(), secs)
		if !ok || unix < minUnix || unix > maxUnix {
			return time.Time{}, outOfRange("%s is out of range", d)
		}
		t = time.Unix(unix, int64(t.Nanosecond())).In(t.Location()).Add(time.Duration(d.Nanos))
		if err := checkYear(t.Year()); err != nil {
			return time.Time{}, err
		}
	}
	return t, nil
}

// Duration collapses a delta made only of clock units
func (d Delta) Duration() (time.Duration, error) {
	if d.Years != 0 || d.Months != 0 || d.Days != 0 {
		return 0, notADuration("%s has calendar units; its length depends on a reference instant", d)
	}
	secs, ok := clockSeconds(d)
	if !ok || secs > math.MaxInt64/int64(time.Second) || secs < math.MinInt64/int64(time.Second) {
		return 0, outOfRange("%s does not fit in a duration", d)
	}
	ns, ok := addChecked(secs*int64(time.Second), d.Nanos)
	if !ok {
		return 0, outOfRange("%s does not fit in a duration", d)
	}
	return time.Duration(ns), nil
}

// DurationFrom is the exact length of the delta when applied at ref
func (d Delta) DurationFrom(ref time.Time) (time.Duration, error) {
	end, err := d.ApplyTo(ref)
	if err != nil {
		return 0, err
	}
	diff := end.Sub(ref)
	if !ref.Add(diff).Equal(end) {
		return 0, outOfRange("%s does not fit in a duration", d)
	}
	return diff, nil
}

func (d Delta) String() string {
	var parts []string
	add := func(n int64, unit string) {
		if n == 0 {
			return
		}
		if n == 1 || n == -1 {
			parts = append(parts, fmt.Sprintf("%d %s", n, unit))
			return
		}
		parts = append(parts, fmt.Sprintf("%d %ss", n, unit))
	}
	add(d.Years, "year")
	add(d.Months, "month")
	add(d.Days, "day")
	add(d.Hours, "hour")
	add(d.Minutes, "minute")
	add(d.Seconds, "second")
	add(d.Nanos, "nanosecond")
	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, " ")
}

func addMonths(t time.Time, n int64) (time.Time, error) {
	if n == 0 {
		return t, nil
	}
	if n > maxMonthSpan || n < -maxMonthSpan {
		return time.Time{}, outOfRange("%d months is out of range", n)
	}
	y, m, day := t.Date()
	total := int64(y)*12 + int64(m-1) + n
	year := floorDiv(total, 12)
	month := time.Month(total-year*12) + 1
	if err := checkYear64(year); err != nil {
		return time.Time{}, err
	}
	if last := daysIn(month, int(year)); day > last {
		day = last
	}
	hour, min, sec := t.Clock()
	return time.Date(int(year), month, day, hour, min, sec, t.Nanosecond(), t.Location()), nil
}

// clockSeconds totals hours, minutes and seconds
func clockSeconds(d Delta) (int64, bool) {
	h, ok1 := mulChecked(d.Hours, 3600)
	m, ok2 := mulChecked(d.Minutes, 60)
	hm, ok3 := addChecked(h, m)
	total, ok4 := addChecked(hm, d.Seconds)
	return total, ok1 && ok2 && ok3 && ok4
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func checkYear(y int) error {
	return checkYear64(int64(y))
}

func checkYear64(y int64) error {
	if y < MinYear || y > MaxYear {
		return outOfRange("year %d is out of range (%d to %d)", y, MinYear, MaxYear)
	}
	return nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func addChecked(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

func mulChecked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return c, true
}
