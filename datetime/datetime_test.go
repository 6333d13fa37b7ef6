package datetime

import (
	"bytes"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/teranos/gnudate/errors"
	"github.com/teranos/gnudate/grammar"
	"github.com/teranos/gnudate/logger"
)

// mockNow is a Saturday afternoon
var mockNow = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func mockClock(t *testing.T) {
	t.Helper()
	original := timeNow
	timeNow = func() time.Time { return mockNow }
	t.Cleanup(func() { timeNow = original })
}

func TestParseDurationUnits(t *testing.T) {
	mockClock(t)

	tests := []struct {
		expr string
		want time.Duration
	}{
		{"1 second", time.Second},
		{"1 sec", time.Second},
		{"1 minute", time.Minute},
		{"2 mins", 2 * time.Minute},
		{"1 hour", time.Hour},
		{"1 day", 24 * time.Hour},
		{"1 week", 7 * 24 * time.Hour},
		{"1 fortnight", 14 * 24 * time.Hour},
		{"1 month", 30 * 24 * time.Hour},
		{"1 year", 365 * 24 * time.Hour},
		{"1.5 seconds", 1500 * time.Millisecond},
		{"hour", time.Hour},
		{"next week", 7 * 24 * time.Hour},
		{"last day", -24 * time.Hour},
		{"1 day, 2 hours", 26 * time.Hour},
		{"1 day and 2 hours", 26 * time.Hour},
		{"1 day 2 hours", 26 * time.Hour},
		{"3 days ago", -72 * time.Hour},
		{"-3 days", -72 * time.Hour},
		{"- 3 days", 72 * time.Hour},
		{"+3 days", 72 * time.Hour},
		{"2 hours ago 30 minutes", -90 * time.Minute},
		{"1 day (a comment) 2 hours", 26 * time.Hour},
		{"now", 0},
		{"yesterday", -24 * time.Hour},
		{"TOMORROW", 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseDuration(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDurationOrderIndependence(t *testing.T) {
	mockClock(t)

	a, err := ParseDuration("2 years and 1 month")
	require.NoError(t, err)
	b, err := ParseDuration("1 month and 2 years")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	da, err := ParseDelta("3 hours 2 weeks 5 seconds ago")
	require.NoError(t, err)
	db, err := ParseDelta("-5 seconds, 3 hours and 2 weeks")
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestParseDurationAt(t *testing.T) {
	feb := time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)
	got, err := ParseDurationAt(feb, "1 month")
	require.NoError(t, err)
	assert.Equal(t, 28*24*time.Hour, got)

	got, err = ParseDurationAt(feb, "2 days")
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, got)
}

func TestParseDurationRejectsInstants(t *testing.T) {
	mockClock(t)

	for _, expr := range []string{"2021-02-14", "@5", "10:30", "friday", ""} {
		_, err := ParseDuration(expr)
		require.Error(t, err, expr)
		assert.True(t, errors.IsNotADurationError(err), "%q: %v", expr, err)
	}
}

func TestAddRelative(t *testing.T) {
	tests := []struct {
		name string
		base time.Time
		expr string
		want time.Time
	}{
		{
			name: "months and days",
			base: time.Date(2014, 9, 5, 15, 43, 21, 0, time.UTC),
			expr: "4 months 25 days",
			want: time.Date(2015, 1, 30, 15, 43, 21, 0, time.UTC),
		},
		{
			name: "month clamps",
			base: time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC),
			expr: "1 month",
			want: time.Date(2021, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "month clamps in leap year",
			base: time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC),
			expr: "1 month",
			want: time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "ago",
			base: time.Date(2014, 9, 5, 15, 43, 21, 0, time.UTC),
			expr: "1 year ago",
			want: time.Date(2013, 9, 5, 15, 43, 21, 0, time.UTC),
		},
		{
			name: "fortnight",
			base: time.Date(2014, 9, 5, 15, 43, 21, 0, time.UTC),
			expr: "fortnight",
			want: time.Date(2014, 9, 19, 15, 43, 21, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddRelative(tt.base, tt.expr)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestAddRelativeOutOfRange(t *testing.T) {
	_, err := AddRelative(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "9223372036854775807 years")
	require.Error(t, err)
	assert.True(t, errors.IsOutOfRangeError(err))
}

func TestParseAtEpoch(t *testing.T) {
	got, err := ParseAt(mockNow, "@0")
	require.NoError(t, err)
	assert.True(t, time.Unix(0, 0).Equal(got))
	_, offset := got.Zone()
	assert.Equal(t, 0, offset)

	got, err = ParseAt(mockNow, "@1344000")
	require.NoError(t, err)
	assert.Equal(t, int64(1344000), got.Unix())

	got, err = ParseAt(mockNow, "@-1.5")
	require.NoError(t, err)
	assert.Equal(t, int64(-2), got.Unix())
	assert.Equal(t, 500_000_000, got.Nanosecond())
}

func TestParseAtLiteralCivilTime(t *testing.T) {
	ist := time.FixedZone("", 5*3600+30*60)
	ref := time.Date(2024, 6, 15, 14, 30, 0, 0, ist)

	got, err := ParseAt(ref, "2021-02-14 06:37:47")
	require.NoError(t, err)
	assert.Equal(t, 2021, got.Year())
	assert.Equal(t, time.February, got.Month())
	assert.Equal(t, 14, got.Day())
	assert.Equal(t, 6, got.Hour())
	assert.Equal(t, 37, got.Minute())
	assert.Equal(t, 47, got.Second())
	_, offset := got.Zone()
	assert.Equal(t, 5*3600+30*60, offset)
}

func TestParseAt(t *testing.T) {
	day := func(m time.Month, d, h, min int) time.Time {
		return time.Date(2024, m, d, h, min, 0, 0, time.UTC)
	}
	tests := []struct {
		expr string
		want time.Time
	}{
		{"now", mockNow},
		{"today", mockNow},
		{"yesterday", mockNow.AddDate(0, 0, -1)},
		{"tomorrow", mockNow.AddDate(0, 0, 1)},
		{"", day(time.June, 15, 0, 0)},
		{"3 days ago", mockNow.AddDate(0, 0, -3)},
		{"last week", mockNow.AddDate(0, 0, -7)},
		{"next friday", day(time.June, 21, 0, 0)},
		{"last friday", day(time.June, 14, 0, 0)},
		{"saturday", day(time.June, 15, 0, 0)},
		{"next saturday", day(time.June, 22, 0, 0)},
		{"10:30", day(time.June, 15, 10, 30)},
		{"3pm", day(time.June, 15, 15, 0)},
		{"12am", day(time.June, 15, 0, 0)},
		{"12 p.m.", day(time.June, 15, 12, 0)},
		{"noon tomorrow", day(time.June, 16, 12, 0)},
		{"2021", day(time.June, 15, 20, 21)},
		{"feb 29", day(time.February, 29, 0, 0)},
		{"feb 14 2021", time.Date(2021, 2, 14, 0, 0, 0, 0, time.UTC)},
		{"14 February 2021", time.Date(2021, 2, 14, 0, 0, 0, 0, time.UTC)},
		{"2/14/21", time.Date(2021, 2, 14, 0, 0, 0, 0, time.UTC)},
		{"20210214", time.Date(2021, 2, 14, 0, 0, 0, 0, time.UTC)},
		{"march 1 at 9:15", day(time.March, 1, 9, 15)},
		{"2021-01-31 + 1 month", time.Date(2021, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"2021-01-31 1 month", time.Date(2021, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"1 month 2021-01-31", time.Date(2021, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"2021-02-14T06:37:47Z", time.Date(2021, 2, 14, 6, 37, 47, 0, time.UTC)},
		{"2021-02-14T06:37:47+01:00", time.Date(2021, 2, 14, 5, 37, 47, 0, time.UTC)},
		{"2021-02-14 06:37:47 -0500", time.Date(2021, 2, 14, 11, 37, 47, 0, time.UTC)},
		{"10:30 pm est", day(time.June, 16, 3, 30)},
		{"utc+2 10:00", day(time.June, 15, 8, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseAt(mockNow, tt.expr)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParseAtZoneIsFixed(t *testing.T) {
	got, err := ParseAt(mockNow, "10:30 pm est")
	require.NoError(t, err)
	name, offset := got.Zone()
	assert.Equal(t, "EST", name)
	assert.Equal(t, -5*3600, offset)
	assert.Equal(t, 22, got.Hour())
}

func TestParseAtZoneWithDSTReference(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	ref := time.Date(2021, 3, 1, 12, 0, 0, 0, newYork)

	tests := []struct {
		expr string
		want time.Time
	}{
		{"2021-03-14 02:30 +0000", time.Date(2021, 3, 14, 2, 30, 0, 0, time.UTC)},
		{"2021-11-07 01:30 utc 1 hour", time.Date(2021, 11, 7, 2, 30, 0, 0, time.UTC)},
		{"2021-11-07 01:30 utc", time.Date(2021, 11, 7, 1, 30, 0, 0, time.UTC)},
		{"2021-03-14 01:30 est 1 hour", time.Date(2021, 3, 14, 7, 30, 0, 0, time.UTC)},
		{"2021-03-14 10:00", time.Date(2021, 3, 14, 14, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseAt(ref, tt.expr)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}

	got, err := ParseAt(ref, "2021-03-14 02:30 +0000")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestParseUsesClock(t *testing.T) {
	mockClock(t)

	got, err := Parse("2 hours ago")
	require.NoError(t, err)
	assert.True(t, mockNow.Add(-2*time.Hour).Equal(got))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		expr  string
		check func(error) bool
	}{
		{"(unterminated", errors.IsLexError},
		{"1 day and", errors.IsInvalidInputError},
		{"and 1 day", errors.IsInvalidInputError},
		{"blorp", errors.IsInvalidInputError},
		{"2021-13-01", errors.IsInvalidInputError},
		{"25:00", errors.IsInvalidInputError},
		{"2021-02-14 2021-02-15", errors.IsContradictoryError},
		{"10:00 11:00", errors.IsContradictoryError},
		{"@5 1 day", errors.IsContradictoryError},
		{"monday friday", errors.IsContradictoryError},
		{"feb 30", errors.IsInvalidInputError},
		{"9999999999-01-01", errors.IsOutOfRangeError},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := ParseAt(mockNow, tt.expr)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
			assert.True(t, errors.IsDateError(err))
		})
	}
}

func TestParseErrorSuggestsWord(t *testing.T) {
	_, err := ParseAt(mockNow, "next frday")
	require.Error(t, err)

	var perr *grammar.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "frday", perr.Remainder[:5])
	assert.Contains(t, perr.Suggestions, `did you mean "friday"?`)
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("@1234")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), got)

	got, err = ParseTimestamp(" @-5 ")
	require.NoError(t, err)
	assert.Equal(t, int64(-5), got)

	_, err = ParseTimestamp("1234")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInputError(err))
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]time.Weekday{
		"mon":      time.Monday,
		"Tuesday":  time.Tuesday,
		"WEDNES":   time.Wednesday,
		"thurs":    time.Thursday,
		" sunday ": time.Sunday,
	} {
		got, ok := ParseWeekday(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "friday next", "funday", "3"} {
		_, ok := ParseWeekday(in)
		assert.False(t, ok, in)
	}
}

func TestExplain(t *testing.T) {
	items, err := Explain("3 days ago at noon")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, grammar.FlavourRelative, items[0].Fragment.Flavour())
	assert.Equal(t, "3 days ago", items[0].Text)
	assert.Equal(t, grammar.RelativeOffset{Count: -3, Unit: grammar.UnitDay}, items[0].Fragment)

	assert.Equal(t, grammar.FlavourTime, items[1].Fragment.Flavour())
	assert.Equal(t, "noon", items[1].Text)
	assert.Equal(t, 14, items[1].Range.Start.Offset)
}

func TestFailuresLogErrorKind(t *testing.T) {
	var buf bytes.Buffer
	original := logger.Logger
	logger.Logger = logger.New(&buf, true, zapcore.DebugLevel, false).Sugar()
	t.Cleanup(func() { logger.Logger = original })

	_, err := ParseAt(mockNow, "blorp")
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"error_kind":"invalid_input"`)

	buf.Reset()
	_, err = ParseAt(mockNow, "monday friday")
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"error_kind":"contradictory"`)
}
