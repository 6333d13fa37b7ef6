// Package datetime parses GNU date expressions into time values.
//
// The functions here wire package grammar to package resolve and convert
// the result to the time package's types.
package datetime

import (
	"time"

	"github.com/teranos/gnudate/errors"
	"github.com/teranos/gnudate/grammar"
	"github.com/teranos/gnudate/logger"
	"github.com/teranos/gnudate/resolve"
)

// timeNow is a variable that can be mocked for testing
var timeNow = time.Now

// Parse resolves an absolute or relative expression against the current time
func Parse(expr string) (time.Time, error) {
	return ParseAt(timeNow(), expr)
}

// ParseAt resolves expr against ref.
// The result always has a fixed-offset location: the zone named in the
// expression, or else ref's offset at the resolved instant.
func ParseAt(ref time.Time, expr string) (time.Time, error) {
	res, err := resolveExpr(expr, resolve.Options{Mode: resolve.ModeAbsolute, Reference: ref})
	if err != nil {
		return time.Time{}, err
	}
	t := res.(resolve.Absolute).Time
	name, offset := t.Zone()
	return t.In(time.FixedZone(name, offset)), nil
}

// ParseDuration parses a relative expression such as "1 hour 30 minutes" or
// "2 days ago" and returns its length measured from now
func ParseDuration(expr string) (time.Duration, error) {
	return ParseDurationAt(timeNow(), expr)
}

// ParseDurationAt returns the length of the relative expression when applied
// at ref. Calendar units make the length depend on ref: "1 month" from
// February 1 is 28 days.
func ParseDurationAt(ref time.Time, expr string) (time.Duration, error) {
	delta, err := ParseDelta(expr)
	if err != nil {
		return 0, err
	}
	d, err := delta.DurationFrom(ref)
	if err != nil {
		return 0, errors.WithDetailf(err, "expression: %q", expr)
	}
	return d, nil
}

// ParseDelta parses a relative expression into its per-unit totals
func ParseDelta(expr string) (resolve.Delta, error) {
	res, err := resolveExpr(expr, resolve.Options{Mode: resolve.ModeDuration, Reference: timeNow()})
	if err != nil {
		return resolve.Delta{}, err
	}
	return res.(resolve.Relative).Delta, nil
}

// AddRelative applies a relative expression to t.
//
// Example:
//
//	AddRelative(time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC), "1 month") // 2021-02-28
func AddRelative(t time.Time, expr string) (time.Time, error) {
	delta, err := ParseDelta(expr)
	if err != nil {
		return time.Time{}, err
	}
	out, err := delta.ApplyTo(t)
	if err != nil {
		return time.Time{}, errors.WithDetailf(err, "expression: %q", expr)
	}
	return out, nil
}

// ParseTimestamp parses an "@N" expression into Unix seconds.
// Fractions are truncated toward negative infinity.
func ParseTimestamp(expr string) (int64, error) {
	frags, err := grammar.Parse(expr)
	if err != nil {
		return 0, err
	}
	if len(frags) == 1 {
		if e, ok := frags[0].(grammar.EpochSeconds); ok {
			return e.Seconds, nil
		}
	}
	return 0, errors.NewInvalidInputError("%q is not an @N timestamp", expr)
}

// ParseWeekday reads a single weekday name ("mon", "Tuesday", "wednes")
func ParseWeekday(s string) (time.Weekday, bool) {
	toks, err := grammar.Tokenize(s)
	if err != nil || len(toks) != 1 || toks[0].Kind != grammar.TokenWord {
		return 0, false
	}
	return grammar.LookupWeekday(toks[0].Text)
}

// Explain lists the items recognized in expr with their source spans
func Explain(expr string) ([]grammar.Item, error) {
	return grammar.Recognize(expr)
}

func resolveExpr(expr string, opts resolve.Options) (resolve.Result, error) {
	log := logger.ComponentLogger("datetime")

	frags, err := grammar.Parse(expr)
	if err != nil {
		log.Debugw("parse failed",
			logger.FieldExpr, expr,
			logger.FieldErrorKind, errorKind(err),
			logger.FieldError, err)
		return nil, err
	}
	res, err := resolve.Resolve(frags, opts)
	if err != nil {
		log.Debugw("resolve failed",
			logger.FieldExpr, expr,
			logger.FieldMode, opts.Mode.String(),
			logger.FieldErrorKind, errorKind(err),
			logger.FieldError, err)
		return nil, errors.WithDetailf(err, "expression: %q", expr)
	}
	log.Debugw("resolved",
		logger.FieldExpr, expr,
		logger.FieldMode, opts.Mode.String(),
		logger.FieldFragments, fragmentNames(frags))
	return res, nil
}

// errorKind names the category of a grammar or resolve failure
func errorKind(err error) string {
	var perr *grammar.ParseError
	if errors.As(err, &perr) {
		return string(perr.Kind)
	}
	var rerr *resolve.ResolveError
	if errors.As(err, &rerr) {
		return string(rerr.Kind)
	}
	return "unknown"
}

func fragmentNames(frags []grammar.Fragment) []string {
	names := make([]string, len(frags))
	for i, f := range frags {
		names[i] = string(f.Flavour()) + ":" + f.String()
	}
	return names
}
