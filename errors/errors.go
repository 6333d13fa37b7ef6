// Package errors provides error handling for gnudate.
//
// This package re-exports github.com/cockroachdb/errors so every package
// shares one import for wrapping, hints and inspection, and declares the
// sentinel errors of the date grammar.
//
// Usage:
//
//	// Wrap with context
//	if err := load(); err != nil {
//	    return errors.Wrap(err, "failed to load config")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "dates are written as YYYY-MM-DD")
//
//	// Check the grammar taxonomy
//	if errors.Is(err, errors.ErrContradictory) {
//	    // two dates, two times, epoch mixed with a date...
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel errors of the date grammar.
// Typed parse and resolve errors unwrap to exactly one of these.
var (
	// ErrLex indicates the input could not be split into tokens
	// (only an unterminated comment parenthesis does this)
	ErrLex = New("malformed input")

	// ErrInvalidInput indicates part of the input matched no grammar item
	ErrInvalidInput = New("invalid input")

	// ErrContradictory indicates mutually exclusive items appeared together
	ErrContradictory = New("contradictory input")

	// ErrNotADuration indicates a duration was requested but the input names
	// no relative offset
	ErrNotADuration = New("not a duration")

	// ErrOutOfRange indicates a value or the result of relative arithmetic
	// does not fit the representable range
	ErrOutOfRange = New("out of range")
)

// IsLexError checks if an error is or wraps ErrLex
func IsLexError(err error) bool {
	return err != nil && Is(err, ErrLex)
}

// IsInvalidInputError checks if an error is or wraps ErrInvalidInput
func IsInvalidInputError(err error) bool {
	return err != nil && Is(err, ErrInvalidInput)
}

// IsContradictoryError checks if an error is or wraps ErrContradictory
func IsContradictoryError(err error) bool {
	return err != nil && Is(err, ErrContradictory)
}

// IsNotADurationError checks if an error is or wraps ErrNotADuration
func IsNotADurationError(err error) bool {
	return err != nil && Is(err, ErrNotADuration)
}

// IsOutOfRangeError checks if an error is or wraps ErrOutOfRange
func IsOutOfRangeError(err error) bool {
	return err != nil && Is(err, ErrOutOfRange)
}

// IsDateError reports whether err belongs to the date grammar taxonomy at all.
// Callers use it to tell bad user input apart from I/O or config failures.
func IsDateError(err error) bool {
	return err != nil && IsAny(err, ErrLex, ErrInvalidInput, ErrContradictory, ErrNotADuration, ErrOutOfRange)
}

// NewInvalidInputError creates an invalid-input error with a formatted message
func NewInvalidInputError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidInput, Newf(format, args...).Error())
}

// NewOutOfRangeError creates an out-of-range error with a formatted message
func NewOutOfRangeError(format string, args ...interface{}) error {
	return Wrap(ErrOutOfRange, Newf(format, args...).Error())
}
