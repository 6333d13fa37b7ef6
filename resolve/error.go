package resolve

import (
	"fmt"

	"github.com/teranos/gnudate/errors"
)

// ErrorKind categorizes resolve errors
type ErrorKind string

const (
	ErrorKindContradictory ErrorKind = "contradictory"
	ErrorKindNotADuration  ErrorKind = "not_a_duration"
	ErrorKindOutOfRange    ErrorKind = "out_of_range"
)

// ResolveError reports why a fragment list has no single meaning.
// It unwraps to errors.ErrContradictory, errors.ErrNotADuration or
// errors.ErrOutOfRange.
type ResolveError struct {
	Err     error
	Kind    ErrorKind
	Message string
}

func (e *ResolveError) Error() string {
	return e.Message
}

// Unwrap for errors.Is/As compatibility
func (e *ResolveError) Unwrap() error {
	return e.Err
}

func contradictory(format string, args ...interface{}) *ResolveError {
	return &ResolveError{Err: errors.ErrContradictory, Kind: ErrorKindContradictory, Message: fmt.Sprintf(format, args...)}
}

func notADuration(format string, args ...interface{}) *ResolveError {
	return &ResolveError{Err: errors.ErrNotADuration, Kind: ErrorKindNotADuration, Message: fmt.Sprintf(format, args...)}
}

func outOfRange(format string, args ...interface{}) *ResolveError {
	return &ResolveError{Err: errors.ErrOutOfRange, Kind: ErrorKindOutOfRange, Message: fmt.Sprintf(format, args...)}
}
