package grammar

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/gnudate/errors"
)

// ErrorContext indicates where a parse error will be displayed
type ErrorContext string

const (
	// ErrorContextTerminal renders errors with ANSI colors
	ErrorContextTerminal ErrorContext = "terminal"
	// ErrorContextPlain renders errors without ANSI codes (logs, JSON output)
	ErrorContextPlain ErrorContext = "plain"
)

// ErrorKind categorizes parse errors for programmatic handling
type ErrorKind string

const (
	ErrorKindLex          ErrorKind = "lex"           // Unterminated comment
	ErrorKindInvalidInput ErrorKind = "invalid_input" // Unclassifiable or malformed item
	ErrorKindOutOfRange   ErrorKind = "out_of_range"  // Number too large for its field
)

// ParseError is a structured tokenize or recognize failure.
// It unwraps to errors.ErrLex, errors.ErrInvalidInput or errors.ErrOutOfRange.
type ParseError struct {
	Err         error     // Sentinel from the errors package
	Kind        ErrorKind // Error category
	Message     string    // Human-readable message
	Input       string    // Whole expression being parsed
	Offset      int       // Byte offset of the offending text, -1 if unknown
	Range       *Range    // Span of the offending text
	Remainder   string    // Unconsumed input from Offset on
	Suggestions []string  // Possible fixes
}

// Error implements the error interface with the plain rendering
func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// Unwrap for errors.Is/As compatibility
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatError generates a context-appropriate message
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextPlain {
		return e.formatPlainError()
	}
	return e.formatTerminalError()
}

func (e *ParseError) formatPlainError() string {
	msg := e.Message
	if e.Offset >= 0 && e.Remainder != "" {
		msg += fmt.Sprintf(" (at offset %d: %q)", e.Offset, e.Remainder)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(". Suggestions: %s", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// formatTerminalError underlines the offending span of the input
func (e *ParseError) formatTerminalError() string {
	var b strings.Builder
	b.WriteString(pterm.Red(e.Message))

	if e.Range != nil && e.Input != "" && !strings.Contains(e.Input, "\n") {
		width := e.Range.End.Character - e.Range.Start.Character
		if width < 1 {
			width = 1
		}
		b.WriteString("\n\n  ")
		b.WriteString(e.Input)
		b.WriteString("\n  ")
		b.WriteString(strings.Repeat(" ", e.Range.Start.Character))
		b.WriteString(pterm.Yellow(strings.Repeat("^", width)))
	} else if e.Remainder != "" {
		b.WriteString(fmt.Sprintf("\n\n  %s %q", pterm.Yellow("Unparsed:"), e.Remainder))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString(fmt.Sprintf("\n\n%s", pterm.Green("Suggestions:")))
		for _, s := range e.Suggestions {
			b.WriteString("\n  • ")
			b.WriteString(s)
		}
	}
	return b.String()
}

func newParseError(kind ErrorKind, message string) *ParseError {
	e := &ParseError{Kind: kind, Message: message, Offset: -1}
	switch kind {
	case ErrorKindLex:
		e.Err = errors.ErrLex
	case ErrorKindOutOfRange:
		e.Err = errors.ErrOutOfRange
	default:
		e.Err = errors.ErrInvalidInput
	}
	return e
}

func newParseErrorf(kind ErrorKind, format string, args ...interface{}) *ParseError {
	return newParseError(kind, fmt.Sprintf(format, args...))
}

// at records the offending span [start, end) of input
func (e *ParseError) at(input string, start, end int) *ParseError {
	e.Input = input
	e.Offset = start
	r := RangeOf(input, start, end)
	e.Range = &r
	e.Remainder = input[start:]
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ParseError) WithSuggestion(suggestion string) *ParseError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// errAt is the recognizer shorthand for a failure located at a token.
// The dispatcher fills in Input and Range once it knows the whole input.
func errAt(t Token, kind ErrorKind, format string, args ...interface{}) *ParseError {
	e := newParseErrorf(kind, format, args...)
	e.Offset = t.Offset
	return e
}

// locate completes a recognizer error with the input it was raised for
func (e *ParseError) locate(input string, end int) *ParseError {
	if e.Input != "" || e.Offset < 0 || e.Offset > len(input) {
		return e
	}
	if end < e.Offset {
		end = e.Offset
	}
	return e.at(input, e.Offset, end)
}
