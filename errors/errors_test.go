package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap(ErrContradictory, "two calendar dates")

	assert.Contains(t, err.Error(), "two calendar dates")
	assert.Contains(t, err.Error(), "contradictory input")
	assert.True(t, IsContradictoryError(err))
	assert.False(t, IsOutOfRangeError(err))
}

func TestTaxonomyHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"lex", Wrap(ErrLex, "unterminated comment"), IsLexError},
		{"invalid input", NewInvalidInputError("cannot parse %q", "blah"), IsInvalidInputError},
		{"contradictory", Wrapf(ErrContradictory, "%s twice", "date"), IsContradictoryError},
		{"not a duration", Wrap(ErrNotADuration, "epoch"), IsNotADurationError},
		{"out of range", NewOutOfRangeError("year %d", 1<<40), IsOutOfRangeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, IsDateError(tt.err))
		})
	}
}

func TestHelpersRejectNil(t *testing.T) {
	assert.False(t, IsLexError(nil))
	assert.False(t, IsInvalidInputError(nil))
	assert.False(t, IsContradictoryError(nil))
	assert.False(t, IsNotADurationError(nil))
	assert.False(t, IsOutOfRangeError(nil))
	assert.False(t, IsDateError(nil))
}

func TestIsDateErrorIgnoresForeignErrors(t *testing.T) {
	assert.False(t, IsDateError(New("permission denied")))
	assert.False(t, IsDateError(Wrap(New("no such file"), "failed to read config")))
}

func TestNewOutOfRangeErrorMessage(t *testing.T) {
	err := NewOutOfRangeError("month %d", 13)
	assert.Equal(t, "month 13: out of range", err.Error())
}

type offsetError struct {
	offset int
}

func (e *offsetError) Error() string {
	return fmt.Sprintf("bad token at %d", e.offset)
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := Wrap(&offsetError{offset: 7}, "parse failed")

	var target *offsetError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, 7, target.offset)
}

func TestHintsSurviveWrapping(t *testing.T) {
	err := WithHint(NewInvalidInputError("month 13"), "months run from 1 to 12")
	err = WithDetail(err, "input: 2021-13-01")
	err = Wrap(err, "parse")

	assert.True(t, IsInvalidInputError(err))
	assert.Contains(t, GetAllHints(err), "months run from 1 to 12")
	assert.Contains(t, GetAllDetails(err), "input: 2021-13-01")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
}

func ExampleWrap() {
	err := Wrap(ErrNotADuration, "\"2021-02-14\" names a date")
	fmt.Println(err)
	// Output: "2021-02-14" names a date: not a duration
}

func ExampleWithHint() {
	err := WithHint(ErrLex, "close every ( with a )")
	fmt.Println(GetAllHints(err)[0])
	// Output: close every ( with a )
}
