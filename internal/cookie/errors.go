package cookie

import (
	"errors"
	"fmt"
)

// ErrInvalidDay is matched (via errors.Is) by every FormatError and RangeError.
var ErrInvalidDay = errors.New("invalid day")

// ErrMalformedLine is returned by ParseLine when a raw line has no delimiter.
var ErrMalformedLine = errors.New("malformed log line")

// FormatError reports a day that is not shaped like YYYY-MM-DD.
type FormatError struct {
	Day    string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid day format %q: %s", e.Day, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidDay
}

// RangeError reports a month or day-of-month outside its numeric range.
type RangeError struct {
	Day   string
	Field string
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid day %q: %s %d out of range", e.Day, e.Field, e.Value)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidDay
}
