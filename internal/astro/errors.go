package astro

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by constructors and transforms.
var (
	ErrUnitCount               = errors.New("exactly one unit required")
	ErrDivideByZero            = errors.New("angle division by zero")
	ErrOutOfRange              = errors.New("value out of range")
	ErrInvalidDate             = errors.New("invalid calendar date")
	ErrMissingHorizontalParams = errors.New("jd, lat, and lon are required")
	ErrUnknownFrame            = errors.New("unknown coordinate system")
	ErrMinorPhase              = errors.New("can only search for major phases")
)

// ParseError reports text that could not be interpreted.
type ParseError struct {
	Kind string // "angle" or "coordinate"
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s: %q", e.Kind, e.Text)
}

// RangeError reports a latitude-like quantity outside [-90, 90].
type RangeError struct {
	Quantity string
	Value    float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %.6f° outside [-90°, 90°]", e.Quantity, e.Value)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// CalendarError reports a date that does not exist in the Gregorian calendar.
type CalendarError struct {
	Year, Month, Day int
	Reason           string
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("invalid date %04d-%02d-%02d: %s", e.Year, e.Month, e.Day, e.Reason)
}

func (e *CalendarError) Unwrap() error { return ErrInvalidDate }

// checkLatitude validates quantities constrained to [-90, 90] degrees.
func checkLatitude(quantity string, deg float64) error {
	if math.IsNaN(deg) || deg < -90 || deg > 90 {
		return &RangeError{Quantity: quantity, Value: deg}
	}
	return nil
}
