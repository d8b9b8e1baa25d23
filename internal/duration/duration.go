package duration

import (
	"errors"
	"fmt"
	"strconv"
)

// Unit conversion factors, in seconds.
const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 24 * SecondsPerHour
)

// ErrDanglingDigits is returned by ParseStrict when the expression ends with
// digits that are not followed by a unit marker.
var ErrDanglingDigits = errors.New("duration has digits without a unit")

// InvalidUnitError reports a character that is neither a digit nor one of
// the unit markers d, h, m, s.
type InvalidUnitError struct {
	Unit rune
}

func (e *InvalidUnitError) Error() string {
	return fmt.Sprintf("invalid duration unit: %c", e.Unit)
}

// Parse converts a compact duration expression such as "2d5h10m30s" into a
// number of seconds. Units are case-insensitive. Digits at the end of the
// expression with no unit marker are ignored, so "10m5" equals "10m".
// An empty expression is zero seconds. Only ASCII digits 0-9 count as
// digits; any other numeral fails with InvalidUnitError.
func Parse(expression string) (float64, error) {
	return parse(expression, false)
}

// ParseStrict is Parse, except that trailing digits without a unit marker
// fail with ErrDanglingDigits instead of being dropped.
func ParseStrict(expression string) (float64, error) {
	return parse(expression, true)
}

func parse(expression string, strict bool) (float64, error) {
	var total float64
	start := -1 // index of the first pending digit, -1 while idle

	for i, c := range expression {
		if c >= '0' && c <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}

		factor, ok := unitFactor(c)
		if !ok {
			return 0, &InvalidUnitError{Unit: c}
		}
		if start < 0 {
			continue
		}

		value, err := strconv.ParseInt(expression[start:i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration value %q: %w", expression[start:i], err)
		}
		total += float64(value) * factor
		start = -1
	}

	if strict && start >= 0 {
		return 0, fmt.Errorf("%w: %q", ErrDanglingDigits, expression[start:])
	}

	return total, nil
}

func unitFactor(c rune) (float64, bool) {
	switch c {
	case 'd', 'D':
		return SecondsPerDay, true
	case 'h', 'H':
		return SecondsPerHour, true
	case 'm', 'M':
		return SecondsPerMinute, true
	case 's', 'S':
		return 1, true
	default:
		return 0, false
	}
}
