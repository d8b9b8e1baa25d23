package duration

import (
	"errors"
	"fmt"
	"strings"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
)

// ErrNegativeDuration is returned by ParseExtended for durations below zero.
var ErrNegativeDuration = errors.New("duration must not be negative")

// ParseExtended reads a Go-style duration, with ms, us and ns as well as
// d (days) and w (weeks): "1w2d3h", "1h30m", "300ms". Surrounding spaces
// are ignored; negative values are rejected since nothing can wait for them.
func ParseExtended(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	d, err := str2duration.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNegativeDuration, s)
	}
	return d, nil
}
