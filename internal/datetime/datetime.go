// Package datetime formats the current date and time with strftime patterns
// such as "%Y-%m-%d" or "%d-%b-%Y".
package datetime

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lestrrat-go/strftime"
)

// Default patterns.
const (
	DateFormat      = "%Y-%m-%d"
	TimestampFormat = "%Y-%m-%d %H:%M:%S"
)

// Clock abstracts time.Now to allow testing.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock in the local time zone.
var SystemClock Clock = systemClock{}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Format renders t with a strftime pattern.
func Format(t time.Time, pattern string) (string, error) {
	s, err := strftime.Format(pattern, t)
	if err != nil {
		return "", fmt.Errorf("invalid date format %q: %w", pattern, err)
	}
	return s, nil
}

// TodayDate returns today's date. An empty pattern means DateFormat.
func TodayDate(clock Clock, pattern string) (string, error) {
	if pattern == "" {
		pattern = DateFormat
	}
	return Format(clock.Now(), pattern)
}

// CurrentTimestamp returns the current time. An empty pattern means TimestampFormat.
func CurrentTimestamp(clock Clock, pattern string) (string, error) {
	if pattern == "" {
		pattern = TimestampFormat
	}
	return Format(clock.Now(), pattern)
}

// timestampLayouts are tried in order by ParseTimestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp reads an RFC 3339 timestamp, or a "YYYY-MM-DD[ HH:MM[:SS]]"
// value in loc, which is the form CurrentTimestamp and TodayDate print by default.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q: want RFC 3339 or YYYY-MM-DD HH:MM:SS", s)
}

// Since describes how long ago t was, relative to clock, e.g. "3 minutes ago".
func Since(clock Clock, t time.Time) string {
	return humanize.RelTime(t, clock.Now(), "ago", "from now")
}
