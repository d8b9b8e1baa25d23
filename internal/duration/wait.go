package duration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// ErrNegativeWait is returned when asked to wait for a negative or NaN number of seconds.
var ErrNegativeWait = errors.New("wait time must be a non-negative number of seconds")

// ErrWaitTooLong is returned when a wait does not fit in a time.Duration (about 292 years).
var ErrWaitTooLong = errors.New("wait time exceeds the longest supported duration")

// MaxWaitSeconds is the longest wait, in seconds, that WaitFor accepts.
const MaxWaitSeconds = float64(math.MaxInt64) / float64(time.Second)

// Sleeper blocks for a duration or until the context is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper sleeps on a time.Timer.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Waiter runs the wait helpers against a Sleeper.
type Waiter struct {
	Sleeper Sleeper
	Logger  *slog.Logger
}

// NewWaiter returns a Waiter backed by a TimerSleeper.
func NewWaiter(logger *slog.Logger) *Waiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Waiter{Sleeper: TimerSleeper{}, Logger: logger}
}

// ToDuration converts elapsed seconds to a time.Duration, rounded to the nanosecond.
// Values outside the time.Duration range saturate at its limits.
func ToDuration(seconds float64) time.Duration {
	switch {
	case seconds >= MaxWaitSeconds:
		return time.Duration(math.MaxInt64)
	case seconds <= -MaxWaitSeconds:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// WaitFor blocks for the given number of seconds.
func (w *Waiter) WaitFor(ctx context.Context, seconds float64) error {
	if math.IsNaN(seconds) || seconds < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeWait, seconds)
	}
	if seconds >= MaxWaitSeconds {
		return fmt.Errorf("%w: %v seconds", ErrWaitTooLong, seconds)
	}
	return w.Wait(ctx, ToDuration(seconds))
}

// Wait blocks for d.
func (w *Waiter) Wait(ctx context.Context, d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeWait, d)
	}
	w.Logger.Debug("wait_started", "duration", d.String())
	if err := w.Sleeper.Sleep(ctx, d); err != nil {
		return err
	}
	w.Logger.Debug("wait_finished", "duration", d.String())
	return nil
}

// WaitForDuration parses expression with Parse and blocks for the result.
// Nothing is slept when the expression is invalid.
func (w *Waiter) WaitForDuration(ctx context.Context, expression string) error {
	seconds, err := Parse(expression)
	if err != nil {
		return err
	}
	return w.WaitFor(ctx, seconds)
}

// WaitFor blocks for the given number of seconds using a TimerSleeper.
func WaitFor(ctx context.Context, seconds float64) error {
	return NewWaiter(nil).WaitFor(ctx, seconds)
}

// WaitForDuration blocks for a duration expression such as "1h30m".
func WaitForDuration(ctx context.Context, expression string) error {
	return NewWaiter(nil).WaitForDuration(ctx, expression)
}
