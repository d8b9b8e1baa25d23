package progress

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/chinmaymudholkar/automation-snippets/internal/duration"
)

// Reporter emits structured progress logs while a wait is running.
type Reporter struct {
	Total          time.Duration
	RenderInterval time.Duration
	Logger         *slog.Logger
	Quiet          bool

	now     func() time.Time
	started time.Time
	done    chan struct{}
	wg      sync.WaitGroup
}

// New creates a reporter for a wait of total length.
func New(total, interval time.Duration, logger *slog.Logger, quiet bool) *Reporter {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		Total:          total,
		RenderInterval: interval,
		Logger:         logger,
		Quiet:          quiet,
		now:            time.Now,
		done:           make(chan struct{}),
	}
}

// Start begins interval-based logging in a goroutine.
func (r *Reporter) Start() {
	r.started = r.now()
	if r.Quiet || r.Total <= 0 {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.RenderInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.log(r.now().Sub(r.started))
			case <-r.done:
				return
			}
		}
	}()
}

// Stop ends interval-based logging and waits for the logger goroutine.
func (r *Reporter) Stop() {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
	r.wg.Wait()
}

func (r *Reporter) log(elapsed time.Duration) {
	pct, remaining := r.snapshot(elapsed)
	r.Logger.Info("wait_progress",
		"percent", pct,
		"elapsed", elapsed.Round(time.Second).String(),
		"remaining", remaining.Round(time.Second).String(),
		"total", r.Total.String(),
	)
}

func (r *Reporter) snapshot(elapsed time.Duration) (int, time.Duration) {
	if r.Total <= 0 {
		return 100, 0
	}
	if elapsed > r.Total {
		elapsed = r.Total
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return int(elapsed * 100 / r.Total), r.Total - elapsed
}

// Sleeper decorates another Sleeper with progress logging.
type Sleeper struct {
	Next     duration.Sleeper
	Interval time.Duration
	Logger   *slog.Logger
	Quiet    bool
}

func (s Sleeper) Sleep(ctx context.Context, d time.Duration) error {
	next := s.Next
	if next == nil {
		next = duration.TimerSleeper{}
	}
	r := New(d, s.Interval, s.Logger, s.Quiet)
	r.Start()
	defer r.Stop()
	return next.Sleep(ctx, d)
}
