package animation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFrameInterval approximates a 60 Hz display.
const DefaultFrameInterval = 16 * time.Millisecond

// Loop owns a Scheduler and runs it on a single goroutine. Work from other
// goroutines reaches the scheduler through Do.
type Loop struct {
	sched    *Scheduler
	interval time.Duration
	tasks    chan func()
	wanted   bool
	log      zerolog.Logger
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithInterval sets the frame interval.
func WithInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithLoopLogger sets the loop's logger.
func WithLoopLogger(log zerolog.Logger) LoopOption {
	return func(l *Loop) {
		l.log = log
	}
}

// NewLoop creates a loop and its scheduler.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		interval: DefaultFrameInterval,
		tasks:    make(chan func(), 64),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.sched = NewScheduler(l)
	return l
}

// Scheduler returns the loop's scheduler. Touch it only from tasks passed to
// Do or from updaters it dispatches.
func (l *Loop) Scheduler() *Scheduler {
	return l.sched
}

// RequestFrame marks a frame as wanted on the next tick.
func (l *Loop) RequestFrame() {
	l.wanted = true
}

// Do queues fn to run on the loop goroutine. It blocks while the queue is full
// or until ctx is done.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	select {
	case l.tasks <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes tasks and frames until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.log.Debug().Dur("interval", l.interval).Msg("animation loop started")
	for {
		select {
		case <-ctx.Done():
			l.log.Debug().Msg("animation loop stopped")
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		case <-ticker.C:
			if l.wanted {
				l.wanted = false
				l.sched.Frame()
			}
		}
	}
}

// ManualClock is a settable time source for deterministic playback.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock reading start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current reading.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Drain delivers frames spaced step apart until no frame is pending or max
// frames have been delivered. It returns the number of frames delivered.
func Drain(s *Scheduler, c *ManualClock, step time.Duration, max int) int {
	n := 0
	for s.Pending() && n < max {
		c.Advance(step)
		s.Frame()
		n++
	}
	return n
}

// DrainUntil is Drain that also stops once done reports true. It suits
// schedulers that never go idle, such as one carrying a running timer.
func DrainUntil(s *Scheduler, c *ManualClock, step time.Duration, max int, done func() bool) int {
	n := 0
	for s.Pending() && n < max && !done() {
		c.Advance(step)
		s.Frame()
		n++
	}
	return n
}
