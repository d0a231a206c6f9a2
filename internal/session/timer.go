// Package session tracks solve timing and score history.
package session

import (
	"fmt"
	"time"

	"github.com/SeamusWaldron/thecube/internal/animation"
)

// Timer measures a solve. It registers on a scheduler while running and
// recomputes elapsed time from its clock on every frame.
type Timer struct {
	sched   *animation.Scheduler
	now     func() time.Time
	handle  animation.Handle
	running bool

	start   time.Time
	elapsed time.Duration
	text    string

	// OnTick, if set, receives the formatted time whenever it changes.
	OnTick func(text string)
}

var _ animation.Updater = (*Timer)(nil)

// NewTimer returns a stopped timer. A nil clock uses time.Now.
func NewTimer(sched *animation.Scheduler, now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{sched: sched, now: now, text: FormatDuration(0)}
}

// Start begins timing. With resume set, time already on the clock is kept.
func (t *Timer) Start(resume bool) {
	if t.running {
		return
	}
	now := t.now()
	if resume {
		t.start = now.Add(-t.elapsed)
	} else {
		t.start = now
		t.elapsed = 0
	}
	t.text = FormatDuration(t.elapsed)
	t.running = true
	t.handle = t.sched.Add(t)
}

// Stop halts the timer and returns the formatted and raw elapsed time.
func (t *Timer) Stop() (string, time.Duration) {
	if t.running {
		t.sched.Remove(t.handle)
		t.running = false
		t.elapsed = t.now().Sub(t.start)
		t.text = FormatDuration(t.elapsed)
	}
	return t.text, t.elapsed
}

// Reset clears the elapsed time and reports the zero reading.
func (t *Timer) Reset() {
	if t.running {
		t.sched.Remove(t.handle)
		t.running = false
	}
	t.elapsed = 0
	t.text = FormatDuration(0)
	if t.OnTick != nil {
		t.OnTick(t.text)
	}
}

// Update implements animation.Updater.
func (t *Timer) Update(float64) {
	t.elapsed = t.now().Sub(t.start)
	text := FormatDuration(t.elapsed)
	if text == t.text {
		return
	}
	t.text = text
	if t.OnTick != nil {
		t.OnTick(text)
	}
}

// Running reports whether the timer is counting.
func (t *Timer) Running() bool { return t.running }

// Elapsed returns the time counted so far.
func (t *Timer) Elapsed() time.Duration { return t.elapsed }

// Text returns the last formatted reading.
func (t *Timer) Text() string { return t.text }

// FormatDuration renders d as minutes and zero-padded seconds, e.g. 1:05.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
