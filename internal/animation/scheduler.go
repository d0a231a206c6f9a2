// Package animation drives per-frame updates: a scheduler that dispatches
// elapsed time to registered entries, and tweens built on top of it.
package animation

import (
	"time"
)

// Updater receives the elapsed milliseconds since the previous frame.
type Updater interface {
	Update(deltaMs float64)
}

// Animatable is an Updater that can register and deregister itself.
type Animatable interface {
	Updater
	Start()
	Stop()
}

// FrameRequester asks the display for one more frame. The owner of the
// requester calls Scheduler.Frame when the frame arrives.
type FrameRequester interface {
	RequestFrame()
}

// Handle identifies a registration. The zero Handle is never issued.
type Handle uint64

type entry struct {
	handle  Handle
	updater Updater
}

// Scheduler keeps an insertion-ordered registry of updaters and dispatches
// each frame's elapsed time to them in reverse registration order.
//
// A Scheduler is not safe for concurrent use. Run it on one goroutine, or
// behind a Loop.
type Scheduler struct {
	frames  FrameRequester
	now     func() time.Time
	entries []entry
	nextID  Handle
	last    time.Time
	pending bool
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock replaces time.Now as the scheduler's time source.
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) {
		s.now = now
	}
}

// NewScheduler creates an empty scheduler that requests frames from frames.
func NewScheduler(frames FrameRequester, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		frames: frames,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add registers u and returns its handle. If no frame is outstanding, the
// clock is resampled and a frame is requested so the first delta measures
// only time spent registered.
func (s *Scheduler) Add(u Updater) Handle {
	s.nextID++
	h := s.nextID
	s.entries = append(s.entries, entry{handle: h, updater: u})

	if s.pending {
		return h
	}
	s.last = s.now()
	s.pending = true
	s.frames.RequestFrame()
	return h
}

// Remove deregisters h. Unknown or already removed handles are ignored.
func (s *Scheduler) Remove(h Handle) {
	for i, e := range s.entries {
		if e.handle == h {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Active reports whether h is currently registered.
func (s *Scheduler) Active(h Handle) bool {
	for _, e := range s.entries {
		if e.handle == h {
			return true
		}
	}
	return false
}

// Len returns the number of registered updaters.
func (s *Scheduler) Len() int {
	return len(s.entries)
}

// Pending reports whether a frame has been requested and not yet delivered.
func (s *Scheduler) Pending() bool {
	return s.pending
}

// Frame delivers one display frame: it measures the elapsed time, requests
// the next frame while anything is registered, and dispatches the delta.
func (s *Scheduler) Frame() {
	now := s.now()
	delta := float64(now.Sub(s.last)) / float64(time.Millisecond)
	s.last = now

	if len(s.entries) > 0 {
		s.pending = true
		s.frames.RequestFrame()
	} else {
		s.pending = false
	}

	s.dispatch(delta)
}

// Step dispatches an explicit delta without consulting the clock.
func (s *Scheduler) Step(deltaMs float64) {
	s.dispatch(deltaMs)
}

// dispatch walks a snapshot in reverse so that entries may deregister
// themselves, or others, during the walk. Entries removed mid-frame are skipped.
func (s *Scheduler) dispatch(deltaMs float64) {
	snapshot := make([]entry, len(s.entries))
	copy(snapshot, s.entries)

	for i := len(snapshot) - 1; i >= 0; i-- {
		e := snapshot[i]
		if !s.Active(e.handle) {
			continue
		}
		e.updater.Update(deltaMs)
	}
}

// After registers a one-shot entry that runs fn once at least delayMs of
// frame time has elapsed.
func (s *Scheduler) After(delayMs float64, fn func()) Handle {
	d := &delay{remaining: delayMs, fn: fn, sched: s}
	d.handle = s.Add(d)
	return d.handle
}

type delay struct {
	remaining float64
	fn        func()
	sched     *Scheduler
	handle    Handle
}

func (d *delay) Update(deltaMs float64) {
	d.remaining -= deltaMs
	if d.remaining > 0 {
		return
	}
	d.sched.Remove(d.handle)
	d.fn()
}

// ManualFrames is a FrameRequester that only counts requests. Callers drive
// Scheduler.Frame themselves.
type ManualFrames struct {
	Requests int
}

// RequestFrame records the request.
func (m *ManualFrames) RequestFrame() {
	m.Requests++
}
