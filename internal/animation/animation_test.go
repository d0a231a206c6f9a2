package animation

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/SeamusWaldron/thecube/internal/easing"
)

type recorder struct {
	name  string
	log   *[]string
	delta float64
	fn    func()
}

func (r *recorder) Update(deltaMs float64) {
	r.delta = deltaMs
	*r.log = append(*r.log, r.name)
	if r.fn != nil {
		r.fn()
	}
}

func newTestScheduler() (*Scheduler, *ManualFrames, *ManualClock) {
	frames := &ManualFrames{}
	clock := NewManualClock(time.Unix(1000, 0))
	return NewScheduler(frames, WithClock(clock.Now)), frames, clock
}

func TestSchedulerDispatchesInReverseOrder(t *testing.T) {
	s, _, _ := newTestScheduler()
	var log []string
	for _, name := range []string{"a", "b", "c"} {
		s.Add(&recorder{name: name, log: &log})
	}

	s.Step(16)

	if diff := cmp.Diff([]string{"c", "b", "a"}, log); diff != "" {
		t.Errorf("dispatch order mismatch (-want +got):\n%s", diff)
	}
}

func TestSchedulerSkipsEntriesRemovedMidFrame(t *testing.T) {
	s, _, _ := newTestScheduler()
	var log []string

	first := &recorder{name: "first", log: &log}
	firstHandle := s.Add(first)

	var selfHandle Handle
	self := &recorder{name: "self", log: &log}
	self.fn = func() {
		s.Remove(selfHandle)
		s.Remove(firstHandle)
	}
	selfHandle = s.Add(self)

	s.Step(16)

	if diff := cmp.Diff([]string{"self"}, log); diff != "" {
		t.Errorf("dispatch mismatch (-want +got):\n%s", diff)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestSchedulerResamplesClockWhenIdle(t *testing.T) {
	s, frames, clock := newTestScheduler()
	var log []string
	r := &recorder{name: "r", log: &log}

	clock.Advance(time.Second)
	s.Add(r)
	if frames.Requests != 1 {
		t.Fatalf("Requests = %d, want 1", frames.Requests)
	}

	clock.Advance(16 * time.Millisecond)
	s.Frame()

	if r.delta != 16 {
		t.Errorf("first delta = %v, want 16", r.delta)
	}
}

func TestSchedulerStopsRequestingWhenEmpty(t *testing.T) {
	s, frames, clock := newTestScheduler()
	var log []string
	h := s.Add(&recorder{name: "r", log: &log})

	clock.Advance(16 * time.Millisecond)
	s.Frame()
	if frames.Requests != 2 || !s.Pending() {
		t.Fatalf("after frame with entries: Requests = %d, Pending = %v", frames.Requests, s.Pending())
	}

	s.Remove(h)
	clock.Advance(16 * time.Millisecond)
	s.Frame()
	if frames.Requests != 2 {
		t.Errorf("Requests = %d, want 2", frames.Requests)
	}
	if s.Pending() {
		t.Error("Pending() = true after empty frame")
	}

	// Adding again requests a fresh frame.
	s.Add(&recorder{name: "r2", log: &log})
	if frames.Requests != 3 {
		t.Errorf("Requests = %d, want 3", frames.Requests)
	}
}

func TestSchedulerAfter(t *testing.T) {
	s, _, _ := newTestScheduler()
	fired := 0
	s.After(50, func() { fired++ })

	s.Step(30)
	if fired != 0 {
		t.Fatalf("fired after 30ms")
	}
	s.Step(30)
	s.Step(30)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestTweenCompletesOnce(t *testing.T) {
	s, _, _ := newTestScheduler()
	var sum float64
	updates, completes := 0, 0

	Play(s,
		Duration(100),
		Ease(easing.PowerOut(3)),
		OnUpdate(func(tw *Tween) {
			updates++
			sum += tw.Delta()
		}),
		OnComplete(func(tw *Tween) { completes++ }),
	)

	if updates != 1 {
		t.Fatalf("initial updates = %d, want 1", updates)
	}

	for i := 0; i < 6; i++ {
		s.Step(30)
	}

	if completes != 1 {
		t.Errorf("completes = %d, want 1", completes)
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("sum of deltas = %v, want 1", sum)
	}
	if s.Len() != 0 {
		t.Errorf("tween still registered")
	}
}

func TestTweenFields(t *testing.T) {
	s, _, _ := newTestScheduler()
	x, y := 5.0, 0.0

	tw := Play(s,
		Duration(100),
		Animate(&x, 15),
		AnimateFrom(&y, 10, 20),
	)
	s.Step(50)

	if x != 10 {
		t.Errorf("x = %v, want 10", x)
	}
	if y != 15 {
		t.Errorf("y = %v, want 15", y)
	}

	s.Step(60)
	if !tw.Done() || x != 15 || y != 20 {
		t.Errorf("after completion: done=%v x=%v y=%v", tw.Done(), x, y)
	}
}

func TestTweenYoyo(t *testing.T) {
	s, _, _ := newTestScheduler()
	completed := false
	tw := Play(s, Duration(100), Yoyo(), OnComplete(func(*Tween) { completed = true }))

	s.Step(150)
	if tw.Progress() != 1 {
		t.Fatalf("progress = %v, want 1", tw.Progress())
	}
	s.Step(50)
	if tw.Progress() != 0.5 {
		t.Fatalf("progress = %v, want 0.5", tw.Progress())
	}
	s.Step(60)
	if tw.Progress() != 0 {
		t.Fatalf("progress = %v, want 0", tw.Progress())
	}
	s.Step(25)
	if tw.Progress() != 0.25 {
		t.Errorf("progress = %v, want 0.25", tw.Progress())
	}
	if completed || !tw.Running() {
		t.Error("yoyo tween must run until stopped")
	}

	tw.Stop()
	if tw.Running() {
		t.Error("Running() = true after Stop")
	}
}

func TestTweenDelay(t *testing.T) {
	s, _, _ := newTestScheduler()
	tw := Play(s, Duration(100), Delay(100))

	s.Step(50)
	if tw.Progress() != 0 {
		t.Fatalf("progress moved during delay: %v", tw.Progress())
	}
	s.Step(60)
	s.Step(10)
	if math.Abs(tw.Progress()-0.1) > 1e-12 {
		t.Errorf("progress = %v, want 0.1", tw.Progress())
	}
}

func TestTweenStopCancelsDelay(t *testing.T) {
	s, _, _ := newTestScheduler()
	tw := Play(s, Duration(100), Delay(100))
	tw.Stop()

	s.Step(200)
	if s.Len() != 0 || tw.Running() {
		t.Error("stopped tween registered after delay")
	}
}

func TestDrain(t *testing.T) {
	s, _, clock := newTestScheduler()
	tw := Play(s, Duration(100))

	frames := Drain(s, clock, 16*time.Millisecond, 100)

	if !tw.Done() {
		t.Fatal("tween did not finish")
	}
	if frames != 8 {
		t.Errorf("frames = %d, want 8", frames)
	}
}

func TestDrainUntil(t *testing.T) {
	s, _, clock := newTestScheduler()
	forever := &recorder{log: &[]string{}}
	s.Add(forever)
	tw := Play(s, Duration(100))

	frames := DrainUntil(s, clock, 16*time.Millisecond, 1000, tw.Done)

	// 7 × 16ms = 112ms finishes the 100ms tween.
	if frames != 7 {
		t.Errorf("frames = %d, want 7", frames)
	}
	if !s.Pending() {
		t.Error("scheduler went idle with an entry left")
	}
}

func TestLoopRunsTasksAndFrames(t *testing.T) {
	l := NewLoop(WithInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopped := make(chan error, 1)
	go func() { stopped <- l.Run(ctx) }()

	fired := make(chan struct{})
	err := l.Do(ctx, func() {
		l.Scheduler().After(5, func() { close(fired) })
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("delayed callback never ran")
	}

	cancel()
	if err := <-stopped; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}

func TestLoopDoHonoursContext(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < cap(l.tasks); i++ {
		l.tasks <- func() {}
	}
	if err := l.Do(ctx, func() {}); !errors.Is(err, context.Canceled) {
		t.Errorf("Do on a full queue = %v, want context.Canceled", err)
	}
}
