package animation

import (
	"github.com/SeamusWaldron/thecube/internal/easing"
)

// DefaultDuration is the tween length in milliseconds when none is given.
const DefaultDuration = 500

// TweenOption configures a Tween.
type TweenOption func(*Tween)

// Duration sets the tween length in milliseconds. Non-positive values keep
// the default.
func Duration(ms float64) TweenOption {
	return func(t *Tween) {
		if ms > 0 {
			t.duration = ms
		}
	}
}

// Ease sets the easing curve applied to progress.
func Ease(f easing.Func) TweenOption {
	return func(t *Tween) {
		if f != nil {
			t.easing = f
		}
	}
}

// OnUpdate sets the callback fired after every progress change.
func OnUpdate(fn func(*Tween)) TweenOption {
	return func(t *Tween) {
		t.onUpdate = fn
	}
}

// OnComplete sets the callback fired once when a non-yoyo tween finishes.
func OnComplete(fn func(*Tween)) TweenOption {
	return func(t *Tween) {
		t.onComplete = fn
	}
}

// Delay postpones registration by ms of frame time.
func Delay(ms float64) TweenOption {
	return func(t *Tween) {
		t.delay = ms
	}
}

// Yoyo makes the tween reflect between 0 and 1 until stopped.
func Yoyo() TweenOption {
	return func(t *Tween) {
		t.yoyo = true
	}
}

// Animate interpolates *target from its value at Start to to.
func Animate(target *float64, to float64) TweenOption {
	return func(t *Tween) {
		t.fields = append(t.fields, field{target: target, to: to})
	}
}

// AnimateFrom interpolates *target from from to to.
func AnimateFrom(target *float64, from, to float64) TweenOption {
	return func(t *Tween) {
		t.fields = append(t.fields, field{target: target, from: from, to: to, fromSet: true})
	}
}

type field struct {
	target  *float64
	from    float64
	to      float64
	fromSet bool
}

// Tween interpolates a value from 0 to 1 over a duration, shaped by an
// easing curve.
type Tween struct {
	sched      *Scheduler
	duration   float64
	easing     easing.Func
	onUpdate   func(*Tween)
	onComplete func(*Tween)
	delay      float64
	yoyo       bool
	reversed   bool
	fields     []field

	progress float64
	value    float64
	delta    float64

	handle      Handle
	delayHandle Handle
	done        bool
}

// NewTween creates a tween bound to s. It does nothing until Start.
func NewTween(s *Scheduler, opts ...TweenOption) *Tween {
	t := &Tween{
		sched:    s,
		duration: DefaultDuration,
		easing:   easing.Linear,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Play creates and starts a tween.
func Play(s *Scheduler, opts ...TweenOption) *Tween {
	t := NewTween(s, opts...)
	t.Start()
	return t
}

var _ Animatable = (*Tween)(nil)

// Start captures missing from-values, registers the tween (after the delay,
// if any) and fires one OnUpdate with a zero delta.
func (t *Tween) Start() {
	if t.Running() {
		return
	}
	if t.done {
		t.progress, t.value, t.delta = 0, 0, 0
		t.reversed = false
		t.done = false
	}
	for i := range t.fields {
		if !t.fields[i].fromSet {
			t.fields[i].from = *t.fields[i].target
		}
	}

	if t.delay > 0 {
		t.delayHandle = t.sched.After(t.delay, func() {
			t.delayHandle = 0
			t.handle = t.sched.Add(t)
		})
	} else {
		t.handle = t.sched.Add(t)
	}

	if t.onUpdate != nil {
		t.onUpdate(t)
	}
}

// Stop deregisters the tween, cancelling a pending delay. Callbacks do not
// fire.
func (t *Tween) Stop() {
	if t.delayHandle != 0 {
		t.sched.Remove(t.delayHandle)
		t.delayHandle = 0
	}
	if t.handle != 0 {
		t.sched.Remove(t.handle)
		t.handle = 0
	}
}

// Running reports whether the tween is registered or waiting on its delay.
func (t *Tween) Running() bool {
	return t.delayHandle != 0 || (t.handle != 0 && t.sched.Active(t.handle))
}

// Update advances progress by deltaMs.
func (t *Tween) Update(deltaMs float64) {
	if t.done {
		return
	}
	old := t.value
	dir := 1.0
	if t.reversed {
		dir = -1
	}
	t.progress += deltaMs / t.duration * dir
	t.value = t.easing(t.progress)

	if t.yoyo {
		if t.progress > 1 || t.progress < 0 {
			if t.progress > 1 {
				t.progress = 1
			} else {
				t.progress = 0
			}
			t.value = t.progress
			t.reversed = !t.reversed
		}
		t.delta = t.value - old
		t.applyFields()
		t.fireUpdate()
		return
	}

	if t.progress <= 1 {
		t.delta = t.value - old
		t.applyFields()
		t.fireUpdate()
		return
	}

	// Clamp on the final frame; the deltas then sum to exactly one.
	t.progress = 1
	t.value = 1
	t.delta = 1 - old
	t.applyFields()
	t.fireUpdate()

	t.done = true
	t.Stop()
	if t.onComplete != nil {
		t.onComplete(t)
	}
}

func (t *Tween) applyFields() {
	for _, f := range t.fields {
		*f.target = f.from + (f.to-f.from)*t.value
	}
}

func (t *Tween) fireUpdate() {
	if t.onUpdate != nil {
		t.onUpdate(t)
	}
}

// Progress returns linear progress in [0, 1].
func (t *Tween) Progress() float64 { return t.progress }

// Value returns the eased progress.
func (t *Tween) Value() float64 { return t.value }

// Delta returns the change in Value during the last update.
func (t *Tween) Delta() float64 { return t.delta }

// Done reports whether a non-yoyo tween has completed.
func (t *Tween) Done() bool { return t.done }
