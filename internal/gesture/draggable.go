// Package gesture turns raw pointer events into drag start, move and end
// notifications.
package gesture

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Kind is the phase of a pointer event.
type Kind int

const (
	Press Kind = iota
	Motion
	Release
)

// Source distinguishes mouse from touch input.
type Source int

const (
	Mouse Source = iota
	Touch
)

// Button identifies a mouse button. Only Primary starts a drag.
type Button int

const (
	Primary Button = iota + 1
	Middle
	Secondary
)

// Event is one pointer sample in viewport pixels, origin top left.
type Event struct {
	Kind     Kind
	Source   Source
	Button   Button // mouse presses only
	Touches  int    // active touches, touch events only
	Position mgl64.Vec2
}

// Position carries the pointer state handed to drag handlers. Start, Delta,
// Old and Drag are only maintained when delta tracking is on.
type Position struct {
	Current mgl64.Vec2
	Start   mgl64.Vec2
	Delta   mgl64.Vec2
	Old     mgl64.Vec2
	Drag    mgl64.Vec2
}

// Handler receives drag notifications.
type Handler func(Position)

// Draggable filters pointer events and forwards drags. Move and end are only
// delivered between an accepted start and its end, and only from the source
// that started the drag. Disabling blocks new starts; a drag in progress
// still finishes.
type Draggable struct {
	OnDragStart Handler
	OnDragMove  Handler
	OnDragEnd   Handler

	calcDelta bool
	enabled   bool
	dragging  bool
	source    Source
	position  Position
}

// Option configures a Draggable.
type Option func(*Draggable)

// WithDelta maintains Start, Delta, Old and Drag on every event.
func WithDelta() Option {
	return func(d *Draggable) {
		d.calcDelta = true
	}
}

// New returns an enabled Draggable.
func New(opts ...Option) *Draggable {
	d := &Draggable{enabled: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Enable allows drags to start.
func (d *Draggable) Enable() { d.enabled = true }

// Disable stops new drags from starting.
func (d *Draggable) Disable() { d.enabled = false }

// Enabled reports whether new drags may start.
func (d *Draggable) Enabled() bool { return d.enabled }

// Dragging reports whether a drag is in progress.
func (d *Draggable) Dragging() bool { return d.dragging }

// Handle processes one pointer event.
func (d *Draggable) Handle(ev Event) {
	switch ev.Kind {
	case Press:
		d.start(ev)
	case Motion:
		d.move(ev)
	case Release:
		d.end(ev)
	}
}

func (d *Draggable) start(ev Event) {
	if !d.enabled || d.dragging {
		return
	}
	if ev.Source == Mouse && ev.Button != Primary {
		return
	}
	if ev.Source == Touch && ev.Touches > 1 {
		return
	}

	d.position.Current = ev.Position
	if d.calcDelta {
		d.position.Start = ev.Position
		d.position.Delta = mgl64.Vec2{}
		d.position.Drag = mgl64.Vec2{}
	}
	d.source = ev.Source
	d.dragging = true
	if d.OnDragStart != nil {
		d.OnDragStart(d.position)
	}
}

func (d *Draggable) move(ev Event) {
	if !d.dragging || ev.Source != d.source {
		return
	}
	if d.calcDelta {
		d.position.Old = d.position.Current
	}
	d.position.Current = ev.Position
	if d.calcDelta {
		d.position.Delta = d.position.Current.Sub(d.position.Old)
		d.position.Drag = d.position.Current.Sub(d.position.Start)
	}
	if d.OnDragMove != nil {
		d.OnDragMove(d.position)
	}
}

func (d *Draggable) end(ev Event) {
	if !d.dragging || ev.Source != d.source {
		return
	}
	d.position.Current = ev.Position
	d.dragging = false
	if d.OnDragEnd != nil {
		d.OnDragEnd(d.position)
	}
}
