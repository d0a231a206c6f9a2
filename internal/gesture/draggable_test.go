package gesture

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
)

type trace struct {
	calls []string
	last  Position
}

func (tr *trace) attach(d *Draggable) {
	d.OnDragStart = func(p Position) { tr.calls = append(tr.calls, "start"); tr.last = p }
	d.OnDragMove = func(p Position) { tr.calls = append(tr.calls, "move"); tr.last = p }
	d.OnDragEnd = func(p Position) { tr.calls = append(tr.calls, "end"); tr.last = p }
}

func mouse(kind Kind, x, y float64) Event {
	return Event{Kind: kind, Source: Mouse, Button: Primary, Position: mgl64.Vec2{x, y}}
}

func TestDragLifecycle(t *testing.T) {
	d := New(WithDelta())
	tr := &trace{}
	tr.attach(d)

	d.Handle(mouse(Motion, 1, 1)) // no drag yet
	d.Handle(mouse(Press, 10, 10))
	d.Handle(mouse(Motion, 15, 12))
	d.Handle(mouse(Motion, 20, 20))
	d.Handle(mouse(Release, 20, 20))
	d.Handle(mouse(Motion, 30, 30)) // after end

	if diff := cmp.Diff([]string{"start", "move", "move", "end"}, tr.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if tr.last.Drag != (mgl64.Vec2{10, 10}) {
		t.Errorf("Drag = %v, want (10, 10)", tr.last.Drag)
	}
	if tr.last.Delta != (mgl64.Vec2{5, 8}) {
		t.Errorf("Delta = %v, want (5, 8)", tr.last.Delta)
	}
}

func TestIgnoresSecondaryButtonAndMultiTouch(t *testing.T) {
	d := New()
	tr := &trace{}
	tr.attach(d)

	d.Handle(Event{Kind: Press, Source: Mouse, Button: Secondary})
	d.Handle(Event{Kind: Press, Source: Touch, Touches: 2})
	d.Handle(mouse(Motion, 5, 5))

	if len(tr.calls) != 0 {
		t.Errorf("calls = %v, want none", tr.calls)
	}
}

func TestDisableBlocksStartOnly(t *testing.T) {
	d := New()
	tr := &trace{}
	tr.attach(d)

	d.Handle(mouse(Press, 0, 0))
	d.Disable()
	d.Handle(mouse(Motion, 1, 1))
	d.Handle(mouse(Release, 1, 1))
	d.Handle(mouse(Press, 2, 2))

	if diff := cmp.Diff([]string{"start", "move", "end"}, tr.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestOtherSourceIgnoredDuringDrag(t *testing.T) {
	d := New()
	tr := &trace{}
	tr.attach(d)

	d.Handle(Event{Kind: Press, Source: Touch, Touches: 1})
	d.Handle(mouse(Motion, 3, 3))
	d.Handle(mouse(Release, 3, 3))
	if !d.Dragging() {
		t.Fatal("mouse release ended a touch drag")
	}
	d.Handle(Event{Kind: Release, Source: Touch})
	if d.Dragging() {
		t.Error("touch release did not end the drag")
	}
}
