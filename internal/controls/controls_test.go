package controls

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/SeamusWaldron/thecube/internal/animation"
	"github.com/SeamusWaldron/thecube/internal/cube"
	"github.com/SeamusWaldron/thecube/internal/gesture"
	"github.com/SeamusWaldron/thecube/internal/notation"
	"github.com/SeamusWaldron/thecube/internal/scene"
	"github.com/SeamusWaldron/thecube/internal/scrambler"
)

type harness struct {
	ctl    *Controls
	cube   *cube.Cube
	world  *scene.World
	sched  *animation.Scheduler
	clock  *animation.ManualClock
	scr    *scrambler.Scrambler
	moves  int
	solved int
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	clock := animation.NewManualClock(time.Unix(1700000000, 0))
	sched := animation.NewScheduler(&animation.ManualFrames{}, animation.WithClock(clock.Now))
	world := scene.NewWorld(800, 600, scene.DefaultFOV)
	c, err := cube.New(world)
	if err != nil {
		t.Fatalf("cube.New: %v", err)
	}
	scr := scrambler.New()
	ctl, err := New(world, c, sched, scr, append([]Option{WithClock(clock.Now)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h := &harness{ctl: ctl, cube: c, world: world, sched: sched, clock: clock, scr: scr}
	ctl.OnMove(func() { h.moves++ })
	ctl.OnSolved(func() { h.solved++ })
	return h
}

func (h *harness) drain() {
	animation.Drain(h.sched, h.clock, 16*time.Millisecond, 10000)
}

func (h *harness) pointer(kind gesture.Kind, p mgl64.Vec2) {
	h.ctl.HandlePointer(gesture.Event{Kind: kind, Source: gesture.Mouse, Button: gesture.Primary, Position: p})
}

// drag presses at the first pixel, moves through the rest 16ms apart and
// leaves the pointer down.
func (h *harness) drag(pixels ...mgl64.Vec2) {
	h.pointer(gesture.Press, pixels[0])
	for _, p := range pixels[1:] {
		h.clock.Advance(16 * time.Millisecond)
		h.pointer(gesture.Motion, p)
	}
}

func (h *harness) release(p mgl64.Vec2) {
	h.pointer(gesture.Release, p)
}

// frontDrag returns pixels sweeping across the top row of the front face
// from right to left.
func (h *harness) frontDrag() []mgl64.Vec2 {
	var px []mgl64.Vec2
	for i := 0; i <= 6; i++ {
		px = append(px, h.world.ToScreen(mgl64.Vec3{0.3 - 0.1*float64(i), 0.3, 0.5}))
	}
	return px
}

func horizontal(x0, y, step float64, n int) []mgl64.Vec2 {
	var px []mgl64.Vec2
	for i := 0; i <= n; i++ {
		px = append(px, mgl64.Vec2{x0 + step*float64(i), y})
	}
	return px
}

func vertical(x, y0, step float64, n int) []mgl64.Vec2 {
	var px []mgl64.Vec2
	for i := 0; i <= n; i++ {
		px = append(px, mgl64.Vec2{x, y0 + step*float64(i)})
	}
	return px
}

func facelets(t *testing.T, seq string) cube.Facelets {
	t.Helper()
	moves, err := notation.ParseSequence(seq, notation.Strict)
	if err != nil {
		t.Fatalf("ParseSequence(%q): %v", seq, err)
	}
	f := cube.SolvedFacelets()
	f.ApplyAll(moves)
	return f
}

func TestLayerDragCommitsTurn(t *testing.T) {
	h := newHarness(t)
	px := h.frontDrag()
	h.drag(px...)
	if got := h.ctl.State(); got != Rotating {
		t.Fatalf("state during drag = %v, want rotating", got)
	}
	if got := h.ctl.flipAxis; got != (mgl64.Vec3{0, 1, 0}) {
		t.Fatalf("flip axis = %v, want +y", got)
	}

	h.release(px[len(px)-1])
	if got := h.ctl.State(); got != Animating {
		t.Fatalf("state after release = %v, want animating", got)
	}
	h.drain()

	if got := h.ctl.State(); got != Still {
		t.Errorf("state after snap = %v, want still", got)
	}
	if h.moves != 1 {
		t.Errorf("moves = %d, want 1", h.moves)
	}
	if diff := cmp.Diff(facelets(t, "U"), h.cube.Facelets()); diff != "" {
		t.Errorf("facelets mismatch (-want +got):\n%s", diff)
	}
	if h.solved != 0 {
		t.Errorf("solved fired %d times", h.solved)
	}
}

func TestSlowLayerDragSnapsBack(t *testing.T) {
	h := newHarness(t)
	px := h.frontDrag()
	h.drag(px...)
	h.clock.Advance(time.Second)
	h.release(px[len(px)-1])
	h.drain()

	if h.moves != 0 {
		t.Errorf("moves = %d, want 0", h.moves)
	}
	if !h.ctl.IsSolved() {
		t.Error("cube not solved after snapping back")
	}
	if diff := cmp.Diff(cube.SolvedFacelets(), h.cube.Facelets()); diff != "" {
		t.Errorf("facelets mismatch (-want +got):\n%s", diff)
	}
}

func TestBounceConfigLeavesObjectSquare(t *testing.T) {
	h := newHarness(t, WithFlipConfig(2))
	px := h.frontDrag()
	h.drag(px...)
	h.release(px[len(px)-1])
	h.drain()

	if diff := cmp.Diff(facelets(t, "U"), h.cube.Facelets()); diff != "" {
		t.Errorf("facelets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(scene.Euler{}, h.cube.Object.Euler(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("object rotation mismatch (-want +got):\n%s", diff)
	}
}

func TestCubeDragReorients(t *testing.T) {
	h := newHarness(t)
	px := horizontal(100, 300, 50, 6)
	h.drag(px...)
	if got := h.ctl.flipType; got != flipCube {
		t.Fatalf("flip type = %v, want cube", got)
	}
	h.release(px[len(px)-1])
	h.drain()

	if h.moves != 0 {
		t.Errorf("moves = %d, want 0", h.moves)
	}
	f := h.cube.Facelets()
	for i, label := range f[cube.F] {
		if label != cube.L {
			t.Errorf("front facelet %d = %v, want L", i, label)
		}
	}
	if !h.ctl.IsSolved() {
		t.Error("reorientation unsolved the cube")
	}
	if diff := cmp.Diff(h.cube.HitBox.Rotation, h.cube.Object.Rotation, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("object and hit box rotations differ (-hitbox +object):\n%s", diff)
	}
}

func TestCubeDragAxis(t *testing.T) {
	tests := []struct {
		name string
		px   []mgl64.Vec2
		want mgl64.Vec3
	}{
		{"horizontal", horizontal(100, 300, 50, 2), mgl64.Vec3{0, 1, 0}},
		{"vertical right", vertical(700, 150, 50, 2), mgl64.Vec3{0, 0, 1}},
		{"vertical left", vertical(100, 150, 50, 2), mgl64.Vec3{-1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.drag(tt.px...)
			if got := h.ctl.State(); got != Rotating {
				t.Fatalf("state = %v, want rotating", got)
			}
			if got := h.ctl.flipAxis; got != tt.want {
				t.Errorf("flip axis = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDragDuringAnimationResumes(t *testing.T) {
	h := newHarness(t)
	px := h.frontDrag()
	h.drag(px...)
	h.release(px[len(px)-1])

	h.pointer(gesture.Press, px[0])
	if !h.ctl.gettingDrag {
		t.Fatal("drag during animation not queued")
	}
	h.drain()
	if got := h.ctl.State(); got != Preparing {
		t.Fatalf("state after animation = %v, want preparing", got)
	}
	h.release(px[0])
	if got := h.ctl.State(); got != Still {
		t.Errorf("state after release = %v, want still", got)
	}
}

func TestReleaseWithoutMovement(t *testing.T) {
	h := newHarness(t)
	px := h.frontDrag()
	h.pointer(gesture.Press, px[0])
	if got := h.ctl.State(); got != Preparing {
		t.Fatalf("state = %v, want preparing", got)
	}
	h.release(px[0])
	if got := h.ctl.State(); got != Still {
		t.Errorf("state = %v, want still", got)
	}
	if h.sched.Len() != 0 {
		t.Errorf("scheduler has %d entries", h.sched.Len())
	}
}

func TestDisableBlocksDrags(t *testing.T) {
	h := newHarness(t)
	h.ctl.Disable()
	px := h.frontDrag()
	h.drag(px...)
	h.release(px[len(px)-1])
	if got := h.ctl.State(); got != Still {
		t.Errorf("state = %v, want still", got)
	}
}

func TestScrambleCube(t *testing.T) {
	h := newHarness(t)
	const seq = "R U F' L2 D B'"
	if err := h.scr.Scramble(seq); err != nil {
		t.Fatalf("Scramble: %v", err)
	}

	done := false
	if err := h.ctl.ScrambleCube(func() { done = true }); err != nil {
		t.Fatalf("ScrambleCube: %v", err)
	}
	if !h.ctl.Scrambling() {
		t.Fatal("not scrambling")
	}
	if err := h.ctl.ScrambleCube(nil); !errors.Is(err, ErrBusy) {
		t.Errorf("second ScrambleCube error = %v, want ErrBusy", err)
	}

	px := h.frontDrag()
	h.drag(px...)
	h.release(px[len(px)-1])
	if got := h.ctl.State(); got != Still {
		t.Errorf("drag during scramble moved state to %v", got)
	}

	h.drain()
	if !done {
		t.Fatal("scramble completion not fired")
	}
	if h.ctl.Scrambling() {
		t.Error("still scrambling")
	}
	if h.moves != 0 {
		t.Errorf("scramble reported %d moves", h.moves)
	}
	if diff := cmp.Diff(facelets(t, seq), h.cube.Facelets()); diff != "" {
		t.Errorf("facelets mismatch (-want +got):\n%s", diff)
	}
}

func TestScrambleCubeEmptyQueue(t *testing.T) {
	h := newHarness(t)
	done := false
	if err := h.ctl.ScrambleCube(func() { done = true }); err != nil {
		t.Fatalf("ScrambleCube: %v", err)
	}
	if !done {
		t.Error("empty scramble did not complete immediately")
	}
}

func TestTurnQueueSolves(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 6; i++ {
		if err := h.ctl.Turn("R U R' U'"); err != nil {
			t.Fatalf("Turn: %v", err)
		}
	}
	if !h.ctl.Busy() {
		t.Fatal("turn queue idle")
	}
	h.drain()

	if h.moves != 24 {
		t.Errorf("moves = %d, want 24", h.moves)
	}
	if h.solved != 1 {
		t.Errorf("solved fired %d times, want 1", h.solved)
	}
	if h.ctl.Busy() {
		t.Error("turn queue still busy")
	}
}

func TestTurnDoubleMoves(t *testing.T) {
	h := newHarness(t)
	if err := h.ctl.Turn("R2 F"); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	h.drain()
	if diff := cmp.Diff(facelets(t, "R2 F"), h.cube.Facelets()); diff != "" {
		t.Errorf("facelets mismatch (-want +got):\n%s", diff)
	}
}

func TestEveryMoveAndInverse(t *testing.T) {
	for _, face := range []string{"U", "D", "L", "R", "F", "B"} {
		for _, tt := range []struct{ move, inverse string }{
			{face, face + "'"},
			{face + "'", face},
			{face + "2", face + "2"},
		} {
			t.Run(tt.move, func(t *testing.T) {
				h := newHarness(t)
				start := h.cube.Coordinates()

				if err := h.ctl.Turn(tt.move); err != nil {
					t.Fatalf("Turn(%q): %v", tt.move, err)
				}
				if got := len(h.cube.Group.Children()); got != 9 {
					t.Errorf("%s detached %d pieces, want 9", tt.move, got)
				}
				h.drain()
				if h.ctl.IsSolved() {
					t.Errorf("cube solved after %s", tt.move)
				}
				if diff := cmp.Diff(facelets(t, tt.move), h.cube.Facelets()); diff != "" {
					t.Errorf("facelets after %s mismatch (-want +got):\n%s", tt.move, diff)
				}

				if err := h.ctl.Turn(tt.inverse); err != nil {
					t.Fatalf("Turn(%q): %v", tt.inverse, err)
				}
				h.drain()
				if !h.ctl.IsSolved() {
					t.Errorf("cube not solved after %s %s", tt.move, tt.inverse)
				}
				if diff := cmp.Diff(start, h.cube.Coordinates()); diff != "" {
					t.Errorf("coordinates not restored (-want +got):\n%s", diff)
				}
				if h.solved != 1 {
					t.Errorf("solved fired %d times, want 1", h.solved)
				}
			})
		}
	}
}

func TestTurnDuringDragWaitsForRelease(t *testing.T) {
	h := newHarness(t)
	px := h.frontDrag()
	h.drag(px...)
	if got := h.ctl.State(); got != Rotating {
		t.Fatalf("state during drag = %v, want rotating", got)
	}

	if err := h.ctl.Turn("R"); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	if got := len(h.cube.Group.Children()); got != 9 {
		t.Fatalf("group holds %d pieces during drag, want 9", got)
	}

	h.release(px[len(px)-1])
	h.drain()

	if got := h.ctl.State(); got != Still {
		t.Errorf("state = %v, want still", got)
	}
	if h.ctl.Busy() {
		t.Error("controls still busy")
	}
	if h.moves != 2 {
		t.Errorf("moves = %d, want 2", h.moves)
	}
	if got := len(h.cube.Group.Children()); got != 0 {
		t.Errorf("group still holds %d pieces", got)
	}
	if diff := cmp.Diff(facelets(t, "U R"), h.cube.Facelets()); diff != "" {
		t.Errorf("facelets mismatch (-want +got):\n%s", diff)
	}
}

func TestTurnDuringPressStartsOnRelease(t *testing.T) {
	h := newHarness(t)
	px := h.frontDrag()
	h.pointer(gesture.Press, px[0])
	if err := h.ctl.Turn("R"); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	if !h.ctl.Busy() || h.ctl.State() != Preparing {
		t.Fatalf("busy=%v state=%v, want a queued turn while preparing", h.ctl.Busy(), h.ctl.State())
	}

	h.release(px[0])
	h.drain()
	if !h.ctl.Idle() || h.moves != 1 {
		t.Errorf("idle=%v moves=%d, want idle after one move", h.ctl.Idle(), h.moves)
	}
	if diff := cmp.Diff(facelets(t, "R"), h.cube.Facelets()); diff != "" {
		t.Errorf("facelets mismatch (-want +got):\n%s", diff)
	}
}

func TestTurnDuringQueuedDrag(t *testing.T) {
	h := newHarness(t)
	px := h.frontDrag()
	h.drag(px...)
	h.release(px[len(px)-1])
	h.pointer(gesture.Press, px[0])
	if err := h.ctl.Turn("F"); err != nil {
		t.Fatalf("Turn: %v", err)
	}

	h.drain()
	if got := h.ctl.State(); got != Preparing {
		t.Fatalf("state after snap = %v, want preparing", got)
	}
	h.release(px[0])
	h.drain()

	if !h.ctl.Idle() || h.moves != 2 {
		t.Errorf("idle=%v moves=%d, want idle after two moves", h.ctl.Idle(), h.moves)
	}
	if diff := cmp.Diff(facelets(t, "U F"), h.cube.Facelets()); diff != "" {
		t.Errorf("facelets mismatch (-want +got):\n%s", diff)
	}
}

func TestTurnInvalidNotation(t *testing.T) {
	h := newHarness(t)
	if err := h.ctl.Turn("R X"); !errors.Is(err, notation.ErrInvalidNotation) {
		t.Errorf("Turn error = %v, want ErrInvalidNotation", err)
	}
	if h.ctl.Busy() {
		t.Error("invalid sequence was queued")
	}

	h = newHarness(t, WithPolicy(notation.Lenient))
	if err := h.ctl.Turn("R X"); err != nil {
		t.Fatalf("lenient Turn: %v", err)
	}
	h.drain()
	if diff := cmp.Diff(facelets(t, "R"), h.cube.Facelets()); diff != "" {
		t.Errorf("facelets mismatch (-want +got):\n%s", diff)
	}
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	if err := h.ctl.Turn("R U F"); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	animation.Drain(h.sched, h.clock, 16*time.Millisecond, 3)
	h.ctl.Reset()

	if h.ctl.Busy() {
		t.Error("busy after reset")
	}
	if diff := cmp.Diff(cube.SolvedFacelets(), h.cube.Facelets()); diff != "" {
		t.Errorf("facelets mismatch (-want +got):\n%s", diff)
	}
	if got := len(h.cube.Object.Children()); got != 28 {
		t.Errorf("object children = %d, want 27 pieces and the group", got)
	}
}

func TestSetFlipConfigClamps(t *testing.T) {
	h := newHarness(t)
	for _, tt := range []struct{ in, want int }{{-1, 0}, {1, 1}, {7, 2}} {
		h.ctl.SetFlipConfig(tt.in)
		if got := h.ctl.FlipConfig(); got != tt.want {
			t.Errorf("SetFlipConfig(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMomentum(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 4; i++ {
		h.ctl.addMomentum(mgl64.Vec3{0.1, -0.2, 5})
		h.clock.Advance(100 * time.Millisecond)
	}
	// weights 0, 1/4, 2/4, 3/4
	got := h.ctl.currentMomentum()
	want := mgl64.Vec2{0.15, -0.3}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("momentum mismatch (-want +got):\n%s", diff)
	}

	h.clock.Advance(300 * time.Millisecond)
	// only the newest sample, now 400ms old, survives, with weight 0
	if got := h.ctl.currentMomentum(); got != (mgl64.Vec2{}) {
		t.Errorf("momentum after eviction = %v, want zero", got)
	}
	if len(h.ctl.momentum) != 1 {
		t.Errorf("%d samples kept, want 1", len(h.ctl.momentum))
	}
}
