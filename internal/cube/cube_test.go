package cube

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/SeamusWaldron/thecube/internal/notation"
	"github.com/SeamusWaldron/thecube/internal/scene"
)

func newTestCube(t *testing.T) *Cube {
	t.Helper()
	c, err := New(scene.NewWorld(800, 600, scene.DefaultFOV))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// turn rotates the layer at row on axis by angle about the positive axis,
// the way the controls do: detach into Group, rotate, reattach, snap.
func turn(t *testing.T, c *Cube, axis scene.Axis, row int, angle float64) {
	t.Helper()
	layer := c.Layer(axis, row)
	if len(layer) != 9 {
		t.Fatalf("layer %v=%d has %d pieces", axis, row, len(layer))
	}
	c.Group.Rotation = mgl64.QuatIdent()
	for _, p := range layer {
		if err := c.Group.Reparent(p.Node, c.Object); err != nil {
			t.Fatalf("detach: %v", err)
		}
	}
	c.Group.RotateOnAxis(scene.Unit(axis, 1), angle)
	c.Group.SnapRotation()
	for _, p := range layer {
		if err := c.Object.Reparent(p.Node, c.Group); err != nil {
			t.Fatalf("attach: %v", err)
		}
		p.Node.SnapPosition(PieceSize)
		p.Node.SnapRotation()
	}
}

func TestBuildPositions(t *testing.T) {
	positions := BuildPositions()
	if len(positions) != 27 {
		t.Fatalf("len = %d, want 27", len(positions))
	}
	if got := positions[9*2+3*2+2].Coord; got != [3]int{1, 1, 1} {
		t.Errorf("index 26 coord = %v, want (1, 1, 1)", got)
	}
	if diff := cmp.Diff([]Face{L, D, B}, positions[0].Faces); diff != "" {
		t.Errorf("index 0 faces mismatch (-want +got):\n%s", diff)
	}

	counts := map[int]int{}
	for _, p := range positions {
		counts[len(p.Faces)]++
	}
	if diff := cmp.Diff(map[int]int{0: 1, 1: 6, 2: 12, 3: 8}, counts); diff != "" {
		t.Errorf("sticker count histogram mismatch (-want +got):\n%s", diff)
	}
}

func TestNewCube(t *testing.T) {
	c := newTestCube(t)
	if len(c.Pieces()) != 27 || len(c.Stickers()) != 54 || len(c.Bodies()) != 27 {
		t.Fatalf("pieces=%d stickers=%d bodies=%d", len(c.Pieces()), len(c.Stickers()), len(c.Bodies()))
	}
	for i, p := range c.Pieces() {
		if got, want := c.Coordinate(p), c.Positions()[i].Coord; got != want {
			t.Errorf("piece %d at %v, want %v", i, got, want)
		}
	}

	f := c.Facelets()
	if f != SolvedFacelets() {
		t.Errorf("new cube readout is not solved:\n%s", f.String())
	}
}

func TestStickersSitOnTheirFace(t *testing.T) {
	c := newTestCube(t)
	for _, s := range c.Stickers() {
		n := s.Node.WorldRotation().Rotate(mgl64.Vec3{0, 0, 1})
		if diff := cmp.Diff(s.Face.Normal(), n, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("sticker %v normal mismatch (-want +got):\n%s", s.Face, diff)
		}
		dist := s.Node.WorldPosition().Dot(s.Face.Normal())
		if math.Abs(dist-0.5) > 1e-9 {
			t.Errorf("sticker %v at distance %v, want 0.5", s.Face, dist)
		}
	}
}

func TestGeometricTurnsMatchFacelets(t *testing.T) {
	c := newTestCube(t)
	want := SolvedFacelets()

	// R is -90° about +x on the x=1 layer, U is -90° about +y on y=1.
	turn(t, c, scene.AxisX, 1, -math.Pi/2)
	turn(t, c, scene.AxisY, 1, -math.Pi/2)
	turn(t, c, scene.AxisZ, 1, -math.Pi/2)
	turn(t, c, scene.AxisX, -1, math.Pi/2)

	moves, err := notation.ParseSequence("R U F L", notation.Strict)
	if err != nil {
		t.Fatal(err)
	}
	want.ApplyAll(moves)

	got := c.Facelets()
	if got != want {
		t.Errorf("geometry and facelet model disagree\ngot:\n%s\nwant:\n%s", got.String(), want.String())
	}
	for i, coord := range c.Coordinates() {
		for _, v := range coord {
			if v < -1 || v > 1 {
				t.Errorf("piece %d off grid at %v", i, coord)
			}
		}
	}
}

func TestReset(t *testing.T) {
	c := newTestCube(t)
	turn(t, c, scene.AxisX, 1, -math.Pi/2)
	c.Object.RotateOnAxis(mgl64.Vec3{0, 1, 0}, 0.3)
	c.HitBox.RotateOnAxis(mgl64.Vec3{0, 1, 0}, 0.3)
	detached := c.Layer(scene.AxisY, 1)
	for _, p := range detached {
		if err := c.Group.Reparent(p.Node, c.Object); err != nil {
			t.Fatalf("detach: %v", err)
		}
	}
	c.Group.RotateOnAxis(mgl64.Vec3{0, 1, 0}, 0.4)

	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got := len(c.Group.Children()); got != 0 {
		t.Errorf("group still holds %d pieces", got)
	}
	for _, p := range detached {
		if p.Node.Parent() != c.Object {
			t.Errorf("piece %d not returned to the object", p.Index)
		}
	}

	for i, p := range c.Pieces() {
		if p.Node.Position != p.startPosition || p.Node.Rotation != p.startRotation {
			t.Errorf("piece %d not restored", i)
		}
	}
	if c.Object.Rotation != mgl64.QuatIdent() || c.HitBox.Rotation != mgl64.QuatIdent() {
		t.Error("object or hit box rotation not zeroed")
	}
	f := c.Facelets()
	if !f.IsSolved() {
		t.Errorf("reset cube not solved:\n%s", f.String())
	}
}

func TestFaceletsFourQuartersIsIdentity(t *testing.T) {
	for _, face := range []string{"U", "D", "F", "B", "R", "L"} {
		f := SolvedFacelets()
		moves, _ := notation.ParseSequence(face+" "+face+" "+face+" "+face, notation.Strict)
		f.ApplyAll(moves)
		if !f.IsSolved() {
			t.Errorf("%s x 4 should return to solved", face)
			t.Log(f.String())
		}
	}
}

func TestFaceletsSexyMoveOrder(t *testing.T) {
	f := SolvedFacelets()
	moves, _ := notation.ParseSequence("R U R' U'", notation.Strict)
	for i := 0; i < 6; i++ {
		f.ApplyAll(moves)
		if i < 5 && f.IsSolved() {
			t.Fatalf("solved after %d repetitions", i+1)
		}
	}
	if !f.IsSolved() {
		t.Error("(R U R' U') x 6 should return to solved")
		t.Log(f.String())
	}
}

func TestThemes(t *testing.T) {
	if diff := cmp.Diff([]string{"camo", "cube", "dust", "erno", "rain"}, ThemeNames()); diff != "" {
		t.Errorf("ThemeNames mismatch (-want +got):\n%s", diff)
	}
	if got := Themes[DefaultTheme].Hex(F); got != "#ef3923" {
		t.Errorf("cube F = %s", got)
	}
}
