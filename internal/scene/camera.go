package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking from Position toward Target.
type Camera struct {
	FOV      float64 // vertical, degrees
	Aspect   float64
	Near     float64
	Far      float64
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
}

// Projection returns the perspective matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// Ray returns the world ray through a point in normalized device
// coordinates, where (-1, -1) is bottom left and (1, 1) top right.
func (c *Camera) Ray(ndc mgl64.Vec2) Ray {
	inv := c.Projection().Mul4(c.View()).Inv()
	p := inv.Mul4x1(mgl64.Vec4{ndc.X(), ndc.Y(), 0.5, 1})
	point := p.Vec3().Mul(1 / p.W())
	return Ray{
		Origin:    c.Position,
		Direction: point.Sub(c.Position).Normalize(),
	}
}

// Project maps a world point to normalized device coordinates.
func (c *Camera) Project(p mgl64.Vec3) mgl64.Vec2 {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	return mgl64.Vec2{clip.X() / clip.W(), clip.Y() / clip.W()}
}

// World holds the scene root and a camera framed on a fixed stage.
type World struct {
	Root   *Node
	Camera *Camera

	Width, Height float64 // viewport in pixels
	StageWidth    float64
	StageHeight   float64
}

// Defaults for the world camera.
const (
	DefaultFOV  = 10.0
	cameraNear  = 0.1
	cameraFar   = 10000
	stageWidth  = 2.0
	stageHeight = 3.0
)

// NewWorld creates a world for a viewport of width×height pixels.
func NewWorld(width, height, fov float64) *World {
	w := &World{
		Root: NewNode("scene"),
		Camera: &Camera{
			FOV:  fov,
			Near: cameraNear,
			Far:  cameraFar,
			Up:   mgl64.Vec3{0, 1, 0},
		},
		StageWidth:  stageWidth,
		StageHeight: stageHeight,
	}
	w.Resize(width, height)
	return w
}

// Resize updates the viewport and refits the camera.
func (w *World) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	w.Width, w.Height = width, height
	w.fit()
}

// SetFOV changes the camera field of view and refits.
func (w *World) SetFOV(fov float64) {
	w.Camera.FOV = fov
	w.fit()
}

// fit places the camera on the (1, 1, 1) diagonal at the distance that keeps
// the stage in view.
func (w *World) fit() {
	c := w.Camera
	c.Aspect = w.Width / w.Height
	stageAspect := w.StageWidth / w.StageHeight
	half := mgl64.DegToRad(c.FOV) / 2

	var distance float64
	if stageAspect < c.Aspect {
		distance = (w.StageHeight / 2) / math.Tan(half)
	} else {
		distance = (w.StageWidth / c.Aspect) / (2 * math.Tan(half))
	}
	distance *= 0.5

	c.Position = mgl64.Vec3{distance, distance, distance}
	c.Target = mgl64.Vec3{}
}

// Distance returns the per-axis camera offset from the origin.
func (w *World) Distance() float64 {
	return w.Camera.Position.X()
}

// ToNDC converts a pixel position (origin top left) to device coordinates.
func (w *World) ToNDC(px, py float64) mgl64.Vec2 {
	return mgl64.Vec2{px/w.Width*2 - 1, -(py/w.Height)*2 + 1}
}

// ToScreen projects a world point to pixels.
func (w *World) ToScreen(p mgl64.Vec3) mgl64.Vec2 {
	ndc := w.Camera.Project(p)
	return mgl64.Vec2{(ndc.X() + 1) / 2 * w.Width, (1 - ndc.Y()) / 2 * w.Height}
}

// RayAt returns the world ray under a pixel position.
func (w *World) RayAt(px, py float64) Ray {
	return w.Camera.Ray(w.ToNDC(px, py))
}
