package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line in world space. Direction should be normalized so that
// hit distances are in world units.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit describes a ray intersection.
type Hit struct {
	Node     *Node
	Point    mgl64.Vec3 // world space
	Distance float64
	Normal   mgl64.Vec3 // face normal in the node's own space
}

// Shape is a ray-cast target expressed in its node's local space.
type Shape interface {
	intersect(origin, dir mgl64.Vec3) (t float64, normal mgl64.Vec3, ok bool)
}

// Box is an axis-aligned box centered on its node's origin. Only faces seen
// from outside are hit.
type Box struct {
	Size mgl64.Vec3
}

func (b Box) intersect(o, d mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	var normal mgl64.Vec3

	for i := 0; i < 3; i++ {
		h := b.Size[i] / 2
		if math.Abs(d[i]) < 1e-12 {
			if o[i] < -h || o[i] > h {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (-h - o[i]) / d[i]
		t2 := (h - o[i]) / d[i]
		n := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			n = 1
		}
		if t1 > tmin {
			tmin = t1
			normal = Unit(Axis(i), n)
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmin > tmax || tmin < 0 {
		return 0, mgl64.Vec3{}, false
	}
	return tmin, normal, true
}

// Plane is a rectangle in its node's xy plane, facing +z. Both sides are hit.
type Plane struct {
	Width, Height float64
}

func (p Plane) intersect(o, d mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	if math.Abs(d.Z()) < 1e-12 {
		return 0, mgl64.Vec3{}, false
	}
	t := -o.Z() / d.Z()
	if t < 0 {
		return 0, mgl64.Vec3{}, false
	}
	hit := o.Add(d.Mul(t))
	if math.Abs(hit.X()) > p.Width/2 || math.Abs(hit.Y()) > p.Height/2 {
		return 0, mgl64.Vec3{}, false
	}
	return t, mgl64.Vec3{0, 0, 1}, true
}

// Intersect casts r against n's own shape. Children are not tested.
func (n *Node) Intersect(r Ray) (Hit, bool) {
	if n.Shape == nil {
		return Hit{}, false
	}
	world := n.WorldMatrix()
	inv := world.Inv()
	o := inv.Mul4x1(r.Origin.Vec4(1)).Vec3()
	d := inv.Mul4x1(r.Direction.Vec4(0)).Vec3()

	t, normal, ok := n.Shape.intersect(o, d)
	if !ok {
		return Hit{}, false
	}
	point := r.At(t)
	return Hit{
		Node:     n,
		Point:    point,
		Distance: point.Sub(r.Origin).Len(),
		Normal:   normal,
	}, true
}

// IntersectNodes returns the nearest hit among nodes.
func IntersectNodes(r Ray, nodes []*Node) (Hit, bool) {
	var best Hit
	found := false
	for _, n := range nodes {
		h, ok := n.Intersect(r)
		if !ok {
			continue
		}
		if !found || h.Distance < best.Distance {
			best = h
			found = true
		}
	}
	return best, found
}
