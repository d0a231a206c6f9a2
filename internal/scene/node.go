// Package scene is a small single-owner scene graph: nodes with local
// transforms, world-space conversions, ray casting against boxes and planes,
// and a perspective camera.
package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sentinel errors for tree edits.
var (
	ErrAlreadyParented = errors.New("scene: node already has a parent")
	ErrNotChild        = errors.New("scene: node is not a child of this parent")
	ErrCycle           = errors.New("scene: node would become its own ancestor")
)

// Node is an element of the scene tree. Every node has at most one parent,
// which owns it; children are kept in insertion order.
type Node struct {
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3

	// Shape makes the node a ray-cast target. Nil shapes are never hit.
	Shape Shape

	parent   *Node
	children []*Node
}

// NewNode returns a detached node with identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Parent returns the owning node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Add appends child to n. The child must be detached.
func (n *Node) Add(child *Node) error {
	if child.parent != nil {
		return fmt.Errorf("add %q to %q: %w", child.Name, n.Name, ErrAlreadyParented)
	}
	if child == n || child.isAncestorOf(n) {
		return fmt.Errorf("add %q to %q: %w", child.Name, n.Name, ErrCycle)
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// Remove detaches child from n.
func (n *Node) Remove(child *Node) error {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return nil
		}
	}
	return fmt.Errorf("remove %q from %q: %w", child.Name, n.Name, ErrNotChild)
}

// Reparent moves child from its current parent to n, rewriting the child's
// local transform so that its world transform does not change.
func (n *Node) Reparent(child *Node, from *Node) error {
	if child.parent != from {
		return fmt.Errorf("reparent %q from %q: %w", child.Name, from.Name, ErrNotChild)
	}
	if child == n || child.isAncestorOf(n) {
		return fmt.Errorf("reparent %q to %q: %w", child.Name, n.Name, ErrCycle)
	}

	world := child.WorldMatrix()
	if err := from.Remove(child); err != nil {
		return err
	}
	child.SetMatrix(n.WorldMatrix().Inv().Mul4(world))
	return n.Add(child)
}

func (n *Node) isAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// LocalMatrix composes translation, rotation and scale.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	s := mgl64.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(n.Rotation.Normalize().Mat4()).Mul4(s)
}

// WorldMatrix composes the local matrices from the root down to n.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// SetMatrix decomposes m into position, rotation and scale. Shear is lost.
func (n *Node) SetMatrix(m mgl64.Mat4) {
	n.Position = m.Col(3).Vec3()

	c0, c1, c2 := m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()
	sx, sy, sz := c0.Len(), c1.Len(), c2.Len()
	if m.Mat3().Det() < 0 {
		sx = -sx
	}
	n.Scale = mgl64.Vec3{sx, sy, sz}

	rot := mgl64.Mat4FromCols(
		c0.Mul(1/sx).Vec4(0),
		c1.Mul(1/sy).Vec4(0),
		c2.Mul(1/sz).Vec4(0),
		mgl64.Vec4{0, 0, 0, 1},
	)
	n.Rotation = mgl64.Mat4ToQuat(rot).Normalize()
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// WorldRotation returns the accumulated rotation from the root.
func (n *Node) WorldRotation() mgl64.Quat {
	q := n.Rotation
	for p := n.parent; p != nil; p = p.parent {
		q = p.Rotation.Mul(q)
	}
	return q.Normalize()
}

// LocalToWorld maps a point in n's space to world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return n.WorldMatrix().Mul4x1(p.Vec4(1)).Vec3()
}

// WorldToLocal maps a world point into n's space.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return n.WorldMatrix().Inv().Mul4x1(p.Vec4(1)).Vec3()
}

// DirectionToLocal maps a world direction into n's space, ignoring
// translation.
func (n *Node) DirectionToLocal(d mgl64.Vec3) mgl64.Vec3 {
	return n.WorldMatrix().Inv().Mul4x1(d.Vec4(0)).Vec3()
}

// DirectionToWorld maps a direction in n's space to world space.
func (n *Node) DirectionToWorld(d mgl64.Vec3) mgl64.Vec3 {
	return n.WorldMatrix().Mul4x1(d.Vec4(0)).Vec3()
}

// RotateOnAxis rotates n about an axis expressed in its own space.
func (n *Node) RotateOnAxis(axis mgl64.Vec3, angle float64) {
	q := mgl64.QuatRotate(angle, axis.Normalize())
	n.Rotation = n.Rotation.Mul(q).Normalize()
}

// RotateOnWorldAxis rotates n about an axis expressed in its parent's space.
// For nodes under an unrotated parent this is world space.
func (n *Node) RotateOnWorldAxis(axis mgl64.Vec3, angle float64) {
	q := mgl64.QuatRotate(angle, axis.Normalize())
	n.Rotation = q.Mul(n.Rotation).Normalize()
}

// TranslateZ moves n along its own z axis.
func (n *Node) TranslateZ(distance float64) {
	n.Position = n.Position.Add(n.Rotation.Rotate(mgl64.Vec3{0, 0, distance}))
}

// Euler returns the node's rotation as XYZ angles.
func (n *Node) Euler() Euler {
	return EulerFromQuat(n.Rotation)
}

// SetEuler replaces the node's rotation.
func (n *Node) SetEuler(e Euler) {
	n.Rotation = e.Quat()
}

// SnapRotation rounds the node's rotation to quarter turns about each axis.
func (n *Node) SnapRotation() {
	n.SetEuler(n.Euler().Snap())
}

// FaceToward rotates n, assumed to be under an unrotated parent, so that its
// +z axis points along dir. The up hint is world +y; when dir is vertical the
// node's x axis is world +x.
func (n *Node) FaceToward(dir mgl64.Vec3) {
	z := dir.Normalize()
	up := mgl64.Vec3{0, 1, 0}
	x := up.Cross(z)
	if x.Len() < 1e-9 {
		x = mgl64.Vec3{1, 0, 0}
	} else {
		x = x.Normalize()
	}
	y := z.Cross(x)

	rot := mgl64.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
	n.Rotation = mgl64.Mat4ToQuat(rot).Normalize()
}

// Walk visits n and its descendants depth first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// SnapPosition rounds each position component to the nearest multiple of step.
func (n *Node) SnapPosition(step float64) {
	for i := range n.Position {
		n.Position[i] = math.Round(n.Position[i]/step) * step
	}
}
