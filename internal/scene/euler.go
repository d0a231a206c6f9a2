package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Euler is an XYZ-ordered rotation in radians: the X rotation is applied
// last, matching a matrix product Rx·Ry·Rz.
type Euler struct {
	X, Y, Z float64
}

// Quat converts e to a quaternion.
func (e Euler) Quat() mgl64.Quat {
	qx := mgl64.QuatRotate(e.X, mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(e.Y, mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(e.Z, mgl64.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz)
}

// Snap rounds every angle to a quarter turn.
func (e Euler) Snap() Euler {
	return Euler{RoundAngle(e.X), RoundAngle(e.Y), RoundAngle(e.Z)}
}

// EulerFromQuat extracts XYZ angles from a rotation.
func EulerFromQuat(q mgl64.Quat) Euler {
	return EulerFromMatrix(q.Normalize().Mat4())
}

// EulerFromMatrix extracts XYZ angles from the rotation part of m, which must
// be unscaled.
func EulerFromMatrix(m mgl64.Mat4) Euler {
	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m22, m23 := m.At(1, 1), m.At(1, 2)
	m32, m33 := m.At(2, 1), m.At(2, 2)

	var e Euler
	e.Y = math.Asin(mgl64.Clamp(m13, -1, 1))
	if math.Abs(m13) < 0.9999999 {
		e.X = math.Atan2(-m23, m33)
		e.Z = math.Atan2(-m12, m11)
	} else {
		e.X = math.Atan2(m32, m22)
		e.Z = 0
	}
	return e
}
