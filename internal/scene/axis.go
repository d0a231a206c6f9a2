package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis names one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// MainAxis returns the axis with the largest absolute component. Ties resolve
// toward the later axis, so (1, 1, 0) yields y.
func MainAxis(v mgl64.Vec3) Axis {
	a := AxisX
	if !(math.Abs(v[AxisX]) > math.Abs(v[AxisY])) {
		a = AxisY
	}
	if !(math.Abs(v[a]) > math.Abs(v[AxisZ])) {
		a = AxisZ
	}
	return a
}

// MainAxis2 compares only x and y. Ties yield y.
func MainAxis2(v mgl64.Vec2) Axis {
	if math.Abs(v[0]) > math.Abs(v[1]) {
		return AxisX
	}
	return AxisY
}

// Unit returns the unit vector along a scaled by sign.
func Unit(a Axis, sign float64) mgl64.Vec3 {
	var v mgl64.Vec3
	v[a] = sign
	return v
}

// Round rounds every component to the nearest integer.
func Round(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Round(v[0]), math.Round(v[1]), math.Round(v[2])}
}

// RoundAngle snaps an angle to the nearest multiple of a quarter turn,
// rounding halves away from zero.
func RoundAngle(angle float64) float64 {
	const quarter = math.Pi / 2
	return sign(angle) * math.Round(math.Abs(angle)/quarter) * quarter
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
