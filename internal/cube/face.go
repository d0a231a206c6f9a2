package cube

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/thecube/internal/scene"
	"github.com/SeamusWaldron/thecube/pkg/types"
)

// Face labels a sticker by the side of the solved cube it belongs to.
type Face int

const (
	U Face = 0 // Up
	D Face = 1 // Down
	F Face = 2 // Front
	B Face = 3 // Back
	R Face = 4 // Right
	L Face = 5 // Left
)

// AllFaces lists faces in index order.
var AllFaces = [6]Face{U, D, F, B, R, L}

func (f Face) String() string {
	switch f {
	case U:
		return "U"
	case D:
		return "D"
	case F:
		return "F"
	case B:
		return "B"
	case R:
		return "R"
	case L:
		return "L"
	default:
		return "?"
	}
}

// Normal returns the outward unit normal of f on the solved cube.
func (f Face) Normal() mgl64.Vec3 {
	switch f {
	case U:
		return mgl64.Vec3{0, 1, 0}
	case D:
		return mgl64.Vec3{0, -1, 0}
	case F:
		return mgl64.Vec3{0, 0, 1}
	case B:
		return mgl64.Vec3{0, 0, -1}
	case R:
		return mgl64.Vec3{1, 0, 0}
	default:
		return mgl64.Vec3{-1, 0, 0}
	}
}

// FaceFromNormal returns the face whose normal is closest to n.
func FaceFromNormal(n mgl64.Vec3) Face {
	axis := scene.MainAxis(n)
	positive := n[axis] > 0
	switch axis {
	case scene.AxisX:
		if positive {
			return R
		}
		return L
	case scene.AxisY:
		if positive {
			return U
		}
		return D
	default:
		if positive {
			return F
		}
		return B
	}
}

// FromMoveFace converts a notation face.
func FromMoveFace(f types.Face) Face {
	switch f {
	case types.FaceU:
		return U
	case types.FaceD:
		return D
	case types.FaceF:
		return F
	case types.FaceB:
		return B
	case types.FaceR:
		return R
	default:
		return L
	}
}
