package notation

import "github.com/SeamusWaldron/thecube/pkg/types"

// descriptions holds plain-language phrases for each face, seen with U on
// top and F facing the solver.
var descriptions = map[types.Face][3]string{
	// CW, CCW, half
	types.FaceR: {"R up", "R down", "R up x 2"},
	types.FaceL: {"L down", "L up", "L down x 2"},
	types.FaceU: {"T rotate right", "T rotate left", "T rotate right x 2"},
	types.FaceD: {"B rotate right", "B rotate left", "B rotate right x 2"},
	types.FaceF: {"F rotate clockwise", "F rotate anti-clockwise", "F rotate x 2"},
	types.FaceB: {"Back rotate clockwise", "Back rotate anti-clockwise", "Back rotate x 2"},
}

// Describe returns a plain-language phrase for m, e.g. "R up" for R.
func Describe(m types.Move) string {
	phrases, ok := descriptions[m.Face]
	if !ok {
		return m.Notation()
	}
	switch m.Turn {
	case types.TurnCCW:
		return phrases[1]
	case types.Turn180:
		return phrases[2]
	default:
		return phrases[0]
	}
}

// DescribeSequence describes each move in order.
func DescribeSequence(moves []types.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = Describe(m)
	}
	return out
}
