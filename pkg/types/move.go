// Package types contains the move vocabulary shared by the scrambler, the
// controls and the smart-cube mirror.
package types

// Face represents a cube face in standard notation.
type Face string

const (
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
)

// Faces lists the faces in scramble alphabet order.
var Faces = []Face{FaceU, FaceD, FaceL, FaceR, FaceF, FaceB}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	switch f {
	case FaceR, FaceL, FaceU, FaceD, FaceF, FaceB:
		return true
	}
	return false
}

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	TurnCW  Turn = 1  // Clockwise quarter turn
	TurnCCW Turn = -1 // Counter-clockwise quarter turn
	Turn180 Turn = 2  // Half turn
)

// Modifier returns the notation suffix for t.
func (t Turn) Modifier() string {
	switch t {
	case TurnCCW:
		return "'"
	case Turn180:
		return "2"
	default:
		return ""
	}
}

// Move is a single face turn.
type Move struct {
	Face      Face  `json:"face" yaml:"face"`
	Turn      Turn  `json:"turn" yaml:"turn"`
	Timestamp int64 `json:"ts_ms,omitempty" yaml:"ts_ms,omitempty"` // Milliseconds, source defined
}

// Notation returns the standard notation string, e.g. R, R', R2.
func (m Move) Notation() string {
	return string(m.Face) + m.Turn.Modifier()
}

func (m Move) String() string {
	return m.Notation()
}

// Quarters returns the number of quarter turns in m.
func (m Move) Quarters() int {
	if m.Turn == Turn180 {
		return 2
	}
	return 1
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case TurnCW:
		inv.Turn = TurnCCW
	case TurnCCW:
		inv.Turn = TurnCW
	}
	return inv
}

// Merge combines two same-face moves into one. It returns nil when the faces
// differ or when the moves cancel.
func (m Move) Merge(other Move) *Move {
	if m.Face != other.Face {
		return nil
	}

	// Quarter turns modulo 4, mapped back onto CW, 180, CCW.
	q := ((int(m.Turn)+int(other.Turn))%4 + 4) % 4
	var turn Turn
	switch q {
	case 0:
		return nil
	case 1:
		turn = TurnCW
	case 2:
		turn = Turn180
	case 3:
		turn = TurnCCW
	}
	return &Move{Face: m.Face, Turn: turn, Timestamp: other.Timestamp}
}

// MergeMoves merges adjacent same-face moves: R R becomes R2, R R' vanishes.
func MergeMoves(moves []Move) []Move {
	if len(moves) <= 1 {
		return moves
	}

	result := make([]Move, 0, len(moves))
	for _, move := range moves {
		if len(result) == 0 || result[len(result)-1].Face != move.Face {
			result = append(result, move)
			continue
		}
		last := &result[len(result)-1]
		if merged := last.Merge(move); merged == nil {
			result = result[:len(result)-1]
		} else {
			*last = *merged
		}
	}
	return result
}
