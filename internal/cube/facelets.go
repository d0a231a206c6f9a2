package cube

import (
	"strings"

	"github.com/SeamusWaldron/thecube/pkg/types"
)

// Facelets is a flat readout of sticker labels. Each face has 9 facelets
// indexed as:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// viewed from outside with U up (for U, B up; for D, F up).
type Facelets [6][9]Face

// SolvedFacelets returns the solved readout.
func SolvedFacelets() Facelets {
	var f Facelets
	for _, face := range AllFaces {
		for i := range f[face] {
			f[face][i] = face
		}
	}
	return f
}

// IsSolved reports whether every face shows a single label, whatever the
// cube's orientation.
func (f *Facelets) IsSolved() bool {
	for _, face := range AllFaces {
		for i := 1; i < 9; i++ {
			if f[face][i] != f[face][0] {
				return false
			}
		}
	}
	return true
}

// strip is three facelets on one face, listed in travel order.
type strip struct {
	face Face
	idx  [3]int
}

// rings lists, per face, the four adjacent strips that a clockwise turn
// cycles: facelets travel ring[0] → ring[1] → ring[2] → ring[3] → ring[0].
var rings = [6][4]strip{
	U: {{F, [3]int{0, 1, 2}}, {L, [3]int{0, 1, 2}}, {B, [3]int{0, 1, 2}}, {R, [3]int{0, 1, 2}}},
	D: {{F, [3]int{6, 7, 8}}, {R, [3]int{6, 7, 8}}, {B, [3]int{6, 7, 8}}, {L, [3]int{6, 7, 8}}},
	F: {{U, [3]int{6, 7, 8}}, {R, [3]int{0, 3, 6}}, {D, [3]int{2, 1, 0}}, {L, [3]int{8, 5, 2}}},
	B: {{U, [3]int{2, 1, 0}}, {L, [3]int{0, 3, 6}}, {D, [3]int{6, 7, 8}}, {R, [3]int{8, 5, 2}}},
	R: {{U, [3]int{2, 5, 8}}, {B, [3]int{6, 3, 0}}, {D, [3]int{2, 5, 8}}, {F, [3]int{2, 5, 8}}},
	L: {{U, [3]int{0, 3, 6}}, {F, [3]int{0, 3, 6}}, {D, [3]int{0, 3, 6}}, {B, [3]int{8, 5, 2}}},
}

// Apply turns the readout by m.
func (f *Facelets) Apply(m types.Move) {
	quarters := 1
	switch m.Turn {
	case types.Turn180:
		quarters = 2
	case types.TurnCCW:
		quarters = 3
	}
	face := FromMoveFace(m.Face)
	for i := 0; i < quarters; i++ {
		f.turnCW(face)
	}
}

// ApplyAll applies moves in order.
func (f *Facelets) ApplyAll(moves []types.Move) {
	for _, m := range moves {
		f.Apply(m)
	}
}

func (f *Facelets) turnCW(face Face) {
	s := f[face]
	f[face] = [9]Face{s[6], s[3], s[0], s[7], s[4], s[1], s[8], s[5], s[2]}

	ring := rings[face]
	var saved [3]Face
	for j, i := range ring[3].idx {
		saved[j] = f[ring[3].face][i]
	}
	for k := 3; k > 0; k-- {
		dst, src := ring[k], ring[k-1]
		for j := 0; j < 3; j++ {
			f[dst.face][dst.idx[j]] = f[src.face][src.idx[j]]
		}
	}
	for j, i := range ring[0].idx {
		f[ring[0].face][i] = saved[j]
	}
}

// String renders the readout as an unfolded net: U on top, L F R B across,
// D below.
func (f *Facelets) String() string {
	var b strings.Builder
	row := func(face Face, r int) {
		for c := 0; c < 3; c++ {
			b.WriteString(f[face][r*3+c].String())
			b.WriteByte(' ')
		}
	}

	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(U, r)
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		for _, face := range []Face{L, F, R, B} {
			row(face, r)
		}
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(D, r)
		b.WriteByte('\n')
	}
	return b.String()
}

// faceletIndex maps a grid coordinate on face to its facelet index.
func faceletIndex(face Face, c [3]int) int {
	x, y, z := c[0], c[1], c[2]
	var row, col int
	switch face {
	case U:
		row, col = z+1, x+1
	case D:
		row, col = 1-z, x+1
	case F:
		row, col = 1-y, x+1
	case B:
		row, col = 1-y, 1-x
	case R:
		row, col = 1-y, 1-z
	case L:
		row, col = 1-y, z+1
	}
	return row*3 + col
}
