package controls

import (
	"math"

	"github.com/SeamusWaldron/thecube/internal/cube"
	"github.com/SeamusWaldron/thecube/internal/scene"
)

// IsSolved reports whether every visible side of the cube shows one label.
// It reads sticker positions, so it is independent of whole-cube orientation.
func (c *Controls) IsSolved() bool {
	center := c.cube.Object.WorldPosition()
	var (
		seen  [6]bool
		label [6]cube.Face
	)
	for _, s := range c.cube.Stickers() {
		p := s.Node.WorldPosition().Sub(center)
		axis := scene.MainAxis(p)
		side := int(axis) * 2
		if math.Round(p[axis]*2) >= 1 {
			side++
		}
		if !seen[side] {
			seen[side] = true
			label[side] = s.Face
			continue
		}
		if label[side] != s.Face {
			return false
		}
	}
	return true
}

// CheckSolved fires OnSolved when the cube is solved and reports the result.
func (c *Controls) CheckSolved() bool {
	if !c.IsSolved() {
		return false
	}
	c.log.Info().Msg("cube solved")
	if c.onSolved != nil {
		c.onSolved()
	}
	return true
}
