// Package cube builds the 3×3×3 puzzle as a scene graph: 27 pieces, their
// stickers, the nodes that carry whole-cube motion and the invisible hit box
// used for edge picking.
package cube

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/thecube/internal/scene"
)

// Geometry constants, in cube units where the whole puzzle spans 1.
const (
	PieceSize    = 1.0 / 3
	StickerScale = 0.82
	HitBoxSize   = 0.95
	stickerShift = PieceSize / 2
)

// Position is a piece slot on the solved cube.
type Position struct {
	Coord [3]int // each in {-1, 0, 1}
	Faces []Face // boundary faces, 0 to 3
}

// Piece is one of the 27 cubies.
type Piece struct {
	Index    int
	Node     *scene.Node
	Body     *scene.Node
	Stickers []*Sticker

	startPosition mgl64.Vec3
	startRotation mgl64.Quat
}

// Sticker is a colored marker on one face of a piece.
type Sticker struct {
	Face  Face
	Node  *scene.Node
	Piece *Piece
}

// Cube owns the puzzle's nodes. Node ownership:
//
//	Holder → Animator → Object → {pieces..., Group}
//
// Group temporarily holds a detached layer. HitBox sits at the world root.
type Cube struct {
	Holder   *scene.Node
	Animator *scene.Node
	Object   *scene.Node
	Group    *scene.Node
	HitBox   *scene.Node

	positions []Position
	pieces    []*Piece
	stickers  []*Sticker
	bodies    []*scene.Node
}

// BuildPositions enumerates the 27 slots x-major (index 9x+3y+z over
// 0..2), centered, with boundary face labels.
func BuildPositions() []Position {
	positions := make([]Position, 0, 27)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				p := Position{Coord: [3]int{x - 1, y - 1, z - 1}}
				if x == 0 {
					p.Faces = append(p.Faces, L)
				}
				if x == 2 {
					p.Faces = append(p.Faces, R)
				}
				if y == 0 {
					p.Faces = append(p.Faces, D)
				}
				if y == 2 {
					p.Faces = append(p.Faces, U)
				}
				if z == 0 {
					p.Faces = append(p.Faces, B)
				}
				if z == 2 {
					p.Faces = append(p.Faces, F)
				}
				positions = append(positions, p)
			}
		}
	}
	return positions
}

// stickerEuler orients a sticker whose plane faces +z onto face.
func stickerEuler(face Face) scene.Euler {
	const q = math.Pi / 2
	switch face {
	case L:
		return scene.Euler{Y: -q}
	case R:
		return scene.Euler{Y: q}
	case D:
		return scene.Euler{X: q}
	case U:
		return scene.Euler{X: -q}
	case B:
		return scene.Euler{Y: 2 * q}
	default:
		return scene.Euler{}
	}
}

// New builds the cube and adds its holder and hit box to world.
func New(world *scene.World) (*Cube, error) {
	c := &Cube{
		Holder:   scene.NewNode("holder"),
		Animator: scene.NewNode("animator"),
		Object:   scene.NewNode("object"),
		Group:    scene.NewNode("layer"),
		HitBox:   scene.NewNode("hitbox"),
	}
	c.HitBox.Shape = scene.Box{Size: mgl64.Vec3{HitBoxSize, HitBoxSize, HitBoxSize}}

	for _, link := range [][2]*scene.Node{
		{world.Root, c.Holder},
		{c.Holder, c.Animator},
		{c.Animator, c.Object},
		{world.Root, c.HitBox},
	} {
		if err := link[0].Add(link[1]); err != nil {
			return nil, fmt.Errorf("build cube: %w", err)
		}
	}

	c.positions = BuildPositions()
	if err := c.buildPieces(); err != nil {
		return nil, err
	}
	if err := c.Object.Add(c.Group); err != nil {
		return nil, fmt.Errorf("build cube: %w", err)
	}
	return c, nil
}

func (c *Cube) buildPieces() error {
	for i, pos := range c.positions {
		piece := &Piece{Index: i, Node: scene.NewNode(fmt.Sprintf("piece-%d", i))}
		piece.Node.Position = mgl64.Vec3{
			float64(pos.Coord[0]) / 3,
			float64(pos.Coord[1]) / 3,
			float64(pos.Coord[2]) / 3,
		}

		piece.Body = scene.NewNode(fmt.Sprintf("body-%d", i))
		piece.Body.Shape = scene.Box{Size: mgl64.Vec3{PieceSize, PieceSize, PieceSize}}
		if err := piece.Node.Add(piece.Body); err != nil {
			return fmt.Errorf("build piece %d: %w", i, err)
		}

		for _, face := range pos.Faces {
			s := &Sticker{Face: face, Piece: piece, Node: scene.NewNode(face.String())}
			s.Node.Position = face.Normal().Mul(stickerShift)
			s.Node.SetEuler(stickerEuler(face))
			s.Node.Scale = mgl64.Vec3{StickerScale, StickerScale, StickerScale}
			if err := piece.Node.Add(s.Node); err != nil {
				return fmt.Errorf("build piece %d: %w", i, err)
			}
			piece.Stickers = append(piece.Stickers, s)
			c.stickers = append(c.stickers, s)
		}

		piece.startPosition = piece.Node.Position
		piece.startRotation = piece.Node.Rotation
		if err := c.Object.Add(piece.Node); err != nil {
			return fmt.Errorf("build piece %d: %w", i, err)
		}
		c.pieces = append(c.pieces, piece)
		c.bodies = append(c.bodies, piece.Body)
	}
	return nil
}

// Reset returns every piece to its initial transform and zeroes the
// rotations of the holder, animator, object, layer group and hit box.
// A detached layer is returned to the object first.
func (c *Cube) Reset() error {
	for _, n := range []*scene.Node{c.Holder, c.Animator, c.Object, c.Group, c.HitBox} {
		n.Rotation = mgl64.QuatIdent()
	}
	for _, p := range c.pieces {
		if parent := p.Node.Parent(); parent != c.Object {
			var err error
			if parent == nil {
				err = c.Object.Add(p.Node)
			} else {
				err = c.Object.Reparent(p.Node, parent)
			}
			if err != nil {
				return fmt.Errorf("reset piece %d: %w", p.Index, err)
			}
		}
		p.Node.Position = p.startPosition
		p.Node.Rotation = p.startRotation
	}
	return nil
}

// Positions returns the solved slots.
func (c *Cube) Positions() []Position { return c.positions }

// Pieces returns the 27 pieces in index order.
func (c *Cube) Pieces() []*Piece { return c.pieces }

// Stickers returns every sticker (54).
func (c *Cube) Stickers() []*Sticker { return c.stickers }

// Bodies returns the ray-cast body of every piece.
func (c *Cube) Bodies() []*scene.Node { return c.bodies }

// PieceOfBody maps a body node back to its piece.
func (c *Cube) PieceOfBody(body *scene.Node) (*Piece, bool) {
	for _, p := range c.pieces {
		if p.Body == body {
			return p, true
		}
	}
	return nil, false
}

// Coordinate returns p's grid coordinate in the object's frame.
func (c *Cube) Coordinate(p *Piece) [3]int {
	local := c.Object.WorldToLocal(p.Node.WorldPosition()).Mul(3)
	return [3]int{
		int(math.Round(local[0])),
		int(math.Round(local[1])),
		int(math.Round(local[2])),
	}
}

// Coordinates returns every piece's grid coordinate, by piece index.
func (c *Cube) Coordinates() [][3]int {
	out := make([][3]int, len(c.pieces))
	for i, p := range c.pieces {
		out[i] = c.Coordinate(p)
	}
	return out
}

// Layer returns the pieces whose coordinate on axis equals row.
func (c *Cube) Layer(axis scene.Axis, row int) []*Piece {
	var layer []*Piece
	for _, p := range c.pieces {
		if c.Coordinate(p)[axis] == row {
			layer = append(layer, p)
		}
	}
	return layer
}

// Facelets reads the sticker labels as seen in world space: U is world +y,
// F is world +z, R is world +x.
func (c *Cube) Facelets() Facelets {
	var f Facelets
	center := c.Object.WorldPosition()
	for _, s := range c.stickers {
		normal := s.Node.WorldRotation().Rotate(mgl64.Vec3{0, 0, 1})
		face := FaceFromNormal(normal)
		pos := s.Piece.Node.WorldPosition().Sub(center).Mul(3)
		coord := [3]int{
			int(math.Round(pos[0])),
			int(math.Round(pos[1])),
			int(math.Round(pos[2])),
		}
		f[face][faceletIndex(face, coord)] = s.Face
	}
	return f
}
