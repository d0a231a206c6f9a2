// Package scrambler generates random scramble sequences and converts
// notation into layer rotations.
package scrambler

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/thecube/internal/notation"
	"github.com/SeamusWaldron/thecube/internal/scene"
)

// DefaultLength is the number of moves in a generated scramble.
const DefaultLength = 20

const faces = "UDLRFB"

var modifierSet = [3]string{"", "'", "2"}

// Move is one quarter-turn rotation derived from notation.
type Move struct {
	Name     string     // the notation token it came from
	Axis     scene.Axis // rotation axis
	Angle    float64    // ±π/2, about the positive axis
	Position mgl64.Vec3 // unit pivot selecting the layer
}

// Option configures a Scrambler.
type Option func(*Scrambler)

// WithLength sets the generated scramble length.
func WithLength(n int) Option {
	return func(s *Scrambler) {
		if n > 0 {
			s.length = n
		}
	}
}

// WithRand injects the random source.
func WithRand(r *rand.Rand) Option {
	return func(s *Scrambler) {
		s.rng = r
	}
}

// WithPolicy sets how explicit sequences treat invalid tokens.
func WithPolicy(p notation.Policy) Option {
	return func(s *Scrambler) {
		s.policy = p
	}
}

// Scrambler holds the current scramble and its pending move queue.
type Scrambler struct {
	length int
	rng    *rand.Rand
	policy notation.Policy

	moves     []string
	converted []Move
}

// New creates a scrambler.
func New(opts ...Option) *Scrambler {
	s := &Scrambler{
		length: DefaultLength,
		policy: notation.Strict,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Length returns the generated scramble length.
func (s *Scrambler) Length() int { return s.length }

// SetLength changes the generated scramble length.
func (s *Scrambler) SetLength(n int) {
	if n > 0 {
		s.length = n
	}
}

// Scramble replaces the current scramble. An empty sequence generates
// Length random moves; otherwise the sequence is validated under the policy
// and kept verbatim.
func (s *Scrambler) Scramble(sequence string) error {
	if strings.TrimSpace(sequence) == "" {
		s.Generate(s.length)
		return nil
	}
	tokens, err := notation.Tokens(sequence, s.policy)
	if err != nil {
		return err
	}
	s.moves = tokens
	s.converted = Convert(tokens)
	return nil
}

// Generate replaces the current scramble with count random moves. No face
// repeats either of the two moves before it.
func (s *Scrambler) Generate(count int) {
	moves := make([]string, 0, count)
	for len(moves) < count {
		face := faces[s.rng.IntN(len(faces))]
		n := len(moves)
		if n > 0 && moves[n-1][0] == face {
			continue
		}
		if n > 1 && moves[n-2][0] == face {
			continue
		}
		moves = append(moves, string(face)+modifierSet[s.rng.IntN(len(modifierSet))])
	}
	s.moves = moves
	s.converted = Convert(moves)
}

// Moves returns the current scramble's tokens.
func (s *Scrambler) Moves() []string {
	out := make([]string, len(s.moves))
	copy(out, s.moves)
	return out
}

// Print returns the scramble as space separated notation.
func (s *Scrambler) Print() string {
	return strings.Join(s.moves, " ")
}

// Converted returns the pending rotation queue.
func (s *Scrambler) Converted() []Move {
	return s.converted
}

// Pending returns the number of rotations left in the queue.
func (s *Scrambler) Pending() int {
	return len(s.converted)
}

// Pop removes and returns the head of the queue.
func (s *Scrambler) Pop() (Move, bool) {
	if len(s.converted) == 0 {
		return Move{}, false
	}
	m := s.converted[0]
	s.converted = s.converted[1:]
	return m, true
}

// Convert maps tokens to quarter-turn rotations. A half turn yields two
// identical entries. Tokens must already be valid notation; anything else is
// skipped.
func Convert(tokens []string) []Move {
	out := make([]Move, 0, len(tokens))
	for _, tok := range tokens {
		m, ok := convertToken(tok)
		if !ok {
			continue
		}
		out = append(out, m)
		if strings.HasPrefix(tok[1:], "2") {
			out = append(out, m)
		}
	}
	return out
}

func convertToken(tok string) (Move, bool) {
	if _, err := notation.ParseMove(tok); err != nil {
		return Move{}, false
	}

	var axis scene.Axis
	var row float64
	switch tok[0] {
	case 'D':
		axis, row = scene.AxisY, -1
	case 'U':
		axis, row = scene.AxisY, 1
	case 'L':
		axis, row = scene.AxisX, -1
	case 'R':
		axis, row = scene.AxisX, 1
	case 'F':
		axis, row = scene.AxisZ, 1
	case 'B':
		axis, row = scene.AxisZ, -1
	}

	dir := -1.0
	if tok[1:] == "'" || tok[1:] == "`" {
		dir = 1
	}

	return Move{
		Name:     tok,
		Axis:     axis,
		Angle:    math.Pi / 2 * row * dir,
		Position: scene.Unit(axis, row),
	}, true
}
