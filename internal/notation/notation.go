// Package notation parses and formats face-turn notation.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/thecube/pkg/types"
)

// ErrInvalidNotation is returned for tokens outside the move alphabet.
var ErrInvalidNotation = errors.New("notation: invalid move notation")

// Policy selects how sequences treat invalid tokens.
type Policy int

const (
	// Strict rejects a sequence containing any invalid token.
	Strict Policy = iota
	// Lenient drops invalid tokens and keeps the rest.
	Lenient
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses "strict" or "lenient".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	default:
		return Strict, fmt.Errorf("unknown notation policy %q", s)
	}
}

// ParseMove parses a single token such as R, R', R2 or R2'.
func ParseMove(s string) (types.Move, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.Move{}, fmt.Errorf("%w: empty token", ErrInvalidNotation)
	}

	face := types.Face(s[:1])
	if !face.Valid() {
		return types.Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	turn := types.TurnCW
	switch s[1:] {
	case "":
	case "'", "`":
		turn = types.TurnCCW
	case "2", "2'":
		turn = types.Turn180
	default:
		return types.Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	return types.Move{Face: face, Turn: turn}, nil
}

// Tokens splits s on whitespace and filters the tokens under p. Valid tokens
// are returned verbatim.
func Tokens(s string, p Policy) ([]string, error) {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, err := ParseMove(f); err != nil {
			if p == Strict {
				return nil, err
			}
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// ParseSequence parses a whitespace separated sequence under p.
func ParseSequence(s string, p Policy) ([]types.Move, error) {
	tokens, err := Tokens(s, p)
	if err != nil {
		return nil, err
	}
	moves := make([]types.Move, 0, len(tokens))
	for _, tok := range tokens {
		m, _ := ParseMove(tok)
		moves = append(moves, m)
	}
	return moves, nil
}

// FormatSequence formats moves as a space separated string.
func FormatSequence(moves []types.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}
