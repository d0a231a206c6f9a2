package protocol

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/thecube/pkg/types"
)

// ErrPayload is wrapped by every payload decoding failure.
var ErrPayload = errors.New("protocol: invalid payload")

// Rotation is one face turn reported by the cube.
type Rotation struct {
	Code   byte // raw face and direction code, 0x00-0x0B
	Center byte // center piece orientation
	Color  string
	Face   types.Face
	Turn   types.Turn
}

var colorNames = [6]string{"blue", "green", "white", "yellow", "red", "orange"}

// ColorToFace maps center colors to faces with white up and green front.
var ColorToFace = map[string]types.Face{
	"white":  types.FaceU,
	"yellow": types.FaceD,
	"green":  types.FaceF,
	"blue":   types.FaceB,
	"red":    types.FaceR,
	"orange": types.FaceL,
}

// DecodeRotation decodes a rotation payload of [code, center] pairs. Even
// codes turn clockwise, odd codes counter-clockwise.
func DecodeRotation(payload []byte) ([]Rotation, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("%w: rotation payload has odd length %d", ErrPayload, len(payload))
	}

	rots := make([]Rotation, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(colorNames) {
			return nil, fmt.Errorf("%w: face code 0x%02X", ErrPayload, code)
		}
		turn := types.TurnCW
		if code%2 == 1 {
			turn = types.TurnCCW
		}
		color := colorNames[idx]
		rots = append(rots, Rotation{
			Code:   code,
			Center: payload[i+1],
			Color:  color,
			Face:   ColorToFace[color],
			Turn:   turn,
		})
	}
	return rots, nil
}

// Moves converts rotations to moves stamped with ts, merging adjacent turns
// of the same face.
func Moves(rots []Rotation, ts int64) []types.Move {
	moves := make([]types.Move, 0, len(rots))
	for _, r := range rots {
		moves = append(moves, types.Move{Face: r.Face, Turn: r.Turn, Timestamp: ts})
	}
	return types.MergeMoves(moves)
}

// DecodeBattery returns the battery level in percent.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("%w: empty battery payload", ErrPayload)
	}
	return int(payload[0]), nil
}

// DecodeCubeType returns "standard" or "edge".
func DecodeCubeType(payload []byte) (string, error) {
	if len(payload) < 1 {
		return "", fmt.Errorf("%w: empty cube type payload", ErrPayload)
	}
	if payload[0] == 0x01 {
		return "edge", nil
	}
	return "standard", nil
}
