// Package protocol encodes and decodes GoCube BLE frames.
package protocol

import (
	"errors"
	"fmt"
)

// GoCube BLE service and characteristic UUIDs.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // write
)

// MsgType identifies a notification frame.
type MsgType byte

const (
	MsgRotation     MsgType = 0x01
	MsgState        MsgType = 0x02
	MsgOrientation  MsgType = 0x03
	MsgBattery      MsgType = 0x05
	MsgOfflineStats MsgType = 0x07
	MsgCubeType     MsgType = 0x08
)

func (t MsgType) String() string {
	switch t {
	case MsgRotation:
		return "rotation"
	case MsgState:
		return "state"
	case MsgOrientation:
		return "orientation"
	case MsgBattery:
		return "battery"
	case MsgOfflineStats:
		return "offline_stats"
	case MsgCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", byte(t))
	}
}

// Command is written to the RX characteristic.
type Command byte

const (
	CmdRequestBattery     Command = 0x32
	CmdRequestState       Command = 0x33
	CmdReboot             Command = 0x34
	CmdResetSolved        Command = 0x35
	CmdDisableOrientation Command = 0x37
	CmdEnableOrientation  Command = 0x38
	CmdFlashBacklight     Command = 0x41
	CmdToggleBacklight    Command = 0x44
	CmdRequestCubeType    Command = 0x56
)

const (
	framePrefix  byte = 0x2A // '*'
	frameSuffix1 byte = 0x0D
	frameSuffix2 byte = 0x0A
)

// Frame errors.
var (
	ErrShortFrame = errors.New("protocol: frame too short")
	ErrPrefix     = errors.New("protocol: invalid frame prefix")
	ErrSuffix     = errors.New("protocol: invalid frame suffix")
	ErrChecksum   = errors.New("protocol: invalid checksum")
	ErrLength     = errors.New("protocol: invalid frame length")
)

// Frame is a decoded notification.
type Frame struct {
	Type    MsgType
	Payload []byte
}

// Parse decodes one notification.
//
// Layout: [0x2A] [n] [type] [payload...] [checksum] [0x0D 0x0A], where n
// counts every byte after itself and the checksum is the byte sum of
// everything before it.
func Parse(data []byte) (Frame, error) {
	if len(data) < 6 {
		return Frame{}, ErrShortFrame
	}
	if data[0] != framePrefix {
		return Frame{}, ErrPrefix
	}

	n := int(data[1])
	total := 2 + n
	if n < 4 || len(data) < total {
		return Frame{}, fmt.Errorf("%w: need %d bytes, got %d", ErrLength, total, len(data))
	}

	sum := total - 3
	if data[sum+1] != frameSuffix1 || data[sum+2] != frameSuffix2 {
		return Frame{}, ErrSuffix
	}
	if got := checksum(data[:sum]); got != data[sum] {
		return Frame{}, fmt.Errorf("%w: frame says 0x%02X, computed 0x%02X", ErrChecksum, data[sum], got)
	}

	payload := make([]byte, sum-3)
	copy(payload, data[3:sum])
	return Frame{Type: MsgType(data[2]), Payload: payload}, nil
}

// Encode builds a notification frame. It is the inverse of Parse.
func Encode(t MsgType, payload []byte) []byte {
	out := make([]byte, 0, len(payload)+6)
	out = append(out, framePrefix, byte(len(payload)+4), byte(t))
	out = append(out, payload...)
	out = append(out, checksum(out), frameSuffix1, frameSuffix2)
	return out
}

// BuildCommand builds a payload-free command for the RX characteristic.
func BuildCommand(cmd Command) []byte {
	const length byte = 0x01
	return []byte{framePrefix, length, byte(cmd), framePrefix + length + byte(cmd), frameSuffix1, frameSuffix2}
}

func checksum(b []byte) byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return sum
}
