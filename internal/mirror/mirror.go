// Package mirror replays a smart cube's turns on the simulated cube.
//
// Frames arrive on the BLE goroutine. The mirror decodes them there and hands
// the resulting notation to a Dispatcher, which runs it on the goroutine that
// owns the scheduler.
package mirror

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/thecube/internal/notation"
	"github.com/SeamusWaldron/thecube/internal/protocol"
	"github.com/SeamusWaldron/thecube/pkg/types"
)

// Turner plays notation on the simulated cube.
type Turner interface {
	Turn(sequence string) error
}

// Dispatcher runs fn on the goroutine that owns the Turner.
type Dispatcher interface {
	Do(ctx context.Context, fn func()) error
}

// Source delivers frames from a smart cube.
type Source interface {
	SetFrameCallback(cb func(protocol.Frame))
}

// Option configures a Mirror.
type Option func(*Mirror)

// WithLogger sets the mirror's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Mirror) {
		m.log = log
	}
}

// WithClock replaces time.Now for move timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Mirror) {
		m.now = now
	}
}

// Mirror tracks the state reported by one smart cube.
type Mirror struct {
	turner     Turner
	dispatcher Dispatcher
	log        zerolog.Logger
	now        func() time.Time
	start      time.Time

	mu       sync.Mutex
	battery  int
	cubeType string
	moves    []types.Move
	onMove   func(types.Move)
}

// New creates a mirror that plays decoded turns through turner.
func New(turner Turner, dispatcher Dispatcher, opts ...Option) *Mirror {
	m := &Mirror{
		turner:     turner,
		dispatcher: dispatcher,
		log:        zerolog.Nop(),
		now:        time.Now,
		battery:    -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.start = m.now()
	return m
}

// OnMove sets the callback fired for every decoded move, on the caller of
// HandleFrame.
func (m *Mirror) OnMove(fn func(types.Move)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onMove = fn
}

// Attach routes src's frames into the mirror until ctx is done.
func (m *Mirror) Attach(ctx context.Context, src Source) {
	src.SetFrameCallback(func(f protocol.Frame) {
		if ctx.Err() != nil {
			return
		}
		if err := m.HandleFrame(ctx, f); err != nil {
			m.log.Warn().Err(err).Stringer("type", f.Type).Msg("frame not mirrored")
		}
	})
}

// HandleFrame applies one frame. Rotation frames are dispatched as turns;
// battery and cube type frames update the reported state.
func (m *Mirror) HandleFrame(ctx context.Context, f protocol.Frame) error {
	switch f.Type {
	case protocol.MsgRotation:
		return m.handleRotation(ctx, f.Payload)

	case protocol.MsgBattery:
		level, err := protocol.DecodeBattery(f.Payload)
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.battery = level
		m.mu.Unlock()
		m.log.Info().Int("battery", level).Msg("battery level")

	case protocol.MsgCubeType:
		kind, err := protocol.DecodeCubeType(f.Payload)
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.cubeType = kind
		m.mu.Unlock()
		m.log.Info().Str("cube_type", kind).Msg("cube type")

	default:
		m.log.Debug().Stringer("type", f.Type).Int("len", len(f.Payload)).Msg("ignored frame")
	}
	return nil
}

func (m *Mirror) handleRotation(ctx context.Context, payload []byte) error {
	rots, err := protocol.DecodeRotation(payload)
	if err != nil {
		return err
	}
	moves := protocol.Moves(rots, m.now().Sub(m.start).Milliseconds())
	if len(moves) == 0 {
		return nil
	}

	seq := notation.FormatSequence(moves)
	err = m.dispatcher.Do(ctx, func() {
		if err := m.turner.Turn(seq); err != nil {
			m.log.Warn().Err(err).Str("moves", seq).Msg("turn rejected")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to dispatch %q: %w", seq, err)
	}

	m.mu.Lock()
	m.moves = append(m.moves, moves...)
	cb := m.onMove
	m.mu.Unlock()

	m.log.Debug().Str("moves", seq).Msg("mirrored")
	if cb != nil {
		for _, mv := range moves {
			cb(mv)
		}
	}
	return nil
}

// Battery returns the last reported battery level, or -1.
func (m *Mirror) Battery() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.battery
}

// CubeType returns the reported cube type, or "" before one arrives.
func (m *Mirror) CubeType() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cubeType
}

// Moves returns every mirrored move in arrival order.
func (m *Mirror) Moves() []types.Move {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Move, len(m.moves))
	copy(out, m.moves)
	return out
}
