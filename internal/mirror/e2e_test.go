package mirror_test

import (
	"context"
	"testing"
	"time"

	"github.com/SeamusWaldron/thecube"
	"github.com/SeamusWaldron/thecube/internal/animation"
	"github.com/SeamusWaldron/thecube/internal/mirror"
	"github.com/SeamusWaldron/thecube/internal/protocol"
)

type inline struct{}

func (inline) Do(_ context.Context, fn func()) error {
	fn()
	return nil
}

func TestMirrorDrivesGame(t *testing.T) {
	clock := animation.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	g, err := thecube.New(thecube.WithClock(clock.Now))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer g.Close()

	m := mirror.New(g.Controls(), inline{}, mirror.WithClock(clock.Now))
	drain := func() {
		animation.DrainUntil(g.Scheduler(), clock, 16*time.Millisecond, 1000, g.Idle)
	}
	send := func(payload ...byte) {
		t.Helper()
		if err := m.HandleFrame(context.Background(), protocol.Frame{Type: protocol.MsgRotation, Payload: payload}); err != nil {
			t.Fatalf("HandleFrame: %v", err)
		}
		drain()
	}

	send(0x08, 0x00) // R
	if g.Solved() {
		t.Fatal("cube solved after R")
	}
	send(0x09, 0x00) // R'
	if !g.Solved() {
		t.Fatal("cube not solved after R R'")
	}
	if got := len(m.Moves()); got != 2 {
		t.Errorf("mirrored %d moves, want 2", got)
	}
}
