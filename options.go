package thecube

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/thecube/internal/animation"
	"github.com/SeamusWaldron/thecube/internal/config"
	"github.com/SeamusWaldron/thecube/internal/notation"
	"github.com/SeamusWaldron/thecube/internal/storage"
)

// Option configures a Game.
type Option func(*options)

type options struct {
	prefs  config.Preferences
	store  storage.BestTimeStore
	log    zerolog.Logger
	now    func() time.Time
	rand   *rand.Rand
	frames animation.FrameRequester
	sched  *animation.Scheduler
	width  float64
	height float64
}

func defaultOptions() *options {
	return &options{
		prefs:  config.Default(),
		store:  &storage.MemoryStore{},
		log:    zerolog.Nop(),
		now:    time.Now,
		frames: &animation.ManualFrames{},
		width:  800,
		height: 600,
	}
}

// WithPreferences applies a full preference set.
func WithPreferences(p config.Preferences) Option {
	return func(o *options) {
		o.prefs = p
	}
}

// WithFlipConfig selects the snap animation preset.
func WithFlipConfig(n int) Option {
	return func(o *options) {
		o.prefs.FlipConfig = n
	}
}

// WithScrambleLength sets how many moves a generated scramble has.
func WithScrambleLength(n int) Option {
	return func(o *options) {
		o.prefs.ScrambleLength = n
	}
}

// WithNotationPolicy sets how invalid notation is treated.
func WithNotationPolicy(p notation.Policy) Option {
	return func(o *options) {
		o.prefs.Notation = p
	}
}

// WithBestTimeStore persists the best time. The game closes it on Close.
// Without one the best time lives in memory.
func WithBestTimeStore(s storage.BestTimeStore) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithClock replaces time.Now for animation, timing and momentum.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithRand sets the scramble random source.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithFrames sets who is asked for animation frames.
func WithFrames(f animation.FrameRequester) Option {
	return func(o *options) {
		o.frames = f
	}
}

// WithViewport sets the viewport size in pixels.
func WithViewport(width, height float64) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithScheduler runs the game on an existing scheduler, such as the one
// owned by an animation.Loop. WithFrames and WithClock then no longer
// affect animation timing.
func WithScheduler(s *animation.Scheduler) Option {
	return func(o *options) {
		o.sched = s
	}
}
