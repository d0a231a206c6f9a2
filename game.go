package thecube

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/thecube/internal/animation"
	"github.com/SeamusWaldron/thecube/internal/config"
	"github.com/SeamusWaldron/thecube/internal/controls"
	"github.com/SeamusWaldron/thecube/internal/cube"
	"github.com/SeamusWaldron/thecube/internal/gesture"
	"github.com/SeamusWaldron/thecube/internal/scene"
	"github.com/SeamusWaldron/thecube/internal/scrambler"
	"github.com/SeamusWaldron/thecube/internal/session"
)

// State is the game screen.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateComplete
	StateStats
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateComplete:
		return "complete"
	case StateStats:
		return "stats"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result describes a finished solve.
type Result struct {
	SessionID string
	Time      time.Duration
	Text      string
	Moves     int
	Scramble  string
	NewBest   bool
}

// Game ties the cube, controls, timer and scores together.
type Game struct {
	opts      *options
	log       zerolog.Logger
	sched     *animation.Scheduler
	world     *scene.World
	cube      *cube.Cube
	scrambler *scrambler.Scrambler
	controls  *controls.Controls
	timer     *session.Timer
	scores    session.Scores

	state     State
	saved     bool // a game is in progress and can be resumed
	newGame   bool // the timer starts on the next move
	sessionID string
	scramble  string
	moves     int
	best      int64

	onState    func(State)
	onComplete func(Result)
}

// New builds a game at the menu with a solved cube. The best time is read
// from the configured store.
func New(opts ...Option) (*Game, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.prefs.Validate(); err != nil {
		return nil, err
	}

	g := &Game{opts: o, log: o.log}
	g.sched = o.sched
	if g.sched == nil {
		g.sched = animation.NewScheduler(o.frames, animation.WithClock(o.now))
	}
	g.world = scene.NewWorld(o.width, o.height, o.prefs.FOV)

	var err error
	if g.cube, err = cube.New(g.world); err != nil {
		return nil, err
	}

	scrOpts := []scrambler.Option{
		scrambler.WithLength(o.prefs.ScrambleLength),
		scrambler.WithPolicy(o.prefs.Notation),
	}
	if o.rand != nil {
		scrOpts = append(scrOpts, scrambler.WithRand(o.rand))
	}
	g.scrambler = scrambler.New(scrOpts...)

	g.controls, err = controls.New(g.world, g.cube, g.sched, g.scrambler,
		controls.WithLogger(o.log),
		controls.WithClock(o.now),
		controls.WithFlipConfig(o.prefs.FlipConfig),
		controls.WithPolicy(o.prefs.Notation),
	)
	if err != nil {
		return nil, err
	}
	g.controls.Disable()
	g.controls.OnMove(g.handleMove)
	g.controls.OnSolved(g.handleSolved)

	g.timer = session.NewTimer(g.sched, o.now)

	if g.best, err = o.store.LoadBest(); err != nil {
		g.log.Warn().Err(err).Msg("best time unavailable")
		g.best = 0
	}
	return g, nil
}

// OnStateChange sets the callback fired after every screen change.
func (g *Game) OnStateChange(fn func(State)) { g.onState = fn }

// OnComplete sets the callback fired when a timed solve finishes.
func (g *Game) OnComplete(fn func(Result)) { g.onComplete = fn }

// OnTick sets the callback receiving the formatted timer on change.
func (g *Game) OnTick(fn func(string)) { g.timer.OnTick = fn }

func (g *Game) setState(s State) {
	if s == g.state {
		return
	}
	g.log.Debug().Stringer("from", g.state).Stringer("to", s).Msg("game state")
	g.state = s
	if g.onState != nil {
		g.onState(s)
	}
}

// Start scrambles the cube and begins a game, or resumes the paused one.
// The timer starts with the first move after the scramble.
func (g *Game) Start() error {
	return g.start("", false)
}

// StartWith abandons any paused game and begins a new one from sequence. An
// empty sequence generates a random scramble.
func (g *Game) StartWith(sequence string) error {
	return g.start(sequence, true)
}

func (g *Game) start(sequence string, fresh bool) error {
	switch g.state {
	case StatePlaying:
		return ErrPlaying
	case StateStats:
		g.setState(StateMenu)
	}
	if g.controls.Busy() || g.controls.State() != controls.Still {
		return ErrBusy
	}

	if g.saved && !fresh {
		g.setState(StatePlaying)
		if !g.newGame {
			g.timer.Start(true)
		}
		g.controls.Enable()
		g.log.Info().Str("session", g.sessionID).Msg("game resumed")
		return nil
	}

	if err := g.scrambler.Scramble(sequence); err != nil {
		return err
	}
	if g.saved {
		g.controls.Reset()
	}
	g.sessionID = uuid.New().String()
	g.scramble = g.scrambler.Print()
	g.moves = 0
	g.newGame = true
	g.saved = true
	g.timer.Reset()
	g.controls.Disable()
	g.setState(StatePlaying)
	g.log.Info().Str("session", g.sessionID).Str("scramble", g.scramble).Msg("game started")

	return g.controls.ScrambleCube(func() {
		if g.state == StatePlaying {
			g.controls.Enable()
		}
	})
}

// Pause returns to the menu, keeping the game for Start to resume.
func (g *Game) Pause() error {
	if g.state != StatePlaying {
		return ErrNotPlaying
	}
	g.timer.Stop()
	g.controls.Disable()
	g.setState(StateMenu)
	return nil
}

// ShowStats switches to the statistics screen.
func (g *Game) ShowStats() error {
	if g.state == StatePlaying {
		return ErrPlaying
	}
	g.setState(StateStats)
	return nil
}

// Menu leaves the complete or stats screen.
func (g *Game) Menu() error {
	if g.state == StatePlaying {
		return ErrPlaying
	}
	g.setState(StateMenu)
	return nil
}

// Reset abandons any game and restores a solved cube at the menu.
func (g *Game) Reset() {
	g.timer.Reset()
	g.controls.Disable()
	g.controls.Reset()
	g.saved = false
	g.newGame = false
	g.moves = 0
	g.scramble = ""
	g.setState(StateMenu)
}

// HandlePointer forwards a pointer event to the controls.
func (g *Game) HandlePointer(ev gesture.Event) {
	g.controls.HandlePointer(ev)
}

// Turn plays notation as player moves.
func (g *Game) Turn(sequence string) error {
	if g.state != StatePlaying {
		return ErrNotPlaying
	}
	return g.controls.Turn(sequence)
}

// SetFlipConfig changes the snap animation preset.
func (g *Game) SetFlipConfig(n int) {
	g.controls.SetFlipConfig(n)
	g.opts.prefs.FlipConfig = g.controls.FlipConfig()
}

// SetScrambleLength changes the length of generated scrambles.
func (g *Game) SetScrambleLength(n int) error {
	p := g.opts.prefs
	p.ScrambleLength = n
	if err := p.Validate(); err != nil {
		return err
	}
	g.opts.prefs = p
	g.scrambler.SetLength(n)
	return nil
}

// SetFOV changes the camera field of view.
func (g *Game) SetFOV(fov float64) error {
	p := g.opts.prefs
	p.FOV = fov
	if err := p.Validate(); err != nil {
		return err
	}
	g.opts.prefs = p
	g.world.SetFOV(fov)
	return nil
}

// SetTheme selects the sticker palette.
func (g *Game) SetTheme(name string) error {
	p := g.opts.prefs
	p.Theme = name
	if err := p.Validate(); err != nil {
		return err
	}
	g.opts.prefs = p
	return nil
}

// Resize updates the viewport size in pixels.
func (g *Game) Resize(width, height float64) {
	g.world.Resize(width, height)
}

func (g *Game) handleMove() {
	g.moves++
	if g.state == StatePlaying && g.newGame {
		g.newGame = false
		g.timer.Start(false)
		g.log.Debug().Str("session", g.sessionID).Msg("timer started")
	}
}

func (g *Game) handleSolved() {
	if g.state != StatePlaying || !g.timer.Running() {
		return
	}
	text, elapsed := g.timer.Stop()
	g.controls.Disable()
	g.scores.Add(elapsed)
	g.saved = false

	ms := elapsed.Milliseconds()
	newBest := g.best == 0 || ms < g.best
	if newBest {
		g.best = ms
		if err := g.opts.store.SaveBest(ms); err != nil {
			g.log.Error().Err(err).Msg("save best time")
		}
	}

	res := Result{
		SessionID: g.sessionID,
		Time:      elapsed,
		Text:      text,
		Moves:     g.moves,
		Scramble:  g.scramble,
		NewBest:   newBest,
	}
	g.log.Info().Str("session", g.sessionID).Str("time", text).Int("moves", g.moves).Bool("best", newBest).Msg("solved")
	g.setState(StateComplete)
	if g.onComplete != nil {
		g.onComplete(res)
	}
}

// ClearBest forgets the best time.
func (g *Game) ClearBest() error {
	g.best = 0
	return g.opts.store.ClearBest()
}

// Close releases the best time store.
func (g *Game) Close() error {
	return g.opts.store.Close()
}

// State returns the current screen.
func (g *Game) State() State { return g.state }

// Best returns the best solve time, or 0.
func (g *Game) Best() time.Duration { return time.Duration(g.best) * time.Millisecond }

// Scores returns the solve history of this process.
func (g *Game) Scores() session.Stats { return g.scores.Stats() }

// Timer returns the solve timer.
func (g *Game) Timer() *session.Timer { return g.timer }

// Moves returns the number of moves in the current game.
func (g *Game) Moves() int { return g.moves }

// Scramble returns the current game's scramble.
func (g *Game) Scramble() string { return g.scramble }

// SessionID identifies the current game.
func (g *Game) SessionID() string { return g.sessionID }

// Scheduler returns the animation scheduler the front end must drive.
func (g *Game) Scheduler() *animation.Scheduler { return g.sched }

// World returns the scene.
func (g *Game) World() *scene.World { return g.world }

// Cube returns the cube model.
func (g *Game) Cube() *cube.Cube { return g.cube }

// Controls returns the gesture controls.
func (g *Game) Controls() *controls.Controls { return g.controls }

// Preferences returns the active preferences.
func (g *Game) Preferences() config.Preferences { return g.opts.prefs }

// Theme returns the active sticker palette.
func (g *Game) Theme() cube.Theme { return cube.Themes[g.opts.prefs.Theme] }

// Idle reports whether the cube is at rest with nothing queued.
func (g *Game) Idle() bool { return g.controls.Idle() }

// Solved reports whether the cube is solved.
func (g *Game) Solved() bool { return g.controls.IsSolved() }
