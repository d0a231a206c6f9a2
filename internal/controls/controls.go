// Package controls converts pointer drags into layer turns and whole-cube
// reorientations, replays scrambles, and detects the solved state.
package controls

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/thecube/internal/animation"
	"github.com/SeamusWaldron/thecube/internal/cube"
	"github.com/SeamusWaldron/thecube/internal/easing"
	"github.com/SeamusWaldron/thecube/internal/gesture"
	"github.com/SeamusWaldron/thecube/internal/notation"
	"github.com/SeamusWaldron/thecube/internal/scene"
	"github.com/SeamusWaldron/thecube/internal/scrambler"
)

// ErrBusy is returned when a scramble or reset is requested mid-gesture or
// mid-animation.
var ErrBusy = errors.New("controls: busy")

// State is the gesture state.
type State int

const (
	Still State = iota
	Preparing
	Rotating
	Animating
)

func (s State) String() string {
	switch s {
	case Still:
		return "still"
	case Preparing:
		return "preparing"
	case Rotating:
		return "rotating"
	case Animating:
		return "animating"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type flipType int

const (
	flipLayer flipType = iota
	flipCube
)

func (f flipType) String() string {
	if f == flipCube {
		return "cube"
	}
	return "layer"
}

type preset struct {
	ease     easing.Func
	duration float64
}

// Snap animation presets, indexed by flip config. Scramble replay always uses
// preset 0; preset 2 bounces the whole cube.
var (
	layerPresets = [3]preset{
		{easing.PowerOut(3), 125},
		{easing.SineOut(), 200},
		{easing.BackOut(2), 350},
	}
	cubePresets = [3]preset{
		{easing.PowerOut(4), 100},
		{easing.SineOut(), 150},
		{easing.BackOut(2), 350},
	}
)

// Gesture thresholds in drag-plane units.
const (
	dragThreshold     = 0.05
	momentumThreshold = 0.05
	momentumWindow    = 500 * time.Millisecond
	helperSize        = 20
)

// Option configures Controls.
type Option func(*Controls)

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controls) {
		c.log = log
	}
}

// WithClock replaces time.Now for momentum sampling.
func WithClock(now func() time.Time) Option {
	return func(c *Controls) {
		c.now = now
	}
}

// WithFlipConfig selects the snap animation preset (0, 1 or 2).
func WithFlipConfig(n int) Option {
	return func(c *Controls) {
		c.SetFlipConfig(n)
	}
}

// WithPolicy sets how Turn treats invalid notation.
func WithPolicy(p notation.Policy) Option {
	return func(c *Controls) {
		c.policy = p
	}
}

// Controls is the gesture state machine. All methods must be called from the
// goroutine that drives the scheduler.
type Controls struct {
	world     *scene.World
	cube      *cube.Cube
	sched     *animation.Scheduler
	scrambler *scrambler.Scrambler
	draggable *gesture.Draggable
	helper    *scene.Node
	now       func() time.Time
	log       zerolog.Logger
	policy    notation.Policy

	state       State
	flipConfig  int
	flipType    flipType
	gettingDrag bool

	dragNormal    mgl64.Vec3 // hit-box space
	dragCurrent   mgl64.Vec3 // helper space
	dragTotal     mgl64.Vec3
	dragDirection scene.Axis
	flipAxis      mgl64.Vec3
	flipAngle     float64
	flipLayer     []*cube.Piece
	momentum      []sample
	tween         animation.Animatable

	scrambling  bool
	onScrambled func()
	turns       []scrambler.Move
	turning     bool

	onMove   func()
	onSolved func()
}

// New wires controls to a world, a cube and a scheduler, and adds the drag
// plane to the world.
func New(world *scene.World, c *cube.Cube, sched *animation.Scheduler, scr *scrambler.Scrambler, opts ...Option) (*Controls, error) {
	ctl := &Controls{
		world:     world,
		cube:      c,
		sched:     sched,
		scrambler: scr,
		draggable: gesture.New(gesture.WithDelta()),
		helper:    scene.NewNode("drag-plane"),
		now:       time.Now,
		log:       zerolog.Nop(),
		policy:    notation.Strict,
	}
	for _, opt := range opts {
		opt(ctl)
	}

	ctl.helper.Shape = scene.Plane{Width: helperSize, Height: helperSize}
	ctl.helper.SetEuler(scene.Euler{Y: math.Pi / 4})
	if err := world.Root.Add(ctl.helper); err != nil {
		return nil, fmt.Errorf("add drag plane: %w", err)
	}

	ctl.draggable.OnDragStart = ctl.dragStartHandler
	ctl.draggable.OnDragMove = ctl.dragMoveHandler
	ctl.draggable.OnDragEnd = ctl.dragEndHandler
	return ctl, nil
}

// OnMove sets the callback fired after every committed interactive layer
// turn.
func (c *Controls) OnMove(fn func()) { c.onMove = fn }

// OnSolved sets the callback fired when an interactive layer turn leaves the
// cube solved.
func (c *Controls) OnSolved(fn func()) { c.onSolved = fn }

// Enable lets drags start.
func (c *Controls) Enable() { c.draggable.Enable() }

// Disable stops new drags from starting. A drag in progress finishes.
func (c *Controls) Disable() { c.draggable.Disable() }

// Enabled reports whether drags may start.
func (c *Controls) Enabled() bool { return c.draggable.Enabled() }

// State returns the gesture state.
func (c *Controls) State() State { return c.state }

// FlipConfig returns the snap preset index.
func (c *Controls) FlipConfig() int { return c.flipConfig }

// SetFlipConfig selects the snap preset, clamped to 0..2.
func (c *Controls) SetFlipConfig(n int) {
	c.flipConfig = max(0, min(n, len(layerPresets)-1))
}

// SetPolicy changes how Turn treats invalid notation.
func (c *Controls) SetPolicy(p notation.Policy) { c.policy = p }

// Scrambling reports whether a scramble replay is running.
func (c *Controls) Scrambling() bool { return c.scrambling }

// Busy reports whether scripted turns are playing or queued.
func (c *Controls) Busy() bool {
	return c.scrambling || c.turning || len(c.turns) > 0
}

// playing reports whether a scripted turn or scramble is animating.
func (c *Controls) playing() bool {
	return c.scrambling || c.turning
}

// Idle reports whether no gesture, animation or scripted turn is in flight.
func (c *Controls) Idle() bool {
	return !c.Busy() && c.state == Still
}

// HandlePointer feeds one pointer event through the drag filter.
func (c *Controls) HandlePointer(ev gesture.Event) {
	c.draggable.Handle(ev)
}

func (c *Controls) setState(s State) {
	if s == c.state {
		return
	}
	c.log.Debug().Stringer("from", c.state).Stringer("to", s).Msg("controls state")
	c.state = s
}

func (c *Controls) dragStartHandler(pos gesture.Position) {
	if c.Busy() {
		return
	}
	if c.state == Preparing || c.state == Rotating {
		return
	}
	c.gettingDrag = c.state == Animating

	ray := c.world.RayAt(pos.Current.X(), pos.Current.Y())
	if hit, ok := c.cube.HitBox.Intersect(ray); ok {
		c.dragNormal = scene.Round(hit.Normal)
		c.flipType = flipLayer
		worldNormal := c.cube.HitBox.DirectionToWorld(c.dragNormal).Normalize()
		c.helper.Position = c.cube.HitBox.WorldPosition()
		c.helper.FaceToward(worldNormal)
		c.helper.TranslateZ(0.5)
	} else {
		c.dragNormal = mgl64.Vec3{0, 0, 1}
		c.flipType = flipCube
		c.helper.Position = mgl64.Vec3{}
		c.helper.SetEuler(scene.Euler{Y: math.Pi / 4})
	}

	point, ok := c.planePoint(ray)
	if !ok {
		return
	}
	c.dragCurrent = point
	c.dragTotal = mgl64.Vec3{}
	if c.state == Still {
		c.setState(Preparing)
	}
	c.log.Debug().Stringer("flip", c.flipType).Bool("queued", c.gettingDrag).Msg("drag start")
}

func (c *Controls) dragMoveHandler(pos gesture.Position) {
	if c.playing() {
		return
	}
	if c.state == Still || (c.state == Animating && !c.gettingDrag) {
		return
	}

	point, ok := c.planePoint(c.world.RayAt(pos.Current.X(), pos.Current.Y()))
	if !ok {
		return
	}
	delta := point.Sub(c.dragCurrent)
	delta[2] = 0
	c.dragTotal = c.dragTotal.Add(delta)
	c.dragCurrent = point
	c.addMomentum(delta)

	switch {
	case c.state == Preparing && c.dragTotal.Len() > dragThreshold:
		c.beginRotation(pos)
	case c.state == Rotating:
		c.applyRotation(delta[c.dragDirection])
	}
}

func (c *Controls) dragEndHandler(gesture.Position) {
	if c.playing() {
		return
	}
	if c.state != Rotating {
		c.gettingDrag = false
		if c.state != Animating {
			c.setState(Still)
			c.pumpTurns()
		}
		return
	}

	c.setState(Animating)
	bias := 0.0
	m := c.currentMomentum()
	if math.Abs(m[c.dragDirection]) > momentumThreshold && math.Abs(c.flipAngle) < math.Pi/2 {
		bias = math.Copysign(math.Pi/4, c.flipAngle)
		if c.flipAngle == 0 {
			bias = 0
		}
	}
	angle := scene.RoundAngle(c.flipAngle + bias)
	delta := angle - c.flipAngle
	c.log.Debug().Float64("angle", angle).Float64("momentum", m[c.dragDirection]).Msg("drag end")

	if c.flipType == flipLayer {
		committed := angle != 0
		c.rotateLayer(delta, committed, func() {
			c.finishGesture()
			if committed {
				c.CheckSolved()
			}
		})
		return
	}
	c.rotateCube(delta, c.finishGesture)
}

// finishGesture settles the state after a snap animation and starts any
// queued turns.
func (c *Controls) finishGesture() {
	if c.gettingDrag {
		c.setState(Preparing)
	} else {
		c.setState(Still)
	}
	c.gettingDrag = false
	c.pumpTurns()
}

func (c *Controls) planePoint(ray scene.Ray) (mgl64.Vec3, bool) {
	hit, ok := c.helper.Intersect(ray)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return c.helper.WorldToLocal(hit.Point), true
}

func (c *Controls) beginRotation(pos gesture.Position) {
	c.dragDirection = scene.MainAxis2(mgl64.Vec2{c.dragTotal.X(), c.dragTotal.Y()})

	if c.flipType == flipLayer {
		worldDir := c.helper.DirectionToWorld(scene.Unit(c.dragDirection, 1))
		objectDir := scene.Round(c.cube.HitBox.DirectionToLocal(worldDir))
		c.flipAxis = objectDir.Cross(c.dragNormal).Mul(-1)

		ray := c.world.RayAt(pos.Start.X(), pos.Start.Y())
		hit, ok := scene.IntersectNodes(ray, c.cube.Bodies())
		piece, found := c.cube.PieceOfBody(hit.Node)
		if !ok || !found {
			c.log.Warn().Msg("drag started on the cube but no piece was hit")
			c.gettingDrag = false
			c.setState(Still)
			c.pumpTurns()
			return
		}
		axis := scene.MainAxis(c.flipAxis)
		c.selectLayer(c.cube.Layer(axis, c.cube.Coordinate(piece)[axis]))
	} else {
		var axis scene.Axis
		switch {
		case c.dragDirection == scene.AxisX:
			axis = scene.AxisY
		case pos.Current.X() > c.world.Width/2:
			axis = scene.AxisZ
		default:
			axis = scene.AxisX
		}
		sign := 1.0
		if axis == scene.AxisX {
			sign = -1
		}
		c.flipAxis = scene.Unit(axis, sign)
	}

	c.flipAngle = 0
	c.setState(Rotating)
}

func (c *Controls) applyRotation(angle float64) {
	if c.flipType == flipLayer {
		c.cube.Group.RotateOnAxis(c.flipAxis, angle)
	} else {
		c.cube.HitBox.RotateOnWorldAxis(c.flipAxis, angle)
		c.cube.Object.Rotation = c.cube.HitBox.Rotation
	}
	c.flipAngle += angle
}

// rotateLayer animates the selected layer by rotation about flipAxis.
// committed marks a turn that changes the cube; only those reach OnMove.
func (c *Controls) rotateLayer(rotation float64, committed bool, done func()) {
	config := c.flipConfig
	if c.scrambling {
		config = 0
	}
	p := layerPresets[config]

	var bounce func(value, delta float64)
	if config == 2 {
		bounce = c.bounceCube(rotation)
	}

	c.tween = animation.Play(c.sched,
		animation.Duration(p.duration),
		animation.Ease(p.ease),
		animation.OnUpdate(func(tw *animation.Tween) {
			d := tw.Delta() * rotation
			c.cube.Group.RotateOnAxis(c.flipAxis, d)
			if bounce != nil {
				bounce(tw.Value(), d)
			}
		}),
		animation.OnComplete(func(*animation.Tween) {
			if committed && !c.scrambling && c.onMove != nil {
				c.onMove()
			}
			c.cube.Object.SnapRotation()
			c.cube.Group.SnapRotation()
			c.deselectLayer()
			done()
		}),
	)
}

// bounceCube returns an update hook that swings the whole cube along with
// the layer while a Back easing overshoots.
func (c *Controls) bounceCube(rotation float64) func(value, delta float64) {
	fixDelta := true
	return func(value, delta float64) {
		if value < 1 {
			return
		}
		if fixDelta {
			delta = (value - 1) * rotation
			fixDelta = false
		}
		c.cube.Object.RotateOnAxis(c.flipAxis, delta)
	}
}

func (c *Controls) rotateCube(rotation float64, done func()) {
	p := cubePresets[c.flipConfig]
	c.tween = animation.Play(c.sched,
		animation.Duration(p.duration),
		animation.Ease(p.ease),
		animation.OnUpdate(func(tw *animation.Tween) {
			c.cube.HitBox.RotateOnWorldAxis(c.flipAxis, tw.Delta()*rotation)
			c.cube.Object.Rotation = c.cube.HitBox.Rotation
		}),
		animation.OnComplete(func(*animation.Tween) {
			c.cube.HitBox.SnapRotation()
			c.cube.Object.Rotation = c.cube.HitBox.Rotation
			done()
		}),
	)
}

func (c *Controls) selectLayer(layer []*cube.Piece) {
	c.cube.Group.Rotation = mgl64.QuatIdent()
	c.movePieces(layer, c.cube.Object, c.cube.Group)
	c.flipLayer = layer
}

func (c *Controls) deselectLayer() {
	c.movePieces(c.flipLayer, c.cube.Group, c.cube.Object)
	for _, p := range c.flipLayer {
		p.Node.SnapPosition(cube.PieceSize)
		p.Node.SnapRotation()
	}
	c.flipLayer = nil
}

func (c *Controls) movePieces(layer []*cube.Piece, from, to *scene.Node) {
	for _, p := range layer {
		if err := to.Reparent(p.Node, from); err != nil {
			c.log.Error().Err(err).Int("piece", p.Index).Msg("move piece")
		}
	}
}

// ScrambleCube replays the scrambler's queue one quarter turn at a time.
// Drags are ignored until it finishes; done, if not nil, runs at the end.
func (c *Controls) ScrambleCube(done func()) error {
	if c.Busy() || c.state != Still {
		return ErrBusy
	}
	if c.scrambler.Pending() == 0 {
		if done != nil {
			done()
		}
		return nil
	}
	c.scrambling = true
	c.onScrambled = done
	c.log.Debug().Str("scramble", c.scrambler.Print()).Msg("scramble start")
	c.scrambleNext()
	return nil
}

func (c *Controls) scrambleNext() {
	move, _ := c.scrambler.Pop()
	c.playMove(move, false, func() {
		if c.scrambler.Pending() > 0 {
			c.scrambleNext()
			return
		}
		c.scrambling = false
		c.log.Debug().Msg("scramble done")
		if c.onScrambled != nil {
			c.onScrambled()
		}
		c.pumpTurns()
	})
}

func (c *Controls) playMove(move scrambler.Move, committed bool, done func()) {
	c.flipAxis = scene.Unit(move.Axis, 1)
	axis := scene.MainAxis(move.Position)
	c.selectLayer(c.cube.Layer(axis, int(move.Position[axis])))
	c.rotateLayer(move.Angle, committed, done)
}

// Turn queues notation to be played as interactive turns: each quarter turn
// fires OnMove and runs the solved check.
func (c *Controls) Turn(sequence string) error {
	tokens, err := notation.Tokens(sequence, c.policy)
	if err != nil {
		return err
	}
	c.turns = append(c.turns, scrambler.Convert(tokens)...)
	c.pumpTurns()
	return nil
}

func (c *Controls) pumpTurns() {
	if c.turning || c.scrambling || c.state != Still || len(c.turns) == 0 {
		return
	}
	move := c.turns[0]
	c.turns = c.turns[1:]
	c.turning = true
	c.playMove(move, true, func() {
		c.turning = false
		c.CheckSolved()
		c.pumpTurns()
	})
}

// Reset stops any animation, clears queued work and restores the cube.
func (c *Controls) Reset() {
	if c.tween != nil {
		c.tween.Stop()
	}
	c.flipLayer = nil
	c.turns = nil
	c.turning = false
	c.scrambling = false
	c.gettingDrag = false
	c.momentum = nil
	if err := c.cube.Reset(); err != nil {
		c.log.Error().Err(err).Msg("reset cube")
	}
	c.setState(Still)
}
