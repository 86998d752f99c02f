// Package simulation implements the per-tick maze simulation: motion integration, wall collision,
// ground clamping, exit detection and the follow camera, sequenced by State.
package simulation

import (
	"fmt"
	"io"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mazeball/assert"
	"github.com/oomph-ac/mazeball/game"
	"github.com/oomph-ac/mazeball/input"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// Phase is the state of the win state machine.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseWon
)

// String ...
func (p Phase) String() string {
	if p == PhaseWon {
		return "won"
	}
	return "playing"
}

// State owns a single maze session. Step must only be called from one goroutine; input and the
// resume callback may be written from any goroutine.
type State struct {
	conf  Config
	log   *logrus.Logger
	input *input.Mapper

	avatar  Avatar
	spawn   mgl64.Vec3
	camera  *Camera
	exit    *ExitDetector
	forward ForwardSource

	phase   Phase
	effects []Effect
	resume  *atomic.Bool

	tick     uint64
	lastTick time.Time
}

// New validates conf and creates a State with the avatar resting at the spawn point. Intent is
// read from m every tick.
func New(conf Config, m *input.Mapper) (*State, error) {
	if err := conf.validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: missing input mapper", ErrInvalidConfig)
	}
	if conf.Effects == nil {
		conf.Effects = NopEffectSpawner{}
	}
	if conf.Sound == nil {
		conf.Sound = NopSound{}
	}
	if conf.Announcer == nil {
		conf.Announcer = NopAnnouncer{}
	}

	log := conf.Log
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	s := &State{
		conf:   conf,
		log:    log,
		input:  m,
		spawn:  conf.Grid.Spawn(conf.Radius + conf.GroundEpsilon),
		camera: NewCamera(conf.Camera),
		resume: atomic.NewBool(false),
	}
	gate := conf.Gate
	center := conf.Grid.ExitCenter(gate.Elevation)
	s.exit = NewExitDetector(game.BoxAround(center, gate.Width/2, gate.Depth/2, gate.Elevation-gate.Height/2, gate.Elevation+gate.Height/2), gate.Threshold)

	s.forward = conf.Forward
	if s.forward == nil {
		s.forward = s.camera
	}

	s.avatar = Avatar{
		Position:    s.spawn,
		Radius:      conf.Radius,
		Grounded:    true,
		Orientation: mgl64.QuatIdent(),
	}
	s.log.WithFields(logrus.Fields{
		"maze":    fmt.Sprintf("%dx%d", conf.Grid.Rows(), conf.Grid.Cols()),
		"walls":   len(conf.Grid.Walls()),
		"spawn":   s.spawn,
		"gravity": conf.Motion.Policy,
	}).Debug("simulation created")
	return s, nil
}

// StepAt runs a tick using the time elapsed since the previous StepAt call. The first call
// integrates nothing.
func (s *State) StepAt(now time.Time) RenderableState {
	var dt float64
	if !s.lastTick.IsZero() {
		dt = now.Sub(s.lastTick).Seconds()
	}
	s.lastTick = now
	return s.Step(dt)
}

// Step advances the simulation by dt seconds. dt is clamped to the configured maximum, and a
// negative or non-finite dt is treated as zero.
func (s *State) Step(dt float64) RenderableState {
	reset := s.resume.Swap(false) && s.phase == PhaseWon
	if reset {
		s.Reset()
	}
	dt = s.clampStep(dt)
	assert.IsTrue(dt >= 0 && dt <= s.conf.MaxStep, "unclamped dt %v reached integration", dt)

	intent := s.input.Snapshot()
	if s.conf.FreezeOnWin && s.phase == PhaseWon {
		intent = input.Intent{}
	}

	a := &s.avatar
	prevPos, prevVel := a.Position, a.Velocity

	pos := Integrate(a, intent, s.forward.Forward(), dt, s.conf.Motion)
	pos, collision := ResolveWalls(pos, &a.Velocity, a.Radius, s.conf.CollisionEpsilon, s.conf.Grid.Walls())
	pos, grounded := ClampGround(pos, &a.Velocity, a.Radius, s.conf.GroundEpsilon)

	if !game.IsFiniteVec(pos) || !game.IsFiniteVec(a.Velocity) {
		s.log.WithField("tick", s.tick).Warn("discarding non-finite tick")
		a.Position, a.Velocity = prevPos, prevVel
	} else {
		a.Position = pos
		if grounded {
			a.Grounded = true
		}
		a.Spin(dt)
	}
	s.log.WithField("tick", s.tick).Tracef("dt=%.4f intent=%v pos=%v vel=%v collision=%+v", dt, intent, a.Position, a.Velocity, collision)

	if s.exit.Check(a.Position) {
		s.win()
	}
	s.camera.Follow(a.Position)
	s.updateEffects(dt)

	s.tick++
	r := s.renderable(dt, intent)
	r.Reset = reset
	return r
}

// Reset moves the avatar back to the spawn point, zeroes its velocity, stops running effects and
// clears the win latch. It must be called from the goroutine calling Step.
func (s *State) Reset() {
	s.avatar.Position = s.spawn
	s.avatar.Velocity = mgl64.Vec3{}
	s.avatar.Grounded = true
	s.exit.Reset()
	for _, e := range s.effects {
		if e != nil {
			e.Stop()
		}
	}
	clear(s.effects)
	s.effects = s.effects[:0]
	s.phase = PhasePlaying
	s.resume.Store(false)
	s.log.WithField("tick", s.tick).Info("session reset")
}

// Resume requests a reset at the start of the next Step. It is the callback handed to the
// Announcer and may be called from any goroutine.
func (s *State) Resume() {
	s.resume.Store(true)
}

// Phase returns the current phase.
func (s *State) Phase() Phase {
	return s.phase
}

// HasWon reports whether the win latch is set.
func (s *State) HasWon() bool {
	return s.exit.Won()
}

// Avatar returns a copy of the avatar state.
func (s *State) Avatar() Avatar {
	return s.avatar
}

// Camera returns the follow camera.
func (s *State) Camera() *Camera {
	return s.camera
}

// Exit returns the exit detector.
func (s *State) Exit() *ExitDetector {
	return s.exit
}

// Config returns the configuration the state was created with.
func (s *State) Config() Config {
	return s.conf
}

// Tick returns the number of ticks stepped so far.
func (s *State) Tick() uint64 {
	return s.tick
}

func (s *State) clampStep(dt float64) float64 {
	switch {
	case !game.IsFinite(dt) || dt < 0:
		s.log.WithField("tick", s.tick).Debugf("dropping invalid dt %v", dt)
		return 0
	case dt > s.conf.MaxStep:
		s.log.WithField("tick", s.tick).Debugf("clamping dt %.4f to %.4f", dt, s.conf.MaxStep)
		return s.conf.MaxStep
	}
	return dt
}

func (s *State) win() {
	s.phase = PhaseWon
	s.log.WithFields(logrus.Fields{"tick": s.tick, "pos": game.RoundVec64(s.avatar.Position, 3)}).Info("avatar reached the exit")

	s.effects = append(s.effects, s.conf.Effects.Spawn(s.avatar.Position, s.conf.Effect.Colour, s.conf.Effect.Count))
	s.conf.Sound.Play()
	s.conf.Announcer.Announce(s.Resume)
}

func (s *State) updateEffects(dt float64) {
	n := 0
	for _, e := range s.effects {
		if e == nil || e.Update(dt) {
			continue
		}
		s.effects[n] = e
		n++
	}
	clear(s.effects[n:])
	s.effects = s.effects[:n]
}
