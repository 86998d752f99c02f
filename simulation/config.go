package simulation

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/oomph-ac/mazeball/game"
	"github.com/oomph-ac/mazeball/maze"
	"github.com/sirupsen/logrus"
)

// GateConfig describes the exit gate volume. Width runs along X, Depth along Z.
type GateConfig struct {
	Width, Height, Depth float64
	Elevation            float64
	// Threshold is the ray distance below which the avatar counts as having reached the gate.
	Threshold float64
}

// EffectConfig describes the visual effect spawned on a win.
type EffectConfig struct {
	Colour color.RGBA
	Count  int
}

// Config holds everything needed to create a State.
type Config struct {
	Grid   *maze.Grid
	Radius float64

	Motion           MotionConfig
	GroundEpsilon    float64
	CollisionEpsilon float64
	// MaxStep is the longest dt, in seconds, integrated by a single Step.
	MaxStep float64

	Gate   GateConfig
	Camera CameraConfig
	Effect EffectConfig

	// FreezeOnWin ignores intent while the Won phase is active.
	FreezeOnWin bool

	Effects   EffectSpawner
	Sound     Sound
	Announcer Announcer
	// Forward overrides the camera forward read by Integrate. The follow camera is used if nil.
	Forward ForwardSource

	Log *logrus.Logger
}

// DefaultConfig returns a Config for the grid passed with every constant set to its default.
func DefaultConfig(grid *maze.Grid) Config {
	return Config{
		Grid:   grid,
		Radius: game.AvatarRadius,
		Motion: MotionConfig{
			Acceleration: game.Acceleration,
			Damping:      game.Damping,
			Gravity:      game.Gravity,
			Policy:       GravityWhileAirborne,
		},
		GroundEpsilon:    game.GroundEpsilon,
		CollisionEpsilon: game.CollisionEpsilon,
		MaxStep:          game.MaxStep,
		Gate: GateConfig{
			Width:     game.ExitWidth,
			Height:    game.ExitHeight,
			Depth:     game.ExitDepth,
			Elevation: game.ExitElevation,
			Threshold: game.ExitThreshold,
		},
		Camera: CameraConfig{
			Start:     game.CameraStartPosition,
			Offset:    game.CameraOffset,
			Smoothing: game.CameraSmoothing,
		},
		Effect: EffectConfig{Colour: color.RGBA{R: 0xff, G: 0xff, A: 0xff}, Count: 200},
	}
}

var (
	ErrNoGrid        = errors.New("simulation requires a maze grid")
	ErrInvalidConfig = errors.New("invalid simulation config")
)

func (conf Config) validate() error {
	if conf.Grid == nil {
		return ErrNoGrid
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"radius", conf.Radius},
		{"max step", conf.MaxStep},
		{"gate width", conf.Gate.Width},
		{"gate height", conf.Gate.Height},
		{"gate depth", conf.Gate.Depth},
		{"gate threshold", conf.Gate.Threshold},
	}
	for _, p := range positive {
		if p.v <= 0 || !game.IsFinite(p.v) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}
	if conf.Motion.Damping < 0 || conf.Motion.Damping > 1 {
		return fmt.Errorf("%w: damping must be within [0, 1], got %v", ErrInvalidConfig, conf.Motion.Damping)
	}
	if conf.Camera.Smoothing < 0 || conf.Camera.Smoothing > 1 {
		return fmt.Errorf("%w: camera smoothing must be within [0, 1], got %v", ErrInvalidConfig, conf.Camera.Smoothing)
	}
	if conf.Radius*2 >= conf.Grid.CellSize() {
		return fmt.Errorf("%w: avatar radius %v does not fit in a %v cell", ErrInvalidConfig, conf.Radius, conf.Grid.CellSize())
	}
	return nil
}
