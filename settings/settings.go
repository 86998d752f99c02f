// Package settings loads the TOML configuration shared by the example hosts.
package settings

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mazeball/game"
	"github.com/oomph-ac/mazeball/input"
	"github.com/oomph-ac/mazeball/maze"
	"github.com/oomph-ac/mazeball/simulation"
	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
)

// Settings contains everything that can be configured for a session.
type Settings struct {
	Physics struct {
		Acceleration float64
		Damping      float64
		Gravity      float64
		// GravityPolicy is either "airborne" or "never".
		GravityPolicy    string
		GroundEpsilon    float64
		CollisionEpsilon float64
		// MaxStep is the longest tick integrated, in seconds.
		MaxStep float64
	}
	Avatar struct {
		Radius float64
	}
	Maze struct {
		// LayoutFile is a path to a layout of '0' and '1' rows. The built-in layout is used when empty.
		LayoutFile string
		CellSize   float64
		WallHeight float64
	}
	Exit struct {
		Threshold float64
		Width     float64
		Height    float64
		Depth     float64
		Elevation float64
	}
	Camera struct {
		Start     [3]float64
		LookAt    [3]float64
		Offset    [3]float64
		Smoothing float64
	}
	Input struct {
		DragRadius float64
	}
	Effect struct {
		Count    int
		Colour   uint32
		Lifetime float64
		Rise     float64
	}
	Host struct {
		TickRate int
		LogLevel string
		// StatsAddr enables the runtime stats viewer on the given address when set.
		StatsAddr string
		SentryDSN string
		// RecordingPath enables replay recording to the given file when set.
		RecordingPath string
	}
	FreezeOnWin bool
}

// DefaultSettings returns the default settings for a session.
func DefaultSettings() Settings {
	s := Settings{}
	s.Physics.Acceleration = game.Acceleration
	s.Physics.Damping = game.Damping
	s.Physics.Gravity = game.Gravity
	s.Physics.GravityPolicy = simulation.GravityWhileAirborne.String()
	s.Physics.GroundEpsilon = game.GroundEpsilon
	s.Physics.CollisionEpsilon = game.CollisionEpsilon
	s.Physics.MaxStep = game.MaxStep

	s.Avatar.Radius = game.AvatarRadius

	s.Maze.CellSize = game.CellSize
	s.Maze.WallHeight = game.WallHeight

	s.Exit.Threshold = game.ExitThreshold
	s.Exit.Width = game.ExitWidth
	s.Exit.Height = game.ExitHeight
	s.Exit.Depth = game.ExitDepth
	s.Exit.Elevation = game.ExitElevation

	s.Camera.Start = game.CameraStartPosition
	s.Camera.Offset = game.CameraOffset
	s.Camera.Smoothing = game.CameraSmoothing

	s.Input.DragRadius = input.DefaultDragRadius

	s.Effect.Count = 200
	s.Effect.Colour = 0xffff00
	s.Effect.Lifetime = 2
	s.Effect.Rise = 0.02

	s.Host.TickRate = 60
	s.Host.LogLevel = logrus.InfoLevel.String()
	return s
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Fields missing from the file keep their default values.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	} else if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %w", err)
	}

	s := DefaultSettings()
	if err = toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	return s, nil
}

// LoadOrCreate loads the settings at path, writing the defaults there first if the file is missing.
func LoadOrCreate(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveDefault(path); err != nil {
			return Settings{}, err
		}
	}
	return Load(path)
}

// Grid loads the maze configured, falling back to the built-in layout.
func (s Settings) Grid() (*maze.Grid, error) {
	if s.Maze.LayoutFile == "" {
		return maze.FromString(maze.DefaultLayout, s.Maze.CellSize, s.Maze.WallHeight)
	}
	return maze.LoadFile(s.Maze.LayoutFile, s.Maze.CellSize, s.Maze.WallHeight)
}

// GravityPolicy parses the configured gravity policy.
func (s Settings) GravityPolicy() (simulation.GravityPolicy, error) {
	switch s.Physics.GravityPolicy {
	case simulation.GravityWhileAirborne.String(), "":
		return simulation.GravityWhileAirborne, nil
	case simulation.GravityNever.String():
		return simulation.GravityNever, nil
	}
	return 0, fmt.Errorf("unknown gravity policy %q", s.Physics.GravityPolicy)
}

// LogLevel parses the configured log level.
func (s Settings) LogLevel() (logrus.Level, error) {
	return logrus.ParseLevel(s.Host.LogLevel)
}

// EffectColour returns the configured effect colour as an opaque RGBA value.
func (s Settings) EffectColour() color.RGBA {
	c := s.Effect.Colour
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}

// SimulationConfig builds the simulation config for grid from the settings. Collaborators and the
// logger are left for the caller to fill in.
func (s Settings) SimulationConfig(grid *maze.Grid) (simulation.Config, error) {
	policy, err := s.GravityPolicy()
	if err != nil {
		return simulation.Config{}, err
	}

	conf := simulation.DefaultConfig(grid)
	conf.Radius = s.Avatar.Radius
	conf.Motion = simulation.MotionConfig{
		Acceleration: s.Physics.Acceleration,
		Damping:      s.Physics.Damping,
		Gravity:      s.Physics.Gravity,
		Policy:       policy,
	}
	conf.GroundEpsilon = s.Physics.GroundEpsilon
	conf.CollisionEpsilon = s.Physics.CollisionEpsilon
	conf.MaxStep = s.Physics.MaxStep
	conf.Gate = simulation.GateConfig{
		Width:     s.Exit.Width,
		Height:    s.Exit.Height,
		Depth:     s.Exit.Depth,
		Elevation: s.Exit.Elevation,
		Threshold: s.Exit.Threshold,
	}
	conf.Camera = simulation.CameraConfig{
		Start:     mgl64.Vec3(s.Camera.Start),
		LookAt:    mgl64.Vec3(s.Camera.LookAt),
		Offset:    mgl64.Vec3(s.Camera.Offset),
		Smoothing: s.Camera.Smoothing,
	}
	conf.Effect = simulation.EffectConfig{Colour: s.EffectColour(), Count: s.Effect.Count}
	conf.FreezeOnWin = s.FreezeOnWin
	return conf, nil
}
