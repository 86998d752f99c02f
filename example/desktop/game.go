package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/oomph-ac/mazeball/effect"
	"github.com/oomph-ac/mazeball/input"
	"github.com/oomph-ac/mazeball/loop"
	"github.com/oomph-ac/mazeball/replay"
	"github.com/oomph-ac/mazeball/scene"
	"github.com/oomph-ac/mazeball/settings"
	"github.com/oomph-ac/mazeball/simulation"
	"github.com/oomph-ac/mazeball/worker"
	"github.com/sirupsen/logrus"
)

// keyNames maps ebiten keys to the names used by input bindings.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    "ArrowUp",
	ebiten.KeyArrowDown:  "ArrowDown",
	ebiten.KeyArrowLeft:  "ArrowLeft",
	ebiten.KeyArrowRight: "ArrowRight",
	ebiten.KeyW:          "KeyW",
	ebiten.KeyS:          "KeyS",
	ebiten.KeyA:          "KeyA",
	ebiten.KeyD:          "KeyD",
}

// Game implements ebiten.Game. The simulation is stepped from Update, so every collaborator
// runs on the ebiten goroutine.
type Game struct {
	log *logrus.Logger

	state  *simulation.State
	runner *loop.Runner
	mapper *input.Mapper
	scene  *scene.Scene
	bursts *effect.Spawner
	chime  *chime

	pool     *worker.Pool
	recorder *replay.Recorder

	// resume is set while the win announcement is shown.
	resume func()
	last   simulation.RenderableState

	width, height int
	touches       []ebiten.TouchID
	touch         ebiten.TouchID
	touchDragging bool
}

func newGame(s settings.Settings, log *logrus.Logger) (*Game, error) {
	grid, err := s.Grid()
	if err != nil {
		return nil, fmt.Errorf("unable to load maze: %w", err)
	}
	conf, err := s.SimulationConfig(grid)
	if err != nil {
		return nil, err
	}

	g := &Game{
		log:    log,
		mapper: input.NewMapper(s.Input.DragRadius),
		bursts: effect.NewSpawner(grid.Fingerprint()),
		chime:  newChime(audio.NewContext(sampleRate), log),
	}
	g.bursts.Lifetime, g.bursts.Rise = s.Effect.Lifetime, s.Effect.Rise

	conf.Log = log
	conf.Effects = g.bursts
	conf.Sound = g.chime
	conf.Announcer = simulation.AnnouncerFunc(func(onResume func()) {
		g.resume = onResume
	})
	if g.state, err = simulation.New(conf, g.mapper); err != nil {
		return nil, err
	}
	g.scene = scene.New(grid, g.state.Exit().Gate())

	if s.Host.RecordingPath != "" {
		g.pool = worker.New(log, 1)
		if g.recorder, err = replay.Create(s.Host.RecordingPath, grid, g.pool, log); err != nil {
			g.pool.Close()
			return nil, err
		}
	}
	g.runner = loop.New(g.state, loop.Config{TickRate: s.Host.TickRate, Recorder: g.recorder, Log: log})
	return g, nil
}

// Update reads input and steps the simulation once.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, name := range keyNames {
		if inpututil.IsKeyJustPressed(key) {
			g.mapper.KeyDown(name)
		}
		if inpututil.IsKeyJustReleased(key) {
			g.mapper.KeyUp(name)
		}
	}

	if g.resume != nil && g.restartRequested() {
		g.resume()
		g.resume = nil
		g.mapper.Clear()
	} else {
		g.updateMouseDrag()
		g.updateTouchDrag()
	}

	g.last = g.runner.Tick()
	return nil
}

func (g *Game) restartRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}

// Pointer coordinates are negated on y, since drags are read in a y-up frame.
func (g *Game) updateMouseDrag() {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.mapper.DragStart(float64(x), -float64(y))
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.mapper.DragEnd()
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.mapper.DragMove(float64(x), -float64(y))
	}
}

func (g *Game) updateTouchDrag() {
	if g.touchDragging {
		if inpututil.IsTouchJustReleased(g.touch) {
			g.touchDragging = false
			g.mapper.DragEnd()
			return
		}
		x, y := ebiten.TouchPosition(g.touch)
		g.mapper.DragMove(float64(x), -float64(y))
		return
	}
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	if len(g.touches) == 0 {
		return
	}
	g.touch, g.touchDragging = g.touches[0], true
	x, y := ebiten.TouchPosition(g.touch)
	g.mapper.DragStart(float64(x), -float64(y))
}

// Layout keeps the logical screen the size of the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) close() {
	if g.recorder != nil {
		if err := g.recorder.Close(g.last); err != nil {
			g.log.Errorf("unable to finish recording: %v", err)
		}
	}
	if g.pool != nil {
		g.pool.Close()
	}
}
