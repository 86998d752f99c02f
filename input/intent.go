// Package input turns raw directional stimuli into a bounded intent vector. Input collaborators
// write into a Mapper from any goroutine; the simulation reads one Snapshot per tick.
package input

import (
	"math"
	"sync"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/mazeball/game"
	"go.uber.org/atomic"
)

// DefaultDragRadius is the pointer distance, in pixels, that produces a full-strength intent.
const DefaultDragRadius = 40.0

// Intent is the desired movement direction. X runs towards the right of the screen and Z towards
// the bottom of the screen, so a negative Z moves away from the camera. Both are within [-1, 1].
type Intent struct {
	X, Z float64
}

// Len returns the magnitude of the intent.
func (i Intent) Len() float64 {
	return math.Hypot(i.X, i.Z)
}

// Mapper holds the shared intent state written by keyboard and drag sources. The last write wins.
type Mapper struct {
	x, z *atomic.Float64

	dragging         *atomic.Bool
	anchorX, anchorY *atomic.Float64
	dragRadius       float64

	bindingMu sync.RWMutex
	bindings  *orderedmap.OrderedMap[string, Direction]
}

// NewMapper returns a Mapper with the default key bindings. A dragRadius of zero or less selects
// DefaultDragRadius.
func NewMapper(dragRadius float64) *Mapper {
	if dragRadius <= 0 || !game.IsFinite(dragRadius) {
		dragRadius = DefaultDragRadius
	}
	return &Mapper{
		x:          atomic.NewFloat64(0),
		z:          atomic.NewFloat64(0),
		dragging:   atomic.NewBool(false),
		anchorX:    atomic.NewFloat64(0),
		anchorY:    atomic.NewFloat64(0),
		dragRadius: dragRadius,
		bindings:   DefaultBindings(),
	}
}

// Snapshot returns the current intent. It does not consume or clear it.
func (m *Mapper) Snapshot() Intent {
	return Intent{X: m.x.Load(), Z: m.z.Load()}
}

// Set overwrites the intent directly, for analog sources such as gamepad sticks or replays. Values
// are clamped to [-1, 1]. Non-finite values are ignored.
func (m *Mapper) Set(x, z float64) {
	if !game.IsFinite(x) || !game.IsFinite(z) {
		return
	}
	m.x.Store(game.Clamp(x, -1, 1))
	m.z.Store(game.Clamp(z, -1, 1))
}

// Clear resets the intent to zero and cancels any drag in progress.
func (m *Mapper) Clear() {
	m.dragging.Store(false)
	m.x.Store(0)
	m.z.Store(0)
}
