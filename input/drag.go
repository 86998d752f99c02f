package input

import (
	"math"

	"github.com/oomph-ac/mazeball/game"
)

// DragStart records the anchor of a new drag. Coordinates use a y-up frame: hosts working in
// screen space with y pointing down negate y before calling the drag methods.
func (m *Mapper) DragStart(x, y float64) {
	if !game.IsFinite(x) || !game.IsFinite(y) {
		return
	}
	m.anchorX.Store(x)
	m.anchorY.Store(y)
	m.dragging.Store(true)
}

// DragMove updates the intent from the vector between the drag anchor and the pointer. The vector
// is clamped to the drag radius, so any drag at least that long produces a unit intent.
func (m *Mapper) DragMove(x, y float64) {
	if !m.dragging.Load() || !game.IsFinite(x) || !game.IsFinite(y) {
		return
	}
	ix, iz := stickIntent(x-m.anchorX.Load(), y-m.anchorY.Load(), m.dragRadius)
	m.x.Store(ix)
	m.z.Store(iz)
}

// DragEnd stops the drag and resets the intent to exactly zero.
func (m *Mapper) DragEnd() {
	m.Clear()
}

// Dragging reports whether a drag is in progress, and if so, where it started.
func (m *Mapper) Dragging() (anchorX, anchorY float64, ok bool) {
	if !m.dragging.Load() {
		return 0, 0, false
	}
	return m.anchorX.Load(), m.anchorY.Load(), true
}

// DragRadius returns the drag length that produces a full-strength intent.
func (m *Mapper) DragRadius() float64 {
	return m.dragRadius
}

func stickIntent(dx, dy, radius float64) (x, z float64) {
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 0, 0
	}
	strength := math.Min(dist, radius) / radius
	angle := math.Atan2(dy, dx)
	return game.Clamp(strength*math.Cos(angle), -1, 1), game.Clamp(-strength*math.Sin(angle), -1, 1)
}
