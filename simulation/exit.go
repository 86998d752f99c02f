package simulation

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mazeball/game"
)

// ExitDetector watches for the avatar reaching the exit gate. It latches on the first detection
// and does not fire again until Reset is called.
type ExitDetector struct {
	gate      cube.BBox
	center    mgl64.Vec3
	threshold float64

	won bool
}

// NewExitDetector returns a detector for the gate passed. The avatar is at the exit when a ray from
// it towards the gate center enters the gate closer than threshold.
func NewExitDetector(gate cube.BBox, threshold float64) *ExitDetector {
	return &ExitDetector{gate: gate, center: game.Center(gate), threshold: threshold}
}

// Gate returns the bounding box of the exit gate.
func (d *ExitDetector) Gate() cube.BBox {
	return d.gate
}

// Distance returns the distance along the ray from pos to the gate, if the gate is within
// threshold.
func (d *ExitDetector) Distance(pos mgl64.Vec3) (float64, bool) {
	return game.RayDistance(d.gate, pos, d.center, d.threshold)
}

// AtExit reports whether pos is at the exit, ignoring the latch.
func (d *ExitDetector) AtExit(pos mgl64.Vec3) bool {
	dist, ok := d.Distance(pos)
	return ok && dist < d.threshold
}

// Check returns true only on the tick the avatar first reaches the exit. While latched it always
// returns false.
func (d *ExitDetector) Check(pos mgl64.Vec3) bool {
	if d.won || !d.AtExit(pos) {
		return false
	}
	d.won = true
	return true
}

// Won reports whether the latch is set.
func (d *ExitDetector) Won() bool {
	return d.won
}

// Reset clears the latch.
func (d *ExitDetector) Reset() {
	d.won = false
}
