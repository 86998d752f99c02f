package simulation

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mazeball/game"
)

// Avatar is the ball moving through the maze. Within a tick it is only mutated by Integrate,
// ResolveWalls and ClampGround; Orientation is purely cosmetic.
type Avatar struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Radius   float64
	Grounded bool

	Orientation mgl64.Quat
}

// BoundingBox returns the box enclosing the avatar at its current position.
func (a *Avatar) BoundingBox() cube.BBox {
	return game.SphereBox(a.Position, a.Radius)
}

// Spin rolls the orientation as if the ball rolled without slipping over the floor for dt seconds.
// Angles below game.SpinThreshold are skipped.
func (a *Avatar) Spin(dt float64) {
	axis, ok := game.SafeNormalize(mgl64.Vec3{a.Velocity.Z(), 0, -a.Velocity.X()})
	if !ok || a.Radius <= 0 {
		return
	}
	angle := math.Sqrt(game.Vec3HzDistSqr(a.Velocity)) * dt / a.Radius
	if angle <= game.SpinThreshold {
		return
	}
	a.Orientation = mgl64.QuatRotate(angle, axis).Mul(a.Orientation).Normalize()
}
