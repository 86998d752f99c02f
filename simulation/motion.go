package simulation

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mazeball/game"
	"github.com/oomph-ac/mazeball/input"
)

// GravityPolicy decides whether gravity acts on an avatar that is not grounded.
type GravityPolicy uint8

const (
	// GravityWhileAirborne applies gravity until the avatar first touches the floor. Grounded is
	// never cleared afterwards, so gravity stays off from then on.
	GravityWhileAirborne GravityPolicy = iota
	// GravityNever disables gravity entirely.
	GravityNever
)

// String ...
func (p GravityPolicy) String() string {
	switch p {
	case GravityWhileAirborne:
		return "airborne"
	case GravityNever:
		return "never"
	}
	return "unknown"
}

// MotionConfig holds the constants used by Integrate.
type MotionConfig struct {
	Acceleration float64
	// Damping multiplies the velocity once per tick, regardless of dt.
	Damping float64
	Gravity float64
	Policy  GravityPolicy
}

// DefaultForward is the camera forward used when no usable horizontal forward is supplied.
var DefaultForward = mgl64.Vec3{0, 0, -1}

// HorizontalForward strips the vertical component of forward and renormalizes it, falling back to
// DefaultForward if nothing usable remains.
func HorizontalForward(forward mgl64.Vec3) mgl64.Vec3 {
	if f, ok := game.SafeNormalize(game.Horizontal(forward)); ok {
		return f
	}
	return DefaultForward
}

// Integrate accelerates the avatar along the intent, relative to the camera forward passed, and
// returns the tentative position for this tick. The velocity is written back to the avatar but the
// position is left for the caller to commit once collisions are resolved.
func Integrate(a *Avatar, intent input.Intent, forward mgl64.Vec3, dt float64, conf MotionConfig) mgl64.Vec3 {
	forward = HorizontalForward(forward)
	right := forward.Cross(game.WorldUp)

	accel := right.Mul(intent.X).Sub(forward.Mul(intent.Z)).Mul(conf.Acceleration)
	vel := a.Velocity.Add(accel.Mul(dt))
	if !a.Grounded && conf.Policy == GravityWhileAirborne {
		vel[1] -= conf.Gravity * dt
	}
	vel = vel.Mul(conf.Damping)

	a.Velocity = vel
	return a.Position.Add(vel.Mul(dt))
}
