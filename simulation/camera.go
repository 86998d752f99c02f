package simulation

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mazeball/game"
)

// ForwardSource supplies the camera forward vector read once per tick by Integrate.
type ForwardSource interface {
	Forward() mgl64.Vec3
}

// CameraConfig configures the follow camera.
type CameraConfig struct {
	Start  mgl64.Vec3
	LookAt mgl64.Vec3
	Offset mgl64.Vec3
	// Smoothing is the fraction of the remaining distance to the target covered every tick.
	Smoothing float64
}

// Camera follows the avatar from a fixed world-space offset. The position is smoothed, the look
// direction is not.
type Camera struct {
	conf CameraConfig

	position mgl64.Vec3
	target   mgl64.Vec3
	forward  mgl64.Vec3
}

// NewCamera returns a camera at conf.Start looking at conf.LookAt.
func NewCamera(conf CameraConfig) *Camera {
	c := &Camera{conf: conf, position: conf.Start, target: conf.LookAt}
	c.forward = HorizontalForward(c.target.Sub(c.position))
	return c
}

// Follow moves the camera towards the offset from the avatar and aims it at the avatar.
func (c *Camera) Follow(avatar mgl64.Vec3) {
	c.position = game.LerpVec(c.position, avatar.Add(c.conf.Offset), c.conf.Smoothing)
	c.target = avatar
	if f, ok := game.SafeNormalize(game.Horizontal(c.target.Sub(c.position))); ok {
		c.forward = f
	}
}

// Forward returns the horizontal direction the camera looked in after the last Follow.
func (c *Camera) Forward() mgl64.Vec3 {
	return c.forward
}

// Position returns the camera position.
func (c *Camera) Position() mgl64.Vec3 {
	return c.position
}

// Target returns the point the camera is aimed at.
func (c *Camera) Target() mgl64.Vec3 {
	return c.target
}

// View returns the view matrix of the camera.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.position, c.target, game.WorldUp)
}
