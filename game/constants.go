package game

import "github.com/go-gl/mathgl/mgl64"

const (
	// CellSize is the world-space width of one maze cell.
	CellSize = 2.0
	// WallHeight is the vertical span of every wall box, measured from the floor.
	WallHeight = 2.0

	AvatarRadius = 0.6

	Acceleration = 14.0
	Damping      = 0.92
	Gravity      = 9.8

	// GroundEpsilon keeps the avatar resting slightly above the floor plane.
	GroundEpsilon = 0.02
	// CollisionEpsilon is added to every wall push-out.
	CollisionEpsilon = 0.01

	// MaxStep is the longest tick, in seconds, that is ever integrated.
	MaxStep = 0.033

	ExitThreshold = 2.0
	ExitWidth     = 3.0
	ExitHeight    = 3.0
	ExitDepth     = 0.5
	ExitElevation = 1.5

	CameraSmoothing = 0.08

	// SpinThreshold is the smallest spin angle, in radians, applied to the avatar orientation.
	SpinThreshold = 1e-4
)

var (
	// CameraOffset is the world-space offset the camera keeps from the avatar.
	CameraOffset        = mgl64.Vec3{0, 7, 12}
	CameraStartPosition = mgl64.Vec3{0, 10, 16}
)
