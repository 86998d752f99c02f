package simulation

import "github.com/go-gl/mathgl/mgl64"

// ClampGround keeps the tentative position from sinking below the floor plane. If the avatar is
// at or below radius+epsilon, it is placed exactly there, its vertical velocity is zeroed and
// grounded is true.
func ClampGround(pos mgl64.Vec3, vel *mgl64.Vec3, radius, epsilon float64) (mgl64.Vec3, bool) {
	rest := radius + epsilon
	if pos[1] > rest {
		return pos, false
	}
	pos[1] = rest
	vel[1] = 0
	return pos, true
}
