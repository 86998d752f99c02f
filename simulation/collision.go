package simulation

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mazeball/game"
)

// CollisionResult describes which axes were corrected by ResolveWalls.
type CollisionResult struct {
	CollideX bool
	CollideZ bool
	// Contacts is the number of walls the avatar was pushed out of.
	Contacts int
}

// ResolveWalls pushes a tentative position out of every wall it overlaps on the horizontal plane.
// Each wall is resolved along the axis of smaller penetration, away from the wall center, and the
// velocity along that axis is zeroed. Walls are handled once each, in the order passed, so a push
// out of one wall is not re-checked against walls before it.
func ResolveWalls(pos mgl64.Vec3, vel *mgl64.Vec3, radius, epsilon float64, walls []cube.BBox) (mgl64.Vec3, CollisionResult) {
	var res CollisionResult
	for _, wall := range walls {
		ball := game.SphereBox(pos, radius)
		if !game.HorizontalOverlap(ball, wall) {
			continue
		}

		px, pz := game.Penetration(ball, wall, 0), game.Penetration(ball, wall, 2)
		center := game.Center(wall)
		if px < pz {
			pos[0] += pushDirection(pos[0], center[0]) * (px + epsilon)
			vel[0] = 0
			res.CollideX = true
		} else {
			pos[2] += pushDirection(pos[2], center[2]) * (pz + epsilon)
			vel[2] = 0
			res.CollideZ = true
		}
		res.Contacts++
	}
	return pos, res
}

func pushDirection(v, center float64) float64 {
	if v < center {
		return -1
	}
	return 1
}
