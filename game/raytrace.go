package game

import (
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/cube/trace"
	"github.com/go-gl/mathgl/mgl64"
)

// RayDistance casts a ray from origin towards target and returns the distance to the first point
// where it enters bb, looking no further than maxDist. If origin is already inside bb, the
// distance is 0. ok is false when the ray does not reach the box.
func RayDistance(bb df_cube.BBox, origin, target mgl64.Vec3, maxDist float64) (dist float64, ok bool) {
	if Contains(bb, origin) {
		return 0, true
	}
	dir, valid := SafeNormalize(target.Sub(origin))
	if !valid || maxDist <= 0 {
		return 0, false
	}

	end := origin.Add(dir.Mul(maxDist))
	result, hit := trace.BBoxIntercept(bb, origin, end)
	if !hit {
		return 0, false
	}
	return result.Position().Sub(origin).Len(), true
}
