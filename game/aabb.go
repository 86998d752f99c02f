package game

import (
	"math"

	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// DFBoxToCubeBox converts a dragonfly bounding box to a float32-cube bounding box.
func DFBoxToCubeBox(b df_cube.BBox) cube.BBox {
	return cube.Box(
		float32(b.Min().X()), float32(b.Min().Y()), float32(b.Min().Z()),
		float32(b.Max().X()), float32(b.Max().Y()), float32(b.Max().Z()),
	)
}

// BoxAround returns a box centered on center horizontally, with the given half extents on X/Z,
// spanning minY to maxY vertically.
func BoxAround(center mgl64.Vec3, halfX, halfZ, minY, maxY float64) df_cube.BBox {
	return df_cube.Box(
		center.X()-halfX, minY, center.Z()-halfZ,
		center.X()+halfX, maxY, center.Z()+halfZ,
	)
}

// SphereBox returns the axis aligned box enclosing a sphere resting at pos. The box spans the full
// diameter on every axis.
func SphereBox(pos mgl64.Vec3, radius float64) df_cube.BBox {
	return df_cube.Box(
		pos.X()-radius, pos.Y()-radius, pos.Z()-radius,
		pos.X()+radius, pos.Y()+radius, pos.Z()+radius,
	)
}

// HorizontalOverlap reports whether two boxes strictly overlap on both the X and Z axes. Touching
// faces do not count as an overlap.
func HorizontalOverlap(a, b df_cube.BBox) bool {
	return a.Max().X() > b.Min().X() && a.Min().X() < b.Max().X() &&
		a.Max().Z() > b.Min().Z() && a.Min().Z() < b.Max().Z()
}

// Penetration returns how far a has to move along the given axis to stop overlapping b, choosing
// the shorter of the two directions.
func Penetration(a, b df_cube.BBox, axis int) float64 {
	return math.Min(a.Max()[axis]-b.Min()[axis], b.Max()[axis]-a.Min()[axis])
}

// Center returns the midpoint of a box.
func Center(b df_cube.BBox) mgl64.Vec3 {
	return b.Min().Add(b.Max()).Mul(0.5)
}

// Contains reports whether v lies inside or on the surface of b.
func Contains(b df_cube.BBox, v mgl64.Vec3) bool {
	lo, hi := b.Min(), b.Max()
	return v[0] >= lo[0] && v[0] <= hi[0] &&
		v[1] >= lo[1] && v[1] <= hi[1] &&
		v[2] >= lo[2] && v[2] <= hi[2]
}
