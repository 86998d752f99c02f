package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp is the up axis shared by the simulation and the camera.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Round64 will round a float64 to a given precision.
func Round64(val float64, precision int) float64 {
	pwr := math.Pow(10, float64(precision))
	return math.Round(val*pwr) / pwr
}

// Float64ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-9.
func Float64ApproxEq(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsFiniteVec reports whether every component of the vector is finite.
func IsFiniteVec(v mgl64.Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// SafeNormalize normalizes v, returning the zero vector and false if v has no usable length.
func SafeNormalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l <= 1e-12 || !IsFinite(l) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// Horizontal drops the vertical component of v.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// Vec3HzDistSqr returns the squared horizontal length of a vector.
func Vec3HzDistSqr(v mgl64.Vec3) float64 {
	return v[0]*v[0] + v[2]*v[2]
}

// LerpVec linearly interpolates from a towards b by alpha.
func LerpVec(a, b mgl64.Vec3, alpha float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(alpha))
}

// Vec64To32 converts a 64-bit vector to a 32-bit one.
func Vec64To32(vec3 mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(vec3[0]), float32(vec3[1]), float32(vec3[2])}
}

// Quat64To32 converts a 64-bit quaternion to a 32-bit one.
func Quat64To32(q mgl64.Quat) mgl32.Quat {
	return mgl32.Quat{W: float32(q.W), V: Vec64To32(q.V)}
}

// RoundVec64 will round a 64-bit vector to a given precision.
func RoundVec64(v mgl64.Vec3, p int) mgl64.Vec3 {
	return mgl64.Vec3{Round64(v.X(), p), Round64(v.Y(), p), Round64(v.Z(), p)}
}
