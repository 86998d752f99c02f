package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSafeNormalizeZero(t *testing.T) {
	v, ok := SafeNormalize(mgl64.Vec3{})
	if ok {
		t.Fatalf("expected zero vector to be rejected, got %v", v)
	}
	if v != (mgl64.Vec3{}) {
		t.Fatalf("expected zero result, got %v", v)
	}

	v, ok = SafeNormalize(mgl64.Vec3{math.NaN(), 0, 0})
	if ok {
		t.Fatalf("expected NaN vector to be rejected, got %v", v)
	}
}

func TestSafeNormalize(t *testing.T) {
	v, ok := SafeNormalize(mgl64.Vec3{3, 0, -4})
	if !ok {
		t.Fatal("expected vector to normalize")
	}
	if !Float64ApproxEq(v.Len(), 1) || !Float64ApproxEq(v.X(), 0.6) || !Float64ApproxEq(v.Z(), -0.8) {
		t.Fatalf("unexpected normalized vector %v", v)
	}
}

func TestLerpVec(t *testing.T) {
	got := LerpVec(mgl64.Vec3{0, 10, 16}, mgl64.Vec3{0, 7.6, 20}, 0.5)
	want := mgl64.Vec3{0, 8.8, 18}
	if !got.ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestClampAndFinite(t *testing.T) {
	if Clamp(5, -1, 1) != 1 || Clamp(-5, -1, 1) != -1 || Clamp(0.25, -1, 1) != 0.25 {
		t.Fatal("clamp returned a value outside of its range")
	}
	if IsFinite(math.Inf(1)) || IsFinite(math.NaN()) || !IsFinite(0) {
		t.Fatal("IsFinite misclassified a value")
	}
	if IsFiniteVec(mgl64.Vec3{0, math.Inf(-1), 0}) {
		t.Fatal("expected vector with infinite component to be rejected")
	}
}
