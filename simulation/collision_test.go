package simulation

import (
	"math"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

func TestResolveSmallerAxis(t *testing.T) {
	wall := cube.Box(-1, 0, -1, 1, 2, 1)
	vel := mgl64.Vec3{3, 0, 1}

	// Overlaps by 0.2 on X and 1.2 on Z, so X is resolved.
	pos, res := ResolveWalls(mgl64.Vec3{-1.4, 0.62, 0.4}, &vel, 0.6, 0.01, []cube.BBox{wall})
	if !res.CollideX || res.CollideZ || res.Contacts != 1 {
		t.Fatalf("unexpected collision result %+v", res)
	}
	if !pos.ApproxEqualThreshold(mgl64.Vec3{-1.61, 0.62, 0.4}, 1e-9) {
		t.Fatalf("expected push out along -X, got %v", pos)
	}
	if vel != (mgl64.Vec3{0, 0, 1}) {
		t.Fatalf("expected only x velocity to be zeroed, got %v", vel)
	}
}

func TestResolveTieUsesZ(t *testing.T) {
	wall := cube.Box(-1, 0, -1, 1, 2, 1)
	vel := mgl64.Vec3{1, 0, 1}

	pos, res := ResolveWalls(mgl64.Vec3{1.5, 0.62, 1.5}, &vel, 0.6, 0.01, []cube.BBox{wall})
	if res.CollideX || !res.CollideZ {
		t.Fatalf("expected a tie to resolve along Z, got %+v", res)
	}
	if !pos.ApproxEqualThreshold(mgl64.Vec3{1.5, 0.62, 1.61}, 1e-9) {
		t.Fatalf("unexpected position %v", pos)
	}
	if vel[2] != 0 || vel[0] != 1 {
		t.Fatalf("unexpected velocity %v", vel)
	}
}

func TestResolveSeamPushesOnce(t *testing.T) {
	// Two walls sharing a face at x=0. Once pushed out of the first, the avatar no longer
	// overlaps the second, so it is not pushed again.
	walls := []cube.BBox{cube.Box(-2, 0, 0, 0, 2, 2), cube.Box(0, 0, 0, 2, 2, 2)}
	vel := mgl64.Vec3{0, 0, -1}

	pos, res := ResolveWalls(mgl64.Vec3{0, 0.62, 2.3}, &vel, 0.6, 0.01, walls)
	if res.Contacts != 1 || !res.CollideZ || res.CollideX {
		t.Fatalf("expected a single push along Z, got %+v", res)
	}
	if !pos.ApproxEqualThreshold(mgl64.Vec3{0, 0.62, 2.61}, 1e-9) {
		t.Fatalf("expected one push out of the seam, got %v", pos)
	}
	if vel != (mgl64.Vec3{}) {
		t.Fatalf("expected z velocity to be zeroed, got %v", vel)
	}
}

func TestResolveTouchingIsNotCollision(t *testing.T) {
	wall := cube.Box(-1, 0, -1, 1, 2, 1)
	vel := mgl64.Vec3{-2, 0, 0}
	pos := mgl64.Vec3{1.6, 0.62, 0}

	got, res := ResolveWalls(pos, &vel, 0.6, 0.01, []cube.BBox{wall})
	if res.Contacts != 0 || got != pos || vel[0] != -2 {
		t.Fatalf("expected touching boxes to be left alone, got %v %+v", got, res)
	}
}

func TestClampGround(t *testing.T) {
	vel := mgl64.Vec3{1, -3, 1}
	pos, grounded := ClampGround(mgl64.Vec3{0, 0.1, 0}, &vel, 0.6, 0.02)
	if !grounded || math.Abs(pos.Y()-0.62) > 1e-12 || vel != (mgl64.Vec3{1, 0, 1}) {
		t.Fatalf("expected clamp to the floor, got %v %v %v", pos, vel, grounded)
	}

	vel = mgl64.Vec3{0, -1, 0}
	pos, grounded = ClampGround(mgl64.Vec3{0, 2, 0}, &vel, 0.6, 0.02)
	if grounded || pos.Y() != 2 || vel.Y() != -1 {
		t.Fatalf("expected an airborne avatar to be left alone, got %v %v", pos, vel)
	}
}

func TestExitDetectorEdgeTriggered(t *testing.T) {
	d := NewExitDetector(cube.Box(6.5, 0, -8.25, 9.5, 3, -7.75), 2)
	near := mgl64.Vec3{8, 0.62, -6.5}
	far := mgl64.Vec3{8, 0.62, -2}

	if d.Check(far) {
		t.Fatal("expected no trigger far from the exit")
	}
	if !d.Check(near) {
		t.Fatal("expected a trigger near the exit")
	}
	if d.Check(near) || !d.Won() {
		t.Fatal("expected the latch to suppress repeated triggers")
	}

	d.Reset()
	if d.Won() || !d.Check(near) {
		t.Fatal("expected reset to re-arm the detector")
	}
}
