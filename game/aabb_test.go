package game

import (
	"testing"

	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

func TestHorizontalOverlapIsStrict(t *testing.T) {
	wall := df_cube.Box(-1, 0, -1, 1, 2, 1)
	touching := df_cube.Box(1, 0, -0.5, 2.2, 1.2, 0.5)
	if HorizontalOverlap(touching, wall) {
		t.Fatal("touching boxes must not count as overlapping")
	}

	overlapping := df_cube.Box(0.9, 0, -0.5, 2.1, 1.2, 0.5)
	if !HorizontalOverlap(overlapping, wall) {
		t.Fatal("expected overlap")
	}

	// Vertical separation is ignored.
	above := df_cube.Box(0.5, 10, 0.5, 1.5, 11, 1.5)
	if !HorizontalOverlap(above, wall) {
		t.Fatal("expected horizontal overlap regardless of height")
	}
}

func TestPenetration(t *testing.T) {
	wall := df_cube.Box(-1, 0, -1, 1, 2, 1)
	ball := df_cube.Box(0.8, 0, -0.2, 2, 1.2, 1)

	if p := Penetration(ball, wall, 0); !Float64ApproxEq(p, 0.2) {
		t.Fatalf("expected x penetration 0.2, got %v", p)
	}
	if p := Penetration(ball, wall, 2); !Float64ApproxEq(p, 1.2) {
		t.Fatalf("expected z penetration 1.2, got %v", p)
	}
}

func TestSphereBox(t *testing.T) {
	bb := SphereBox(mgl64.Vec3{0, 0.6, 8}, 0.6)
	if !bb.Min().ApproxEqualThreshold(mgl64.Vec3{-0.6, 0, 7.4}, 1e-9) {
		t.Fatalf("unexpected min %v", bb.Min())
	}
	if !bb.Max().ApproxEqualThreshold(mgl64.Vec3{0.6, 1.2, 8.6}, 1e-9) {
		t.Fatalf("unexpected max %v", bb.Max())
	}
	if c := Center(bb); !c.ApproxEqualThreshold(mgl64.Vec3{0, 0.6, 8}, 1e-9) {
		t.Fatalf("unexpected center %v", c)
	}
}
