package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mazeball/input"
	"github.com/oomph-ac/mazeball/maze"
	"github.com/oomph-ac/mazeball/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame(t *testing.T) (*Scene, Frame) {
	t.Helper()
	grid := maze.Default()
	s, err := simulation.New(simulation.DefaultConfig(grid), input.NewMapper(0))
	require.NoError(t, err)

	r := s.Step(0)
	sc := New(grid, s.Exit().Gate())
	return sc, sc.Frame(r, s.Avatar().Radius, 800, 600)
}

func TestSceneGeometry(t *testing.T) {
	sc, _ := testFrame(t)
	assert.Len(t, sc.Walls(), len(maze.Default().Walls()))
	assert.InDelta(t, 6.5, sc.Gate().Min().X(), 1e-5)
	assert.InDelta(t, 9.5, sc.Gate().Max().X(), 1e-5)
}

func TestProjectCentersTarget(t *testing.T) {
	_, f := testFrame(t)

	x, y, ok := f.Project(f.Center)
	require.True(t, ok)
	assert.InDelta(t, 400, x, 0.5)
	assert.InDelta(t, 300, y, 0.5)

	_, _, ok = f.Project(f.Eye.Add(mgl32.Vec3{0, 0, 10}))
	assert.False(t, ok, "points behind the camera must not project")

	assert.Greater(t, f.ProjectedRadius(f.Avatar, f.Radius), float32(0))
}

func TestFacesSortedBackToFront(t *testing.T) {
	sc, f := testFrame(t)

	faces := sc.Faces(f)
	require.NotEmpty(t, faces)
	for i := 1; i < len(faces); i++ {
		assert.GreaterOrEqual(t, faces[i-1].depth, faces[i].depth)
	}

	gate := 0
	for _, face := range faces {
		if face.Gate {
			gate++
		}
		assert.LessOrEqual(t, face.Shade, float32(1))
	}
	assert.Positive(t, gate)
}

func TestFrameOrientation(t *testing.T) {
	sc, _ := testFrame(t)
	r := simulation.RenderableState{
		CameraPosition: mgl64.Vec3{0, 10, 16},
		Orientation:    mgl64.QuatRotate(1, mgl64.Vec3{0, 0, 1}),
		Phase:          simulation.PhaseWon,
	}
	f := sc.Frame(r, 0.6, 0, 0)
	assert.True(t, f.Won)
	assert.InDelta(t, 1, f.Orientation.Len(), 1e-5)
}
