// Package scene converts simulation state into float32 geometry for renderers: wall and gate
// boxes, camera matrices and depth-sorted faces.
package scene

import (
	"sort"

	"github.com/chewxy/math32"
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/mazeball/game"
	"github.com/oomph-ac/mazeball/maze"
	"github.com/oomph-ac/mazeball/simulation"
)

const (
	FieldOfView = 60
	NearPlane   = 0.1
	FarPlane    = 1000
)

// Scene holds the static geometry of a maze in render precision.
type Scene struct {
	walls []cube.BBox
	gate  cube.BBox
}

// New converts the walls of grid and the exit gate passed.
func New(grid *maze.Grid, gate df_cube.BBox) *Scene {
	s := &Scene{gate: game.DFBoxToCubeBox(gate)}
	for _, w := range grid.Walls() {
		s.walls = append(s.walls, game.DFBoxToCubeBox(w))
	}
	return s
}

// Walls returns the wall boxes.
func (s *Scene) Walls() []cube.BBox {
	return s.walls
}

// Gate returns the exit gate box.
func (s *Scene) Gate() cube.BBox {
	return s.gate
}

// Frame is everything needed to draw a single tick to a viewport.
type Frame struct {
	Width, Height int

	Eye, Center mgl32.Vec3
	View        mgl32.Mat4
	Projection  mgl32.Mat4

	Avatar      mgl32.Vec3
	Radius      float32
	Orientation mgl32.Quat
	Won         bool
}

// Frame builds the frame for state r drawn to a width by height viewport.
func (s *Scene) Frame(r simulation.RenderableState, radius float64, width, height int) Frame {
	eye, center := game.Vec64To32(r.CameraPosition), game.Vec64To32(r.CameraTarget)
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return Frame{
		Width:       width,
		Height:      height,
		Eye:         eye,
		Center:      center,
		View:        mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0}),
		Projection:  mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, NearPlane, FarPlane),
		Avatar:      game.Vec64To32(r.Position),
		Radius:      float32(radius),
		Orientation: game.Quat64To32(r.Orientation),
		Won:         r.Won(),
	}
}

// Project converts a world position to screen pixels, with y pointing down. ok is false for
// points behind the camera.
func (f Frame) Project(v mgl32.Vec3) (x, y float32, ok bool) {
	clip := f.Projection.Mul4(f.View).Mul4x1(v.Vec4(1))
	if clip.W() <= NearPlane {
		return 0, 0, false
	}
	win := mgl32.Project(v, f.View, f.Projection, 0, 0, f.Width, f.Height)
	return win.X(), float32(f.Height) - win.Y(), true
}

// ProjectedRadius returns the on-screen radius of a sphere of the given radius centered at v.
func (f Frame) ProjectedRadius(v mgl32.Vec3, radius float32) float32 {
	cx, cy, ok := f.Project(v)
	if !ok {
		return 0
	}
	right := f.Center.Sub(f.Eye).Cross(mgl32.Vec3{0, 1, 0})
	if right.Len() == 0 {
		return 0
	}
	ex, ey, ok := f.Project(v.Add(right.Normalize().Mul(radius)))
	if !ok {
		return 0
	}
	return math32.Hypot(ex-cx, ey-cy)
}

// Face is a single quad of a box, with a shade in [0, 1] derived from its orientation.
type Face struct {
	Corners [4]mgl32.Vec3
	Shade   float32
	Gate    bool

	depth float32
}

// Faces returns the faces of every wall and of the gate that point towards the camera, sorted from
// the farthest to the nearest so they can be painted in order.
func (s *Scene) Faces(f Frame) []Face {
	faces := make([]Face, 0, len(s.walls)*3+3)
	for _, w := range s.walls {
		faces = appendVisibleFaces(faces, w, f.Eye, false)
	}
	faces = appendVisibleFaces(faces, s.gate, f.Eye, true)

	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].depth > faces[j].depth
	})
	return faces
}

func appendVisibleFaces(faces []Face, b cube.BBox, eye mgl32.Vec3, gate bool) []Face {
	lo, hi := b.Min(), b.Max()
	candidates := [...]struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}{
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{lo[0], hi[1], lo[2]}, {hi[0], hi[1], lo[2]}, {hi[0], hi[1], hi[2]}, {lo[0], hi[1], hi[2]}}},
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{lo[0], lo[1], hi[2]}, {hi[0], lo[1], hi[2]}, {hi[0], hi[1], hi[2]}, {lo[0], hi[1], hi[2]}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{lo[0], lo[1], lo[2]}, {hi[0], lo[1], lo[2]}, {hi[0], hi[1], lo[2]}, {lo[0], hi[1], lo[2]}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{hi[0], lo[1], lo[2]}, {hi[0], lo[1], hi[2]}, {hi[0], hi[1], hi[2]}, {hi[0], hi[1], lo[2]}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{lo[0], lo[1], lo[2]}, {lo[0], lo[1], hi[2]}, {lo[0], hi[1], hi[2]}, {lo[0], hi[1], lo[2]}}},
	}
	for _, c := range candidates {
		center := c.corners[0].Add(c.corners[2]).Mul(0.5)
		toEye := eye.Sub(center)
		if c.normal.Dot(toEye) <= 0 {
			continue
		}
		faces = append(faces, Face{
			Corners: c.corners,
			Shade:   0.55 + 0.45*math32.Abs(c.normal.Y()) + 0.15*math32.Abs(c.normal.Z()),
			Gate:    gate,
			depth:   toEye.Len(),
		})
	}
	return faces
}
