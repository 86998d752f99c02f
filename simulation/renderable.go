package simulation

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mazeball/input"
)

// RenderableState is the snapshot of a tick handed to rendering and UI collaborators.
type RenderableState struct {
	Tick  uint64
	Phase Phase
	// Reset is set when the tick began by applying a resume request.
	Reset bool
	// Dt is the step actually integrated, after clamping.
	Dt     float64
	Intent input.Intent

	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	Orientation mgl64.Quat
	Grounded    bool

	CameraPosition mgl64.Vec3
	CameraTarget   mgl64.Vec3

	ActiveEffects int
}

// Won reports whether the snapshot was taken in the Won phase.
func (r RenderableState) Won() bool {
	return r.Phase == PhaseWon
}

func (s *State) renderable(dt float64, intent input.Intent) RenderableState {
	return RenderableState{
		Tick:           s.tick,
		Phase:          s.phase,
		Dt:             dt,
		Intent:         intent,
		Position:       s.avatar.Position,
		Velocity:       s.avatar.Velocity,
		Orientation:    s.avatar.Orientation,
		Grounded:       s.avatar.Grounded,
		CameraPosition: s.camera.Position(),
		CameraTarget:   s.camera.Target(),
		ActiveEffects:  len(s.effects),
	}
}
