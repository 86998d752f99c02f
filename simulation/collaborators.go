package simulation

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// EffectSpawner starts a visual effect when the avatar reaches the exit.
type EffectSpawner interface {
	Spawn(anchor mgl64.Vec3, colour color.RGBA, count int) Effect
}

// Effect is a running visual effect. Update is called once per tick until it reports done. Stop
// ends it early, when the session is reset.
type Effect interface {
	Update(dt float64) (done bool)
	Stop()
}

// Sound is a one-shot audio cue.
type Sound interface {
	Play()
}

// Announcer shows the win announcement. onResume must be called once the player chooses to
// restart; it may be called from any goroutine.
type Announcer interface {
	Announce(onResume func())
}

// NopEffectSpawner spawns effects that finish immediately.
type NopEffectSpawner struct{}

// Spawn ...
func (NopEffectSpawner) Spawn(mgl64.Vec3, color.RGBA, int) Effect { return nopEffect{} }

type nopEffect struct{}

// Update ...
func (nopEffect) Update(float64) bool { return true }

// Stop ...
func (nopEffect) Stop() {}

// NopSound plays nothing.
type NopSound struct{}

// Play ...
func (NopSound) Play() {}

// NopAnnouncer never resumes.
type NopAnnouncer struct{}

// Announce ...
func (NopAnnouncer) Announce(func()) {}

// AnnouncerFunc adapts a function to the Announcer interface.
type AnnouncerFunc func(onResume func())

// Announce ...
func (f AnnouncerFunc) Announce(onResume func()) { f(onResume) }
