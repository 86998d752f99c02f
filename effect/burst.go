// Package effect implements the particle burst shown when the avatar reaches the exit.
package effect

import (
	"image/color"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/mazeball/simulation"
)

const (
	DefaultLifetime = 2.0
	DefaultSpread   = 1.0
	DefaultRise     = 0.02
)

// Burst is a cloud of points scattered around an anchor that rises and fades out.
type Burst struct {
	points  []mgl64.Vec3
	colour  color.RGBA
	elapsed float64

	lifetime float64
	rise     float64
}

// Update raises every point by the rise distance and advances the fade. It reports true once the
// burst has fully faded.
func (b *Burst) Update(dt float64) bool {
	if b.Done() {
		return true
	}
	b.elapsed += dt
	for i := range b.points {
		b.points[i][1] += b.rise
	}
	return b.Done()
}

// Stop ends the burst immediately.
func (b *Burst) Stop() {
	b.elapsed = max(b.elapsed, b.lifetime)
}

// Done reports whether the burst has fully faded.
func (b *Burst) Done() bool {
	return b.elapsed >= b.lifetime
}

// Opacity returns the current opacity, falling linearly from 1 to 0 over the lifetime.
func (b *Burst) Opacity() float64 {
	return max(0, 1-b.elapsed/b.lifetime)
}

// Colour returns the base colour of the burst.
func (b *Burst) Colour() color.RGBA {
	return b.colour
}

// Points returns the current point positions. The slice must not be modified.
func (b *Burst) Points() []mgl64.Vec3 {
	return b.points
}

// Spawner creates bursts and keeps track of those still visible, so a renderer can draw them.
type Spawner struct {
	Lifetime float64
	Spread   float64
	Rise     float64

	rand   *rand.Rand
	bursts []*Burst
}

var _ simulation.EffectSpawner = (*Spawner)(nil)

// NewSpawner returns a spawner using the default lifetime, spread and rise. The seed makes point
// placement reproducible.
func NewSpawner(seed uint64) *Spawner {
	return &Spawner{
		Lifetime: DefaultLifetime,
		Spread:   DefaultSpread,
		Rise:     DefaultRise,
		rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Spawn scatters count points uniformly within Spread of anchor on every axis.
func (s *Spawner) Spawn(anchor mgl64.Vec3, colour color.RGBA, count int) simulation.Effect {
	b := &Burst{
		points:   make([]mgl64.Vec3, max(count, 0)),
		colour:   colour,
		lifetime: s.Lifetime,
		rise:     s.Rise,
	}
	if b.lifetime <= 0 {
		b.lifetime = DefaultLifetime
	}
	for i := range b.points {
		b.points[i] = anchor.Add(mgl64.Vec3{s.offset(), s.offset(), s.offset()})
	}
	s.bursts = append(s.bursts, b)
	return b
}

// Active returns the bursts that have not finished fading, dropping the rest.
func (s *Spawner) Active() []*Burst {
	n := 0
	for _, b := range s.bursts {
		if !b.Done() {
			s.bursts[n] = b
			n++
		}
	}
	clear(s.bursts[n:])
	s.bursts = s.bursts[:n]
	return s.bursts
}

func (s *Spawner) offset() float64 {
	return (s.rand.Float64()*2 - 1) * s.Spread
}
