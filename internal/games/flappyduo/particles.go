package flappyduo

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/flappy-duo/internal/core"
)

// Burst sizes and particle tuning.
const (
	JumpBurst     = 5
	CrashBurst    = 20
	ParticleLife  = 20
	ParticleSpeed = 3.0
	particleDecay = 0.95
)

// Particle is a short-lived visual spark in world coordinates.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
	Size    float64
	Color   core.Color
}

// Alpha returns the remaining life as a fraction in [0, 1].
func (p Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

// ParticleSystem turns jump and crash events into particle bursts. It is a
// presentation helper: the simulation never reads it.
type ParticleSystem struct {
	rng       *rand.Rand
	particles []Particle
}

// NewParticleSystem creates an empty system with its own seeded RNG.
func NewParticleSystem(seed int64) *ParticleSystem {
	return &ParticleSystem{
		rng:       rand.New(rand.NewSource(seed)),
		particles: make([]Particle, 0, 64),
	}
}

// React spawns bursts for the events of one tick.
func (ps *ParticleSystem) React(snap Snapshot, ev TickEvents) {
	for i, a := range snap.Actors {
		if ev.Jumped[i] {
			ps.Burst(a.X, a.Y+a.Size/2, core.ColorSpark, JumpBurst)
		}
		if ev.Crashed[i] {
			ps.Burst(a.X, a.Y, core.PlayerColor(i), CrashBurst)
		}
	}
}

// Burst spawns count particles flying out from (x, y) in random directions.
func (ps *ParticleSystem) Burst(x, y int, c core.Color, count int) {
	for range count {
		angle := ps.rng.Float64() * 2 * math.Pi
		ps.particles = append(ps.particles, Particle{
			X:       float64(x),
			Y:       float64(y),
			VX:      math.Cos(angle) * ParticleSpeed,
			VY:      math.Sin(angle) * ParticleSpeed,
			Life:    ParticleLife,
			MaxLife: ParticleLife,
			Size:    ps.rng.Float64()*5 + 2,
			Color:   c,
		})
	}
}

// Update moves, ages and shrinks every particle and drops expired ones.
func (ps *ParticleSystem) Update() {
	kept := ps.particles[:0]
	for _, p := range ps.particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life--
		p.Size *= particleDecay
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	ps.particles = kept
}

// Particles returns the live particles. The slice is reused by Update.
func (ps *ParticleSystem) Particles() []Particle {
	return ps.particles
}

// Clear removes every particle.
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}
