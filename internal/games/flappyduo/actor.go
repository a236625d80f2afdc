package flappyduo

import "github.com/vovakirdan/flappy-duo/internal/core"

// Actor is one player's bird: a square body that falls under gravity and
// jumps on input. Its x never changes once placed; the World enforces the
// floor and ceiling.
type Actor struct {
	name    string
	x, y    int
	vy      int
	alive   bool
	size    int
	gravity int
	impulse int
}

// NewActor places a live actor at (x, y) with zero velocity.
func NewActor(name string, x, y, size, gravity, impulse int) *Actor {
	return &Actor{
		name:    name,
		x:       x,
		y:       y,
		alive:   true,
		size:    size,
		gravity: gravity,
		impulse: impulse,
	}
}

// ApplyGravity integrates one tick: velocity first, then position.
// Dead actors hold their last position and velocity.
func (a *Actor) ApplyGravity() {
	if !a.alive {
		return
	}
	a.vy += a.gravity
	a.y += a.vy
}

// Jump sets the velocity to the jump impulse. It reports whether the jump
// happened; dead actors cannot jump.
func (a *Actor) Jump() bool {
	if !a.alive {
		return false
	}
	a.vy = a.impulse
	return true
}

// Kill marks the actor dead. It reports true only on the alive->dead
// transition, so callers can emit exactly one crash per death.
func (a *Actor) Kill() bool {
	if !a.alive {
		return false
	}
	a.alive = false
	return true
}

// Reset brings the actor back to life at startY with zero velocity.
func (a *Actor) Reset(startY int) {
	a.y = startY
	a.vy = 0
	a.alive = true
}

// Bounds returns the actor's hit-box.
func (a *Actor) Bounds() core.Rect {
	return core.NewRect(a.x, a.y, a.size, a.size)
}

// Name returns the player's display name.
func (a *Actor) Name() string { return a.name }

// X returns the fixed horizontal position.
func (a *Actor) X() int { return a.x }

// Y returns the vertical position of the top edge.
func (a *Actor) Y() int { return a.y }

// Velocity returns the vertical velocity (negative = up).
func (a *Actor) Velocity() int { return a.vy }

// Alive reports whether the actor is still in play.
func (a *Actor) Alive() bool { return a.alive }
