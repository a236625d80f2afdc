// Package flappyduo implements a two-player Flappy Bird-style game.
// Two birds fall under gravity and jump on input while gap obstacles scroll
// in from the right at an escalating speed. The simulation is integer-only
// and fully deterministic for a given seed and input sequence.
package flappyduo

import (
	"math/rand"

	"github.com/vovakirdan/flappy-duo/internal/config"
	"github.com/vovakirdan/flappy-duo/internal/core"
)

// World owns the actors and obstacles of one session and advances them one
// fixed tick at a time.
type World struct {
	cfg        config.DuoConfig
	seed       int64
	rng        *rand.Rand
	actors     [NumPlayers]*Actor
	obstacles  []*Obstacle // spawn order
	scores     [NumPlayers]int
	tick       int
	difficulty *config.Escalation
	over       bool
}

// NewWorld creates a fresh world: actors at their start positions, no
// obstacles, zero scores, base speed and spawn interval.
func NewWorld(cfg config.DuoConfig, names [NumPlayers]string, seed int64) *World {
	w := &World{
		cfg:        cfg,
		seed:       seed,
		rng:        rand.New(rand.NewSource(seed)),
		obstacles:  make([]*Obstacle, 0, 8),
		difficulty: config.NewEscalation(cfg.Difficulty),
	}

	starts := [NumPlayers]int{cfg.Actor.StartY1, cfg.Actor.StartY2}
	for i := range NumPlayers {
		w.actors[i] = NewActor(names[i], cfg.Actor.X, starts[i],
			cfg.Actor.Size, cfg.Physics.Gravity, cfg.Physics.JumpImpulse)
	}
	return w
}

// Step advances the simulation by one tick. jumps carries the debounced
// jump edges sampled before this tick. Stepping a finished world does
// nothing.
func (w *World) Step(jumps [NumPlayers]bool) TickEvents {
	var ev TickEvents
	if w.over {
		return ev
	}

	// Input is applied before physics, like a key poll at frame start
	for i, a := range w.actors {
		if jumps[i] {
			ev.Jumped[i] = a.Jump()
		}
	}

	w.tick++
	ev.Escalated = w.difficulty.Observe(w.tick)

	for _, a := range w.actors {
		a.ApplyGravity()
	}

	if w.tick%w.difficulty.SpawnInterval() == 0 {
		w.spawn()
	}

	w.advanceObstacles()
	w.collide(&ev)
	w.score(&ev)

	if w.aliveCount() == 0 {
		w.over = true
		ev.GameOver = true
	}
	return ev
}

// spawn appends one obstacle at the right edge with a uniformly random gap.
func (w *World) spawn() {
	lo := w.cfg.Obstacles.Margin
	hi := w.cfg.Field.Height - w.cfg.Obstacles.GapHeight - w.cfg.Obstacles.Margin
	gapTop := lo
	if hi > lo {
		gapTop = lo + w.rng.Intn(hi-lo+1)
	}
	w.spawnAt(w.cfg.Field.Width, gapTop)
}

func (w *World) spawnAt(x, gapTop int) *Obstacle {
	o := NewObstacle(x, gapTop, w.cfg.Obstacles.GapHeight, w.cfg.Obstacles.Width,
		w.cfg.Field.Height+w.cfg.Obstacles.Overhang)
	w.obstacles = append(w.obstacles, o)
	return o
}

// advanceObstacles moves every obstacle and reaps the ones that left the
// field, keeping the survivors in spawn order.
func (w *World) advanceObstacles() {
	speed := w.difficulty.Speed()
	kept := w.obstacles[:0]
	for _, o := range w.obstacles {
		o.Advance(speed)
		if !o.IsOffscreen() {
			kept = append(kept, o)
		}
	}
	// Drop references held past the new length
	for i := len(kept); i < len(w.obstacles); i++ {
		w.obstacles[i] = nil
	}
	w.obstacles = kept
}

// collide kills actors touching the field boundary or any obstacle.
// Kill is idempotent, so an actor hitting both in one tick dies once.
func (w *World) collide(ev *TickEvents) {
	for i, a := range w.actors {
		if !a.Alive() {
			continue
		}
		box := a.Bounds()

		hit := box.Y <= 0 || box.Bottom() >= w.cfg.Field.Height || w.hitsObstacle(box)
		if hit && a.Kill() {
			ev.Crashed[i] = true
		}
	}
}

func (w *World) hitsObstacle(box core.Rect) bool {
	for _, o := range w.obstacles {
		if o.Collides(box) {
			return true
		}
	}
	return false
}

// score awards a point to every live actor for each obstacle whose
// trailing edge crossed the scoring line.
func (w *World) score(ev *TickEvents) {
	for _, o := range w.obstacles {
		if o.TrailingEdge() >= w.cfg.Scoring.LineX || !o.MarkPassed() {
			continue
		}
		for i, a := range w.actors {
			if a.Alive() {
				w.scores[i]++
				ev.Scored = true
			}
		}
	}
}

func (w *World) aliveCount() int {
	n := 0
	for _, a := range w.actors {
		if a.Alive() {
			n++
		}
	}
	return n
}

// Over reports whether every actor is dead.
func (w *World) Over() bool { return w.over }

// Tick returns the number of ticks simulated so far.
func (w *World) Tick() int { return w.tick }

// Speed returns the current scroll speed.
func (w *World) Speed() int { return w.difficulty.Speed() }

// SpawnInterval returns the current number of ticks between spawns.
func (w *World) SpawnInterval() int { return w.difficulty.SpawnInterval() }

// Scores returns both players' scores.
func (w *World) Scores() [NumPlayers]int { return w.scores }

// Seed returns the RNG seed the world was created with.
func (w *World) Seed() int64 { return w.seed }

// Actor returns the actor for player i (0 or 1).
func (w *World) Actor(i int) *Actor { return w.actors[i] }

// Snapshot copies the world into an immutable view.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:          w.tick,
		Speed:         w.difficulty.Speed(),
		SpawnInterval: w.difficulty.SpawnInterval(),
		FieldW:        w.cfg.Field.Width,
		FieldH:        w.cfg.Field.Height,
		ScoringLine:   w.cfg.Scoring.LineX,
		Seed:          w.seed,
		Scores:        w.scores,
		Obstacles:     make([]ObstacleState, len(w.obstacles)),
	}
	for i, a := range w.actors {
		snap.Actors[i] = ActorState{
			Name:     a.Name(),
			X:        a.X(),
			Y:        a.Y(),
			Velocity: a.Velocity(),
			Size:     a.size,
			Alive:    a.Alive(),
		}
	}
	for i, o := range w.obstacles {
		snap.Obstacles[i] = ObstacleState{
			X:         o.X(),
			GapTop:    o.GapTop(),
			GapHeight: o.GapHeight(),
			Width:     o.Width(),
			Passed:    o.Passed(),
		}
	}
	return snap
}
