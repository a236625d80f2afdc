package flappyduo

import "math/rand"

// Pilot is a simple computer player used for headless simulation runs and
// long-running tests. It aims for the middle of the next gap and flaps only
// while falling below that line.
type Pilot struct {
	rng   *rand.Rand
	skill float64 // Probability of acting on a decision in a given tick (0-1)
	slack int     // Units below the target line tolerated before flapping
}

// NewPilot creates a pilot. skill is clamped to [0, 1].
func NewPilot(seed int64, skill float64) *Pilot {
	return &Pilot{
		rng:   rand.New(rand.NewSource(seed)),
		skill: min(max(skill, 0), 1),
		slack: 10,
	}
}

// Decide returns whether the given player should jump this tick.
func (p *Pilot) Decide(snap Snapshot, player int) bool {
	a := snap.Actors[player]
	if !a.Alive || a.Velocity < 0 {
		return false
	}

	target := p.targetY(snap, a)
	if a.Y <= target+p.slack {
		return false
	}

	// Imperfect reaction: sometimes the flap comes a tick late
	return p.rng.Float64() < p.skill
}

// targetY is the actor top-edge y that centres it in the next gap ahead, or
// in the field when no obstacle is ahead.
func (p *Pilot) targetY(snap Snapshot, a ActorState) int {
	for _, o := range snap.Obstacles {
		if o.X+o.Width >= a.X {
			return o.GapTop + o.GapHeight/2 - a.Size/2
		}
	}
	return snap.FieldH/2 - a.Size/2
}
