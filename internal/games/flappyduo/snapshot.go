package flappyduo

// ActorState is a read-only copy of an actor for renderers.
type ActorState struct {
	Name     string
	X, Y     int
	Velocity int
	Size     int
	Alive    bool
}

// ObstacleState is a read-only copy of an obstacle for renderers.
type ObstacleState struct {
	X         int
	GapTop    int
	GapHeight int
	Width     int
	Passed    bool
}

// Snapshot is an immutable view of the session taken between ticks.
// Nothing in it aliases simulation state.
type Snapshot struct {
	Phase         Phase
	Paused        bool
	Tick          int
	Speed         int
	SpawnInterval int
	FieldW        int
	FieldH        int
	ScoringLine   int
	Seed          int64
	Actors        [NumPlayers]ActorState
	Obstacles     []ObstacleState
	Scores        [NumPlayers]int
}

// AliveCount returns how many players are still in play.
func (s Snapshot) AliveCount() int {
	n := 0
	for _, a := range s.Actors {
		if a.Alive {
			n++
		}
	}
	return n
}

// Names returns both player names.
func (s Snapshot) Names() [NumPlayers]string {
	var names [NumPlayers]string
	for i, a := range s.Actors {
		names[i] = a.Name
	}
	return names
}
