package flappyduo

// NumPlayers is the number of birds in a session.
const NumPlayers = 2

// TickEvents reports what happened during one tick, for the presentation
// and audio collaborators to react to. Each flag is set at most once per
// tick.
type TickEvents struct {
	Jumped    [NumPlayers]bool // A jump took effect for the player
	Crashed   [NumPlayers]bool // The player died this tick
	Scored    bool             // At least one player scored this tick
	Escalated bool             // Difficulty ratchet moved this tick
	GameOver  bool             // The last live player died this tick
}

// Any reports whether any event fired.
func (e TickEvents) Any() bool {
	for i := range NumPlayers {
		if e.Jumped[i] || e.Crashed[i] {
			return true
		}
	}
	return e.Scored || e.Escalated || e.GameOver
}
