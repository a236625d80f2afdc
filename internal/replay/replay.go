package replay

import (
	"fmt"

	"github.com/vovakirdan/flappy-duo/internal/config"
	"github.com/vovakirdan/flappy-duo/internal/games/flappyduo"
)

// Replay re-simulates a record on a fresh world and returns the final
// snapshot. The world runs until it is over or reaches the recorded tick
// count, whichever comes first.
func Replay(cfg config.DuoConfig, rec Record) (flappyduo.Snapshot, error) {
	if rec.Ticks <= 0 {
		return flappyduo.Snapshot{}, ErrIncomplete
	}

	w := flappyduo.NewWorld(cfg, rec.Names, rec.Seed)
	next := 0
	for !w.Over() && w.Tick() < rec.Ticks {
		tick := w.Tick() + 1

		var jumps [flappyduo.NumPlayers]bool
		if next < len(rec.Inputs) {
			in := rec.Inputs[next]
			if in.Tick < tick {
				return flappyduo.Snapshot{}, fmt.Errorf("replay: input for tick %d out of order", in.Tick)
			}
			if in.Tick == tick {
				jumps = in.Jumps()
				next++
			}
		}
		w.Step(jumps)
	}

	if next < len(rec.Inputs) {
		return flappyduo.Snapshot{}, fmt.Errorf("replay: %d inputs after the game ended at tick %d",
			len(rec.Inputs)-next, w.Tick())
	}
	return w.Snapshot(), nil
}

// Verify re-simulates a record and checks that it ends at the recorded tick
// with the recorded scores.
func Verify(cfg config.DuoConfig, rec Record) error {
	snap, err := Replay(cfg, rec)
	if err != nil {
		return err
	}
	if snap.AliveCount() != 0 || snap.Tick != rec.Ticks || snap.Scores != rec.Scores {
		return fmt.Errorf("%w: recorded tick %d scores %v, got tick %d scores %v (alive %d)",
			ErrMismatch, rec.Ticks, rec.Scores, snap.Tick, snap.Scores, snap.AliveCount())
	}
	return nil
}
