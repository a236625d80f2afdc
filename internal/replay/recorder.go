package replay

import (
	"time"

	"github.com/vovakirdan/flappy-duo/internal/games/flappyduo"
)

// Recorder captures a session through the flappyduo.Recorder hook. One
// recorder can be reused across games; Begin drops the previous record.
type Recorder struct {
	difficulty string
	now        func() time.Time
	current    Record
	done       bool
}

// NewRecorder creates a recorder that tags records with a difficulty label.
func NewRecorder(difficulty string) *Recorder {
	return &Recorder{
		difficulty: difficulty,
		now:        time.Now,
	}
}

// Begin starts a new record.
func (r *Recorder) Begin(seed int64, names [flappyduo.NumPlayers]string) {
	r.current = Record{
		Version:    Version,
		Seed:       seed,
		Difficulty: r.difficulty,
		Names:      names,
		Inputs:     make([]Input, 0, 256),
	}
	r.done = false
}

// Input appends the jump edges of one tick.
func (r *Recorder) Input(tick int, jumps [flappyduo.NumPlayers]bool) {
	if r.done || !(jumps[0] || jumps[1]) {
		return
	}
	r.current.Inputs = append(r.current.Inputs, Input{Tick: tick, P1: jumps[0], P2: jumps[1]})
}

// End seals the record with the final outcome.
func (r *Recorder) End(final flappyduo.Snapshot) {
	r.current.Ticks = final.Tick
	r.current.Scores = final.Scores
	r.current.RecordedAt = r.now().UTC()
	r.done = true
}

// Done reports whether the last begun game has finished.
func (r *Recorder) Done() bool {
	return r.done
}

// Record returns the last finished record. ok is false while a game is
// still running or before any game was recorded.
func (r *Recorder) Record() (rec Record, ok bool) {
	if !r.done {
		return Record{}, false
	}
	rec = r.current
	rec.Inputs = append([]Input(nil), r.current.Inputs...)
	return rec, true
}

var _ flappyduo.Recorder = (*Recorder)(nil)
