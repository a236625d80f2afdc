// Package telemetry writes per-tick traces and per-run summaries of
// headless simulation batches as CSV, and aggregates run statistics.
package telemetry

import (
	"github.com/vovakirdan/flappy-duo/internal/games/flappyduo"
)

// TickRecord is one row of a tick trace.
type TickRecord struct {
	Run           int  `csv:"run"`
	Tick          int  `csv:"tick"`
	Speed         int  `csv:"speed"`
	SpawnInterval int  `csv:"spawn_interval"`
	Obstacles     int  `csv:"obstacles"`
	Y1            int  `csv:"y1"`
	Y2            int  `csv:"y2"`
	Alive1        bool `csv:"alive1"`
	Alive2        bool `csv:"alive2"`
	Jump1         bool `csv:"jump1"`
	Jump2         bool `csv:"jump2"`
	Score1        int  `csv:"score1"`
	Score2        int  `csv:"score2"`
}

// NewTickRecord builds a trace row from a post-tick snapshot and the events
// of that tick.
func NewTickRecord(run int, snap flappyduo.Snapshot, ev flappyduo.TickEvents) TickRecord {
	return TickRecord{
		Run:           run,
		Tick:          snap.Tick,
		Speed:         snap.Speed,
		SpawnInterval: snap.SpawnInterval,
		Obstacles:     len(snap.Obstacles),
		Y1:            snap.Actors[0].Y,
		Y2:            snap.Actors[1].Y,
		Alive1:        snap.Actors[0].Alive,
		Alive2:        snap.Actors[1].Alive,
		Jump1:         ev.Jumped[0],
		Jump2:         ev.Jumped[1],
		Score1:        snap.Scores[0],
		Score2:        snap.Scores[1],
	}
}

// RunSummary is one row of the run summary file.
type RunSummary struct {
	Run        int    `csv:"run"`
	Seed       int64  `csv:"seed"`
	Ticks      int    `csv:"ticks"`
	Score1     int    `csv:"score1"`
	Score2     int    `csv:"score2"`
	Winner     string `csv:"winner"`
	FinalSpeed int    `csv:"final_speed"`
}

// NewRunSummary builds a summary row from the final snapshot of a run.
func NewRunSummary(run int, final flappyduo.Snapshot) RunSummary {
	winner := "draw"
	switch {
	case final.Scores[0] > final.Scores[1]:
		winner = final.Actors[0].Name
	case final.Scores[1] > final.Scores[0]:
		winner = final.Actors[1].Name
	}
	return RunSummary{
		Run:        run,
		Seed:       final.Seed,
		Ticks:      final.Tick,
		Score1:     final.Scores[0],
		Score2:     final.Scores[1],
		Winner:     winner,
		FinalSpeed: final.Speed,
	}
}

// BestScore returns the higher of the two scores.
func (r RunSummary) BestScore() int {
	return max(r.Score1, r.Score2)
}
