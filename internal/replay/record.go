// Package replay records two-player sessions as seed plus jump edges and
// re-simulates them. A world is deterministic for a given configuration,
// seed and input sequence, so that is all a replay needs to store.
package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/flappy-duo/internal/games/flappyduo"
)

// Version is incremented when the record format changes.
const Version = 1

var (
	// ErrIncomplete is returned for records of games that never finished.
	ErrIncomplete = errors.New("replay: record is incomplete")
	// ErrMismatch is returned when a re-simulation disagrees with the
	// recorded outcome.
	ErrMismatch = errors.New("replay: outcome mismatch")
)

// Input is the jump edges of one tick. Ticks without any jump are omitted.
type Input struct {
	Tick int  `json:"t"`
	P1   bool `json:"p1,omitempty"`
	P2   bool `json:"p2,omitempty"`
}

// Jumps returns the edges in the order World.Step takes them.
func (in Input) Jumps() [flappyduo.NumPlayers]bool {
	return [flappyduo.NumPlayers]bool{in.P1, in.P2}
}

// Record is a complete finished game.
type Record struct {
	Version    int                          `json:"version"`
	Seed       int64                        `json:"seed"`
	Difficulty string                       `json:"difficulty,omitempty"`
	Names      [flappyduo.NumPlayers]string `json:"names"`
	Inputs     []Input                      `json:"inputs"`
	Ticks      int                          `json:"ticks"`
	Scores     [flappyduo.NumPlayers]int    `json:"scores"`
	RecordedAt time.Time                    `json:"recorded_at"`
}

// Winner returns the index of the player with the higher score, or -1 on a
// draw.
func (r Record) Winner() int {
	switch {
	case r.Scores[0] > r.Scores[1]:
		return 0
	case r.Scores[1] > r.Scores[0]:
		return 1
	default:
		return -1
	}
}

// Encode serializes the record as JSON.
func (r Record) Encode() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// Decode parses a JSON record and checks its version.
func Decode(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("replay: decode: %w", err)
	}
	if r.Version != Version {
		return Record{}, fmt.Errorf("replay: unsupported version %d (want %d)", r.Version, Version)
	}
	return r, nil
}
