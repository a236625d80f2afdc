package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/flappy-duo/internal/games/flappyduo"
)

func testSnapshot(tick, s1, s2 int) flappyduo.Snapshot {
	snap := flappyduo.Snapshot{
		Tick:          tick,
		Speed:         6,
		SpawnInterval: 95,
		Seed:          7,
		Scores:        [2]int{s1, s2},
		Obstacles:     make([]flappyduo.ObstacleState, 3),
	}
	snap.Actors[0] = flappyduo.ActorState{Name: "Ann", Y: 120, Alive: true}
	snap.Actors[1] = flappyduo.ActorState{Name: "Bob", Y: 480}
	return snap
}

func TestNewRunSummaryWinner(t *testing.T) {
	tests := []struct {
		s1, s2   int
		expected string
	}{
		{3, 1, "Ann"},
		{1, 3, "Bob"},
		{2, 2, "draw"},
	}
	for _, tc := range tests {
		r := NewRunSummary(1, testSnapshot(600, tc.s1, tc.s2))
		if r.Winner != tc.expected {
			t.Errorf("scores %d-%d: Winner = %q, expected %q", tc.s1, tc.s2, r.Winner, tc.expected)
		}
		if r.Ticks != 600 || r.Seed != 7 || r.FinalSpeed != 6 {
			t.Errorf("summary = %+v", r)
		}
	}
}

func TestOutputWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	out, err := NewOutput(dir, true)
	if err != nil {
		t.Fatalf("NewOutput: %v", err)
	}

	var ev flappyduo.TickEvents
	ev.Jumped[0] = true
	batch := []TickRecord{
		NewTickRecord(1, testSnapshot(1, 0, 0), ev),
		NewTickRecord(1, testSnapshot(2, 0, 0), flappyduo.TickEvents{}),
	}
	if err := out.WriteTicks(batch); err != nil {
		t.Fatal(err)
	}
	if err := out.WriteTicks(batch[:1]); err != nil {
		t.Fatal(err)
	}
	for run := 1; run <= 3; run++ {
		if err := out.WriteSummary(NewRunSummary(run, testSnapshot(100*run, run, 1))); err != nil {
			t.Fatal(err)
		}
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, TicksFile))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("ticks.csv has %d lines, expected header + 3 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "run,tick,speed") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "run,tick") != 1 {
		t.Error("header written more than once")
	}

	f, err := os.Open(filepath.Join(dir, SummaryFile))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	runs, err := ReadSummaries(f)
	if err != nil {
		t.Fatalf("ReadSummaries: %v", err)
	}
	if len(runs) != 3 || runs[2].Ticks != 300 || runs[2].Winner != "Ann" {
		t.Errorf("runs = %+v", runs)
	}
}

func TestOutputWithoutTrace(t *testing.T) {
	dir := t.TempDir()
	out, err := NewOutput(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	if err := out.WriteTicks([]TickRecord{{Run: 1}}); err != nil {
		t.Errorf("WriteTicks without trace: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, TicksFile)); !os.IsNotExist(err) {
		t.Error("ticks.csv should not exist when tracing is off")
	}
}

func TestNilOutputIsNoop(t *testing.T) {
	out, err := NewOutput("", true)
	if err != nil || out != nil {
		t.Fatalf("NewOutput(\"\") = %v, %v", out, err)
	}
	if err := out.WriteSummary(RunSummary{}); err != nil {
		t.Error(err)
	}
	if err := out.WriteTicks([]TickRecord{{}}); err != nil {
		t.Error(err)
	}
	if err := out.Close(); err != nil {
		t.Error(err)
	}
}

func TestSummarize(t *testing.T) {
	runs := []RunSummary{
		{Ticks: 300, Score1: 2, Score2: 1},
		{Ticks: 100, Score1: 0, Score2: 0},
		{Ticks: 500, Score1: 4, Score2: 6},
		{Ticks: 200, Score1: 1, Score2: 1},
		{Ticks: 400, Score1: 3, Score2: 0},
	}

	s := Summarize(runs)
	if s.Runs != 5 {
		t.Errorf("Runs = %d", s.Runs)
	}
	if s.Ticks.Mean != 300 || s.Ticks.Median != 300 || s.Ticks.Min != 100 || s.Ticks.Max != 500 {
		t.Errorf("Ticks = %+v", s.Ticks)
	}
	if math.Abs(s.Ticks.StdDev-math.Sqrt(25000)) > 1e-9 {
		t.Errorf("Ticks.StdDev = %v", s.Ticks.StdDev)
	}
	if s.Ticks.P90 != 500 {
		t.Errorf("Ticks.P90 = %v", s.Ticks.P90)
	}
	if s.Score.Max != 6 || s.Score.Median != 2 {
		t.Errorf("Score = %+v", s.Score)
	}
	if s.Wins != [2]int{2, 1} || s.Draws != 2 {
		t.Errorf("Wins = %v Draws = %d", s.Wins, s.Draws)
	}

	// Input order is preserved
	if runs[0].Ticks != 300 {
		t.Error("Summarize must not reorder its input")
	}
}

func TestSummarizeSmallBatches(t *testing.T) {
	if s := Summarize(nil); s.Runs != 0 || s.Ticks.Mean != 0 {
		t.Errorf("empty batch = %+v", s)
	}

	s := Summarize([]RunSummary{{Ticks: 42, Score1: 1}})
	if s.Ticks.Mean != 42 || s.Ticks.StdDev != 0 || s.Ticks.Median != 42 {
		t.Errorf("single run = %+v", s.Ticks)
	}
	if !strings.Contains(s.Ticks.String(), "mean=42.0") {
		t.Errorf("String() = %q", s.Ticks.String())
	}
}
