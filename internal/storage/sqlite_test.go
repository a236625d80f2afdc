package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/flappy-duo/internal/replay"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(seed int64, s1, s2, ticks int) replay.Record {
	return replay.Record{
		Version:    replay.Version,
		Seed:       seed,
		Difficulty: "normal",
		Names:      [2]string{"Ann", "Bob"},
		Inputs:     []replay.Input{{Tick: 3, P1: true}, {Tick: 9, P2: true}},
		Ticks:      ticks,
		Scores:     [2]int{s1, s2},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveReplay(testRecord(1, 2, 3, 400)); err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	entries, err := store.ListReplays(10)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 replay after reopen, got %d", len(entries))
	}
}

func TestStoreSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)

	rec := testRecord(42, 5, 7, 1234)
	id, err := store.SaveReplay(rec)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	got, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if got.Seed != 42 || got.Ticks != 1234 || got.Scores != rec.Scores || got.Names != rec.Names {
		t.Errorf("loaded record = %+v", got)
	}
	if len(got.Inputs) != 2 || got.Inputs[1] != rec.Inputs[1] {
		t.Errorf("loaded inputs = %v", got.Inputs)
	}
}

func TestStoreReplayNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Replay(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replay(99) error = %v, expected ErrNotFound", err)
	}
	if err := store.DeleteReplay(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteReplay(99) error = %v, expected ErrNotFound", err)
	}
}

func TestStoreListReplays(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveReplay(testRecord(int64(i), i, 4-i, 100*(i+1))); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}

	entries, err := store.ListReplays(3)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 replays with limit, got %d", len(entries))
	}

	// Newest first
	if entries[0].Seed != 4 || entries[1].Seed != 3 || entries[2].Seed != 2 {
		t.Errorf("Replays not newest first: %d %d %d", entries[0].Seed, entries[1].Seed, entries[2].Seed)
	}
	e := entries[0]
	if e.Player1 != "Ann" || e.Player2 != "Bob" || e.Score1 != 4 || e.Score2 != 0 || e.Ticks != 500 {
		t.Errorf("entry = %+v", e)
	}
	if e.Winner() != "Ann" {
		t.Errorf("Winner() = %q", e.Winner())
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreDeleteReplay(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay(testRecord(1, 0, 0, 24))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteReplay(id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.Replay(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted replay still loads: %v", err)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if empty.Games != 0 || empty.BestScore != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveReplay(testRecord(1, 3, 9, 100))
	store.SaveReplay(testRecord(2, 4, 1, 300))

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Games != 2 || st.BestScore != 9 || st.LongestRun != 300 || st.AvgTicks != 200 {
		t.Errorf("stats = %+v", st)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/.flappyduo/duo.db")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, home) || !strings.HasSuffix(got, filepath.Join(".flappyduo", "duo.db")) {
		t.Errorf("ExpandPath() = %q", got)
	}

	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed: %q", got)
	}
}
