// Package storage provides SQLite-based persistence for game replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/flappy-duo/internal/replay"
)

// ErrNotFound is returned when a replay ID does not exist.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplayEntry is the listing view of a stored replay, without its inputs.
type ReplayEntry struct {
	ID         int64
	Seed       int64
	Difficulty string
	Player1    string
	Player2    string
	Score1     int
	Score2     int
	Ticks      int
	CreatedAt  time.Time
}

// Winner returns the winning player's name, or "" on a draw.
func (e ReplayEntry) Winner() string {
	switch {
	case e.Score1 > e.Score2:
		return e.Player1
	case e.Score2 > e.Score1:
		return e.Player2
	default:
		return ""
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			player1 TEXT NOT NULL,
			player2 TEXT NOT NULL,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL,
			record TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a finished record and returns its ID.
func (s *Store) SaveReplay(rec replay.Record) (int64, error) {
	data, err := rec.Encode()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO replays
		 (seed, difficulty, player1, player2, score1, score2, ticks, record)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Seed, rec.Difficulty,
		rec.Names[0], rec.Names[1],
		rec.Scores[0], rec.Scores[1],
		rec.Ticks, string(data),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Replay loads the full record with the given ID.
func (s *Store) Replay(id int64) (replay.Record, error) {
	var data string
	err := s.db.QueryRow("SELECT record FROM replays WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Record{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return replay.Record{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	rec, err := replay.Decode([]byte(data))
	if err != nil {
		return replay.Record{}, fmt.Errorf("storage: replay %d: %w", id, err)
	}
	return rec, nil
}

// ListReplays returns the most recent replays first.
func (s *Store) ListReplays(limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, difficulty, player1, player2, score1, score2, ticks, created_at
		 FROM replays
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplayEntry
	for rows.Next() {
		var e ReplayEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.Seed, &e.Difficulty,
			&e.Player1, &e.Player2,
			&e.Score1, &e.Score2,
			&e.Ticks, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// DeleteReplay removes a replay. Deleting a missing ID returns ErrNotFound.
func (s *Store) DeleteReplay(id int64) error {
	result, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// Stats contains aggregated statistics over all stored replays.
type Stats struct {
	Games      int
	BestScore  int
	LongestRun int // ticks
	AvgTicks   float64
	LastPlayed time.Time
}

// Stats returns aggregated statistics over all stored replays.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	var best, longest sql.NullInt64
	var avg sql.NullFloat64
	var last any

	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(MAX(score1, score2)), MAX(ticks), AVG(ticks), MAX(created_at)
		 FROM replays`,
	).Scan(&st.Games, &best, &longest, &avg, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	st.BestScore = int(best.Int64)
	st.LongestRun = int(longest.Int64)
	st.AvgTicks = avg.Float64
	st.LastPlayed = parseTime(last)
	return st, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
