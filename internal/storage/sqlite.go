// Package storage provides SQLite-based persistence for the scoreboard:
// completed level attempts and final game scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arcade3d/internal/world"
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a final game score.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// LevelRecord is a stored level attempt.
type LevelRecord struct {
	ID               int64
	GameID           string
	LevelID          string
	Score            int
	Won              bool
	TimeRemaining    *float64 // nil for levels without a time limit
	TimeToComplete   float64
	EnemiesDestroyed int
	LivesLeft        int
	Criteria         string // the winning or failing criteria
	CreatedAt        time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			time_remaining_secs REAL,
			time_to_complete_secs REAL NOT NULL DEFAULT 0,
			enemies_destroyed INTEGER NOT NULL DEFAULT 0,
			lives_left INTEGER NOT NULL DEFAULT 0,
			criteria TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_level ON level_results(game_id, level_id);
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

// SaveScore records a final game score.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)",
		gameID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveLevelResult records one completed level attempt.
// Returns the ID of the inserted record.
func (s *Store) SaveLevelResult(gameID string, r world.LevelResults) (int64, error) {
	var remaining sql.NullFloat64
	if !math.IsInf(r.TimeRemainingSec, 0) && !math.IsNaN(r.TimeRemainingSec) {
		remaining = sql.NullFloat64{Float64: r.TimeRemainingSec, Valid: true}
	}

	criteria := ""
	switch {
	case r.WinningCriteria != nil:
		criteria = r.WinningCriteria.String()
	case r.FailingCriteria != nil:
		criteria = r.FailingCriteria.String()
	}

	res, err := s.db.Exec(
		`INSERT INTO level_results
		 (game_id, level_id, score, won, time_remaining_secs, time_to_complete_secs, enemies_destroyed, lives_left, criteria)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID,
		r.ID,
		r.Score,
		r.Won,
		remaining,
		r.TimeToCompleteSec,
		r.EnemiesDestroyed,
		r.LivesLeft,
		criteria,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N final scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest final score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

const levelColumns = `id, game_id, level_id, score, won, time_remaining_secs,
		        time_to_complete_secs, enemies_destroyed, lives_left, criteria, created_at`

// BestLevelResults returns, for every level of the game with a won
// attempt, the attempt with the highest score (fastest on ties).
// Results are ordered by level id.
func (s *Store) BestLevelResults(gameID string) ([]LevelRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+levelColumns+`
		 FROM level_results r
		 WHERE game_id = ? AND won = 1 AND id = (
			SELECT id FROM level_results b
			WHERE b.game_id = r.game_id AND b.level_id = r.level_id AND b.won = 1
			ORDER BY b.score DESC, b.time_to_complete_secs ASC, b.id ASC
			LIMIT 1
		 )
		 ORDER BY level_id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best results: %w", err)
	}
	return scanLevelRecords(rows)
}

// LevelHistory returns the most recent attempts at a level.
func (s *Store) LevelHistory(gameID, levelID string, limit int) ([]LevelRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+levelColumns+`
		 FROM level_results
		 WHERE game_id = ? AND level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level history: %w", err)
	}
	return scanLevelRecords(rows)
}

func scanLevelRecords(rows *sql.Rows) ([]LevelRecord, error) {
	defer rows.Close()

	var records []LevelRecord
	for rows.Next() {
		var r LevelRecord
		var remaining sql.NullFloat64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.LevelID,
			&r.Score,
			&r.Won,
			&remaining,
			&r.TimeToComplete,
			&r.EnemiesDestroyed,
			&r.LivesLeft,
			&r.Criteria,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if remaining.Valid {
			v := remaining.Float64
			r.TimeRemaining = &v
		}
		r.CreatedAt = parseTimestamp(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// ClearScores deletes all scores and level results for the given game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM level_results WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear level results: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Attempts   int
	Wins       int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// GetGameStats aggregates the level attempts of a game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM level_results WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Attempts, &stats.Wins, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM level_results WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
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
