// Package storage provides SQLite-based persistence for the game history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// End reasons stored with a game record.
const (
	EndCompleted = "completed" // Side to move had no legal move
	EndAbandoned = "abandoned" // Player quit or restarted mid-game
)

// ErrNotFound is returned by GameByID when no record matches.
var ErrNotFound = errors.New("storage: game not found")

// Store manages the SQLite database connection for the game history.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished or abandoned game.
type GameRecord struct {
	ID         string // UUID, assigned by SaveGame when empty
	Variant    string
	WhiteScore int
	BlackScore int
	Winner     string // "white", "black", or empty for a draw or abandoned game
	Moves      int
	Captures   int
	BonusMoves int
	EndReason  string
	Duration   int // Duration in seconds
	Player     string
	CreatedAt  time.Time
}

// VariantStats contains aggregated statistics for one variant.
type VariantStats struct {
	Variant    string
	Games      int
	Completed  int
	WhiteWins  int
	BlackWins  int
	Draws      int
	AvgMoves   float64
	MaxCapture int
	LastPlayed time.Time
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			white_score INTEGER NOT NULL DEFAULT 0,
			black_score INTEGER NOT NULL DEFAULT 0,
			winner TEXT,
			moves INTEGER NOT NULL DEFAULT 0,
			captures INTEGER NOT NULL DEFAULT 0,
			bonus_moves INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_variant ON games(variant);
		CREATE INDEX IF NOT EXISTS idx_games_created ON games(created_at DESC);
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

// SaveGame records a game and returns its ID. A new UUID is generated when
// rec.ID is empty.
func (s *Store) SaveGame(rec GameRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.EndReason == "" {
		rec.EndReason = EndCompleted
	}

	var winner sql.NullString
	if rec.Winner != "" {
		winner = sql.NullString{String: rec.Winner, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO games
		 (id, variant, white_score, black_score, winner, moves, captures, bonus_moves, end_reason, duration_secs, player)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Variant,
		rec.WhiteScore,
		rec.BlackScore,
		winner,
		rec.Moves,
		rec.Captures,
		rec.BonusMoves,
		rec.EndReason,
		rec.Duration,
		rec.Player,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}

	return rec.ID, nil
}

const selectGame = `SELECT id, variant, white_score, black_score, winner, moves, captures,
		        bonus_moves, end_reason, duration_secs, player, created_at
		 FROM games`

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (GameRecord, error) {
	var rec GameRecord
	var winner sql.NullString
	var createdAt any

	err := row.Scan(
		&rec.ID,
		&rec.Variant,
		&rec.WhiteScore,
		&rec.BlackScore,
		&winner,
		&rec.Moves,
		&rec.Captures,
		&rec.BonusMoves,
		&rec.EndReason,
		&rec.Duration,
		&rec.Player,
		&createdAt,
	)
	if err != nil {
		return rec, err
	}

	if winner.Valid {
		rec.Winner = winner.String
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and the string form SQLite may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// GameByID retrieves a game by its ID. Returns ErrNotFound if absent.
func (s *Store) GameByID(id string) (*GameRecord, error) {
	rec, err := scanGame(s.db.QueryRow(selectGame+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}
	return &rec, nil
}

// RecentGames retrieves the most recent games, newest first. An empty
// variant matches every variant.
func (s *Store) RecentGames(variant string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var (
		rows *sql.Rows
		err  error
	)
	if variant == "" {
		rows, err = s.db.Query(selectGame+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(selectGame+` WHERE variant = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`, variant, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var results []GameRecord
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// DeleteGames removes every record of a variant, or all records when variant
// is empty. Returns the number of deleted games.
func (s *Store) DeleteGames(variant string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if variant == "" {
		res, err = s.db.Exec("DELETE FROM games")
	} else {
		res, err = s.db.Exec("DELETE FROM games WHERE variant = ?", variant)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot delete games: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted games: %w", err)
	}
	return n, nil
}

// Stats returns aggregated statistics per variant, keyed by variant ID.
func (s *Store) Stats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant,
		        COUNT(*),
		        SUM(CASE WHEN end_reason = 'completed' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN winner = 'white' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN winner = 'black' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN end_reason = 'completed' AND winner IS NULL THEN 1 ELSE 0 END),
		        AVG(moves),
		        MAX(captures),
		        MAX(created_at)
		 FROM games
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var vs VariantStats
		var lastPlayed any
		if err := rows.Scan(
			&vs.Variant,
			&vs.Games,
			&vs.Completed,
			&vs.WhiteWins,
			&vs.BlackWins,
			&vs.Draws,
			&vs.AvgMoves,
			&vs.MaxCapture,
			&lastPlayed,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.LastPlayed = parseTime(lastPlayed)
		stats[vs.Variant] = &vs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
