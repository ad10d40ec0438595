package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is the recorded outcome of one maze run.
type Run struct {
	ID        string
	GameID    string
	Player    string
	Seed      int64
	Won       bool
	Score     int
	TimeLeft  float64 // Seconds left on the countdown when the run ended
	Duration  time.Duration
	GridW     int
	GridH     int
	CreatedAt time.Time
}

// PlayerStats aggregates a player's runs.
type PlayerStats struct {
	Player       string
	Runs         int
	Wins         int
	BestTimeLeft float64
	LastPlayed   time.Time
}

// WinRate returns the fraction of runs that were won.
func (p PlayerStats) WinRate() float64 {
	if p.Runs == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Runs)
}

// GameStats aggregates all runs of a mode.
type GameStats struct {
	GameID       string
	Runs         int
	Wins         int
	HighScore    int
	BestTimeLeft float64
	LastPlayed   time.Time
}

const runColumns = `id, game_id, player, seed, won, score, time_left, duration_ms, grid_w, grid_h, created_at`

// SaveRun records a finished run and returns its generated ID.
func (s *Store) SaveRun(ctx context.Context, r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, game_id, player, seed, won, score, time_left, duration_ms, grid_w, grid_h)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.Player, r.Seed, r.Won, r.Score, r.TimeLeft,
		r.Duration.Milliseconds(), r.GridW, r.GridH,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

// RecentRuns returns the newest runs of a mode, or of all modes when
// gameID is empty.
func (s *Store) RecentRuns(ctx context.Context, gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE (? = '' OR game_id = ?)
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// BestRuns returns winning runs of a mode ordered by time left, highest first.
func (s *Store) BestRuns(ctx context.Context, gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ? AND won = 1
		 ORDER BY time_left DESC, created_at ASC, rowid ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best runs: %w", err)
	}
	return scanRuns(rows)
}

// PlayerRuns returns the newest runs of one player across all modes.
func (s *Store) PlayerRuns(ctx context.Context, player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE player = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.GameID, &r.Player, &r.Seed, &r.Won, &r.Score,
			&r.TimeLeft, &durationMs, &r.GridW, &r.GridH, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// PlayerStats returns aggregated results for one player.
// A player with no runs yields zero stats, not an error.
func (s *Store) PlayerStats(ctx context.Context, player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(won), 0),
		        COALESCE(MAX(CASE WHEN won = 1 THEN time_left END), 0),
		        MAX(created_at)
		 FROM runs WHERE player = ?`,
		player,
	).Scan(&stats.Runs, &stats.Wins, &stats.BestTimeLeft, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllGameStats returns aggregated results for every mode that has runs.
func (s *Store) AllGameStats(ctx context.Context) (map[string]*GameStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0),
		        COALESCE(MAX(CASE WHEN won = 1 THEN time_left END), 0),
		        MAX(created_at)
		 FROM runs
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.Runs, &gs.Wins, &gs.HighScore, &gs.BestTimeLeft, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearRuns deletes all runs of a mode.
func (s *Store) ClearRuns(ctx context.Context, gameID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// isNoRows reports whether err means an empty result.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
