package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Wager statuses.
const (
	WagerOpen    = "open"
	WagerWon     = "won"
	WagerLost    = "lost"
	WagerClaimed = "claimed"
)

// Wager is one paid entry into the wagered mode. Amounts are in wei.
type Wager struct {
	ID        string
	Player    string
	Fee       int64
	Payout    int64
	Status    string
	CreatedAt time.Time
	SettledAt time.Time // zero while open
}

const wagerColumns = `id, player, fee, payout, status, created_at, settled_at`

// Pool refusals returned by StartWager and ClaimWager.
var (
	ErrNoPool    = errors.New("storage: prize pool is not seeded")
	ErrPoolShort = errors.New("storage: prize pool cannot cover the debit")
)

// StartWager stores a new open wager and credits its fee to the pool in one
// transaction, returning the new balance. An empty ID is filled with a UUID.
// On error neither the wager nor the pool change.
func (s *Store) StartWager(ctx context.Context, w *Wager) (int64, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	w.Status = WagerOpen

	var balance int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO wagers (id, player, fee, payout, status) VALUES (?, ?, ?, ?, ?)`,
			w.ID, w.Player, w.Fee, w.Payout, w.Status,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot insert wager: %w", err)
		}
		balance, err = adjustPool(ctx, tx, w.Fee)
		return err
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// ClaimWager marks a won wager claimed and debits its payout from the pool
// in one transaction, returning the new balance. A pool that cannot cover
// the payout yields ErrPoolShort and leaves the wager claimable.
func (s *Store) ClaimWager(ctx context.Context, id string) (int64, error) {
	var balance int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE wagers SET status = ?, settled_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
			WagerClaimed, id, WagerWon,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot claim wager: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("storage: wager %s is not claimable: %w", id, sql.ErrNoRows)
		}

		var payout int64
		if err := tx.QueryRowContext(ctx, `SELECT payout FROM wagers WHERE id = ?`, id).Scan(&payout); err != nil {
			return fmt.Errorf("storage: cannot query wager: %w", err)
		}
		balance, err = adjustPool(ctx, tx, -payout)
		return err
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// OpenWager returns the player's unsettled wager, or nil if there is none.
func (s *Store) OpenWager(ctx context.Context, player string) (*Wager, error) {
	return s.wagerByStatus(ctx, player, WagerOpen)
}

// ClaimableWager returns the player's oldest won, unclaimed wager, or nil.
func (s *Store) ClaimableWager(ctx context.Context, player string) (*Wager, error) {
	return s.wagerByStatus(ctx, player, WagerWon)
}

func (s *Store) wagerByStatus(ctx context.Context, player, status string) (*Wager, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+wagerColumns+`
		 FROM wagers
		 WHERE player = ? AND status = ?
		 ORDER BY created_at ASC, rowid ASC
		 LIMIT 1`,
		player, status,
	)

	w, err := scanWager(row)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query wager: %w", err)
	}
	return w, nil
}

// SettleWager moves a wager to a new status and stamps settled_at.
func (s *Store) SettleWager(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE wagers SET status = ?, settled_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot settle wager: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: cannot settle wager %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

// Wagers returns a player's wagers, newest first. An empty player lists everyone.
func (s *Store) Wagers(ctx context.Context, player string, limit int) ([]Wager, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wagerColumns+`
		 FROM wagers
		 WHERE (? = '' OR player = ?)
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query wagers: %w", err)
	}
	defer rows.Close()

	var wagers []Wager
	for rows.Next() {
		w, err := scanWager(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		wagers = append(wagers, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return wagers, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWager(row rowScanner) (*Wager, error) {
	var w Wager
	var createdAt, settledAt any
	if err := row.Scan(&w.ID, &w.Player, &w.Fee, &w.Payout, &w.Status, &createdAt, &settledAt); err != nil {
		return nil, err
	}
	w.CreatedAt = parseTime(createdAt)
	w.SettledAt = parseTime(settledAt)
	return &w, nil
}

// PoolBalance returns the prize pool in wei. An unseeded pool is empty.
func (s *Store) PoolBalance(ctx context.Context) (int64, error) {
	var balance int64
	err := s.db.QueryRowContext(ctx, `SELECT balance FROM pool WHERE id = 1`).Scan(&balance)
	if isNoRows(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query pool: %w", err)
	}
	return balance, nil
}

// SeedPool sets the initial balance once; later calls leave it untouched.
func (s *Store) SeedPool(ctx context.Context, balance int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pool (id, balance) VALUES (1, ?) ON CONFLICT(id) DO NOTHING`,
		balance,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot seed pool: %w", err)
	}
	return nil
}

// adjustPool adds delta (possibly negative) to a seeded pool inside tx and
// returns the new balance. The balance never goes below zero.
func adjustPool(ctx context.Context, tx *sql.Tx, delta int64) (int64, error) {
	var balance int64
	err := tx.QueryRowContext(ctx, `SELECT balance FROM pool WHERE id = 1`).Scan(&balance)
	if isNoRows(err) {
		return 0, ErrNoPool
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query pool: %w", err)
	}

	balance += delta
	if balance < 0 {
		return 0, ErrPoolShort
	}
	if _, err := tx.ExecContext(ctx, `UPDATE pool SET balance = ? WHERE id = 1`, balance); err != nil {
		return 0, fmt.Errorf("storage: cannot adjust pool: %w", err)
	}
	return balance, nil
}

// inTx runs fn in a transaction and commits only if fn succeeds.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}
