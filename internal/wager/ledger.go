// Package wager is a local ledger for the pay-to-play flow: an entry fee is
// charged before a run starts, the run's result is recorded when it ends,
// and a won run can be claimed for a payout from the prize pool.
package wager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/plotj/labyrinth/internal/storage"
)

// Domain refusals returned by the Ledger.
var (
	ErrInvalidPlayer    = errors.New("wager: player name is empty")
	ErrGameInProgress   = errors.New("wager: player already has a game in progress")
	ErrNoActiveGame     = errors.New("wager: player has no game in progress")
	ErrNotWinner        = errors.New("wager: player has no winnings to claim")
	ErrInsufficientPool = errors.New("wager: prize pool cannot cover the payout")
)

// Store persists wagers and the prize pool. *storage.Store implements it.
type Store interface {
	StartWager(ctx context.Context, w *storage.Wager) (int64, error)
	OpenWager(ctx context.Context, player string) (*storage.Wager, error)
	ClaimableWager(ctx context.Context, player string) (*storage.Wager, error)
	SettleWager(ctx context.Context, id, status string) error
	ClaimWager(ctx context.Context, id string) (int64, error)
	PoolBalance(ctx context.Context) (int64, error)
	SeedPool(ctx context.Context, balance int64) error
}

var _ Store = (*storage.Store)(nil)

// Config holds the amounts, in wei.
type Config struct {
	EntryFee int64
	Payout   int64
	Bankroll int64 // Initial pool balance for a fresh database
}

// Ledger charges entry fees and pays out winnings.
// It is safe for concurrent use by several sessions.
type Ledger struct {
	store  Store
	cfg    Config
	logger *log.Logger
	mu     sync.Mutex
}

// New creates a ledger and seeds the pool with the bankroll if the store
// has never held one. A nil logger discards output.
func New(ctx context.Context, store Store, cfg Config, logger *log.Logger) (*Ledger, error) {
	if cfg.EntryFee <= 0 || cfg.Payout <= 0 {
		return nil, fmt.Errorf("wager: entry fee %d and payout %d must be positive", cfg.EntryFee, cfg.Payout)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := store.SeedPool(ctx, cfg.Bankroll); err != nil {
		return nil, fmt.Errorf("wager: %w", err)
	}
	return &Ledger{store: store, cfg: cfg, logger: logger}, nil
}

// EntryFee returns the fee charged by StartGame.
func (l *Ledger) EntryFee() int64 { return l.cfg.EntryFee }

// Payout returns the amount paid by ClaimWinnings.
func (l *Ledger) Payout() int64 { return l.cfg.Payout }

// StartGame charges the entry fee and opens a wager for the player.
func (l *Ledger) StartGame(ctx context.Context, player string) (*storage.Wager, error) {
	if strings.TrimSpace(player) == "" {
		return nil, ErrInvalidPlayer
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	open, err := l.store.OpenWager(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("wager: start: %w", err)
	}
	if open != nil {
		return nil, ErrGameInProgress
	}

	w := &storage.Wager{
		Player: player,
		Fee:    l.cfg.EntryFee,
		Payout: l.cfg.Payout,
		Status: storage.WagerOpen,
	}
	balance, err := l.store.StartWager(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("wager: start: %w", err)
	}

	l.logger.Info("entry fee paid", "player", player, "wager", w.ID, "fee", FormatWei(w.Fee), "pool", FormatWei(balance))
	return w, nil
}

// EndGame records the result of the player's open wager.
func (l *Ledger) EndGame(ctx context.Context, player string, won bool) (*storage.Wager, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	open, err := l.store.OpenWager(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("wager: end: %w", err)
	}
	if open == nil {
		return nil, ErrNoActiveGame
	}

	status := storage.WagerLost
	if won {
		status = storage.WagerWon
	}
	if err := l.store.SettleWager(ctx, open.ID, status); err != nil {
		return nil, fmt.Errorf("wager: end: %w", err)
	}
	open.Status = status

	l.logger.Info("game settled", "player", player, "wager", open.ID, "result", status)
	return open, nil
}

// ClaimWinnings pays out the player's oldest unclaimed win and returns the
// amount paid.
func (l *Ledger) ClaimWinnings(ctx context.Context, player string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, err := l.store.ClaimableWager(ctx, player)
	if err != nil {
		return 0, fmt.Errorf("wager: claim: %w", err)
	}
	if w == nil {
		return 0, ErrNotWinner
	}

	balance, err := l.store.PoolBalance(ctx)
	if err != nil {
		return 0, fmt.Errorf("wager: claim: %w", err)
	}
	if balance < w.Payout {
		l.logger.Warn("claim refused", "player", player, "payout", FormatWei(w.Payout), "pool", FormatWei(balance))
		return 0, ErrInsufficientPool
	}

	balance, err = l.store.ClaimWager(ctx, w.ID)
	if errors.Is(err, storage.ErrPoolShort) {
		return 0, ErrInsufficientPool
	}
	if err != nil {
		return 0, fmt.Errorf("wager: claim: %w", err)
	}

	l.logger.Info("winnings claimed", "player", player, "wager", w.ID, "payout", FormatWei(w.Payout), "pool", FormatWei(balance))
	return w.Payout, nil
}

// Balance returns the prize pool in wei.
func (l *Ledger) Balance(ctx context.Context) (int64, error) {
	balance, err := l.store.PoolBalance(ctx)
	if err != nil {
		return 0, fmt.Errorf("wager: balance: %w", err)
	}
	return balance, nil
}
