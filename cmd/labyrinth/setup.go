package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/plotj/labyrinth/internal/config"
	labgame "github.com/plotj/labyrinth/internal/games/labyrinth"
	"github.com/plotj/labyrinth/internal/platform/tui"
	"github.com/plotj/labyrinth/internal/storage"
	"github.com/plotj/labyrinth/internal/wager"
)

// setupTimeout bounds database work done before the UI starts.
const setupTimeout = 5 * time.Second

// newLogger creates a logger at the level given by --log-level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// openLogFile opens ~/.labyrinth/labyrinth.log for appending. Interactive
// commands log there so output does not corrupt the alternate screen.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".labyrinth")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "labyrinth.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// fileLogger returns a logger writing to the log file, or discarding
// output if the file cannot be opened. The returned func closes the file.
func fileLogger() (*log.Logger, func()) {
	f, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return newLogger(io.Discard, "labyrinth"), func() {}
	}
	return newLogger(f, "labyrinth"), func() { f.Close() }
}

// loadConfig loads, adjusts and validates the labyrinth configuration and
// hands it to the registered modes.
func loadConfig(logger *log.Logger) (config.LabyrinthConfig, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return config.LabyrinthConfig{}, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.LabyrinthConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return config.LabyrinthConfig{}, err
	}

	logger.Debug("configuration loaded", "source", source, "difficulty", preset,
		"maze", fmt.Sprintf("%dx%d", cfg.Maze.Width, cfg.Maze.Height), "time_limit", cfg.Timer.LimitSeconds)
	labgame.SetConfig(cfg)
	return cfg, nil
}

// app holds what every command touching the database needs.
type app struct {
	cfg    config.LabyrinthConfig
	store  *storage.Store
	ledger *wager.Ledger
	logger *log.Logger
}

// openApp loads the configuration, opens the database and, when wagers are
// enabled, the ledger.
func openApp(logger *log.Logger) (*app, error) {
	cfg, err := loadConfig(logger)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, store: store, logger: logger}
	if cfg.Wager.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
		defer cancel()

		a.ledger, err = wager.New(ctx, store, wager.Config{
			EntryFee: cfg.Wager.EntryFeeWei,
			Payout:   cfg.Wager.PayoutWei,
			Bankroll: cfg.Wager.BankrollWei,
		}, logger.WithPrefix("ledger"))
		if err != nil {
			store.Close()
			return nil, err
		}
	}
	return a, nil
}

// services returns the TUI collaborators for the configured player.
func (a *app) services() tui.Services {
	return tui.Services{
		Store:  a.store,
		Ledger: a.ledger,
		Logger: a.logger,
		Player: flagPlayer,
	}
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("could not close database", "error", err)
	}
}

// mustOpenApp is openApp for commands that cannot run without the database.
func mustOpenApp(logger *log.Logger) *app {
	a, err := openApp(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return a
}
