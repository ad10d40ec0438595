package config

import (
	_ "embed"

	"github.com/plotj/labyrinth/internal/labyrinth"
)

//go:embed defaults/labyrinth.yaml
var defaultLabyrinthYAML []byte

// Wei amounts used by the default wager settings.
const (
	EntryFeeWei int64 = 50_000_000_000_000_000  // 0.05 ETH
	PayoutWei   int64 = 100_000_000_000_000_000 // 0.1 ETH
	BankrollWei int64 = 1_000_000_000_000_000_000
)

// DefaultLabyrinthConfig returns the default labyrinth configuration.
func DefaultLabyrinthConfig() LabyrinthConfig {
	return LabyrinthConfig{
		Maze: MazeConfig{
			Width:       labyrinth.DefaultGridWidth,
			Height:      labyrinth.DefaultGridHeight,
			FitTerminal: true,
		},
		Canvas: CanvasConfig{
			Width:  labyrinth.DefaultCanvasWidth,
			Height: labyrinth.DefaultCanvasHeight,
		},
		Player: PlayerConfig{
			Size:         labyrinth.DefaultPlayerSize,
			SpeedDivisor: labyrinth.DefaultSpeedDivisor,
			Step:         5,
		},
		Timer: TimerConfig{
			LimitSeconds: labyrinth.DefaultTimeLimit,
		},
		Wager: WagerConfig{
			Enabled:     true,
			EntryFeeWei: EntryFeeWei,
			PayoutWei:   PayoutWei,
			BankrollWei: BankrollWei,
		},
		Theme: ThemeConfig{
			Wall:   "white",
			Exit:   "green",
			Player: "red",
			HUD:    "yellow",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultLabyrinthYAML
}
