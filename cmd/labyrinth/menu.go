package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotj/labyrinth/internal/platform/tui"
	"github.com/plotj/labyrinth/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
Leaving a run with B or Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Scoreboard
  Q            - Quit

Examples:
  labyrinth menu
  labyrinth menu --fps 30
  labyrinth menu --db ./labyrinth.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := fileLogger()
	defer closeLog()

	a := mustOpenApp(logger)
	defer a.Close()

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(a.ledger, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(a.store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.GameID == "" {
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		logger.Info("run started", "mode", menuResult.GameID, "player", flagPlayer)
		goBack, err := tui.Run(game, a.services(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !goBack {
			return
		}
	}
}
