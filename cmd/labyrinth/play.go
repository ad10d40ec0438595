package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/plotj/labyrinth/internal/core"
	labgame "github.com/plotj/labyrinth/internal/games/labyrinth"
	"github.com/plotj/labyrinth/internal/platform/tui"
	"github.com/plotj/labyrinth/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a run",
	Long: `Start a run in the given mode (default: labyrinth).

Modes:
  labyrinth - Wagered: Space pays the entry fee and starts the timer
  practice  - Free play, results are still recorded

Controls:
  Space            - Start the run
  Arrows/WASD      - Move
  R                - New maze (after the run ends)
  C                - Claim winnings (after a win)
  B/Esc            - Leave the run
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a screenshot to ~/.labyrinth/screenshots

Difficulty options:
  easy   - Smaller maze, 90 seconds
  normal - Standard maze, 60 seconds
  hard   - Larger maze, 45 seconds
  fixed  - Use the config file as is

Examples:
  labyrinth play
  labyrinth play practice
  labyrinth play --difficulty hard --player alice
  labyrinth play --config ./my-labyrinth.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	modeID := labgame.WageredID
	if len(args) > 0 {
		modeID = args[0]
	}

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'labyrinth list' to see available modes.")
		os.Exit(1)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	a := mustOpenApp(logger)
	defer a.Close()

	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		return
	}

	logger.Info("run started", "mode", modeID, "player", flagPlayer)
	if _, err := tui.Run(game, a.services(), runtimeConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
	}
}

// runtimeConfig builds the runtime parameters from the terminal size and
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
