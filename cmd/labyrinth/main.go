// labyrinth is a pay-to-play maze game for the terminal.
//
// Usage:
//
//	labyrinth play [mode]    - Play a run (labyrinth or practice)
//	labyrinth menu           - Pick a mode interactively
//	labyrinth list           - List available modes
//	labyrinth maze           - Print a generated maze
//	labyrinth scores [mode]  - Show best times and recent runs
//	labyrinth claim          - Claim winnings for the player
//	labyrinth balance        - Show the prize pool and player stats
//	labyrinth serve          - Start SSH server for remote play
//	labyrinth config         - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set maze seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.labyrinth/labyrinth.db)
//	--config <path>       - Use a custom labyrinth.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--player <name>       - Player name for wagers and results
//	--log-level <level>   - debug, info, warn or error
//
// Flags not given on the command line fall back to LABYRINTH_* variables,
// which may also come from a .env file in the working directory.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotj/labyrinth/internal/config"
	"github.com/plotj/labyrinth/internal/platform/tui"
	"github.com/plotj/labyrinth/internal/storage"

	// Import modes to register them
	_ "github.com/plotj/labyrinth/internal/games/labyrinth"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "labyrinth",
	Short: "Labyrinth - reach the exit before the timer runs out",
	Long: `Labyrinth is a terminal maze game. Each run generates a fresh maze;
reach the exit in the bottom-right corner before the countdown ends.

The wagered mode charges an entry fee from a local ledger and pays a prize
for a win. Practice mode is free.

Available commands:
  play     - Play a run
  menu     - Interactive mode picker
  list     - Show all modes
  maze     - Print a generated maze
  scores   - View best times and recent runs
  claim    - Claim winnings
  balance  - Show the prize pool
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  labyrinth play
  labyrinth play practice --difficulty easy
  labyrinth maze --width 21 --height 11 --solve
  labyrinth serve --ssh :2222`,
	PersistentPreRun: applyEnv,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	flags.Int64Var(&flagSeed, "seed", 0, "Maze seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the database")
	flags.StringVar(&flagConfig, "config", "", "Path to custom labyrinth config YAML")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	flags.StringVar(&flagPlayer, "player", "", "Player name (default: $USER)")
	flags.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(mazeCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// applyEnv fills flags that were not given explicitly from the environment.
func applyEnv(cmd *cobra.Command, _ []string) {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("db") {
		flagDBPath = config.Or(env.DBPath, flagDBPath)
	}
	if !flags.Changed("config") {
		flagConfig = config.Or(env.ConfigPath, flagConfig)
	}
	if !flags.Changed("difficulty") {
		flagDifficulty = config.Or(env.Difficulty, flagDifficulty)
	}
	if !flags.Changed("player") {
		flagPlayer = config.Or(env.Player, flagPlayer)
	}
	if flagPlayer == "" {
		flagPlayer = config.Or(os.Getenv("USER"), tui.DefaultPlayer)
	}
}
