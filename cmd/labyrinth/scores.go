package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	labgame "github.com/plotj/labyrinth/internal/games/labyrinth"
	"github.com/plotj/labyrinth/internal/platform/tui"
	"github.com/plotj/labyrinth/internal/registry"
	"github.com/plotj/labyrinth/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best times and recent runs",
	Long: `Display the best winning times and the most recent runs for a mode
(default: labyrinth), followed by the player's totals.

Examples:
  labyrinth scores
  labyrinth scores practice --limit 20
  labyrinth scores --interactive`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show per table")
}

func runScores(_ *cobra.Command, args []string) {
	modeID := labgame.WageredID
	if len(args) > 0 {
		modeID = args[0]
	}

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'labyrinth list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		return
	}

	ctx := context.Background()

	best, err := store.BestRuns(ctx, modeID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}
	fmt.Printf("Best Times - %s\n\n", game.Title())
	if len(best) == 0 {
		fmt.Println("No wins recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'labyrinth play %s' to set the first time!\n", modeID)
	} else {
		printRuns(best)
	}

	recent, err := store.RecentRuns(ctx, modeID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}
	if len(recent) > 0 {
		fmt.Printf("\nRecent Runs - %s\n\n", game.Title())
		printRuns(recent)
	}

	stats, err := store.PlayerStats(ctx, flagPlayer)
	if err == nil && stats.Runs > 0 {
		fmt.Printf("\n%s: %d runs, %d wins (%.0f%%), best %.1fs left\n",
			stats.Player, stats.Runs, stats.Wins, stats.WinRate()*100, stats.BestTimeLeft)
	}
}

func printRuns(runs []storage.Run) {
	fmt.Printf("  %-4s  %-16s  %-6s  %-9s  %-7s  %s\n", "Rank", "Player", "Result", "Time left", "Maze", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %-9s  %-7s  %s\n", "----", "------", "------", "---------", "----", "----")

	for i, r := range runs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-16s  %-6s  %-9s  %-7s  %s\n",
			i+1, r.Player, result,
			fmt.Sprintf("%.1fs", r.TimeLeft),
			fmt.Sprintf("%dx%d", r.GridW, r.GridH),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
