package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotj/labyrinth/internal/storage"
	"github.com/plotj/labyrinth/internal/wager"
)

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim winnings for the player",
	Long: `Pay out the player's oldest unclaimed win from the prize pool.

Examples:
  labyrinth claim
  labyrinth claim --player alice`,
	Run: runClaim,
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the prize pool and the player's wagers",
	Run:   runBalance,
}

// openLedger opens the app and fails when wagers are disabled.
func openLedger() *app {
	a := mustOpenApp(newLogger(os.Stderr, "labyrinth"))
	if a.ledger == nil {
		a.Close()
		fmt.Fprintln(os.Stderr, "Error: wagers are disabled in the configuration")
		os.Exit(1)
	}
	return a
}

func runClaim(_ *cobra.Command, _ []string) {
	a := openLedger()
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	amount, err := a.ledger.ClaimWinnings(ctx, flagPlayer)
	switch {
	case errors.Is(err, wager.ErrNotWinner):
		fmt.Printf("%s has no winnings to claim.\n", flagPlayer)
		return
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Printf("Paid %s to %s.\n", wager.FormatWei(amount), flagPlayer)
	if balance, err := a.ledger.Balance(ctx); err == nil {
		fmt.Printf("Prize pool: %s\n", wager.FormatWei(balance))
	}
}

func runBalance(_ *cobra.Command, _ []string) {
	a := openLedger()
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	balance, err := a.ledger.Balance(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Printf("Prize pool:  %s\n", wager.FormatWei(balance))
	fmt.Printf("Entry fee:   %s\n", wager.FormatWei(a.ledger.EntryFee()))
	fmt.Printf("Payout:      %s\n", wager.FormatWei(a.ledger.Payout()))
	fmt.Println()

	wagers, err := a.store.Wagers(ctx, flagPlayer, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if len(wagers) == 0 {
		fmt.Printf("%s has no wagers.\n", flagPlayer)
		return
	}

	fmt.Printf("Wagers - %s\n\n", flagPlayer)
	fmt.Printf("  %-8s  %-10s  %-10s  %s\n", "Status", "Fee", "Payout", "Date")
	fmt.Printf("  %-8s  %-10s  %-10s  %s\n", "------", "---", "------", "----")

	unclaimed := 0
	for _, w := range wagers {
		if w.Status == storage.WagerWon {
			unclaimed++
		}
		fmt.Printf("  %-8s  %-10s  %-10s  %s\n",
			w.Status, wager.FormatWei(w.Fee), wager.FormatWei(w.Payout), w.CreatedAt.Format("2006-01-02 15:04"))
	}

	if unclaimed > 0 {
		fmt.Printf("\n%d win(s) to claim. Run 'labyrinth claim'.\n", unclaimed)
	}
}
