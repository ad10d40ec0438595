package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/plotj/labyrinth/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the labyrinth SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a mode picker menu.
The SSH user name is the player name. All users share one database,
one prize pool and one leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.labyrinth/host_key

Examples:
  labyrinth serve                           # Listen on :23234 with auto-generated key
  labyrinth serve --ssh :2222               # Listen on port 2222
  labyrinth serve --host-key ./my_host_key  # Use specific host key
  labyrinth serve --db ./labyrinth.db       # Use specific database

Users can connect with:
  ssh alice@localhost -p 23234`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "labyrinth-ssh")

	a := mustOpenApp(logger)
	defer a.Close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}

	server, err := tui.NewSSHServer(cfg, a.services())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		return
	}

	fmt.Printf("Starting labyrinth SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
	}
}
