package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotj/labyrinth/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the labyrinth configuration as YAML after the --config file
and --difficulty preset are applied.

Use --defaults to print the built-in file, a starting point for
~/.labyrinth/configs/labyrinth.yaml.`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in configuration file")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := loadConfig(newLogger(os.Stderr, "labyrinth"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
