package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
	jsonOutput bool
	noColor    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aeroroute",
		Short: "aeroroute - business aviation route planning with fuel stops and risk scoring",
		Long: `aeroroute plans multi-leg business aviation trips. It inserts fuel stops when a leg
exceeds the aircraft's range, prices fuel and handling, and scores dispatch risk from
live METARs and NOTAMs.

Examples:
  aeroroute plan KTEB KLAX --date 2026-10-20 --time 14:00 --aircraft N650GX
  aeroroute plan --leg KTEB,KMIA,2026-10-20,13:00 --leg KMIA,KTEB,2026-10-23,18:30 --mode time
  aeroroute airport import airports.csv
  aeroroute aircraft add N650GX --category super-mid
  aeroroute serve`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml, /etc/aeroroute/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", os.Getenv("NO_COLOR") != "",
		"Disable ANSI colors")

	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewAirportCommand())
	rootCmd.AddCommand(NewAircraftCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewHealthCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
