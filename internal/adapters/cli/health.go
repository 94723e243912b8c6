package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/database"
)

// NewHealthCommand creates the health command
func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check database connectivity and reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			app, err := newApplication(ctx, appOptions{})
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			defer app.Close()

			if err := database.Ping(ctx, app.db); err != nil {
				return fmt.Errorf("database unreachable: %w", err)
			}

			airports, err := app.airportRepo.Count(ctx)
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}

			fmt.Println("✓ aeroroute is healthy")
			fmt.Printf("  Database:          %s\n", app.cfg.Database.Type)
			fmt.Printf("  Airports loaded:   %d\n", airports)
			fmt.Printf("  Weather feed:      %s\n", enabledText(app.cfg.Weather.Enabled))
			fmt.Printf("  NOTAM feeds:       faa=%s aim=%s tfr=%s\n",
				enabledText(app.cfg.Notam.Enabled && app.cfg.Notam.FAA.Enabled),
				enabledText(app.cfg.Notam.Enabled && app.cfg.Notam.AIM.Enabled),
				enabledText(app.cfg.Notam.Enabled && app.cfg.Notam.TFR.Enabled))
			if airports == 0 {
				fmt.Println("\nNo airports loaded yet: run 'aeroroute airport import <file.csv>'")
			}
			return nil
		},
	}

	return cmd
}

func enabledText(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
