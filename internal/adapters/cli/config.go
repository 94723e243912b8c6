package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage aeroroute configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (AERO_* prefix, e.g. AERO_DATABASE_TYPE)
2. Config file (config.yaml)
3. Default values

User preferences (default aircraft and mode) are stored in ~/.aeroroute/config.json

Examples:
  aeroroute config show
  aeroroute config set-defaults --aircraft N650GX --mode balanced
  aeroroute config clear-defaults`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetDefaultsCommand())
	cmd.AddCommand(newConfigClearDefaultsCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.DefaultConfig()
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("aeroroute Configuration")
			fmt.Println("=======================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			fmt.Printf("  Default Aircraft: %s\n", orNotSet(userCfg.DefaultAircraft))
			fmt.Printf("  Default Mode:     %s\n", orNotSet(userCfg.DefaultMode))

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:             %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}

			fmt.Println("\nWeather (METAR):")
			fmt.Printf("  Enabled:          %t\n", cfg.Weather.Enabled)
			fmt.Printf("  Base URL:         %s\n", cfg.Weather.BaseURL)
			fmt.Printf("  Fetch Timeout:    %s\n", cfg.Weather.FetchTimeout)

			fmt.Println("\nNOTAM:")
			fmt.Printf("  Enabled:          %t\n", cfg.Notam.Enabled)
			fmt.Printf("  Fetch Timeout:    %s\n", cfg.Notam.FetchTimeout)
			fmt.Printf("  FAA:              %t (%s)\n", cfg.Notam.FAA.Enabled, cfg.Notam.FAA.BaseURL)
			fmt.Printf("  AIM:              %t (%s)\n", cfg.Notam.AIM.Enabled, cfg.Notam.AIM.BaseURL)
			fmt.Printf("  TFR:              %t (%s)\n", cfg.Notam.TFR.Enabled, cfg.Notam.TFR.BaseURL)

			fmt.Println("\nRouting:")
			fmt.Printf("  Max Depth:        %d\n", cfg.Routing.MaxDepth)
			fmt.Printf("  Direct Only:      %t\n", cfg.Routing.DirectOnly)
			fmt.Printf("  Detour Cost:      $%.2f/nm\n", cfg.Routing.DetourCostPerNM)
			fmt.Printf("  Ground Time:      %s\n", cfg.Routing.GroundTime)
			fmt.Printf("  Default Fuel:     $%.2f/gal\n", cfg.Routing.DefaultFuelPriceUSDGal)

			fmt.Println("\nServer:")
			fmt.Printf("  Address:          %s:%d\n", cfg.Server.Host, cfg.Server.Port)
			fmt.Printf("  Metrics:          %t (%s)\n", cfg.Metrics.Enabled, cfg.Metrics.Path)
			fmt.Printf("  Redis Events:     %t (%s on %s)\n", cfg.Redis.Enabled, cfg.Redis.Channel, cfg.Redis.Addr)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

func newConfigSetDefaultsCommand() *cobra.Command {
	var aircraftID, mode string

	cmd := &cobra.Command{
		Use:   "set-defaults",
		Short: "Set the default aircraft and optimization mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if aircraftID == "" && mode == "" {
				return fmt.Errorf("either --aircraft or --mode flag is required")
			}
			if mode != "" {
				parsed, err := shared.ParseOptimizationMode(mode)
				if err != nil {
					return err
				}
				mode = string(parsed)
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaults(aircraftID, mode); err != nil {
				return fmt.Errorf("failed to save defaults: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				return err
			}
			fmt.Println("✓ Defaults saved")
			fmt.Printf("  Aircraft: %s\n", orNotSet(userCfg.DefaultAircraft))
			fmt.Printf("  Mode:     %s\n", orNotSet(userCfg.DefaultMode))
			return nil
		},
	}

	cmd.Flags().StringVar(&aircraftID, "aircraft", "", "Default aircraft id")
	cmd.Flags().StringVar(&mode, "mode", "", "Default optimization mode: cost, time or balanced")

	return cmd
}

func newConfigClearDefaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-defaults",
		Short: "Clear the default aircraft and mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.ClearDefaults(); err != nil {
				return fmt.Errorf("failed to clear defaults: %w", err)
			}
			fmt.Println("✓ Defaults cleared")
			return nil
		},
	}
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
