package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/aeroroute-go/internal/application/reference"
	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
)

// NewAircraftCommand creates the aircraft command with subcommands
func NewAircraftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aircraft",
		Short: "Manage aircraft performance records",
	}
	cmd.AddCommand(newAircraftShowCommand())
	cmd.AddCommand(newAircraftAddCommand())
	return cmd
}

func newAircraftShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show the effective performance of an aircraft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := newApplication(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(app.context(ctx), &reference.GetAircraftQuery{AircraftID: args[0]})
			if err != nil {
				return err
			}
			perf := resp.(*aircraft.Performance)

			if jsonOutput {
				return printJSON(os.Stdout, perf)
			}
			fmt.Printf("%s (%s)\n", perf.AircraftID, perf.Category)
			if perf.TailNumber != "" {
				fmt.Printf("  Tail number:      %s\n", perf.TailNumber)
			}
			fmt.Printf("  Cruise speed:     %.0f kts\n", perf.SpeedKts())
			fmt.Printf("  Fuel burn:        %.0f gal/h\n", perf.FuelBurnRate())
			fmt.Printf("  Fuel capacity:    %.0f gal (reserve %.0f gal)\n", perf.UsableFuelGal(), perf.ReserveFuelGal())
			fmt.Printf("  Max direct range: %.0f nm\n", perf.MaxDirectNM(0))
			fmt.Printf("  Min runway:       %d ft\n", perf.MinRunwayFt())
			return nil
		},
	}
}

func newAircraftAddCommand() *cobra.Command {
	var (
		category  string
		tail      string
		fuelBurn  float64
		rangeNM   float64
		speed     float64
		capacity  float64
		minRunway int
		reserve   float64
	)

	cmd := &cobra.Command{
		Use:   "add ID",
		Short: "Add or replace an aircraft",
		Long: `Add or replace an aircraft. Unset figures fall back to the category defaults.

Categories: turboprop, light, midsize, super-mid, heavy, ultra-long

Example:
  aeroroute aircraft add N650GX --category ultra-long --tail N650GX --range 7500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := aircraft.ParseCategory(category)
			if err != nil {
				return err
			}
			perf := &aircraft.Performance{AircraftID: args[0], TailNumber: tail, Category: cat}

			flags := cmd.Flags()
			if flags.Changed("fuel-burn") {
				perf.FuelBurnGPH = &fuelBurn
			}
			if flags.Changed("range") {
				perf.RangeNM = &rangeNM
			}
			if flags.Changed("speed") {
				perf.CruiseSpeedKts = &speed
			}
			if flags.Changed("capacity") {
				perf.MaxFuelCapacityGal = &capacity
			}
			if flags.Changed("min-runway") {
				perf.MinRunwayOverride = &minRunway
			}
			if flags.Changed("reserve") {
				perf.ReserveFuelOverride = &reserve
			}

			ctx := cmd.Context()
			app, err := newApplication(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.mediator.Send(app.context(ctx), &reference.SaveAircraftCommand{Aircraft: perf}); err != nil {
				return err
			}
			fmt.Printf("✓ Saved %s\n", perf)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Aircraft category (required)")
	cmd.Flags().StringVar(&tail, "tail", "", "Tail number")
	cmd.Flags().Float64Var(&fuelBurn, "fuel-burn", 0, "Fuel burn in gal/h")
	cmd.Flags().Float64Var(&rangeNM, "range", 0, "Published range in nm")
	cmd.Flags().Float64Var(&speed, "speed", 0, "Cruise speed in kts")
	cmd.Flags().Float64Var(&capacity, "capacity", 0, "Usable fuel capacity in gal")
	cmd.Flags().IntVar(&minRunway, "min-runway", 0, "Minimum runway length in ft")
	cmd.Flags().Float64Var(&reserve, "reserve", 0, "Fuel reserve in gal")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}
