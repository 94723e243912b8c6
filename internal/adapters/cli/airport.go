package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/aeroroute-go/internal/adapters/dataimport"
	"github.com/andrescamacho/aeroroute-go/internal/application/reference"
	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
)

// NewAirportCommand creates the airport command with subcommands
func NewAirportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "airport",
		Short: "Inspect and import airport reference data",
	}
	cmd.AddCommand(newAirportShowCommand())
	cmd.AddCommand(newAirportImportCommand())
	return cmd
}

func newAirportShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ICAO",
		Short: "Show one airport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := newApplication(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(app.context(ctx), &reference.GetAirportQuery{ICAO: args[0]})
			if err != nil {
				return err
			}
			a := resp.(*airport.Airport)

			if jsonOutput {
				return printJSON(os.Stdout, a)
			}
			printAirport(a)
			return nil
		},
	}
}

func printAirport(a *airport.Airport) {
	fmt.Printf("%s  %s\n", a.ICAO, a.Name)
	fmt.Printf("  City:             %s (%s)\n", a.City, a.CountryPrefix)
	fmt.Printf("  Position:         %.4f, %.4f  elev %d ft\n", a.Latitude, a.Longitude, a.ElevationFt)
	fmt.Printf("  Longest runway:   %d ft\n", a.LongestRunwayFt)
	if a.HasFuel {
		fmt.Printf("  Fuel:             %s @ $%.2f/gal\n", strings.Join(a.FuelTypes, ", "), a.FuelPriceUSDGal)
	} else {
		fmt.Printf("  Fuel:             none\n")
	}
	fmt.Printf("  FBO fee:          $%.2f\n", a.FBOFeeUSD)
	if !a.OperatingHours.IsEmpty() {
		fmt.Printf("  Operating hours:  %s UTC\n", a.OperatingHours)
	}
	if !a.Curfew.IsEmpty() {
		fmt.Printf("  Curfew:           %s UTC\n", a.Curfew)
	}
	fmt.Printf("  Customs:          %t\n", a.CustomsAvailable)
	fmt.Printf("  De-icing:         %t\n", a.DeicingAvailable)
	fmt.Printf("  Slot required:    %t\n", a.SlotRequired)
}

func newAirportImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.csv",
		Short: "Import or update airports from CSV",
		Long: `Import airports from a CSV file with a header row. Existing airports are replaced.

Columns: icao,name,city,country_prefix,latitude,longitude,elevation_ft,longest_runway_ft,
has_fuel,fuel_types,fuel_price_usd_gal,fbo_fee_usd,operating_hours,curfew,customs,deicing,
slot_required

fuel_types is ';'-separated; operating_hours and curfew are HH:MM-HH:MM in UTC.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer file.Close()

			airports, rowErrs, err := dataimport.ParseAirportsCSV(file)
			if err != nil {
				return err
			}
			for _, re := range rowErrs {
				fmt.Fprintf(os.Stderr, "skipping %s\n", re)
			}

			ctx := cmd.Context()
			app, err := newApplication(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(app.context(ctx), &reference.ImportAirportsCommand{Airports: airports})
			if err != nil {
				return err
			}
			result := resp.(*reference.ImportAirportsResponse)

			fmt.Printf("✓ Imported %d airports", result.Imported)
			if skipped := len(result.Skipped) + len(rowErrs); skipped > 0 {
				fmt.Printf(" (%d skipped)", skipped)
			}
			fmt.Println()
			return nil
		},
	}
}
