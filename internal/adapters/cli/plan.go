package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/aeroroute-go/internal/application/routeplan"
	"github.com/andrescamacho/aeroroute-go/internal/domain/routing"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var (
		aircraftID string
		mode       string
		date       string
		depTime    string
		legFlags   []string
		skipEnv    bool
	)

	cmd := &cobra.Command{
		Use:   "plan [FROM TO]",
		Short: "Compute a route plan with fuel stops and risk score",
		Long: `Compute a route plan for one aircraft.

A single leg can be given as FROM TO with --date and --time. Multi-leg trips use
repeated --leg FROM,TO,YYYY-MM-DD,HH:MM flags. Times are UTC.

The aircraft and mode default to the values stored with 'aeroroute config set-defaults'.

Examples:
  aeroroute plan KTEB KLAX --date 2026-10-20 --time 14:00 --aircraft N650GX
  aeroroute plan --leg KTEB,KVNY,2026-10-20,14:00 --leg KVNY,KTEB,2026-10-22,17:00 --mode balanced
  aeroroute plan KTEB EGGW --date 2026-10-20 --time 23:00 --json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected FROM TO, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			userCfg := loadUserConfig()

			resolvedAircraft, err := resolveAircraftID(aircraftID, userCfg)
			if err != nil {
				return err
			}
			resolvedMode, err := resolveMode(mode, userCfg)
			if err != nil {
				return err
			}
			legs, err := buildLegRequests(args, date, depTime, legFlags)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			app, err := newApplication(ctx, appOptions{publish: true})
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := routeplan.ComputeRoutePlan(app.context(ctx), app.mediator, &routeplan.ComputeRoutePlanCommand{
				AircraftID:       resolvedAircraft,
				Legs:             legs,
				Mode:             resolvedMode,
				SkipWeatherNotam: skipEnv,
			})
			if err != nil {
				return fmt.Errorf("route planning failed: %w", err)
			}

			if jsonOutput {
				return printJSON(os.Stdout, result)
			}
			fmt.Print(NewPlanFormatter(!noColor).FormatPlan(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&aircraftID, "aircraft", "", "Aircraft id (default from user config)")
	cmd.Flags().StringVar(&mode, "mode", "", "Optimization mode: cost, time or balanced (default from user config, else cost)")
	cmd.Flags().StringVar(&date, "date", "", "Departure date YYYY-MM-DD (UTC) for FROM TO")
	cmd.Flags().StringVar(&depTime, "time", "", "Departure time HH:MM (UTC) for FROM TO")
	cmd.Flags().StringArrayVar(&legFlags, "leg", nil, "Leg as FROM,TO,YYYY-MM-DD,HH:MM (repeatable)")
	cmd.Flags().BoolVar(&skipEnv, "skip-weather-notam", false, "Skip the METAR and NOTAM fetch")

	return cmd
}

func buildLegRequests(args []string, date, depTime string, legFlags []string) ([]routing.LegRequest, error) {
	if len(args) == 2 && len(legFlags) > 0 {
		return nil, fmt.Errorf("use either FROM TO or --leg, not both")
	}

	if len(args) == 2 {
		if date == "" || depTime == "" {
			return nil, fmt.Errorf("--date and --time are required with FROM TO")
		}
		return []routing.LegRequest{{
			FromICAO: strings.ToUpper(args[0]),
			ToICAO:   strings.ToUpper(args[1]),
			Date:     date,
			Time:     depTime,
		}}, nil
	}

	if len(legFlags) == 0 {
		return nil, fmt.Errorf("no legs given: pass FROM TO or at least one --leg")
	}
	legs := make([]routing.LegRequest, 0, len(legFlags))
	for _, lf := range legFlags {
		leg, err := parseLegFlag(lf)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	return legs, nil
}
