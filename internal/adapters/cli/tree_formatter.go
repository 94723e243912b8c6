package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/aeroroute-go/internal/application/routeplan"
	"github.com/andrescamacho/aeroroute-go/internal/domain/environment"
	"github.com/andrescamacho/aeroroute-go/internal/domain/routing"
)

// PlanFormatter renders a route plan as a tree for the terminal
type PlanFormatter struct {
	useColors bool
}

// NewPlanFormatter creates a new plan formatter
func NewPlanFormatter(useColors bool) *PlanFormatter {
	return &PlanFormatter{useColors: useColors}
}

// FormatPlan renders the whole plan
func (f *PlanFormatter) FormatPlan(r *routeplan.RoutePlanResult) string {
	if r == nil {
		return "(no plan)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Route plan %s (%s, aircraft %s)\n", r.PlanID, r.Mode, r.AircraftID)
	fmt.Fprintf(&b, "%s\n", strings.Join(r.Route(), " → "))
	f.formatLegs(&b, r.Legs)

	if len(r.Stops) > 0 {
		b.WriteString("\nFuel stops:\n")
		for _, s := range r.Stops {
			f.formatStop(&b, s)
		}
	}

	fmt.Fprintf(&b, "\nTotals: %.0f nm, %s, %.0f gal\n",
		r.TotalDistanceNM, formatMinutes(r.TotalFlightTimeMin), r.TotalFuelGal)
	f.formatCost(&b, r.CostBreakdown)

	fmt.Fprintf(&b, "\nRisk: %s%d/100%s, on-time probability %.1f%%\n",
		f.riskColor(r.RiskScore), r.RiskScore, f.colorReset(), r.OnTimeProbability*100)
	for _, factor := range r.RiskFactors {
		fmt.Fprintf(&b, "  %-14s +%d\n", factor.Name, factor.Points)
	}

	if len(r.Weather) > 0 {
		b.WriteString("\nWeather:\n")
		for _, w := range r.Weather {
			f.formatWeather(&b, w)
		}
	}
	if len(r.Notams) > 0 {
		b.WriteString("\nNOTAMs:\n")
		for _, n := range r.Notams {
			fmt.Fprintf(&b, "  %s%-8s%s %s %-14s %s\n",
				f.severityColor(n.Severity), n.Severity, f.colorReset(), n.ICAO, n.Type, truncateText(n.Text, 80))
		}
	}

	if alt := r.Alternative; alt != nil {
		fmt.Fprintf(&b, "\nAlternative (%s): %s\n", alt.Mode, alt.TradeOffNote)
		route := make([]string, 0, len(alt.Legs)+1)
		if len(alt.Legs) > 0 {
			route = append(route, alt.Legs[0].From)
		}
		for _, leg := range alt.Legs {
			route = append(route, leg.To)
		}
		fmt.Fprintf(&b, "  %s, %.0f nm, %s, $%.2f\n",
			strings.Join(route, " → "), alt.TotalDistanceNM, formatMinutes(alt.TotalFlightTimeMin),
			alt.CostBreakdown.TotalRoutingCostUSD)
	}

	return b.String()
}

func (f *PlanFormatter) formatLegs(b *strings.Builder, legs []routing.RouteLeg) {
	for i, leg := range legs {
		branch, cont := "├── ", "│   "
		if i == len(legs)-1 {
			branch, cont = "└── ", "    "
		}
		marker := ""
		if leg.IsFuelStopLeg {
			marker = " " + f.colorize("\033[33m", "[fuel stop leg]")
		}
		fmt.Fprintf(b, "%s%s → %s  %.0f nm  %s  %.0f gal  $%.2f%s\n",
			branch, leg.From, leg.To, leg.DistanceNM, formatMinutes(leg.FlightTimeMin), leg.FuelBurnGal, leg.FuelCostUSD, marker)
		fmt.Fprintf(b, "%sdep %s  arr %s\n",
			cont, leg.DepartureUTC.Format("2006-01-02 15:04Z"), leg.ArrivalUTC.Format("2006-01-02 15:04Z"))
	}
}

func (f *PlanFormatter) formatStop(b *strings.Builder, s routing.RefuelStop) {
	fmt.Fprintf(b, "  %s %s: uplift %.0f gal @ $%.2f, FBO $%.2f, detour %.0f nm, ground %s\n",
		s.ICAO, s.Name, s.FuelUpliftGal, s.FuelPriceUSDGal, s.FBOFeeUSD, s.DetourNM, formatMinutes(s.GroundTimeMin))
	if s.Reason != "" {
		fmt.Fprintf(b, "    %s\n", s.Reason)
	}
}

func (f *PlanFormatter) formatCost(b *strings.Builder, c routing.CostBreakdown) {
	fmt.Fprintf(b, "Cost: fuel $%.2f + FBO $%.2f + detour $%.2f = $%.2f (avg $%.2f/gal)\n",
		c.FuelCostUSD, c.FBOFeesUSD, c.DetourCostUSD, c.TotalRoutingCostUSD, c.AvgFuelPriceUSDGal)
}

func (f *PlanFormatter) formatWeather(b *strings.Builder, w environment.WeatherSummary) {
	source := ""
	if w.Fallback {
		source = " (no report, assumed marginal)"
	}
	fmt.Fprintf(b, "  %s %s%-8s%s %-7s wind %d", w.ICAO,
		f.goNoGoColor(w.GoNoGo), w.GoNoGo, f.colorReset(), w.FlightCategory, w.WindKts)
	if w.GustKts > 0 {
		fmt.Fprintf(b, "G%d", w.GustKts)
	}
	fmt.Fprintf(b, "kt xwind %dkt icing %s convective %s%s\n", w.CrosswindKts, w.Icing, w.Convective, source)
}

func (f *PlanFormatter) riskColor(score int) string {
	switch {
	case score >= 60:
		return f.color("\033[31m")
	case score >= 30:
		return f.color("\033[33m")
	default:
		return f.color("\033[32m")
	}
}

func (f *PlanFormatter) goNoGoColor(v environment.GoNoGo) string {
	switch v {
	case environment.NoGo:
		return f.color("\033[31m")
	case environment.Marginal:
		return f.color("\033[33m")
	default:
		return f.color("\033[32m")
	}
}

func (f *PlanFormatter) severityColor(s environment.Severity) string {
	switch s {
	case environment.SeverityCritical:
		return f.color("\033[31m")
	case environment.SeverityCaution:
		return f.color("\033[33m")
	default:
		return ""
	}
}

func (f *PlanFormatter) color(code string) string {
	if !f.useColors {
		return ""
	}
	return code
}

func (f *PlanFormatter) colorize(code, s string) string {
	return f.color(code) + s + f.colorReset()
}

// colorReset returns ANSI reset code
func (f *PlanFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}

// formatMinutes renders 135.4 as "2h15m"
func formatMinutes(minutes float64) string {
	total := int(minutes + 0.5)
	return fmt.Sprintf("%dh%02dm", total/60, total%60)
}

func truncateText(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
