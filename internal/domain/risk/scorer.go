package risk

import (
	"math"
	"time"

	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
	"github.com/andrescamacho/aeroroute-go/internal/domain/environment"
)

// Scoring constants. Changing any of them changes every score.
const (
	baseScore = 10

	weatherCap = 65
	notamCap   = 45

	nogoPoints     = 30
	marginalPoints = 15

	severeIcingPoints   = 10
	moderateIcingPoints = 5
	highConvPoints      = 10
	moderateConvPoints  = 5

	strongCrosswindKts    = 25
	strongCrosswindPoints = 12
	crosswindKts          = 15
	crosswindPoints       = 6

	highWindKts    = 35
	highWindPoints = 5
	windKts        = 25
	windPoints     = 2

	criticalFuelAtStopPoints = 25
	criticalTFRRunwayPoints  = 18
	otherCriticalPoints      = 15
	cautionFuelAtStopPoints  = 12
	otherCautionPoints       = 6

	perStopPoints        = 5
	veryLongFlightHours  = 14
	veryLongFlightPoints = 8
	longFlightHours      = 8
	longFlightPoints     = 5
	internationalPoints  = 6
	nightPoints          = 4

	turbopropPoints = 5
	lightJetPoints  = 3
)

// LegTimes is the UTC departure and arrival of one flown leg
type LegTimes struct {
	DepartureUTC time.Time
	ArrivalUTC   time.Time
}

// Input is everything the score depends on
type Input struct {
	Weather            []environment.WeatherSummary
	Notams             []environment.NotamAlert
	StopICAOs          []string
	TotalFlightTimeMin float64
	International      bool
	Legs               []LegTimes
	Category           aircraft.Category
}

// Factor is one named contribution to the score
type Factor struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Assessment is the scored result
type Assessment struct {
	Score             int      `json:"risk_score"`
	OnTimeProbability float64  `json:"on_time_probability"`
	Factors           []Factor `json:"risk_factors"`
}

// Score computes the additive risk score. It has no state and no side effects.
func Score(in Input) Assessment {
	var factors []Factor
	add := func(name string, points int) {
		if points != 0 {
			factors = append(factors, Factor{Name: name, Points: points})
		}
	}

	add("base", baseScore)
	add("weather", weatherPoints(in.Weather))
	add("notam", notamPoints(in.Notams, in.StopICAOs))
	add("fuel_stops", perStopPoints*len(in.StopICAOs))

	hours := in.TotalFlightTimeMin / 60
	switch {
	case hours > veryLongFlightHours:
		add("flight_time", veryLongFlightPoints)
	case hours > longFlightHours:
		add("flight_time", longFlightPoints)
	}
	if in.International {
		add("international", internationalPoints)
	}
	if anyNight(in.Legs) {
		add("night", nightPoints)
	}
	add("category", categoryPoints(in.Category))

	total := 0
	for _, f := range factors {
		total += f.Points
	}
	total = min(max(total, 0), 100)

	return Assessment{
		Score:             total,
		OnTimeProbability: OnTimeProbability(total),
		Factors:           factors,
	}
}

// OnTimeProbability is max(0, 1 - 0.55*(score/100)^1.15) rounded to 3 decimals
func OnTimeProbability(score int) float64 {
	p := 1 - 0.55*math.Pow(float64(score)/100, 1.15)
	return math.Max(0, math.Round(p*1000)/1000)
}

func weatherPoints(summaries []environment.WeatherSummary) int {
	total := 0
	for _, w := range summaries {
		points := 0
		switch w.GoNoGo {
		case environment.NoGo:
			points += nogoPoints
		case environment.Marginal:
			points += marginalPoints
		}
		switch w.Icing {
		case environment.IntensitySevere:
			points += severeIcingPoints
		case environment.IntensityModerate:
			points += moderateIcingPoints
		}
		switch w.Convective {
		case environment.IntensityHigh:
			points += highConvPoints
		case environment.IntensityModerate:
			points += moderateConvPoints
		}
		switch {
		case w.CrosswindKts >= strongCrosswindKts:
			points += strongCrosswindPoints
		case w.CrosswindKts >= crosswindKts:
			points += crosswindPoints
		}
		switch {
		case w.WindKts >= highWindKts:
			points += highWindPoints
		case w.WindKts >= windKts:
			points += windPoints
		}
		total += points
	}
	return min(total, weatherCap)
}

func notamPoints(alerts []environment.NotamAlert, stops []string) int {
	isStop := make(map[string]bool, len(stops))
	for _, s := range stops {
		isStop[s] = true
	}

	total := 0
	for _, a := range alerts {
		fuelAtStop := a.Type == environment.NotamFuelOutage && isStop[a.ICAO]
		switch a.Severity {
		case environment.SeverityCritical:
			switch {
			case fuelAtStop:
				total += criticalFuelAtStopPoints
			case a.Type == environment.NotamTFR || a.Type == environment.NotamRunwayClosure:
				total += criticalTFRRunwayPoints
			default:
				total += otherCriticalPoints
			}
		case environment.SeverityCaution:
			if fuelAtStop {
				total += cautionFuelAtStopPoints
			} else {
				total += otherCautionPoints
			}
		}
	}
	return min(total, notamCap)
}

// anyNight reports a departure or arrival hour in 22:00-06:59 UTC
func anyNight(legs []LegTimes) bool {
	night := func(t time.Time) bool {
		if t.IsZero() {
			return false
		}
		h := t.UTC().Hour()
		return h >= 22 || h <= 6
	}
	for _, l := range legs {
		if night(l.DepartureUTC) || night(l.ArrivalUTC) {
			return true
		}
	}
	return false
}

func categoryPoints(c aircraft.Category) int {
	switch c {
	case aircraft.CategoryTurboprop:
		return turbopropPoints
	case aircraft.CategoryLight:
		return lightJetPoints
	}
	return 0
}
