package environment

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// GoNoGo is the dispatch verdict for one airport
type GoNoGo string

const (
	Go       GoNoGo = "go"
	Marginal GoNoGo = "marginal"
	NoGo     GoNoGo = "nogo"
)

// Intensity grades icing and convective risk
type Intensity string

const (
	IntensityNone     Intensity = "none"
	IntensityLight    Intensity = "light"
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
	IntensitySevere   Intensity = "severe"
)

// crosswindFactor estimates the crosswind component when runway headings are unknown
const crosswindFactor = 0.7

// StationReport is one raw observation as a weather provider returns it
type StationReport struct {
	ICAO           string
	ObservedAt     time.Time
	Raw            string
	FlightCategory string // VFR, MVFR, IFR, LIFR
	CeilingFt      *int
	VisibilitySM   *float64
	WindDirDeg     *int
	WindKts        int
	GustKts        int
	TempC          *float64
	DewpointC      *float64
	WxString       string
	RunwayHeadings []int
}

// WeatherSummary is the classified weather at one airport
type WeatherSummary struct {
	ICAO           string    `json:"icao"`
	FlightCategory string    `json:"flight_category"`
	CeilingFt      *int      `json:"ceiling_ft,omitempty"`
	VisibilitySM   *float64  `json:"visibility_sm,omitempty"`
	WindKts        int       `json:"wind_kts"`
	GustKts        int       `json:"gust_kts"`
	CrosswindKts   int       `json:"crosswind_kts"`
	Icing          Intensity `json:"icing"`
	Convective     Intensity `json:"convective"`
	GoNoGo         GoNoGo    `json:"go_nogo"`
	Raw            string    `json:"raw,omitempty"`
	ObservedAt     time.Time `json:"observed_at,omitempty"`
	Fallback       bool      `json:"fallback"`
}

// DefaultWeather is the conservative summary for an airport without data. It is never nogo.
func DefaultWeather(icao string) WeatherSummary {
	return WeatherSummary{
		ICAO:           icao,
		FlightCategory: "UNKNOWN",
		Icing:          IntensityNone,
		Convective:     IntensityNone,
		GoNoGo:         Marginal,
		Fallback:       true,
	}
}

var cumulonimbusPattern = regexp.MustCompile(`\b(FEW|SCT|BKN|OVC)\d{3}(CB|TCU)\b`)

// ClassifyWeather derives the risk attributes and verdict from a station report
func ClassifyWeather(r StationReport) WeatherSummary {
	s := WeatherSummary{
		ICAO:           r.ICAO,
		FlightCategory: r.FlightCategory,
		CeilingFt:      r.CeilingFt,
		VisibilitySM:   r.VisibilitySM,
		WindKts:        r.WindKts,
		GustKts:        r.GustKts,
		CrosswindKts:   crosswind(r),
		Icing:          classifyIcing(r),
		Convective:     classifyConvective(r),
		Raw:            r.Raw,
		ObservedAt:     r.ObservedAt,
	}
	s.GoNoGo = verdict(s)
	return s
}

func verdict(s WeatherSummary) GoNoGo {
	switch {
	case s.Icing == IntensitySevere,
		s.Convective == IntensityHigh,
		s.CeilingFt != nil && *s.CeilingFt < 500,
		s.VisibilitySM != nil && *s.VisibilitySM < 1:
		return NoGo
	case s.Icing == IntensityModerate,
		s.Convective == IntensityModerate,
		s.CeilingFt != nil && *s.CeilingFt < 1000,
		s.VisibilitySM != nil && *s.VisibilitySM < 3:
		return Marginal
	}
	return Go
}

// crosswind uses the best aligned runway when headings are known
func crosswind(r StationReport) int {
	wind := float64(max(r.WindKts, r.GustKts))
	if wind == 0 {
		return 0
	}
	if r.WindDirDeg == nil || len(r.RunwayHeadings) == 0 {
		return int(math.Round(wind * crosswindFactor))
	}

	best := math.Inf(1)
	for _, heading := range r.RunwayHeadings {
		angle := float64(*r.WindDirDeg-heading) * math.Pi / 180
		best = math.Min(best, math.Abs(wind*math.Sin(angle)))
	}
	return int(math.Round(best))
}

func weatherTokens(r StationReport) []string {
	return strings.Fields(strings.ToUpper(r.WxString))
}

func classifyIcing(r StationReport) Intensity {
	for _, tok := range weatherTokens(r) {
		if strings.Contains(tok, "FZRA") || strings.Contains(tok, "FZDZ") {
			return IntensitySevere
		}
	}
	for _, tok := range weatherTokens(r) {
		if strings.Contains(tok, "FZFG") {
			return IntensityModerate
		}
	}
	if r.TempC == nil || r.DewpointC == nil {
		return IntensityNone
	}
	temp, spread := *r.TempC, *r.TempC-*r.DewpointC
	if temp > 2 || temp < -15 || spread > 3 {
		return IntensityNone
	}
	// visible moisture near freezing
	if len(weatherTokens(r)) > 0 {
		return IntensityModerate
	}
	return IntensityLight
}

func classifyConvective(r StationReport) Intensity {
	level := IntensityNone
	for _, tok := range weatherTokens(r) {
		bare := strings.TrimLeft(tok, "+-")
		switch {
		case strings.HasPrefix(bare, "VC") && strings.Contains(bare, "TS"):
			level = IntensityModerate
		case strings.Contains(bare, "TS"):
			return IntensityHigh
		}
	}
	if level == IntensityNone && cumulonimbusPattern.MatchString(strings.ToUpper(r.Raw)) {
		level = IntensityModerate
	}
	return level
}
