package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestClassifyWeatherVerdict(t *testing.T) {
	tests := []struct {
		name   string
		report StationReport
		want   GoNoGo
	}{
		{"clear skies", StationReport{ICAO: "KTEB", CeilingFt: intPtr(5000), VisibilitySM: floatPtr(10)}, Go},
		{"no ceiling reported", StationReport{ICAO: "KTEB", VisibilitySM: floatPtr(10)}, Go},
		{"low ceiling", StationReport{ICAO: "KTEB", CeilingFt: intPtr(400)}, NoGo},
		{"marginal ceiling", StationReport{ICAO: "KTEB", CeilingFt: intPtr(800)}, Marginal},
		{"ceiling at 1000 is go", StationReport{ICAO: "KTEB", CeilingFt: intPtr(1000)}, Go},
		{"fog", StationReport{ICAO: "KTEB", VisibilitySM: floatPtr(0.5)}, NoGo},
		{"haze", StationReport{ICAO: "KTEB", VisibilitySM: floatPtr(2)}, Marginal},
		{"thunderstorm", StationReport{ICAO: "KTEB", WxString: "+TSRA"}, NoGo},
		{"freezing rain", StationReport{ICAO: "KTEB", WxString: "-FZRA BR"}, NoGo},
		{"freezing fog", StationReport{ICAO: "KTEB", WxString: "FZFG"}, Marginal},
		{"storm in vicinity", StationReport{ICAO: "KTEB", WxString: "VCTS"}, Marginal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyWeather(tt.report).GoNoGo)
		})
	}
}

func TestClassifyWeatherCopiesObservation(t *testing.T) {
	r := StationReport{
		ICAO:           "KDEN",
		Raw:            "KDEN 141453Z 27012KT 10SM FEW080 12/M03 A3001",
		FlightCategory: "VFR",
		WindKts:        12,
		CeilingFt:      intPtr(8000),
	}

	s := ClassifyWeather(r)

	assert.Equal(t, "KDEN", s.ICAO)
	assert.Equal(t, "VFR", s.FlightCategory)
	assert.Equal(t, r.Raw, s.Raw)
	assert.Equal(t, 12, s.WindKts)
	assert.False(t, s.Fallback)
}

func TestCrosswind(t *testing.T) {
	t.Run("estimated without runway headings", func(t *testing.T) {
		assert.Equal(t, 21, crosswind(StationReport{WindKts: 20, GustKts: 30}))
		assert.Equal(t, 0, crosswind(StationReport{}))
	})

	t.Run("best aligned runway", func(t *testing.T) {
		r := StationReport{WindDirDeg: intPtr(270), WindKts: 30, RunwayHeadings: []int{360, 270}}
		assert.Equal(t, 0, crosswind(r))
	})

	t.Run("sixty degrees off the runway", func(t *testing.T) {
		r := StationReport{WindDirDeg: intPtr(300), WindKts: 30, RunwayHeadings: []int{360}}
		assert.Equal(t, 26, crosswind(r))
	})
}

func TestClassifyIcing(t *testing.T) {
	tests := []struct {
		name   string
		report StationReport
		want   Intensity
	}{
		{"freezing drizzle", StationReport{WxString: "FZDZ"}, IntensitySevere},
		{"freezing fog", StationReport{WxString: "FZFG"}, IntensityModerate},
		{"moisture near freezing", StationReport{WxString: "BR", TempC: floatPtr(0), DewpointC: floatPtr(-1)}, IntensityModerate},
		{"saturated air without precipitation", StationReport{TempC: floatPtr(-5), DewpointC: floatPtr(-6)}, IntensityLight},
		{"too warm", StationReport{WxString: "RA", TempC: floatPtr(5), DewpointC: floatPtr(4)}, IntensityNone},
		{"too dry", StationReport{TempC: floatPtr(0), DewpointC: floatPtr(-10)}, IntensityNone},
		{"no temperature", StationReport{WxString: "RA"}, IntensityNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyIcing(tt.report))
		})
	}
}

func TestClassifyConvective(t *testing.T) {
	assert.Equal(t, IntensityHigh, classifyConvective(StationReport{WxString: "-TSRA"}))
	assert.Equal(t, IntensityModerate, classifyConvective(StationReport{WxString: "VCTS"}))
	assert.Equal(t, IntensityModerate, classifyConvective(StationReport{Raw: "KICT 141453Z 18015KT 10SM BKN035CB 24/18 A2990"}))
	assert.Equal(t, IntensityNone, classifyConvective(StationReport{Raw: "KICT 141453Z 18015KT 10SM BKN035 24/18 A2990"}))
}

func TestDefaultWeatherIsNeverNogo(t *testing.T) {
	s := DefaultWeather("KGLD")

	assert.Equal(t, Marginal, s.GoNoGo)
	assert.True(t, s.Fallback)
	assert.Equal(t, "KGLD", s.ICAO)
}
