package airport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2026-03-14 "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTimeWindowContains(t *testing.T) {
	tests := []struct {
		name   string
		window *TimeWindow
		at     string
		want   bool
	}{
		{"daytime inside", &TimeWindow{From: "06:00", To: "22:00"}, "12:00", true},
		{"daytime from is inclusive", &TimeWindow{From: "06:00", To: "22:00"}, "06:00", true},
		{"daytime to is exclusive", &TimeWindow{From: "06:00", To: "22:00"}, "22:00", false},
		{"daytime outside", &TimeWindow{From: "06:00", To: "22:00"}, "23:15", false},
		{"overnight late evening", &TimeWindow{From: "23:00", To: "06:00"}, "23:30", true},
		{"overnight early morning", &TimeWindow{From: "23:00", To: "06:00"}, "02:00", true},
		{"overnight afternoon", &TimeWindow{From: "23:00", To: "06:00"}, "15:00", false},
		{"empty window", &TimeWindow{}, "12:00", false},
		{"nil window", nil, "12:00", false},
		{"garbage bounds", &TimeWindow{From: "late", To: "early"}, "12:00", false},
		{"zero length window", &TimeWindow{From: "10:00", To: "10:00"}, "10:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.Contains(at(tt.at)))
		})
	}
}

func TestTimeWindowContainsUsesUTC(t *testing.T) {
	w := &TimeWindow{From: "23:00", To: "06:00"}
	edt := time.FixedZone("EDT", -4*3600)

	// 21:00 EDT is 01:00Z
	local := time.Date(2026, 7, 1, 21, 0, 0, 0, edt)
	assert.True(t, w.Contains(local))
}

func TestTimeWindowValidate(t *testing.T) {
	assert.NoError(t, (&TimeWindow{From: "23:00", To: "06:00"}).Validate())
	assert.NoError(t, (*TimeWindow)(nil).Validate())
	assert.Error(t, (&TimeWindow{From: "25:00", To: "06:00"}).Validate())
	assert.Error(t, (&TimeWindow{From: "06:00", To: "6pm"}).Validate())
}

func TestInCurfew(t *testing.T) {
	curfew := &TimeWindow{From: "23:30", To: "04:30"}

	assert.True(t, InCurfew(at("00:15"), curfew))
	assert.False(t, InCurfew(at("04:30"), curfew))
	assert.False(t, InCurfew(at("12:00"), nil))
}

func TestAirportOpenAtAndCurfewAt(t *testing.T) {
	a := &Airport{
		ICAO:           "KHPN",
		OperatingHours: &TimeWindow{From: "11:00", To: "04:00"},
		Curfew:         &TimeWindow{From: "04:00", To: "11:00"},
	}

	assert.True(t, a.OpenAt(at("15:00")))
	assert.False(t, a.OpenAt(at("08:00")))
	assert.True(t, a.CurfewAt(at("08:00")))
	assert.False(t, a.CurfewAt(at("15:00")))

	unrestricted := &Airport{ICAO: "KTEB"}
	assert.True(t, unrestricted.OpenAt(at("03:00")))
	assert.False(t, unrestricted.CurfewAt(at("03:00")))
}
