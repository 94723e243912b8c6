package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/aeroroute-go/internal/domain/routing"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/config"
)

func TestResolveAircraftID(t *testing.T) {
	id, err := resolveAircraftID("N650GX", &config.UserConfig{DefaultAircraft: "N100"})
	require.NoError(t, err)
	assert.Equal(t, "N650GX", id)

	id, err = resolveAircraftID("", &config.UserConfig{DefaultAircraft: "N100"})
	require.NoError(t, err)
	assert.Equal(t, "N100", id)

	_, err = resolveAircraftID("", nil)
	assert.ErrorContains(t, err, "no aircraft specified")
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		userCfg *config.UserConfig
		want    shared.OptimizationMode
		wantErr bool
	}{
		{"flag wins", "TIME", &config.UserConfig{DefaultMode: "balanced"}, shared.ModeTime, false},
		{"user default", "", &config.UserConfig{DefaultMode: "balanced"}, shared.ModeBalanced, false},
		{"falls back to cost", "", nil, shared.ModeCost, false},
		{"unknown mode", "fastest", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveMode(tt.flag, tt.userCfg)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLegFlag(t *testing.T) {
	leg, err := parseLegFlag(" kteb, kmia ,2026-10-20, 13:00")

	require.NoError(t, err)
	assert.Equal(t, routing.LegRequest{FromICAO: "KTEB", ToICAO: "KMIA", Date: "2026-10-20", Time: "13:00"}, leg)

	_, err = parseLegFlag("KTEB,KMIA,2026-10-20")
	assert.ErrorContains(t, err, "FROM,TO,YYYY-MM-DD,HH:MM")
}

func TestBuildLegRequests(t *testing.T) {
	// positional pair
	legs, err := buildLegRequests([]string{"kteb", "klax"}, "2026-10-20", "14:00", nil)
	require.NoError(t, err)
	require.Len(t, legs, 1)
	assert.Equal(t, "KTEB", legs[0].FromICAO)
	assert.Equal(t, "KLAX", legs[0].ToICAO)

	// repeated --leg
	legs, err = buildLegRequests(nil, "", "", []string{"KTEB,KMIA,2026-10-20,13:00", "KMIA,KTEB,2026-10-23,18:30"})
	require.NoError(t, err)
	assert.Len(t, legs, 2)

	_, err = buildLegRequests([]string{"KTEB", "KLAX"}, "", "", nil)
	assert.ErrorContains(t, err, "--date and --time")

	_, err = buildLegRequests([]string{"KTEB", "KLAX"}, "2026-10-20", "14:00", []string{"KTEB,KMIA,2026-10-20,13:00"})
	assert.ErrorContains(t, err, "not both")

	_, err = buildLegRequests(nil, "", "", nil)
	assert.ErrorContains(t, err, "no legs given")
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgresql://aero:xxxxx@db:5432/aeroroute", maskPassword("postgresql://aero:secret@db:5432/aeroroute"))
	assert.Equal(t, "postgresql://aero@db/aeroroute", maskPassword("postgresql://aero@db/aeroroute"))
	assert.Equal(t, "aeroroute.db", maskPassword("aeroroute.db"))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printJSON(&buf, map[string]int{"risk_score": 15}))

	assert.Equal(t, "{\n  \"risk_score\": 15\n}\n", buf.String())
}

func TestSmallFormatters(t *testing.T) {
	assert.Equal(t, "2h15m", formatMinutes(135.4))
	assert.Equal(t, "0h00m", formatMinutes(0))
	assert.Equal(t, "(not set)", orNotSet(""))
	assert.Equal(t, "on", enabledText(true))
	assert.Equal(t, "RWY 04/22 C...", truncateText("RWY   04/22\nCLSD FOR MAINT", 14))
}
