package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/andrescamacho/aeroroute-go/internal/domain/routing"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/config"
)

// resolveAircraftID picks the --aircraft flag, then the user default
func resolveAircraftID(flagValue string, userCfg *config.UserConfig) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if userCfg != nil && userCfg.DefaultAircraft != "" {
		return userCfg.DefaultAircraft, nil
	}
	return "", fmt.Errorf("no aircraft specified: use --aircraft, or set a default with 'aeroroute config set-defaults --aircraft <id>'")
}

// resolveMode picks the --mode flag, then the user default, then cost
func resolveMode(flagValue string, userCfg *config.UserConfig) (shared.OptimizationMode, error) {
	switch {
	case flagValue != "":
		return shared.ParseOptimizationMode(flagValue)
	case userCfg != nil && userCfg.DefaultMode != "":
		return shared.ParseOptimizationMode(userCfg.DefaultMode)
	default:
		return shared.ModeCost, nil
	}
}

// loadUserConfig never fails the command; a broken preferences file counts as empty
func loadUserConfig() *config.UserConfig {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return &config.UserConfig{}
	}
	userCfg, err := handler.Load()
	if err != nil {
		return &config.UserConfig{}
	}
	return userCfg
}

// parseLegFlag parses "FROM,TO,YYYY-MM-DD,HH:MM"
func parseLegFlag(s string) (routing.LegRequest, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return routing.LegRequest{}, fmt.Errorf("invalid --leg %q: want FROM,TO,YYYY-MM-DD,HH:MM", s)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return routing.LegRequest{
		FromICAO: strings.ToUpper(parts[0]),
		ToICAO:   strings.ToUpper(parts[1]),
		Date:     parts[2],
		Time:     parts[3],
	}, nil
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
