package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/aeroroute-go/internal/adapters/httpapi"
	"github.com/andrescamacho/aeroroute-go/internal/application/common"
	"github.com/andrescamacho/aeroroute-go/internal/application/reference"
	"github.com/andrescamacho/aeroroute-go/internal/application/routeplan"
	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
	"github.com/andrescamacho/aeroroute-go/internal/domain/routing"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/config"
	"github.com/andrescamacho/aeroroute-go/test/helpers"
)

func newTestServer(t *testing.T, opts ...httpapi.ServerOption) http.Handler {
	t.Helper()

	aircraftRepo := helpers.NewMockAircraftRepository(helpers.MidsizeAircraft("N100"))
	directory := airport.NewDirectory(helpers.NewFixtureAirportRepository())
	clock := shared.NewMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*routeplan.ComputeRoutePlanCommand](m,
		routeplan.NewComputeRoutePlanHandler(aircraftRepo, directory, routing.NewOptimizer(directory, routing.DefaultTuning()), nil, clock)))
	require.NoError(t, common.RegisterHandler[*reference.GetAirportQuery](m, reference.NewGetAirportHandler(directory)))
	require.NoError(t, common.RegisterHandler[*reference.GetAircraftQuery](m, reference.NewGetAircraftHandler(aircraftRepo)))

	cfg := config.ServerConfig{Mode: gin.TestMode, CORSOrigins: []string{"https://ops.example.com"}}
	return httpapi.NewServer(cfg, m, nil, opts...).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func planRequest(to string) map[string]any {
	return map[string]any{
		"aircraft_id":        "N100",
		"optimization_mode":  "cost",
		"skip_weather_notam": true,
		"legs": []map[string]string{
			{"from_icao": "KTEB", "to_icao": to, "date": "2026-03-14", "time": "14:00"},
		},
	}
}

func TestServer_ComputeRoutePlan(t *testing.T) {
	// Arrange
	h := newTestServer(t)

	// Act
	rec := do(t, h, http.MethodPost, "/v1/route-plans", planRequest("KLAX"))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		RouteLegs []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"route_legs"`
		RefuelStops []struct {
			ICAO string `json:"icao"`
		} `json:"refuel_stops"`
		RiskScore     int `json:"risk_score"`
		CostBreakdown struct {
			TotalRoutingCostUSD float64 `json:"total_routing_cost_usd"`
		} `json:"cost_breakdown"`
		Alternative *struct {
			TradeOffNote string `json:"trade_off_note"`
		} `json:"alternative"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.RefuelStops, 1)
	assert.Equal(t, "KDEN", body.RefuelStops[0].ICAO)
	assert.Len(t, body.RouteLegs, 2)
	assert.Equal(t, 15, body.RiskScore)
	assert.Greater(t, body.CostBreakdown.TotalRoutingCostUSD, 0.0)
	require.NotNil(t, body.Alternative)
	assert.Contains(t, body.Alternative.TradeOffNote, "vs cost plan")
}

func TestServer_ErrorMapping(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"malformed json", http.MethodPost, "/v1/route-plans", "not an object", http.StatusBadRequest, "VALIDATION"},
		{"unknown destination", http.MethodPost, "/v1/route-plans", planRequest("ZZZZ"), http.StatusUnprocessableEntity, "UNKNOWN_AIRPORT"},
		{"unknown airport lookup", http.MethodGet, "/v1/airports/ZZZZ", nil, http.StatusNotFound, "UNKNOWN_AIRPORT"},
		{"unknown aircraft", http.MethodGet, "/v1/aircraft/N404", nil, http.StatusNotFound, "AIRCRAFT_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestServer_ReferenceLookups(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/v1/airports/kmkc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "KMKC")

	rec = do(t, h, http.MethodGet, "/v1/aircraft/N100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "midsize")
}

func TestServer_HealthAndCORS(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"UP"}`, rec.Body.String())
	assert.Equal(t, "https://ops.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_MetricsEndpoint(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "aeroroute_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()

	h := newTestServer(t, httpapi.WithMetrics(registry, ""))
	rec := do(t, h, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "aeroroute_test_total 1")
}

func TestServer_RequestID(t *testing.T) {
	h := newTestServer(t)

	generated := do(t, h, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, generated.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "ops-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "ops-42", rec.Header().Get("X-Request-ID"))
}
