package reference

import (
	"context"
	"fmt"

	"github.com/andrescamacho/aeroroute-go/internal/application/common"
	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

// GetAirportQuery looks up one airport by ICAO
type GetAirportQuery struct {
	ICAO string
}

// GetAirportHandler handles the GetAirport query
type GetAirportHandler struct {
	directory *airport.Directory
}

// NewGetAirportHandler creates a new GetAirportHandler
func NewGetAirportHandler(directory *airport.Directory) *GetAirportHandler {
	return &GetAirportHandler{directory: directory}
}

// Handle executes the GetAirport query; unknown codes fail with UNKNOWN_AIRPORT
func (h *GetAirportHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetAirportQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetAirportQuery")
	}
	if airport.NormalizeICAO(query.ICAO) == "" {
		return nil, shared.NewValidationError("icao", "is required")
	}
	return h.directory.RequireLookup(ctx, query.ICAO)
}

// ImportAirportsCommand upserts airport records
type ImportAirportsCommand struct {
	Airports []*airport.Airport
}

// ImportAirportsResponse reports the import outcome
type ImportAirportsResponse struct {
	Imported int
	Skipped  []string
}

// ImportAirportsHandler validates and saves airports, skipping invalid rows
type ImportAirportsHandler struct {
	repo airport.AirportRepository
}

// NewImportAirportsHandler creates a new ImportAirportsHandler
func NewImportAirportsHandler(repo airport.AirportRepository) *ImportAirportsHandler {
	return &ImportAirportsHandler{repo: repo}
}

// Handle executes the import
func (h *ImportAirportsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ImportAirportsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportAirportsCommand")
	}
	logger := common.LoggerFromContext(ctx)

	resp := &ImportAirportsResponse{}
	for _, a := range cmd.Airports {
		a.ICAO = airport.NormalizeICAO(a.ICAO)
		if err := a.Validate(); err != nil {
			logger.Warn("skipping invalid airport", "icao", a.ICAO, "error", err)
			resp.Skipped = append(resp.Skipped, a.ICAO)
			continue
		}
		if err := h.repo.Save(ctx, a); err != nil {
			return nil, fmt.Errorf("failed to save airport %s: %w", a.ICAO, err)
		}
		resp.Imported++
	}

	logger.Info("airports imported", "imported", resp.Imported, "skipped", len(resp.Skipped))
	return resp, nil
}
