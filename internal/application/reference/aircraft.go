package reference

import (
	"context"
	"fmt"

	"github.com/andrescamacho/aeroroute-go/internal/application/common"
	"github.com/andrescamacho/aeroroute-go/internal/domain/aircraft"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

// GetAircraftQuery looks up one aircraft performance record
type GetAircraftQuery struct {
	AircraftID string
}

// GetAircraftHandler handles the GetAircraft query
type GetAircraftHandler struct {
	repo aircraft.AircraftRepository
}

// NewGetAircraftHandler creates a new GetAircraftHandler
func NewGetAircraftHandler(repo aircraft.AircraftRepository) *GetAircraftHandler {
	return &GetAircraftHandler{repo: repo}
}

// Handle executes the GetAircraft query; unknown ids fail with AIRCRAFT_NOT_FOUND
func (h *GetAircraftHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetAircraftQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetAircraftQuery")
	}

	perf, err := h.repo.FindByID(ctx, query.AircraftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get aircraft: %w", err)
	}
	if perf == nil {
		return nil, shared.NewAircraftNotFoundError(query.AircraftID)
	}
	return perf, nil
}

// SaveAircraftCommand registers or replaces an aircraft performance record
type SaveAircraftCommand struct {
	Aircraft *aircraft.Performance
}

// SaveAircraftHandler handles the SaveAircraft command
type SaveAircraftHandler struct {
	repo aircraft.AircraftRepository
}

// NewSaveAircraftHandler creates a new SaveAircraftHandler
func NewSaveAircraftHandler(repo aircraft.AircraftRepository) *SaveAircraftHandler {
	return &SaveAircraftHandler{repo: repo}
}

// Handle validates and saves the aircraft
func (h *SaveAircraftHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SaveAircraftCommand)
	if !ok || cmd.Aircraft == nil {
		return nil, fmt.Errorf("invalid request type: expected *SaveAircraftCommand")
	}
	if err := cmd.Aircraft.Validate(); err != nil {
		return nil, err
	}
	if err := h.repo.Save(ctx, cmd.Aircraft); err != nil {
		return nil, fmt.Errorf("failed to save aircraft %s: %w", cmd.Aircraft.AircraftID, err)
	}
	common.LoggerFromContext(ctx).Info("aircraft saved", "aircraft", cmd.Aircraft.AircraftID, "category", cmd.Aircraft.Category)
	return cmd.Aircraft, nil
}
