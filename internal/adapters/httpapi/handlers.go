package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrescamacho/aeroroute-go/internal/application/common"
	"github.com/andrescamacho/aeroroute-go/internal/application/reference"
	"github.com/andrescamacho/aeroroute-go/internal/application/routeplan"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
)

type handlers struct {
	mediator common.Mediator
}

// errorBody is the JSON error envelope
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *handlers) computeRoutePlan(c *gin.Context) {
	var cmd routeplan.ComputeRoutePlanCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION", Message: err.Error()})
		return
	}

	result, err := routeplan.ComputeRoutePlan(c.Request.Context(), h.mediator, &cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) getAirport(c *gin.Context) {
	resp, err := h.mediator.Send(c.Request.Context(), &reference.GetAirportQuery{ICAO: c.Param("icao")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) getAircraft(c *gin.Context) {
	resp, err := h.mediator.Send(c.Request.Context(), &reference.GetAircraftQuery{AircraftID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// writeError maps domain errors onto HTTP statuses
func writeError(c *gin.Context, err error) {
	var verr *shared.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION", Message: verr.Error()})
		return
	}

	if rerr, ok := shared.AsRoutingError(err); ok {
		status := http.StatusUnprocessableEntity
		switch rerr.Code {
		case shared.CodeAircraftNotFound:
			status = http.StatusNotFound
		case shared.CodeUnknownAirport:
			// a direct airport lookup is a missing resource; inside a plan it is a routing failure
			if c.FullPath() == "/v1/airports/:icao" {
				status = http.StatusNotFound
			}
		}
		c.JSON(status, errorBody{Code: string(rerr.Code), Message: rerr.Error()})
		return
	}

	common.LoggerFromContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, errorBody{Code: "INTERNAL", Message: "internal error"})
}
