package shared

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Routing errors

// RoutingErrorCode is the machine-readable discriminator of a RoutingError
type RoutingErrorCode string

const (
	CodeAircraftNotFound RoutingErrorCode = "AIRCRAFT_NOT_FOUND"
	CodeUnknownAirport   RoutingErrorCode = "UNKNOWN_AIRPORT"
	CodeNoRoute          RoutingErrorCode = "NO_ROUTE"
	CodeMaxDepthExceeded RoutingErrorCode = "MAX_DEPTH_EXCEEDED"
)

// RoutingError is fatal for a plan: the aircraft cannot fly the itinerary as specified.
// Retrying with the same inputs produces the same error.
type RoutingError struct {
	*DomainError
	Code RoutingErrorCode
}

// Is matches any RoutingError carrying the same code, so callers can write
// errors.Is(err, shared.ErrNoRoute).
func (e *RoutingError) Is(target error) bool {
	t, ok := target.(*RoutingError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is
var (
	ErrAircraftNotFound = &RoutingError{DomainError: &DomainError{}, Code: CodeAircraftNotFound}
	ErrUnknownAirport   = &RoutingError{DomainError: &DomainError{}, Code: CodeUnknownAirport}
	ErrNoRoute          = &RoutingError{DomainError: &DomainError{}, Code: CodeNoRoute}
	ErrMaxDepthExceeded = &RoutingError{DomainError: &DomainError{}, Code: CodeMaxDepthExceeded}
)

func newRoutingError(code RoutingErrorCode, message string) *RoutingError {
	return &RoutingError{DomainError: &DomainError{Message: message}, Code: code}
}

func NewAircraftNotFoundError(aircraftID string) *RoutingError {
	return newRoutingError(CodeAircraftNotFound, fmt.Sprintf("aircraft not found: %s", aircraftID))
}

func NewUnknownAirportError(icao string) *RoutingError {
	return newRoutingError(CodeUnknownAirport, fmt.Sprintf("unknown airport: %s", icao))
}

func NewNoRouteError(from, to string, directNM, maxDirectNM float64) *RoutingError {
	return newRoutingError(CodeNoRoute, fmt.Sprintf(
		"no feasible route %s → %s: direct distance %.0fnm exceeds aircraft max direct range %.0fnm and no fuel stop strategy succeeded",
		from, to, directNM, maxDirectNM))
}

func NewMaxDepthExceededError(from, to string, maxDepth int) *RoutingError {
	return newRoutingError(CodeMaxDepthExceeded, fmt.Sprintf(
		"fuel stop search %s → %s exceeded max depth %d; aircraft range is inadequate for this leg",
		from, to, maxDepth))
}

// AsRoutingError extracts a RoutingError from an error chain
func AsRoutingError(err error) (*RoutingError, bool) {
	var re *RoutingError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
