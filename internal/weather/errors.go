package weather

import (
	"errors"
	"fmt"
)

// User-facing messages shared by the gateway and the dashboard.
const (
	MsgCityOrCoordsRequired = "City or lat/lon required"
	MsgCityRequired         = "City is required"
	MsgCoordsRequired       = "lat and lon required"
	MsgNotFound             = "City not found or API failed"
	MsgAirQualityFailed     = "Failed to fetch AQI data"
	MsgForecastFailed       = "Failed to fetch forecast data"
)

// ErrMissingParameter is matched by every ParamError.
var ErrMissingParameter = errors.New("missing parameter")

// ParamError is a client-caused failure detected before any upstream call.
type ParamError struct {
	Message string
}

func (e *ParamError) Error() string { return e.Message }

func (e *ParamError) Is(target error) bool { return target == ErrMissingParameter }

// UpstreamError means the upstream answered but rejected the request, or
// returned a payload that does not have the expected shape.
// Message is the upstream's own text and may be empty.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream status %d", e.Status)
	}
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
}

// TransportError wraps network, circuit breaker and decode failures.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }
