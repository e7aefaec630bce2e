package weather

import (
	"context"
	"net/url"
)

// Endpoint names an upstream resource relative to the upstream base URL.
type Endpoint string

const (
	EndpointWeather      Endpoint = "weather"
	EndpointAirPollution Endpoint = "air_pollution"
	EndpointForecast     Endpoint = "forecast"
)

// UpstreamResponse is a raw upstream answer. Status-level failures are
// reported here, not as errors; classification is up to the Service.
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r UpstreamResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Upstream abstracts the third-party weather API. Implementations own the
// credential and add it to params themselves.
type Upstream interface {
	Get(ctx context.Context, endpoint Endpoint, params url.Values) (UpstreamResponse, error)
}
