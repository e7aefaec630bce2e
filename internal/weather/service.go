package weather

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
)

// Service is the proxy gateway: it turns queries into upstream calls and
// classifies the answers. It holds no per-request state.
type Service struct {
	upstream Upstream
	logger   *slog.Logger
}

// NewService creates a new Service.
func NewService(upstream Upstream, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		upstream: upstream,
		logger:   logger.With("component", "gateway"),
	}
}

// GetWeather fetches current conditions by city or coordinates and returns
// the upstream body verbatim once it has been checked.
func (s *Service) GetWeather(ctx context.Context, q WeatherQuery) ([]byte, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	if q.City != "" {
		params.Set("q", q.City)
	} else {
		setCoords(params, *q.Lat, *q.Lon)
	}
	params.Set("units", "metric")

	resp, err := s.upstream.Get(ctx, EndpointWeather, params)
	if err != nil {
		s.logger.Error("weather request failed", "error", err)
		return nil, &TransportError{Op: "weather", Err: err}
	}

	s.logger.Debug("upstream weather payload", "status", resp.StatusCode, "payload", string(resp.Body))

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var reading Reading
	if err := json.Unmarshal(resp.Body, &reading); err != nil {
		return nil, &TransportError{Op: "weather", Err: err}
	}
	if err := reading.Validate(); err != nil {
		s.logger.Warn("rejecting weather payload", "error", err)
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	return resp.Body, nil
}

// GetAirQuality fetches the air-pollution samples for a coordinate pair.
func (s *Service) GetAirQuality(ctx context.Context, lat, lon float64) ([]byte, error) {
	params := url.Values{}
	setCoords(params, lat, lon)

	resp, err := s.upstream.Get(ctx, EndpointAirPollution, params)
	if err != nil {
		s.logger.Error("air quality request failed", "error", err)
		return nil, &TransportError{Op: "air_pollution", Err: err}
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var aq AirQuality
	if err := json.Unmarshal(resp.Body, &aq); err != nil {
		return nil, &TransportError{Op: "air_pollution", Err: err}
	}
	if err := aq.Validate(); err != nil {
		s.logger.Warn("rejecting air quality payload", "error", err)
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	return resp.Body, nil
}

// GetForecast fetches the 5-day/3-hour forecast for a coordinate pair.
func (s *Service) GetForecast(ctx context.Context, lat, lon float64) ([]byte, error) {
	params := url.Values{}
	setCoords(params, lat, lon)
	params.Set("units", "metric")

	resp, err := s.upstream.Get(ctx, EndpointForecast, params)
	if err != nil {
		s.logger.Error("forecast request failed", "error", err)
		return nil, &TransportError{Op: "forecast", Err: err}
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var fc Forecast
	if err := json.Unmarshal(resp.Body, &fc); err != nil {
		return nil, &TransportError{Op: "forecast", Err: err}
	}
	if err := fc.Validate(); err != nil {
		s.logger.Warn("rejecting forecast payload", "error", err)
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	return resp.Body, nil
}

// checkStatus fails on a non-2xx status or a present, non-200 "cod".
func checkStatus(resp UpstreamResponse) error {
	env := parseEnvelope(resp.Body)
	if resp.OK() && env.Cod.OK() {
		return nil
	}
	return &UpstreamError{Status: resp.StatusCode, Message: env.message()}
}

func setCoords(params url.Values, lat, lon float64) {
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
}
