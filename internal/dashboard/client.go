package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Gateway is the proxy contract the orchestrator depends on.
type Gateway interface {
	Weather(ctx context.Context, q weather.WeatherQuery) (*weather.Reading, error)
	AirQuality(ctx context.Context, lat, lon float64) (*weather.AirQuality, error)
	Forecast(ctx context.Context, lat, lon float64) (*weather.Forecast, error)
}

// GatewayError is a failure reported by the proxy. Message is the proxy's
// "error" text and may be empty.
type GatewayError struct {
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway status %d", e.Status)
	}
	return fmt.Sprintf("gateway status %d: %s", e.Status, e.Message)
}

// Client calls the proxy over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) Weather(ctx context.Context, q weather.WeatherQuery) (*weather.Reading, error) {
	values := url.Values{}
	if q.City != "" {
		values.Set("city", q.City)
	} else if q.HasCoords() {
		setCoords(values, *q.Lat, *q.Lon)
	}

	var payload struct {
		weather.Reading
		Error string `json:"error"`
	}
	if err := c.get(ctx, "/api/weather", values, &payload); err != nil {
		return nil, err
	}
	if !payload.Cod.OK() {
		return nil, &GatewayError{Status: http.StatusOK, Message: payload.Error}
	}
	if err := payload.Reading.Validate(); err != nil {
		return nil, &GatewayError{Status: http.StatusOK, Message: payload.Error}
	}
	return &payload.Reading, nil
}

func (c *Client) AirQuality(ctx context.Context, lat, lon float64) (*weather.AirQuality, error) {
	values := url.Values{}
	setCoords(values, lat, lon)

	var aq weather.AirQuality
	if err := c.get(ctx, "/api/aqi", values, &aq); err != nil {
		return nil, err
	}
	if err := aq.Validate(); err != nil {
		return nil, err
	}
	return &aq, nil
}

func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*weather.Forecast, error) {
	values := url.Values{}
	setCoords(values, lat, lon)

	var fc weather.Forecast
	if err := c.get(ctx, "/api/forecast", values, &fc); err != nil {
		return nil, err
	}
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	return &fc, nil
}

func (c *Client) get(ctx context.Context, path string, values url.Values, out any) error {
	u := c.baseURL + path
	if len(values) > 0 {
		u += "?" + values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &e)
		return &GatewayError{Status: resp.StatusCode, Message: e.Error}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func setCoords(values url.Values, lat, lon float64) {
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
}
