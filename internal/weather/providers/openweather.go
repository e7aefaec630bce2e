package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultOpenWeatherBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherProvider implements weather.Upstream for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, baseURL, apiKey string) *OpenWeatherProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: cb,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Get calls baseURL/endpoint with params plus the credential.
func (p *OpenWeatherProvider) Get(ctx context.Context, endpoint weather.Endpoint, params url.Values) (weather.UpstreamResponse, error) {
	values := url.Values{}
	for k, vs := range params {
		values[k] = append([]string(nil), vs...)
	}
	values.Set("appid", p.apiKey)

	u := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, values.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return weather.UpstreamResponse{}, scrub(err, p.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	return doRequest(ctx, p.client, p.circuit, req, p.apiKey)
}
