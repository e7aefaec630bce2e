package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func TestClientWeather(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"London","coord":{"lat":51.5,"lon":-0.12},"main":{"temp":15.2},"weather":[{"description":"cloudy","icon":"04d"}],"cod":200}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL+"/")

	r, err := c.Weather(context.Background(), weather.CityQuery("London"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Name != "London" || r.Main.Temp != 15.2 || r.Sky().Description != "cloudy" {
		t.Errorf("unexpected reading %+v", r)
	}
	if gotPath != "/api/weather" || gotQuery.Get("city") != "London" {
		t.Errorf("unexpected request %s?%s", gotPath, gotQuery.Encode())
	}

	if _, err := c.Weather(context.Background(), weather.CoordQuery(51.5, -0.12)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery.Get("lat") != "51.5" || gotQuery.Get("lon") != "-0.12" || gotQuery.Has("city") {
		t.Errorf("unexpected coordinate query %s", gotQuery.Encode())
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"proxy error", http.StatusNotFound, `{"error":"city not found"}`, "city not found"},
		{"server error", http.StatusInternalServerError, `{"error":"Server error: boom"}`, "Server error: boom"},
		{"non-json error", http.StatusBadGateway, `bad gateway`, ""},
		{"in-band failure code", http.StatusOK, `{"cod":"404","message":"city not found"}`, ""},
		{"missing fields", http.StatusOK, `{"name":"London"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.Client(), srv.URL).Weather(context.Background(), weather.CityQuery("x"))

			var gwErr *GatewayError
			if !errors.As(err, &gwErr) {
				t.Fatalf("expected GatewayError, got %v", err)
			}
			if gwErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", gwErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestClientAirQualityAndForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") != "51.5" || r.URL.Query().Get("lon") != "-0.12" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"lat and lon required"}`))
			return
		}
		switch r.URL.Path {
		case "/api/aqi":
			_, _ = w.Write([]byte(`{"coord":{"lat":51.5,"lon":-0.12},"list":[{"main":{"aqi":2},"components":{"co":201.94,"no2":0.77,"o3":68.66,"so2":0.64,"pm2_5":0.5}}]}`))
		case "/api/forecast":
			_, _ = w.Write([]byte(`{"cod":"200","message":0,"list":[{"dt_txt":"2025-01-15 15:00:00","main":{"temp":7},"weather":[{"icon":"03d"}]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)

	aq, err := c.AirQuality(context.Background(), 51.5, -0.12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := aq.Current(); got.CO != 201.94 || got.PM25 != 0.5 {
		t.Errorf("unexpected components %+v", got)
	}

	fc, err := c.Forecast(context.Background(), 51.5, -0.12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fc.List) != 1 || fc.List[0].Icon() != "03d" {
		t.Errorf("unexpected forecast %+v", fc)
	}

	_, err = c.AirQuality(context.Background(), 0, 0)
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) || gwErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 GatewayError, got %v", err)
	}
}

func TestClientMalformedDependentPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"list":[]}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.Client(), srv.URL).AirQuality(context.Background(), 1, 2); err == nil {
		t.Fatal("expected an error for an empty air quality list")
	}
}
