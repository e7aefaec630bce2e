package dashboard

import (
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func londonReading() *weather.Reading {
	return &weather.Reading{
		Name:  "London",
		Coord: &weather.Coord{Lat: 51.5, Lon: -0.12},
		Main: &weather.Main{
			Temp:      15.2,
			FeelsLike: 14.1,
			Humidity:  72,
			Pressure:  1012,
		},
		Weather:    []weather.Condition{{Main: "Clouds", Description: "cloudy", Icon: "04d"}},
		Wind:       weather.Wind{Speed: 3.6},
		Visibility: 10000,
		Sys: weather.Sys{
			Sunrise: time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC).Unix(),
			Sunset:  time.Date(2025, 1, 15, 16, 22, 0, 0, time.UTC).Unix(),
		},
	}
}

func TestNewCurrent(t *testing.T) {
	now := time.Date(2025, 1, 15, 14, 5, 9, 0, time.UTC)

	c := NewCurrent(londonReading(), now, time.UTC)

	want := Current{
		City:       "London",
		Temp:       "15",
		Sky:        "cloudy",
		FeelsLike:  "14.1 °C",
		Humidity:   "72 %",
		Pressure:   "1012 hPa",
		Visibility: "10000 m",
		Wind:       "3.6 m/s",
		Date:       "Wednesday, January 15, 2025",
		Clock:      "02:05:09 PM",
		Sunrise:    "08:00 AM",
		Sunset:     "04:22 PM",
	}
	if c != want {
		t.Fatalf("NewCurrent() = %+v\nwant %+v", c, want)
	}
}

func TestNewCurrentConvertsSunTimes(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	c := NewCurrent(londonReading(), time.Date(2025, 1, 15, 23, 0, 0, 0, time.UTC), loc)

	if c.Sunrise != "10:00 AM" {
		t.Errorf("sunrise = %q", c.Sunrise)
	}
	if c.Date != "Thursday, January 16, 2025" {
		t.Errorf("date = %q", c.Date)
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{15.2, 15},
		{14.5, 15},
		{15.49, 15},
		{-0.4, 0},
		{-2.5, -2},
		{-2.6, -3},
	}
	for _, tt := range tests {
		if got := roundHalfUp(tt.in); got != tt.want {
			t.Errorf("roundHalfUp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRenderCurrentCoversEveryRegion(t *testing.T) {
	updates := RenderCurrent(NewCurrent(londonReading(), time.Now(), time.UTC))

	got := make(map[Region]string)
	for _, u := range updates {
		got[u.Region] = u.Text
	}
	for _, r := range []Region{
		RegionCity, RegionTemp, RegionSky, RegionFeelsLike, RegionHumidity, RegionPressure,
		RegionVisibility, RegionWind, RegionDate, RegionTime, RegionSunrise, RegionSunset,
	} {
		if got[r] == "" {
			t.Errorf("region %s is empty", r)
		}
	}
	if got[RegionTemp] != "15" || got[RegionSky] != "cloudy" {
		t.Errorf("unexpected temp/sky %q %q", got[RegionTemp], got[RegionSky])
	}
}

func TestRenderAirQuality(t *testing.T) {
	updates := RenderAirQuality(weather.Components{CO: 201.94, SO2: 0.64, O3: 68.66, NO2: 0.77, PM25: 9})

	want := map[Region]string{
		RegionCO:  "201.94",
		RegionSO2: "0.64",
		RegionO3:  "68.66",
		RegionNO2: "0.77",
	}
	if len(updates) != len(want) {
		t.Fatalf("expected %d updates, got %d", len(want), len(updates))
	}
	for _, u := range updates {
		if u.Text != want[u.Region] {
			t.Errorf("%s = %q, want %q", u.Region, u.Text, want[u.Region])
		}
	}
}

func TestRenderForecast(t *testing.T) {
	u := RenderForecast([]DailyBucket{
		{Date: "2025-01-15", Weekday: "Wednesday", Temp: 4.3, Icon: "10d"},
		{Date: "2025-01-16", Weekday: "Thursday", Temp: -1, Icon: "13n"},
	})

	if u.Region != RegionForecast || len(u.Rows) != 2 {
		t.Fatalf("unexpected update %+v", u)
	}
	first := u.Rows[0]
	if first.Label != "Wednesday" || first.Value != "4.3 °C" || first.Note != "2025-01-15" {
		t.Errorf("unexpected row %+v", first)
	}
	if first.Icon != "https://openweathermap.org/img/wn/10d@2x.png" {
		t.Errorf("unexpected icon %q", first.Icon)
	}
	if u.Rows[1].Value != "-1.0 °C" {
		t.Errorf("unexpected value %q", u.Rows[1].Value)
	}
}

func TestRenderHourly(t *testing.T) {
	u := RenderHourly([]weather.ForecastSample{
		sample("2025-01-15 15:00:00", 7.26, "03d"),
		sample("2025-01-16 00:00:00", 2, "01n"),
	}, time.UTC)

	if u.Region != RegionHourly || len(u.Rows) != 2 {
		t.Fatalf("unexpected update %+v", u)
	}
	if u.Rows[0].Label != "3:00 PM" || u.Rows[0].Value != "7.3°C" {
		t.Errorf("unexpected row %+v", u.Rows[0])
	}
	if u.Rows[1].Label != "12:00 AM" || u.Rows[1].Value != "2.0°C" {
		t.Errorf("unexpected row %+v", u.Rows[1])
	}
}

func TestIconURLEmpty(t *testing.T) {
	if got := IconURL(""); got != "" {
		t.Fatalf("IconURL(\"\") = %q", got)
	}
}
