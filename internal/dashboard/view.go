package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Region names a display area of the dashboard.
type Region string

const (
	RegionSearch     Region = "search"
	RegionCity       Region = "cityName"
	RegionTemp       Region = "cityTemp"
	RegionSky        Region = "skyDesc"
	RegionFeelsLike  Region = "feelsLike"
	RegionHumidity   Region = "humidity"
	RegionPressure   Region = "pressure"
	RegionVisibility Region = "visibility"
	RegionWind       Region = "windSpeed"
	RegionDate       Region = "date"
	RegionTime       Region = "time"
	RegionSunrise    Region = "sunrise"
	RegionSunset     Region = "sunset"
	RegionCO         Region = "co"
	RegionSO2        Region = "so2"
	RegionO3         Region = "o3"
	RegionNO2        Region = "no2"
	RegionForecast   Region = "forecast"
	RegionHourly     Region = "hourly"
)

// Row is one line of a list region.
type Row struct {
	Label string
	Icon  string
	Value string
	Note  string
}

// Update replaces the content of one region. Scalar regions use Text,
// list regions use Rows.
type Update struct {
	Region Region
	Text   string
	Rows   []Row
}

// Current is the view model for the current-conditions panel.
type Current struct {
	City       string
	Temp       string
	Sky        string
	FeelsLike  string
	Humidity   string
	Pressure   string
	Visibility string
	Wind       string
	Date       string
	Clock      string
	Sunrise    string
	Sunset     string
}

// NewCurrent formats a reading for display. now supplies the date and clock;
// sunrise and sunset are converted to loc.
func NewCurrent(r *weather.Reading, now time.Time, loc *time.Location) Current {
	c := Current{
		City:       r.Name,
		Sky:        r.Sky().Description,
		Visibility: formatNumber(r.Visibility) + " m",
		Wind:       formatNumber(r.Wind.Speed) + " m/s",
		Date:       now.In(loc).Format("Monday, January 2, 2006"),
		Clock:      now.In(loc).Format("03:04:05 PM"),
		Sunrise:    formatUnix(r.Sys.Sunrise, loc),
		Sunset:     formatUnix(r.Sys.Sunset, loc),
	}
	if r.Main != nil {
		c.Temp = strconv.FormatInt(roundHalfUp(r.Main.Temp), 10)
		c.FeelsLike = formatNumber(r.Main.FeelsLike) + " °C"
		c.Humidity = formatNumber(r.Main.Humidity) + " %"
		c.Pressure = formatNumber(r.Main.Pressure) + " hPa"
	}
	return c
}

// RenderCurrent maps the current-conditions view to region updates.
func RenderCurrent(c Current) []Update {
	return []Update{
		{Region: RegionCity, Text: c.City},
		{Region: RegionTemp, Text: c.Temp},
		{Region: RegionSky, Text: c.Sky},
		{Region: RegionFeelsLike, Text: c.FeelsLike},
		{Region: RegionHumidity, Text: c.Humidity},
		{Region: RegionPressure, Text: c.Pressure},
		{Region: RegionVisibility, Text: c.Visibility},
		{Region: RegionWind, Text: c.Wind},
		{Region: RegionDate, Text: c.Date},
		{Region: RegionTime, Text: c.Clock},
		{Region: RegionSunrise, Text: c.Sunrise},
		{Region: RegionSunset, Text: c.Sunset},
	}
}

// RenderAirQuality maps the pollutant panel to region updates.
func RenderAirQuality(c weather.Components) []Update {
	return []Update{
		{Region: RegionCO, Text: formatNumber(c.CO)},
		{Region: RegionSO2, Text: formatNumber(c.SO2)},
		{Region: RegionO3, Text: formatNumber(c.O3)},
		{Region: RegionNO2, Text: formatNumber(c.NO2)},
	}
}

// RenderForecast maps daily buckets to a single list update.
func RenderForecast(buckets []DailyBucket) Update {
	rows := make([]Row, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, Row{
			Label: b.Weekday,
			Icon:  IconURL(b.Icon),
			Value: fmt.Sprintf("%.1f °C", b.Temp),
			Note:  b.Date,
		})
	}
	return Update{Region: RegionForecast, Rows: rows}
}

// RenderHourly maps the selected samples to a single list update. Sample
// timestamps are read as wall-clock time in loc.
func RenderHourly(samples []weather.ForecastSample, loc *time.Location) Update {
	rows := make([]Row, 0, len(samples))
	for _, s := range samples {
		label := s.DtTxt
		if t, err := s.Time(loc); err == nil {
			label = t.Format("3:04 PM")
		}
		rows = append(rows, Row{
			Label: label,
			Icon:  IconURL(s.Icon()),
			Value: fmt.Sprintf("%.1f°C", s.Main.Temp),
		})
	}
	return Update{Region: RegionHourly, Rows: rows}
}

// IconURL returns the upstream image for an icon code.
func IconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return "https://openweathermap.org/img/wn/" + icon + "@2x.png"
}

func formatUnix(sec int64, loc *time.Location) string {
	if sec == 0 {
		return ""
	}
	return time.Unix(sec, 0).In(loc).Format("03:04 PM")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// roundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
