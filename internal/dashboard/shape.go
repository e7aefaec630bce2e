package dashboard

import (
	"math"
	"strings"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	// ForecastDays is the number of rows in the daily view.
	ForecastDays = 5
	// HourlySlots is the number of entries in the hourly strip.
	HourlySlots = 6
)

// DailyBucket is the representative sample for one calendar date.
type DailyBucket struct {
	Date    string
	Weekday string
	Temp    float64
	Icon    string
}

// BucketDays keeps the first sample seen for each date, in first-seen order,
// and stops after limit dates. It is a first-occurrence pick, not a min, max
// or mean, so the bucket usually reflects the earliest hours of the day.
func BucketDays(samples []weather.ForecastSample, limit int) []DailyBucket {
	if limit <= 0 {
		return nil
	}

	seen := make(map[string]bool)
	buckets := make([]DailyBucket, 0, limit)

	for _, s := range samples {
		date := s.Date()
		if date == "" || seen[date] {
			continue
		}
		seen[date] = true

		buckets = append(buckets, DailyBucket{
			Date:    date,
			Weekday: weekday(date),
			Temp:    roundTo(s.Main.Temp, 1),
			Icon:    s.Icon(),
		})
		if len(buckets) == limit {
			break
		}
	}

	return buckets
}

// SelectHourly returns up to limit samples for the rest of now's calendar
// day, backfilled in order with the next day's samples. Dates are matched by
// prefix against the sample timestamps.
func SelectHourly(samples []weather.ForecastSample, now time.Time, limit int) []weather.ForecastSample {
	if limit <= 0 {
		return nil
	}

	today := now.Format(weather.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(weather.DateLayout)

	var todays, tomorrows []weather.ForecastSample
	for _, s := range samples {
		switch {
		case strings.HasPrefix(s.DtTxt, today):
			todays = append(todays, s)
		case strings.HasPrefix(s.DtTxt, tomorrow):
			tomorrows = append(tomorrows, s)
		}
	}

	selected := make([]weather.ForecastSample, 0, limit)
	selected = append(selected, todays[:min(len(todays), limit)]...)
	if missing := limit - len(selected); missing > 0 {
		selected = append(selected, tomorrows[:min(len(tomorrows), missing)]...)
	}
	return selected
}

func weekday(date string) string {
	t, err := time.Parse(weather.DateLayout, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
