package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ForecastTimeLayout is the layout of ForecastSample.DtTxt.
const ForecastTimeLayout = "2006-01-02 15:04:05"

// DateLayout is the calendar-date prefix of ForecastTimeLayout.
const DateLayout = "2006-01-02"

// WeatherQuery selects a location for the primary weather lookup.
// Either City or both Lat and Lon must be set.
type WeatherQuery struct {
	City string
	Lat  *float64
	Lon  *float64
}

// CityQuery returns a query for the given city name.
func CityQuery(city string) WeatherQuery {
	return WeatherQuery{City: city}
}

// CoordQuery returns a query for the given coordinates.
func CoordQuery(lat, lon float64) WeatherQuery {
	return WeatherQuery{Lat: &lat, Lon: &lon}
}

// HasCoords reports whether both coordinates are set.
func (q WeatherQuery) HasCoords() bool {
	return q.Lat != nil && q.Lon != nil
}

// Validate returns ErrMissingParameter when neither form is fully specified.
func (q WeatherQuery) Validate() error {
	if q.City == "" && !q.HasCoords() {
		return &ParamError{Message: MsgCityOrCoordsRequired}
	}
	return nil
}

// Code is the upstream "cod" field. The upstream sends it as a number on some
// endpoints and as a string on others.
type Code int

func (c *Code) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid cod %q: %w", s, err)
	}
	*c = Code(n)
	return nil
}

// OK reports whether the code is absent or 200.
func (c *Code) OK() bool {
	return c == nil || *c == 0 || *c == 200
}

type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Condition struct {
	Main        string `json:"main,omitempty"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
	Pressure  float64 `json:"pressure"`
}

type Wind struct {
	Speed float64 `json:"speed"`
}

type Sys struct {
	Sunrise int64 `json:"sunrise"`
	Sunset  int64 `json:"sunset"`
}

// Reading is the upstream current-weather payload.
type Reading struct {
	Name       string      `json:"name" validate:"required"`
	Coord      *Coord      `json:"coord" validate:"required"`
	Main       *Main       `json:"main" validate:"required"`
	Weather    []Condition `json:"weather" validate:"required,min=1"`
	Wind       Wind        `json:"wind"`
	Visibility float64     `json:"visibility"`
	Sys        Sys         `json:"sys"`
	Cod        *Code       `json:"cod,omitempty"`
}

// Validate checks the fields the dashboard depends on.
func (r *Reading) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("malformed weather payload: %w", err)
	}
	return nil
}

// Sky returns the first condition.
func (r *Reading) Sky() Condition {
	if len(r.Weather) == 0 {
		return Condition{}
	}
	return r.Weather[0]
}

// Components holds pollutant concentrations in μg/m3.
type Components struct {
	CO   float64 `json:"co"`
	NO   float64 `json:"no"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	SO2  float64 `json:"so2"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	NH3  float64 `json:"nh3"`
}

type AirSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
	Components Components `json:"components"`
}

// AirQuality is the upstream air-pollution payload.
type AirQuality struct {
	Coord *Coord      `json:"coord,omitempty"`
	List  []AirSample `json:"list" validate:"required,min=1"`
}

func (a *AirQuality) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("malformed air quality payload: %w", err)
	}
	return nil
}

// Current returns the components of the first sample.
func (a *AirQuality) Current() Components {
	if len(a.List) == 0 {
		return Components{}
	}
	return a.List[0].Components
}

// ForecastSample is one 3-hour step of the forecast list.
type ForecastSample struct {
	Dt    int64  `json:"dt"`
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
}

// Date returns the calendar-date part of DtTxt.
func (s ForecastSample) Date() string {
	date, _, _ := strings.Cut(s.DtTxt, " ")
	return date
}

// Time parses DtTxt in loc.
func (s ForecastSample) Time(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(ForecastTimeLayout, s.DtTxt, loc)
}

func (s ForecastSample) Icon() string {
	if len(s.Weather) == 0 {
		return ""
	}
	return s.Weather[0].Icon
}

// Forecast is the upstream 5-day/3-hour forecast payload.
type Forecast struct {
	Cod  *Code            `json:"cod,omitempty"`
	List []ForecastSample `json:"list" validate:"required"`
}

func (f *Forecast) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("malformed forecast payload: %w", err)
	}
	return nil
}

// envelope carries the status fields shared by every upstream payload.
// "message" is a string on failures and a number on forecast successes.
type envelope struct {
	Cod     *Code           `json:"cod"`
	Message json.RawMessage `json:"message"`
}

func parseEnvelope(body []byte) envelope {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}
	}
	return env
}

func (e envelope) message() string {
	var s string
	if err := json.Unmarshal(e.Message, &s); err != nil {
		return ""
	}
	return s
}
