package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the proxy handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	api := app.Group("/api")

	api.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		body, err := service.GetWeather(c.UserContext(), q)
		if err != nil {
			return weatherError(err, "Server error: "+err.Error())
		}
		return relayJSON(c, body)
	})

	api.Get("/aqi", func(c *fiber.Ctx) error {
		coords, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		body, err := service.GetAirQuality(c.UserContext(), coords.lat, coords.lon)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, withUpstreamMessage(weather.MsgAirQualityFailed, err))
		}
		return relayJSON(c, body)
	})

	api.Get("/forecast", func(c *fiber.Ctx) error {
		coords, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		body, err := service.GetForecast(c.UserContext(), coords.lat, coords.lon)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, withUpstreamMessage(weather.MsgForecastFailed, err))
		}
		return relayJSON(c, body)
	})

	// Deprecated: city-only alias of /api/weather kept for old clients.
	app.Get("/weather", func(c *fiber.Ctx) error {
		city := c.Query("city")
		if city == "" {
			return fiber.NewError(fiber.StatusBadRequest, weather.MsgCityRequired)
		}

		body, err := service.GetWeather(c.UserContext(), weather.CityQuery(city))
		if err != nil {
			return weatherError(err, "Server error")
		}
		return relayJSON(c, body)
	})
}

// ErrorHandler renders every error as {"error": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// weatherError maps gateway errors from the current-weather lookups.
func weatherError(err error, transportMessage string) error {
	var upErr *weather.UpstreamError
	switch {
	case errors.Is(err, weather.ErrMissingParameter):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &upErr):
		msg := upErr.Message
		if msg == "" {
			msg = weather.MsgNotFound
		}
		return fiber.NewError(fiber.StatusNotFound, msg)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, transportMessage)
	}
}

func withUpstreamMessage(prefix string, err error) string {
	var upErr *weather.UpstreamError
	if errors.As(err, &upErr) && upErr.Message != "" {
		return prefix + ": " + upErr.Message
	}
	return prefix
}

func relayJSON(c *fiber.Ctx, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(body)
}

// coordQuery holds raw lat/lon query parameters.
type coordQuery struct {
	Lat string `validate:"required,latitude"`
	Lon string `validate:"required,longitude"`
}

type coords struct {
	lat, lon float64
}

func (q coordQuery) parse() (coords, error) {
	lat, err := strconv.ParseFloat(q.Lat, 64)
	if err != nil {
		return coords{}, errors.New("invalid lat")
	}
	lon, err := strconv.ParseFloat(q.Lon, 64)
	if err != nil {
		return coords{}, errors.New("invalid lon")
	}
	return coords{lat: lat, lon: lon}, nil
}

func parseCoordQuery(c *fiber.Ctx) (coords, error) {
	q := coordQuery{
		Lat: c.Query("lat"),
		Lon: c.Query("lon"),
	}
	if q.Lat == "" || q.Lon == "" {
		return coords{}, &weather.ParamError{Message: weather.MsgCoordsRequired}
	}
	if err := validate.Struct(q); err != nil {
		return coords{}, errors.New("invalid lat/lon")
	}
	return q.parse()
}

// parseWeatherQuery prefers the city form; coordinates are used only when
// no city is given.
func parseWeatherQuery(c *fiber.Ctx) (weather.WeatherQuery, error) {
	if city := c.Query("city"); city != "" {
		return weather.CityQuery(city), nil
	}

	q := coordQuery{
		Lat: c.Query("lat"),
		Lon: c.Query("lon"),
	}
	if q.Lat == "" || q.Lon == "" {
		return weather.WeatherQuery{}, &weather.ParamError{Message: weather.MsgCityOrCoordsRequired}
	}
	if err := validate.Struct(q); err != nil {
		return weather.WeatherQuery{}, errors.New("invalid lat/lon")
	}
	parsed, err := q.parse()
	if err != nil {
		return weather.WeatherQuery{}, err
	}
	return weather.CoordQuery(parsed.lat, parsed.lon), nil
}
