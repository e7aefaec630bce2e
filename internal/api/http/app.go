package httpapi

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/web"
)

// NewApp builds the proxy application: middleware, health check, API
// routes and the landing page.
func NewApp(service *weather.Service) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-proxy",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-proxy",
		})
	})

	RegisterRoutes(app, service)

	// Registered last so API routes win.
	app.Use("/", filesystem.New(filesystem.Config{
		Root:  http.FS(web.Assets),
		Index: "index.html",
	}))

	return app
}
