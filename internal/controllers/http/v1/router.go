package http

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"weather-dashboard/internal/services/advice"
	"weather-dashboard/internal/services/background"
	"weather-dashboard/internal/services/weather"
	"weather-dashboard/pkg/observe"
)

type routes struct {
	weather    *weather.Service
	background *background.Service
	swapper    *background.MemorySwapper
	advisor    *advice.Engine
	validate   *validator.Validate
	l          *observe.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService *weather.Service,
	backgroundService *background.Service,
	swapper *background.MemorySwapper,
	advisor *advice.Engine,
	l *observe.Logger,
) {
	r := &routes{
		weather:    weatherService,
		background: backgroundService,
		swapper:    swapper,
		advisor:    advisor,
		validate:   validator.New(),
		l:          l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		// Read the generated swagger.json file
		swaggerData, err := os.ReadFile("docs/swagger.json")
		if err != nil {
			return c.Status(fiber.ErrInternalServerError.Code).JSON(fiber.Map{"error": "Failed to read Swagger documentation"})
		}

		c.Set("Content-Type", "application/json")
		return c.Send(swaggerData)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	v1 := app.Group("/api/v1")
	v1.Get("/weather", r.handleWeather)
	v1.Get("/weather/by-coords", r.handleWeatherByCoords)
	v1.Get("/weather/forecast", r.handleForecast)
	v1.Get("/background", r.handleBackground)
	v1.Post("/background", r.handleChangeBackground)
	v1.Get("/advice", r.handleAdvice)
	v1.Post("/cache/clear", r.handleCacheClear)
}
