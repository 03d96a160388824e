package http

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"weather-dashboard/internal/apperr"
)

// ErrorResponse carries the error class and the user-facing message.
type ErrorResponse struct {
	Error   string `json:"error" example:"not_found"`
	Message string `json:"message" example:"Girdiğiniz şehir bulunamadı."`
}

// BackgroundResponse is the resolved background image reference.
type BackgroundResponse struct {
	ImageURL string `json:"imageUrl" example:"images/istanbul.png"`
}

// AdviceResponse wraps the chatbot answer.
type AdviceResponse struct {
	Answer string `json:"answer"`
}

// StatusResponse acknowledges a state-changing call.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

type weatherQuery struct {
	City string `validate:"required"`
}

type coordsQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

// errorStatus maps a classified error onto an HTTP status.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		return fiber.StatusBadRequest, "invalid_input"
	case errors.Is(err, apperr.ErrCityNotFound):
		return fiber.StatusNotFound, "not_found"
	case errors.Is(err, apperr.ErrRateLimited):
		return fiber.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, apperr.ErrTimeout):
		return fiber.StatusGatewayTimeout, "timeout"
	case errors.Is(err, apperr.ErrNetwork):
		return fiber.StatusBadGateway, "network"
	}

	var provErr *apperr.ProviderError
	if errors.As(err, &provErr) {
		return fiber.StatusBadGateway, "provider"
	}

	return fiber.StatusInternalServerError, "internal"
}

func (r *routes) writeError(c *fiber.Ctx, err error) error {
	status, class := errorStatus(err)

	if status >= http.StatusInternalServerError {
		r.l.Error(err, map[string]any{"path": c.Path()})
	} else {
		r.l.Warning("request failed", map[string]any{
			"path": c.Path(), "class": class, "err": err.Error(),
		})
	}

	return c.Status(status).JSON(ErrorResponse{
		Error:   class,
		Message: apperr.UserMessage(err),
	})
}

// handleWeather godoc
// @Summary Current weather for a city
// @Description Resolves a free-text city name and returns normalized current conditions
// @Tags Weather
// @Produce json
// @Param city query string true "City name" example(İstanbul)
// @Success 200 {object} models.WeatherSnapshot "Successful response"
// @Failure 400 {object} ErrorResponse "Blank or missing city"
// @Failure 404 {object} ErrorResponse "City not found"
// @Failure 429 {object} ErrorResponse "Provider rate limit hit"
// @Failure 502 {object} ErrorResponse "Provider or network failure"
// @Failure 504 {object} ErrorResponse "Lookup timed out"
// @Router /api/v1/weather [get]
func (r *routes) handleWeather(c *fiber.Ctx) error {
	q := weatherQuery{City: c.Query("city")}
	if err := r.validate.Struct(q); err != nil {
		return r.writeError(c, apperr.ErrInvalidInput)
	}

	snapshot, err := r.weather.GetWeatherData(c.Context(), q.City)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(snapshot)
}

// handleWeatherByCoords godoc
// @Summary Current weather for a coordinate
// @Description Reverse-geocodes a coordinate and returns current conditions for the nearest city
// @Tags Weather
// @Produce json
// @Param lat query number true "Latitude (-90 to 90)" example(41.0082)
// @Param lon query number true "Longitude (-180 to 180)" example(28.9784)
// @Success 200 {object} models.WeatherSnapshot "Successful response"
// @Failure 400 {object} ErrorResponse "Invalid coordinates"
// @Failure 404 {object} ErrorResponse "No city at coordinate"
// @Router /api/v1/weather/by-coords [get]
func (r *routes) handleWeatherByCoords(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		return r.writeError(c, apperr.ErrInvalidInput)
	}

	if err := r.validate.Struct(coordsQuery{Lat: lat, Lon: lon}); err != nil {
		return r.writeError(c, apperr.ErrInvalidInput)
	}

	snapshot, err := r.weather.GetWeatherByCoords(c.Context(), lat, lon)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(snapshot)
}

// handleForecast godoc
// @Summary 5-day forecast for a city
// @Description Returns per-day aggregates bucketed from the provider's 3-hourly forecast
// @Tags Weather
// @Produce json
// @Param city query string true "City name" example(Ankara)
// @Success 200 {array} models.DailyForecast "Successful response"
// @Failure 400 {object} ErrorResponse "Blank or missing city"
// @Failure 404 {object} ErrorResponse "City not found"
// @Router /api/v1/weather/forecast [get]
func (r *routes) handleForecast(c *fiber.Ctx) error {
	q := weatherQuery{City: c.Query("city")}
	if err := r.validate.Struct(q); err != nil {
		return r.writeError(c, apperr.ErrInvalidInput)
	}

	forecast, err := r.weather.GetForecast(c.Context(), q.City)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(forecast)
}

// handleBackground godoc
// @Summary Resolve the background image for a city
// @Description Resolves the background through the cache, local catalog, stock search, default chain
// @Tags Background
// @Produce json
// @Param city query string true "City name" example(İzmir)
// @Param condition query string false "Current weather condition" example(Clear)
// @Param country query string false "ISO country code" example(TR)
// @Success 200 {object} BackgroundResponse "Resolved image reference"
// @Failure 400 {object} ErrorResponse "Blank or missing city"
// @Router /api/v1/background [get]
func (r *routes) handleBackground(c *fiber.Ctx) error {
	q := weatherQuery{City: c.Query("city")}
	if err := r.validate.Struct(q); err != nil {
		return r.writeError(c, apperr.ErrInvalidInput)
	}

	ref := r.background.CityImage(c.Context(), q.City, c.Query("condition"), c.Query("country"))
	return c.JSON(BackgroundResponse{ImageURL: ref})
}

// handleChangeBackground godoc
// @Summary Apply the background image for a city
// @Description Resolves, preloads and applies the background; overlapping calls are dropped
// @Tags Background
// @Produce json
// @Param city query string true "City name" example(İzmir)
// @Param condition query string false "Current weather condition" example(Clear)
// @Param country query string false "ISO country code" example(TR)
// @Success 200 {object} BackgroundResponse "Applied image reference"
// @Failure 400 {object} ErrorResponse "Blank or missing city"
// @Router /api/v1/background [post]
func (r *routes) handleChangeBackground(c *fiber.Ctx) error {
	q := weatherQuery{City: c.Query("city")}
	if err := r.validate.Struct(q); err != nil {
		return r.writeError(c, apperr.ErrInvalidInput)
	}

	applied, err := r.background.ChangeBackground(c.Context(), q.City, c.Query("condition"), c.Query("country"))
	if err != nil {
		return r.writeError(c, err)
	}
	if applied == "" {
		// dropped because another change was mid-flight
		applied = r.swapper.Current()
	}

	return c.JSON(BackgroundResponse{ImageURL: applied})
}

// handleAdvice godoc
// @Summary Rule-based advice for a city's current weather
// @Description Answers one of the canned dashboard questions from the live snapshot
// @Tags Advice
// @Produce json
// @Param question query string true "Canned question" example(Bugün ne giymeliyim?)
// @Param city query string false "City name" example(Bursa)
// @Success 200 {object} AdviceResponse "Answer text"
// @Failure 404 {object} ErrorResponse "City not found"
// @Router /api/v1/advice [get]
func (r *routes) handleAdvice(c *fiber.Ctx) error {
	question := c.Query("question")
	city := c.Query("city")

	if city == "" {
		// no city yet, the chatbot asks for one
		return c.JSON(AdviceResponse{Answer: r.advisor.Answer(question, nil)})
	}

	snapshot, err := r.weather.GetWeatherData(c.Context(), city)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(AdviceResponse{Answer: r.advisor.Answer(question, &snapshot)})
}

// handleCacheClear godoc
// @Summary Clear the weather and image caches
// @Tags Maintenance
// @Produce json
// @Success 200 {object} StatusResponse "Caches cleared"
// @Router /api/v1/cache/clear [post]
func (r *routes) handleCacheClear(c *fiber.Ctx) error {
	r.weather.ClearCache()
	r.background.ClearImageCache()
	return c.JSON(StatusResponse{Status: "ok"})
}
