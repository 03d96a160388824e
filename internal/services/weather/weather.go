// Package weather implements the cache-first, rate-gated lookup that
// backs every dashboard search: geocode the text, fetch current
// conditions for the coordinate, normalize, cache.
package weather

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"weather-dashboard/internal/apperr"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/observe"
)

// GeoResolver resolves free-text city names and raw coordinates.
type GeoResolver interface {
	Resolve(ctx context.Context, cityName string) (repositories.GeoResult, error)
	ReverseResolve(ctx context.Context, lat, lon float64) (repositories.GeoResult, error)
}

// Fetcher retrieves normalized provider data for a resolved coordinate.
type Fetcher interface {
	Fetch(ctx context.Context, geo repositories.GeoResult) (models.WeatherSnapshot, error)
	FetchForecast(ctx context.Context, geo repositories.GeoResult) ([]models.DailyForecast, error)
}

// Options bundle the cache and throttle tunables.
type Options struct {
	Freshness     time.Duration // snapshot validity window
	MinInterval   time.Duration // spacing between outbound request pairs
	LookupTimeout time.Duration // watchdog for one whole lookup
}

// Service owns the snapshot cache and the outbound rate gate. A single
// instance is shared process-wide; construct fresh ones in tests.
type Service struct {
	geo     GeoResolver
	fetcher Fetcher
	cache   *gocache.Cache
	limiter *rate.Limiter
	opts    Options
	l       *observe.Logger
}

func NewService(geo GeoResolver, fetcher Fetcher, opts Options, l *observe.Logger) *Service {
	return &Service{
		geo:     geo,
		fetcher: fetcher,
		cache:   gocache.New(opts.Freshness, opts.Freshness),
		limiter: rate.NewLimiter(rate.Every(opts.MinInterval), 1),
		opts:    opts,
		l:       l,
	}
}

// cacheKey is the lower-cased raw input. Writes use the same key as the
// read check so repeated lookups always hit, whatever canonical name
// geocoding returns. City names that exist in several countries share
// one entry within a freshness window; known ambiguity carried over
// from the source behavior.
func cacheKey(cityName string) string {
	return strings.ToLower(strings.TrimSpace(cityName))
}

// GetWeatherData returns the snapshot for a city, from cache when a
// live entry exists, otherwise via one rate-gated geocode+fetch pair.
// Failures are classified into the apperr taxonomy; nothing is cached
// on failure.
func (s *Service) GetWeatherData(ctx context.Context, cityName string) (models.WeatherSnapshot, error) {
	if strings.TrimSpace(cityName) == "" {
		return models.WeatherSnapshot{}, apperr.ErrInvalidInput
	}

	key := cacheKey(cityName)
	if cached, ok := s.cache.Get(key); ok {
		s.l.Debug("weather cache hit", map[string]any{"city": cityName})
		return cached.(models.WeatherSnapshot), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.LookupTimeout)
	defer cancel()

	snapshot, err := s.lookup(ctx, cityName)
	if err != nil {
		classified := apperr.Classify(err)
		s.l.Warning("weather lookup failed", map[string]any{
			"city": cityName, "err": classified.Error(),
		})
		return models.WeatherSnapshot{}, classified
	}

	s.cache.Set(key, snapshot, gocache.DefaultExpiration)

	s.l.Info("weather lookup stored", map[string]any{
		"city": cityName, "resolved": snapshot.RequestParams(),
	})
	return snapshot, nil
}

func (s *Service) lookup(ctx context.Context, cityName string) (models.WeatherSnapshot, error) {
	if err := s.wait(ctx); err != nil {
		return models.WeatherSnapshot{}, err
	}

	geo, err := s.geo.Resolve(ctx, cityName)
	if err != nil {
		return models.WeatherSnapshot{}, err
	}

	return s.fetcher.Fetch(ctx, geo)
}

// GetWeatherByCoords resolves a coordinate to its nearest city and runs
// the normal city lookup, so the result lands in the same cache.
func (s *Service) GetWeatherByCoords(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.LookupTimeout)
	defer cancel()

	if err := s.wait(ctx); err != nil {
		return models.WeatherSnapshot{}, apperr.Classify(err)
	}

	geo, err := s.geo.ReverseResolve(ctx, lat, lon)
	if err != nil {
		return models.WeatherSnapshot{}, apperr.Classify(err)
	}

	return s.GetWeatherData(ctx, geo.Name)
}

// GetForecast returns the 5-day outlook, cached in its own key space
// under the same freshness window.
func (s *Service) GetForecast(ctx context.Context, cityName string) ([]models.DailyForecast, error) {
	if strings.TrimSpace(cityName) == "" {
		return nil, apperr.ErrInvalidInput
	}

	key := "forecast:" + cacheKey(cityName)
	if cached, ok := s.cache.Get(key); ok {
		s.l.Debug("forecast cache hit", map[string]any{"city": cityName})
		return cached.([]models.DailyForecast), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.LookupTimeout)
	defer cancel()

	if err := s.wait(ctx); err != nil {
		return nil, apperr.Classify(err)
	}

	geo, err := s.geo.Resolve(ctx, cityName)
	if err != nil {
		return nil, apperr.Classify(err)
	}

	forecast, err := s.fetcher.FetchForecast(ctx, geo)
	if err != nil {
		return nil, apperr.Classify(err)
	}

	s.cache.Set(key, forecast, gocache.DefaultExpiration)
	return forecast, nil
}

// wait blocks until the rate gate allows the next outbound pair.
func (s *Service) wait(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(apperr.ErrTimeout, ctx.Err().Error())
		}
		return err
	}
	return nil
}

// WeatherIcon maps a provider icon code onto the symbolic icon id.
func (s *Service) WeatherIcon(code string) string {
	return models.WeatherIcon(code)
}

// ClearCache wipes all snapshot and forecast entries.
func (s *Service) ClearCache() {
	s.cache.Flush()
	s.l.Info("weather cache cleared")
}
