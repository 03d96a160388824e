// Package background resolves and applies the dashboard background
// image for a city: session cache, bundled domestic assets, stock photo
// search, then the default image. The chain never fails; the worst
// outcome is the default.
package background

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"weather-dashboard/internal/imagery"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/observe"
)

// ImageSearcher is the remote stock photo tier. Nil disables it.
type ImageSearcher interface {
	SearchCityImage(ctx context.Context, cityName, weatherCondition string) (string, error)
}

// Swapper applies a resolved image reference to the presentation layer.
type Swapper interface {
	Swap(imageRef string) error
}

// Options bundle the background tunables.
type Options struct {
	PreloadTimeout time.Duration
}

// Service resolves city background images and orchestrates swaps.
// Resolved references are cached for the process lifetime; cities do
// not change their skyline mid-session.
type Service struct {
	catalog    *imagery.Catalog
	searcher   ImageSearcher
	swapper    Swapper
	httpClient repositories.HTTPClient
	cache      *gocache.Cache
	inProgress atomic.Bool
	opts       Options
	l          *observe.Logger
}

func NewService(catalog *imagery.Catalog, searcher ImageSearcher, swapper Swapper, httpClient repositories.HTTPClient, opts Options, l *observe.Logger) *Service {
	return &Service{
		catalog:    catalog,
		searcher:   searcher,
		swapper:    swapper,
		httpClient: httpClient,
		cache:      gocache.New(gocache.NoExpiration, 0),
		opts:       opts,
		l:          l,
	}
}

// cacheKey pairs the lower-cased city with its country code so that
// same-named cities in different countries resolve independently.
func cacheKey(cityName, countryCode string) string {
	code := countryCode
	if code == "" {
		code = "unknown"
	}
	return strings.ToLower(cityName) + "_" + strings.ToLower(code)
}

// CityImage resolves the background reference for a city. It never
// returns an error: each tier miss falls through to the next, ending at
// the default image. The resolved value is cached, default included, so
// a city that fell through once is not probed again this session.
func (s *Service) CityImage(ctx context.Context, cityName, weatherCondition, countryCode string) string {
	key := cacheKey(cityName, countryCode)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(string)
	}

	ref := s.resolve(ctx, cityName, weatherCondition, countryCode)
	s.cache.Set(key, ref, gocache.NoExpiration)

	s.l.Info("background image resolved", map[string]any{
		"city": cityName, "country": countryCode, "image": ref,
	})
	return ref
}

func (s *Service) resolve(ctx context.Context, cityName, weatherCondition, countryCode string) string {
	if imagery.IsTurkishCity(cityName, countryCode) {
		if asset, ok := s.catalog.LocalAsset(cityName); ok {
			return asset
		}
		s.l.Debug("no local asset for domestic city", map[string]any{"city": cityName})
	}

	if s.searcher != nil {
		url, err := s.searcher.SearchCityImage(ctx, cityName, weatherCondition)
		if err == nil && url != "" {
			return url
		}
		if err != nil {
			// remote tier failures never surface, the chain degrades
			s.l.Warning("image search failed", map[string]any{
				"city": cityName, "err": err.Error(),
			})
		}
	}

	return imagery.DefaultImage
}

// ChangeBackground resolves the image for a city and applies it through
// the swapper, preloading remote URLs first so the swap never shows a
// half-loaded image. Overlapping calls are dropped, not queued; the
// returned reference is empty when the call was dropped.
func (s *Service) ChangeBackground(ctx context.Context, cityName, weatherCondition, countryCode string) (string, error) {
	if !s.inProgress.CompareAndSwap(false, true) {
		s.l.Debug("background change already in progress, dropping", map[string]any{"city": cityName})
		return "", nil
	}
	defer s.inProgress.Store(false)

	ref := s.CityImage(ctx, cityName, weatherCondition, countryCode)

	if err := s.preload(ctx, ref); err != nil {
		s.l.Warning("background preload failed, using default", map[string]any{
			"city": cityName, "image": ref, "err": err.Error(),
		})
		ref = imagery.DefaultImage
	}

	if err := s.swapper.Swap(ref); err != nil {
		return "", errors.Wrap(err, "failed to apply background")
	}

	return ref, nil
}

// preload fetches a remote image fully before the swap. Local assets
// were already verified on disk and skip this.
func (s *Service) preload(ctx context.Context, ref string) error {
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.PreloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return errors.Wrap(err, "failed to read image body")
	}

	return nil
}

// ClearImageCache wipes all resolved references.
func (s *Service) ClearImageCache() {
	s.cache.Flush()
	s.l.Info("image cache cleared")
}
