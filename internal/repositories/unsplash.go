package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"

	"weather-dashboard/pkg/observe"
)

const defaultImageQuery = "city skyline landscape"

// ErrNoImage means the search succeeded but returned nothing usable.
// The background chain treats it like any other tier miss.
var ErrNoImage = errors.New("no image results")

// UnsplashRepository searches stock photos for non-domestic cities.
// Calls run behind a circuit breaker so a flapping image provider stops
// being probed for a while; the chain falls to the default image anyway.
type UnsplashRepository struct {
	client      *resty.Client
	accessKey   string
	perPage     int
	orientation string
	circuit     *gobreaker.CircuitBreaker
	l           *observe.Logger
}

func NewUnsplashRepository(baseURL, accessKey string, perPage int, orientation string, timeout time.Duration, l *observe.Logger) *UnsplashRepository {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept-Version", "v1")

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "unsplash",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &UnsplashRepository{
		client:      client,
		accessKey:   accessKey,
		perPage:     perPage,
		orientation: orientation,
		circuit:     cb,
		l:           l,
	}
}

type unsplashSearchResult struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
			Small   string `json:"small"`
		} `json:"urls"`
	} `json:"results"`
}

// SearchCityImage composes the search query from the city and the
// current condition and returns the first result's regular URL, with
// the small variant as fallback.
func (u *UnsplashRepository) SearchCityImage(ctx context.Context, cityName, weatherCondition string) (string, error) {
	query := fmt.Sprintf("%s %s", cityName, defaultImageQuery)
	if weatherCondition != "" {
		query += " " + strings.ToLower(weatherCondition)
	}

	u.l.Info("making unsplash search request", map[string]any{"query": query})

	result, err := u.circuit.Execute(func() (interface{}, error) {
		var payload unsplashSearchResult
		resp, err := u.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"query":       query,
				"per_page":    strconv.Itoa(u.perPage),
				"orientation": u.orientation,
				"client_id":   u.accessKey,
			}).
			SetResult(&payload).
			Get("/search/photos")
		if err != nil {
			return nil, errors.Wrap(err, "failed to do request")
		}
		if resp.IsError() {
			return nil, errors.Errorf("unsplash returned status %d", resp.StatusCode())
		}
		return &payload, nil
	})
	if err != nil {
		return "", err
	}

	payload := result.(*unsplashSearchResult)
	if len(payload.Results) == 0 {
		return "", ErrNoImage
	}

	urls := payload.Results[0].URLs
	if urls.Regular != "" {
		return urls.Regular, nil
	}
	if urls.Small != "" {
		return urls.Small, nil
	}
	return "", ErrNoImage
}
