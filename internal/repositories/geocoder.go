package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"weather-dashboard/internal/apperr"
	"weather-dashboard/pkg/observe"
)

// GeoResult is a resolved coordinate with the canonical display name
// used downstream as the city label.
type GeoResult struct {
	Lat         float64
	Lon         float64
	Name        string
	CountryCode string
}

// GeocoderRepository resolves free-text city names against the
// OpenWeatherMap geocoding API, forward and reverse.
type GeocoderRepository struct {
	baseURL    string
	apiKey     string
	lang       string
	httpClient HTTPClient
	l          *observe.Logger
}

func NewGeocoderRepository(baseURL, apiKey, lang string, httpClient HTTPClient, l *observe.Logger) *GeocoderRepository {
	return &GeocoderRepository{
		baseURL:    baseURL,
		apiKey:     apiKey,
		lang:       lang,
		httpClient: httpClient,
		l:          l,
	}
}

type geoEntry struct {
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Name       string            `json:"name"`
	Country    string            `json:"country"`
	LocalNames map[string]string `json:"local_names"`
}

// Resolve geocodes a raw city query. The input is sent as typed; no
// normalization happens before the provider sees it.
func (g *GeocoderRepository) Resolve(ctx context.Context, cityName string) (GeoResult, error) {
	values := url.Values{}
	values.Set("q", cityName)
	values.Set("limit", "1")
	values.Set("appid", g.apiKey)

	g.l.Info("making geocoding request", map[string]any{"city": cityName})

	entries, err := g.query(ctx, g.baseURL+"/direct?"+values.Encode())
	if err != nil {
		return GeoResult{}, err
	}
	if len(entries) == 0 {
		return GeoResult{}, errors.Wrapf(apperr.ErrCityNotFound, "no geocoding match for %q", cityName)
	}

	return g.toResult(entries[0]), nil
}

// ReverseResolve maps a coordinate back to its nearest city.
func (g *GeocoderRepository) ReverseResolve(ctx context.Context, lat, lon float64) (GeoResult, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("limit", "1")
	values.Set("appid", g.apiKey)

	g.l.Info("making reverse geocoding request", map[string]any{"lat": lat, "lon": lon})

	entries, err := g.query(ctx, g.baseURL+"/reverse?"+values.Encode())
	if err != nil {
		return GeoResult{}, err
	}
	if len(entries) == 0 {
		return GeoResult{}, errors.Wrapf(apperr.ErrCityNotFound, "no city at %.4f,%.4f", lat, lon)
	}

	return g.toResult(entries[0]), nil
}

func (g *GeocoderRepository) query(ctx context.Context, u string) ([]geoEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to do request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.FromStatus("geocoder", resp.StatusCode)
	}

	var entries []geoEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON response")
	}

	return entries, nil
}

// toResult prefers the localized city name when the provider has one.
func (g *GeocoderRepository) toResult(e geoEntry) GeoResult {
	name := e.Name
	if localized, ok := e.LocalNames[g.lang]; ok && localized != "" {
		name = localized
	}
	return GeoResult{
		Lat:         e.Lat,
		Lon:         e.Lon,
		Name:        name,
		CountryCode: e.Country,
	}
}
