package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/pkg/errors"

	"weather-dashboard/internal/apperr"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/observe"
)

const forecastDays = 5

// OpenWeatherRepository fetches current conditions and the 5-day
// forecast for a resolved coordinate and normalizes them into the
// dashboard's snapshot shape.
type OpenWeatherRepository struct {
	baseURL    string
	apiKey     string
	units      string
	lang       string
	httpClient HTTPClient
	l          *observe.Logger
}

func NewOpenWeatherRepository(baseURL, apiKey, units, lang string, httpClient HTTPClient, l *observe.Logger) *OpenWeatherRepository {
	return &OpenWeatherRepository{
		baseURL:    baseURL,
		apiKey:     apiKey,
		units:      units,
		lang:       lang,
		httpClient: httpClient,
		l:          l,
	}
}

type currentPayload struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
		Main        string `json:"main"`
	} `json:"weather"`
	Wind struct {
		Speed float64  `json:"speed"`
		Deg   int      `json:"deg"`
		Gust  *float64 `json:"gust"`
	} `json:"wind"`
	Visibility int     `json:"visibility"`
	UVI        float64 `json:"uvi"`
	Sys        struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
}

// Fetch retrieves current conditions for a resolved location. No
// retries: failures surface to the caller immediately.
func (o *OpenWeatherRepository) Fetch(ctx context.Context, geo GeoResult) (models.WeatherSnapshot, error) {
	u := o.baseURL + "/weather?" + o.coordQuery(geo).Encode()

	o.l.Info("making weather request", map[string]any{
		"city": geo.Name, "lat": geo.Lat, "lon": geo.Lon,
	})

	body, err := o.get(ctx, u)
	if err != nil {
		return models.WeatherSnapshot{}, err
	}

	var payload currentPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.WeatherSnapshot{}, errors.Wrap(err, "failed to parse JSON response")
	}
	if len(payload.Weather) == 0 {
		return models.WeatherSnapshot{}, errors.New("no weather data available")
	}

	return normalizeSnapshot(geo, payload), nil
}

func normalizeSnapshot(geo GeoResult, p currentPayload) models.WeatherSnapshot {
	visibility := 10 // provider omits visibility for some stations
	if p.Visibility > 0 {
		visibility = int(math.Round(float64(p.Visibility) / 1000))
	}

	var gust *int
	if p.Wind.Gust != nil {
		g := models.MSToKmh(*p.Wind.Gust)
		gust = &g
	}

	return models.WeatherSnapshot{
		City: models.City{
			Name:        geo.Name,
			Country:     models.CountryName(geo.CountryCode),
			CountryCode: geo.CountryCode,
			Lat:         geo.Lat,
			Lon:         geo.Lon,
		},
		Current: models.Current{
			TemperatureC: models.RoundC(p.Main.Temp),
			FeelsLikeC:   models.RoundC(p.Main.FeelsLike),
			HumidityPct:  p.Main.Humidity,
			PressureHPa:  p.Main.Pressure,
			VisibilityKm: visibility,
			UVIndex:      p.UVI,
			Description:  p.Weather[0].Description,
			IconCode:     p.Weather[0].Icon,
			Condition:    p.Weather[0].Main,
		},
		Wind: models.Wind{
			SpeedKmh:     models.MSToKmh(p.Wind.Speed),
			DirectionDeg: p.Wind.Deg,
			GustKmh:      gust,
		},
		Sunrise:   unixOrNil(p.Sys.Sunrise),
		Sunset:    unixOrNil(p.Sys.Sunset),
		FetchedAt: time.Now().UTC(),
	}
}

func unixOrNil(sec int64) *time.Time {
	if sec == 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}

type forecastPayload struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

// FetchForecast buckets the provider's 3-hourly entries into per-day
// aggregates, capped at five days.
func (o *OpenWeatherRepository) FetchForecast(ctx context.Context, geo GeoResult) ([]models.DailyForecast, error) {
	u := o.baseURL + "/forecast?" + o.coordQuery(geo).Encode()

	o.l.Info("making forecast request", map[string]any{
		"city": geo.Name, "lat": geo.Lat, "lon": geo.Lon,
	})

	body, err := o.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var payload forecastPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON response")
	}
	if len(payload.List) == 0 {
		return nil, errors.New("no forecast data available")
	}

	type bucket struct {
		date        time.Time
		temps       []float64
		humidity    []float64
		windSpeeds  []float64
		description string
		icon        string
	}

	buckets := make(map[string]*bucket)
	for _, item := range payload.List {
		ts := time.Unix(item.Dt, 0).UTC()
		key := ts.Format("2006-01-02")

		b, ok := buckets[key]
		if !ok {
			b = &bucket{date: time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)}
			if len(item.Weather) > 0 {
				b.description = item.Weather[0].Description
				b.icon = item.Weather[0].Icon
			}
			buckets[key] = b
		}
		b.temps = append(b.temps, item.Main.Temp)
		b.humidity = append(b.humidity, item.Main.Humidity)
		b.windSpeeds = append(b.windSpeeds, item.Wind.Speed)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	forecast := make([]models.DailyForecast, 0, forecastDays)
	for _, k := range keys {
		if len(forecast) >= forecastDays {
			break
		}
		b := buckets[k]
		forecast = append(forecast, models.DailyForecast{
			Date:        b.date,
			MinC:        models.RoundC(minOf(b.temps)),
			MaxC:        models.RoundC(maxOf(b.temps)),
			AvgC:        models.RoundC(avgOf(b.temps)),
			Description: b.description,
			IconCode:    b.icon,
			HumidityPct: models.RoundC(avgOf(b.humidity)),
			WindKmh:     models.MSToKmh(avgOf(b.windSpeeds)),
		})
	}

	return forecast, nil
}

func (o *OpenWeatherRepository) coordQuery(geo GeoResult) url.Values {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", geo.Lat))
	values.Set("lon", fmt.Sprintf("%f", geo.Lon))
	values.Set("appid", o.apiKey)
	values.Set("units", o.units)
	values.Set("lang", o.lang)
	return values
}

func (o *OpenWeatherRepository) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to do request")
	}
	defer resp.Body.Close()

	o.l.Info("received weather API response", map[string]any{
		"status": resp.StatusCode,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.FromStatus("openweathermap", resp.StatusCode)
	}

	return body, nil
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func avgOf(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
