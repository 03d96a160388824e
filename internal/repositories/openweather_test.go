package repositories

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/apperr"
	"weather-dashboard/pkg/observe"
)

func owTestRepo(client HTTPClient) *OpenWeatherRepository {
	return NewOpenWeatherRepository("https://api.test/data/2.5", "key", "metric", "tr", client, observe.NewZapLogger("test", io.Discard))
}

func istanbulGeo() GeoResult {
	return GeoResult{Lat: 41.0082, Lon: 28.9784, Name: "İstanbul", CountryCode: "TR"}
}

func TestFetchNormalization(t *testing.T) {
	client := &stubHTTPClient{
		status: http.StatusOK,
		body: `{
			"main": {"temp": 21.6, "feels_like": 23.4, "humidity": 58, "pressure": 1013},
			"weather": [{"description": "açık", "icon": "01d", "main": "Clear"}],
			"wind": {"speed": 10, "deg": 230, "gust": 15.2},
			"visibility": 8000,
			"uvi": 6.2,
			"sys": {"sunrise": 1756700000, "sunset": 1756747000}
		}`,
	}

	snap, err := owTestRepo(client).Fetch(context.Background(), istanbulGeo())
	require.NoError(t, err)

	assert.Equal(t, "İstanbul", snap.City.Name)
	assert.Equal(t, "Türkiye", snap.City.Country)
	assert.Equal(t, 22, snap.Current.TemperatureC, "temperature rounded")
	assert.Equal(t, 23, snap.Current.FeelsLikeC)
	assert.Equal(t, 36, snap.Wind.SpeedKmh, "10 m/s is 36 km/h")
	require.NotNil(t, snap.Wind.GustKmh)
	assert.Equal(t, 55, *snap.Wind.GustKmh)
	assert.Equal(t, 8, snap.Current.VisibilityKm, "meters converted to km")
	assert.Equal(t, 6.2, snap.Current.UVIndex)
	require.NotNil(t, snap.Sunrise)
	assert.Equal(t, int64(1756700000), snap.Sunrise.Unix())
	assert.False(t, snap.FetchedAt.IsZero())

	q := client.lastURL.Query()
	assert.Equal(t, "metric", q.Get("units"))
	assert.Equal(t, "tr", q.Get("lang"))
}

func TestFetchDefaultsForOmittedFields(t *testing.T) {
	client := &stubHTTPClient{
		status: http.StatusOK,
		body: `{
			"main": {"temp": 5.4, "feels_like": 3.1, "humidity": 80, "pressure": 1020},
			"weather": [{"description": "kapalı", "icon": "04d", "main": "Clouds"}],
			"wind": {"speed": 3.5, "deg": 90}
		}`,
	}

	snap, err := owTestRepo(client).Fetch(context.Background(), istanbulGeo())
	require.NoError(t, err)

	assert.Equal(t, 10, snap.Current.VisibilityKm, "missing visibility defaults to 10 km")
	assert.Equal(t, 0.0, snap.Current.UVIndex)
	assert.Nil(t, snap.Wind.GustKmh)
	assert.Nil(t, snap.Sunrise)
	assert.Nil(t, snap.Sunset)
}

func TestFetchEmptyWeatherArray(t *testing.T) {
	client := &stubHTTPClient{
		status: http.StatusOK,
		body:   `{"main": {"temp": 20}, "weather": [], "wind": {"speed": 1}}`,
	}

	_, err := owTestRepo(client).Fetch(context.Background(), istanbulGeo())
	require.Error(t, err)
}

func TestFetchRateLimited(t *testing.T) {
	client := &stubHTTPClient{status: http.StatusTooManyRequests, body: `{}`}

	_, err := owTestRepo(client).Fetch(context.Background(), istanbulGeo())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRateLimited)
}

func TestFetchProviderError(t *testing.T) {
	client := &stubHTTPClient{status: http.StatusServiceUnavailable, body: `{}`}

	_, err := owTestRepo(client).Fetch(context.Background(), istanbulGeo())
	require.Error(t, err)

	var provErr *apperr.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "openweathermap", provErr.Provider)
}

func TestFetchForecastBucketsByDay(t *testing.T) {
	day1 := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	day1b := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)

	client := &stubHTTPClient{
		status: http.StatusOK,
		body: `{"list": [
			{"dt": ` + itoa(day1.Unix()) + `, "main": {"temp": 18.0, "humidity": 60}, "weather": [{"description": "açık", "icon": "01d"}], "wind": {"speed": 2.0}},
			{"dt": ` + itoa(day1b.Unix()) + `, "main": {"temp": 26.0, "humidity": 40}, "weather": [{"description": "parçalı bulutlu", "icon": "02d"}], "wind": {"speed": 4.0}},
			{"dt": ` + itoa(day2.Unix()) + `, "main": {"temp": 20.0, "humidity": 55}, "weather": [{"description": "yağmurlu", "icon": "10d"}], "wind": {"speed": 3.0}}
		]}`,
	}

	forecast, err := owTestRepo(client).FetchForecast(context.Background(), istanbulGeo())
	require.NoError(t, err)
	require.Len(t, forecast, 2)

	first := forecast[0]
	assert.Equal(t, 18, first.MinC)
	assert.Equal(t, 26, first.MaxC)
	assert.Equal(t, 22, first.AvgC)
	assert.Equal(t, "açık", first.Description, "first entry of the day labels it")
	assert.Equal(t, "01d", first.IconCode)
	assert.Equal(t, 50, first.HumidityPct)
	assert.Equal(t, 11, first.WindKmh, "3 m/s average is 11 km/h rounded")

	assert.True(t, forecast[0].Date.Before(forecast[1].Date))
}

func TestFetchForecastEmpty(t *testing.T) {
	client := &stubHTTPClient{status: http.StatusOK, body: `{"list": []}`}

	_, err := owTestRepo(client).FetchForecast(context.Background(), istanbulGeo())
	require.Error(t, err)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
