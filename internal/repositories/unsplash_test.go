package repositories

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/pkg/observe"
)

func unsplashTestRepo(baseURL string) *UnsplashRepository {
	return NewUnsplashRepository(baseURL, "access-key", 5, "landscape", time.Second, observe.NewZapLogger("test", io.Discard))
}

func TestSearchCityImage(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.Query().Get("query")
		assert.Equal(t, "/search/photos", req.URL.Path)
		assert.Equal(t, "access-key", req.URL.Query().Get("client_id"))
		assert.Equal(t, "landscape", req.URL.Query().Get("orientation"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [{"urls": {"regular": "https://img.test/regular.jpg", "small": "https://img.test/small.jpg"}}]}`))
	}))
	defer srv.Close()

	url, err := unsplashTestRepo(srv.URL).SearchCityImage(context.Background(), "Paris", "Rain")
	require.NoError(t, err)
	assert.Equal(t, "https://img.test/regular.jpg", url)
	assert.Equal(t, "Paris city skyline landscape rain", gotQuery)
}

func TestSearchCityImageNoCondition(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [{"urls": {"small": "https://img.test/small.jpg"}}]}`))
	}))
	defer srv.Close()

	url, err := unsplashTestRepo(srv.URL).SearchCityImage(context.Background(), "Paris", "")
	require.NoError(t, err)
	assert.Equal(t, "https://img.test/small.jpg", url, "small variant when regular missing")
	assert.Equal(t, "Paris city skyline landscape", gotQuery)
}

func TestSearchCityImageNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	_, err := unsplashTestRepo(srv.URL).SearchCityImage(context.Background(), "Nowhere", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestSearchCityImageProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := unsplashTestRepo(srv.URL).SearchCityImage(context.Background(), "Paris", "")
	require.Error(t, err)
}
