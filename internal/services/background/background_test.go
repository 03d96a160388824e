package background

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/imagery"
	"weather-dashboard/pkg/observe"
)

type stubSearcher struct {
	mu    sync.Mutex
	calls int
	url   string
	err   error
}

func (s *stubSearcher) SearchCityImage(_ context.Context, _, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.url, s.err
}

type recordSwapper struct {
	mu   sync.Mutex
	refs []string
}

func (r *recordSwapper) Swap(imageRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs = append(r.refs, imageRef)
	return nil
}

type blockingSwapper struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSwapper) Swap(string) error {
	close(b.started)
	<-b.release
	return nil
}

func testLogger() *observe.Logger {
	return observe.NewZapLogger("test", io.Discard)
}

func testOptions() Options {
	return Options{PreloadTimeout: time.Second}
}

// writeAsset drops a fake image file under dir so the catalog probe
// passes.
func writeAsset(t *testing.T, dir, rel string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("png"), 0o644))
}

func TestCityImageLocalAsset(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "images/istanbul.png")

	searcher := &stubSearcher{url: "https://images.example/remote.jpg"}
	s := NewService(imagery.NewCatalog(dir), searcher, &recordSwapper{}, http.DefaultClient, testOptions(), testLogger())

	ref := s.CityImage(context.Background(), "İstanbul", "Clear", "TR")
	assert.Equal(t, "images/istanbul.png", ref)
	assert.Equal(t, 0, searcher.calls)
}

func TestCityImageMissingAssetFallsToSearch(t *testing.T) {
	searcher := &stubSearcher{url: "https://images.example/ankara.jpg"}
	s := NewService(imagery.NewCatalog(t.TempDir()), searcher, &recordSwapper{}, http.DefaultClient, testOptions(), testLogger())

	ref := s.CityImage(context.Background(), "Ankara", "Clouds", "TR")
	assert.Equal(t, "https://images.example/ankara.jpg", ref)
	assert.Equal(t, 1, searcher.calls)
}

func TestCityImageForeignCitySkipsCatalog(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "images/izmir.png")

	searcher := &stubSearcher{url: "https://images.example/izmir-us.jpg"}
	s := NewService(imagery.NewCatalog(dir), searcher, &recordSwapper{}, http.DefaultClient, testOptions(), testLogger())

	// same name, wrong country: the domestic catalog must not answer
	ref := s.CityImage(context.Background(), "Izmir", "Clear", "US")
	assert.Equal(t, "https://images.example/izmir-us.jpg", ref)
}

func TestCityImageSearchFailureEndsAtDefault(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("unsplash down")}
	s := NewService(imagery.NewCatalog(t.TempDir()), searcher, &recordSwapper{}, http.DefaultClient, testOptions(), testLogger())

	ref := s.CityImage(context.Background(), "Paris", "Rain", "FR")
	assert.Equal(t, imagery.DefaultImage, ref)
}

func TestCityImageCachesDefaultResolution(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("unsplash down")}
	s := NewService(imagery.NewCatalog(t.TempDir()), searcher, &recordSwapper{}, http.DefaultClient, testOptions(), testLogger())

	first := s.CityImage(context.Background(), "Paris", "Rain", "FR")
	second := s.CityImage(context.Background(), "Paris", "Rain", "FR")

	assert.Equal(t, imagery.DefaultImage, first)
	assert.Equal(t, first, second)
	// the second call must come from cache, not re-probe the search tier
	assert.Equal(t, 1, searcher.calls)
}

func TestCityImageNilSearcher(t *testing.T) {
	s := NewService(imagery.NewCatalog(t.TempDir()), nil, &recordSwapper{}, http.DefaultClient, testOptions(), testLogger())

	ref := s.CityImage(context.Background(), "Paris", "Rain", "FR")
	assert.Equal(t, imagery.DefaultImage, ref)
}

func TestChangeBackgroundPreloadsRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("jpegbytes"))
	}))
	defer srv.Close()

	searcher := &stubSearcher{url: srv.URL + "/photo.jpg"}
	swapper := &recordSwapper{}
	s := NewService(imagery.NewCatalog(t.TempDir()), searcher, swapper, http.DefaultClient, testOptions(), testLogger())

	ref, err := s.ChangeBackground(context.Background(), "Paris", "Rain", "FR")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/photo.jpg", ref)
	require.Len(t, swapper.refs, 1)
	assert.Equal(t, ref, swapper.refs[0])
}

func TestChangeBackgroundPreloadFailureFallsToDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	searcher := &stubSearcher{url: srv.URL + "/photo.jpg"}
	swapper := &recordSwapper{}
	s := NewService(imagery.NewCatalog(t.TempDir()), searcher, swapper, http.DefaultClient, testOptions(), testLogger())

	ref, err := s.ChangeBackground(context.Background(), "Paris", "Rain", "FR")
	require.NoError(t, err)
	assert.Equal(t, imagery.DefaultImage, ref)
	require.Len(t, swapper.refs, 1)
	assert.Equal(t, imagery.DefaultImage, swapper.refs[0])
}

func TestChangeBackgroundDropsOverlappingCalls(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "images/istanbul.png")

	swapper := &blockingSwapper{started: make(chan struct{}), release: make(chan struct{})}
	s := NewService(imagery.NewCatalog(dir), nil, swapper, http.DefaultClient, testOptions(), testLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.ChangeBackground(context.Background(), "İstanbul", "Clear", "TR")
	}()

	<-swapper.started

	// second call while the first is mid-swap must be dropped
	ref, err := s.ChangeBackground(context.Background(), "Ankara", "Clear", "TR")
	require.NoError(t, err)
	assert.Empty(t, ref)

	close(swapper.release)
	<-done
}

func TestClearImageCacheForcesReResolve(t *testing.T) {
	searcher := &stubSearcher{url: "https://images.example/paris.jpg"}
	s := NewService(imagery.NewCatalog(t.TempDir()), searcher, &recordSwapper{}, http.DefaultClient, testOptions(), testLogger())

	_ = s.CityImage(context.Background(), "Paris", "Rain", "FR")
	s.ClearImageCache()
	_ = s.CityImage(context.Background(), "Paris", "Rain", "FR")

	assert.Equal(t, 2, searcher.calls)
}
