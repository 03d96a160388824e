package apperr

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStatus(t *testing.T) {
	assert.ErrorIs(t, FromStatus("geocoder", http.StatusTooManyRequests), ErrRateLimited)

	err := FromStatus("openweathermap", http.StatusUnauthorized)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "openweathermap", provErr.Provider)
	assert.Equal(t, http.StatusUnauthorized, provErr.Status)
	assert.Equal(t, "openweathermap returned status 401", provErr.Error())
}

func TestClassifyPassthrough(t *testing.T) {
	for _, sentinel := range []error{ErrInvalidInput, ErrCityNotFound, ErrRateLimited, ErrNetwork, ErrTimeout} {
		wrapped := errors.Wrap(sentinel, "context")
		assert.ErrorIs(t, Classify(wrapped), sentinel)
	}
}

func TestClassifyDeadline(t *testing.T) {
	got := Classify(errors.Wrap(context.DeadlineExceeded, "fetch"))
	assert.ErrorIs(t, got, ErrTimeout)
}

func TestClassifyURLError(t *testing.T) {
	netErr := &url.Error{Op: "Get", URL: "https://api.test", Err: errors.New("connection refused")}
	assert.ErrorIs(t, Classify(netErr), ErrNetwork)
}

func TestClassifyUnknownUnchanged(t *testing.T) {
	raw := errors.New("something odd")
	assert.Equal(t, raw, Classify(raw))
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, Classify(nil))
}

func TestUserMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrInvalidInput, "geçerli bir şehir"},
		{ErrCityNotFound, "bulunamadı"},
		{ErrRateLimited, "10 dakika"},
		{ErrNetwork, "bağlantınızı kontrol edin"},
		{ErrTimeout, "zaman aşımına"},
		{FromStatus("openweathermap", http.StatusUnauthorized), "API anahtarı"},
		{FromStatus("openweathermap", http.StatusInternalServerError), "daha sonra tekrar deneyin"},
	}
	for _, tc := range cases {
		assert.Contains(t, UserMessage(tc.err), tc.want)
	}
}

func TestUserMessageFallbackCarriesDetail(t *testing.T) {
	got := UserMessage(errors.New("boom"))
	assert.Contains(t, got, "Beklenmeyen bir hata")
	assert.Contains(t, got, "boom")
}
