// Package apperr defines the error taxonomy surfaced to callers of the
// weather and background services, and the mapping from raw transport
// and provider failures into it.
package apperr

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput is returned for blank or unusable city input,
	// before any network call is made.
	ErrInvalidInput = errors.New("city name is empty")

	// ErrCityNotFound is returned when geocoding yields zero matches.
	ErrCityNotFound = errors.New("city not found")

	// ErrRateLimited is returned when a provider answers 429.
	ErrRateLimited = errors.New("rate limited by provider")

	// ErrNetwork is returned for connectivity-level failures.
	ErrNetwork = errors.New("network error")

	// ErrTimeout is returned when the lookup watchdog expires.
	ErrTimeout = errors.New("lookup timed out")
)

// ProviderError is a non-2xx answer from a remote API that is not a 429.
type ProviderError struct {
	Provider string
	Status   int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Provider, e.Status)
}

// FromStatus converts a non-2xx HTTP status into the taxonomy.
func FromStatus(provider string, status int) error {
	if status == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	return &ProviderError{Provider: provider, Status: status}
}

// Classify maps an arbitrary failure from the fetch path into the
// taxonomy. Errors already in the taxonomy pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrCityNotFound),
		errors.Is(err, ErrRateLimited),
		errors.Is(err, ErrNetwork),
		errors.Is(err, ErrTimeout):
		return err
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(ErrTimeout, err.Error())
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return errors.Wrap(ErrTimeout, err.Error())
		}
		return errors.Wrap(ErrNetwork, err.Error())
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return errors.Wrap(ErrTimeout, err.Error())
		}
		return errors.Wrap(ErrNetwork, err.Error())
	}

	return err
}

// UserMessage returns the actionable message shown for a classified
// error. Unclassified errors get the generic technical message with the
// raw detail attached.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "Lütfen geçerli bir şehir adı girin."
	case errors.Is(err, ErrCityNotFound):
		return "Girdiğiniz şehir bulunamadı. Yazımı kontrol edin veya İngilizce adıyla deneyin."
	case errors.Is(err, ErrRateLimited):
		return "Çok fazla istek gönderildi. Lütfen yaklaşık 10 dakika bekleyip tekrar deneyin."
	case errors.Is(err, ErrNetwork):
		return "İnternet bağlantısı hatası. Lütfen bağlantınızı kontrol edin."
	case errors.Is(err, ErrTimeout):
		return "İstek zaman aşımına uğradı. Lütfen daha sonra tekrar deneyin."
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		if provErr.Status == http.StatusUnauthorized {
			return "API anahtarı geçersiz. Lütfen yapılandırmayı kontrol edin."
		}
		return "Hava durumu verileri alınamadı. Lütfen daha sonra tekrar deneyin."
	}

	return fmt.Sprintf("Beklenmeyen bir hata oluştu: %v", err)
}
