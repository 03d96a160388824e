package repositories

import "net/http"

// HTTPClient is the outbound transport contract; tests substitute a
// stub, production wires a shared *http.Client with a timeout.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
