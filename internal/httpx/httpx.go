// file: internal/httpx/httpx.go
// version: 1.0.0
// guid: 2b3c4d5e-6f7a-8b9c-0d1e-2f3a4b5c6d7e

// Package httpx is the transport seam between catalogue adapters and the
// network. Adapters depend only on Doer; the concrete client is supplied
// by the caller (the CLI wires a retrying client, tests wire httptest).
package httpx

import (
	"net/http"
	"time"

	"github.com/sethgrid/pester"
)

// Doer executes a single HTTP request. *http.Client and *pester.Client
// both satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient returns the default retrying client used by the CLI:
// exponential backoff, retry on 429, a conservative timeout. The core
// adapters never retry by themselves.
func NewClient(timeout time.Duration) *pester.Client {
	c := pester.New()
	c.Backoff = pester.ExponentialBackoff
	c.MaxRetries = 3
	c.SetRetryOnHTTP429(true)
	c.Timeout = timeout
	return c
}
