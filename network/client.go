// Package network holds the HTTP client shared by every upstream call.
package network

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hydra-cli/hydra/constant"
)

// Client is tuned for many short catalog requests against a single host.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: &userAgentTransport{base: newTransport()},
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}

// userAgentTransport stamps every outgoing request with the application
// identity unless the caller set its own User-Agent.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", fmt.Sprintf("%s/%s", constant.Hydra, constant.Version))
	}
	return t.base.RoundTrip(req)
}
