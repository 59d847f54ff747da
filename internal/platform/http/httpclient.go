// Package http provides the shared HTTP client used for outbound calls to market-data providers.
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single upstream request when the caller does not configure one.
const DefaultTimeout = 10 * time.Second

// NewHTTPClient returns an *http.Client tuned for calls to external APIs.
//
// Settings:
//   - Proxy: honours HTTP_PROXY and friends
//   - Dialer.Timeout: TCP connect timeout, shorter than the default
//   - MaxIdleConnsPerHost: raised because holdings are enriched with many concurrent
//     requests against the same two hosts
//   - ResponseHeaderTimeout: upstreams that accept the connection but never answer
//   - Client.Timeout: whole-request budget; a non-positive value falls back to DefaultTimeout
//
// http.DefaultClient has no timeout, so never use it for upstream calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
