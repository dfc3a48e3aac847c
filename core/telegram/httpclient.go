package telegram

import (
	"net"
	"net/http"
	"time"
)

const (
	defaultDialTimeout       = 5 * time.Second
	defaultTLSHandshake      = 5 * time.Second
	defaultIdleConnTimeout   = 30 * time.Second
	defaultKeepAliveInterval = 30 * time.Second

	minClientTimeout = 30 * time.Second
	// pollHeadroom is added on top of the long poll timeout so an idle
	// getUpdates call is not cut off by the client.
	pollHeadroom = 15 * time.Second
)

// BuildHTTPClient returns an HTTP client for Bot API calls. Failed calls are
// not retried; the caller logs them and moves on.
func BuildHTTPClient(pollTimeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: clientTimeout(pollTimeout),
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: defaultDialTimeout, KeepAlive: defaultKeepAliveInterval}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          20,
			MaxIdleConnsPerHost:   4,
			IdleConnTimeout:       defaultIdleConnTimeout,
			TLSHandshakeTimeout:   defaultTLSHandshake,
			ExpectContinueTimeout: time.Second,
		},
	}
}

func clientTimeout(pollTimeout time.Duration) time.Duration {
	if t := pollTimeout + pollHeadroom; t > minClientTimeout {
		return t
	}
	return minClientTimeout
}
