package tool

import (
	"net/http"
	"time"
)

var (
	DefaultTimeout = 30 * time.Second

	// ConnectionHttpClient is used for short round trips (role probe, text fetch).
	ConnectionHttpClient *http.Client
	// StreamHttpClient carries uploads and downloads; no overall timeout so
	// large transfers are bounded by the request context, not a wall clock.
	StreamHttpClient *http.Client
)

func init() {
	ConnectionHttpClient = &http.Client{
		Timeout: DefaultTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        50,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     300 * time.Millisecond,
		},
	}
	StreamHttpClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        50,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     300 * time.Millisecond,
		},
	}
}

func GetHttpClient() *http.Client {
	return ConnectionHttpClient
}
