package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "go-pass-keeper-vault"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://vault.example.com", 15*time.Second)
//	resp, err := client.R().Get("/password")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client bound to baseURL that sends and accepts
// JSON. A non-positive timeout leaves resty's default (no timeout).
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}
