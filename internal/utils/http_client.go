package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const clientUserAgent = "chronos-client"

// HTTPClient embeds *resty.Client and presets what every chronos API call
// needs: base URL, timeout and JSON headers.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client for baseURL. A zero timeout
// leaves resty's default (none) in place.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", clientUserAgent)

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
