package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client with the defaults shared by every management
// API consumer. Embedding keeps the full resty surface available, so call
// sites compose requests with client.R() as usual.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an HTTPClient bound to baseURL with the given
// per-request timeout. Responses are requested as JSON; request bodies are
// serialized by resty based on their type.
//
// Each call returns an independent client with its own connection pool, so
// two consumers never share cookies or transport state.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://127.0.0.1:8960", 15*time.Second)
//	resp, err := client.R().Get("/healthz")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &HTTPClient{Client: client}
}
