// internal/common/http/client.go
package http

import (
	"net/http"
	"time"
)

// Client is a thin wrapper around net/http with a configured timeout. A zero
// timeout means the call blocks until the backend answers or the transport
// gives up, matching the web client's behavior.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Do executes one request. Cancellation comes from the context already on
// the request; callers build requests with http.NewRequestWithContext.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}
