package utils

import (
	"context"
	"io"
	"net/http"
	"time"
)

var defaultClient = &http.Client{
	Timeout: 5 * time.Second,
}

// HTTPRequest performs a request with the given headers. A nil client uses a
// shared client with a 5 second timeout.
func HTTPRequest(ctx context.Context, client *http.Client, method string, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	if client == nil {
		client = defaultClient
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return client.Do(req)
}
