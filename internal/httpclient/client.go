// Package httpclient provides the HTTP client used to talk to the Arlo API
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default timeout for HTTP requests
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the maximum allowed response size (100MB)
	MaxResponseSize = 100 * 1024 * 1024

	// UserAgent is the user agent string for HTTP requests
	UserAgent = "arlo-catalog-sync/1.0"
)

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	// Reason is the reason phrase, e.g. "OK" for a 200
	Reason      string
	ContentType string
	Body        []byte
}

// RequestOption mutates an outgoing request
type RequestOption func(*http.Request)

// WithBasicAuth sets HTTP basic authentication credentials
func WithBasicAuth(username, password string) RequestOption {
	return func(r *http.Request) {
		r.SetBasicAuth(username, password)
	}
}

// WithAccept overrides the Accept header
func WithAccept(mediaType string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set("Accept", mediaType)
	}
}

// Client is an interface for HTTP operations
type Client interface {
	// Get performs an HTTP GET request. A 2xx response is returned as is; any other
	// status is returned as an *HTTPError together with the response.
	Get(ctx context.Context, url string, opts ...RequestOption) (*Response, error)
}

// DefaultClient is the default HTTP client implementation
type DefaultClient struct {
	client  *http.Client
	timeout time.Duration
}

// NewDefaultClient creates a new default HTTP client with the specified timeout
// If timeout is 0, uses DefaultTimeout
func NewDefaultClient(timeout time.Duration) Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &DefaultClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs an HTTP GET request
func (c *DefaultClient) Get(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/xml")
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.ContentLength > MaxResponseSize {
		return nil, &ResponseTooLargeError{
			StatusCode: resp.StatusCode, URL: url, Size: resp.ContentLength, Limit: MaxResponseSize,
		}
	}

	// +1 to detect if limit exceeded
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > MaxResponseSize {
		return nil, &ResponseTooLargeError{StatusCode: resp.StatusCode, URL: url, Limit: MaxResponseSize}
	}

	out := &Response{
		StatusCode:  resp.StatusCode,
		Reason:      reasonPhrase(resp),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, NewHTTPError(resp.StatusCode, url, out.Reason)
	}

	return out, nil
}

// reasonPhrase strips the numeric code from resp.Status ("404 Not Found" -> "Not Found")
func reasonPhrase(resp *http.Response) string {
	if _, reason, ok := strings.Cut(resp.Status, " "); ok && reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
