package httpclient

import "fmt"

// HTTPError represents an HTTP error with status code and URL
type HTTPError struct {
	StatusCode int
	URL        string
	Message    string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for URL %s: %s", e.StatusCode, e.URL, e.Message)
}

// NewHTTPError creates a new HTTPError
func NewHTTPError(statusCode int, url, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		URL:        url,
		Message:    message,
	}
}

// IsClientError reports whether the status is in the 4xx range
func (e *HTTPError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// ResponseTooLargeError is returned when a response body exceeds MaxResponseSize.
// Size is zero when the server sent no Content-Length.
type ResponseTooLargeError struct {
	StatusCode int
	URL        string
	Size       int64
	Limit      int64
}

// Error implements the error interface
func (e *ResponseTooLargeError) Error() string {
	limitMB := float64(e.Limit) / (1024 * 1024)
	if e.Size > 0 {
		return fmt.Sprintf("response size %d bytes exceeds maximum allowed size of %d bytes (%.2f MB)",
			e.Size, e.Limit, limitMB)
	}
	return fmt.Sprintf("response size exceeds maximum allowed size of %d bytes (%.2f MB)", e.Limit, limitMB)
}
