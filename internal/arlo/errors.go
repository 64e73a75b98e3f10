package arlo

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/enrolsync/arlo-catalog-sync/internal/httpclient"
)

// Kind separates errors the caller caused from errors the API caused
type Kind int

const (
	// KindServer covers 5xx responses and responses that are not usable XML
	KindServer Kind = iota
	// KindClient covers 4xx responses
	KindClient
)

func (k Kind) String() string {
	if k == KindClient {
		return "client"
	}
	return "server"
}

// Error codes carried by ResponseError
const (
	CodeHTTPStatus           = "error_httpstatus"
	CodeIncorrectContentType = "error_incorrectcontenttype"
	CodeResponseTooLarge     = "error_responsetoolarge"
)

// ResponseError is returned when the API answered but the answer cannot be used:
// a non 2xx status, a body that is not XML, or a body over the size limit.
type ResponseError struct {
	Kind       Kind
	StatusCode int
	Reason     string
	Code       string
	Context    map[string]string
}

func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("arlo %s error: %d %s: %s", e.Kind, e.StatusCode, e.Reason, e.Code)
	if len(e.Context) == 0 {
		return msg
	}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+e.Context[k])
	}
	return msg + " (" + strings.Join(parts, ", ") + ")"
}

// TransportError is returned when no response was received
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("arlo request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a response body is not a valid collection
type DecodeError struct {
	Root string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s collection: %v", e.Root, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ClassifyRequestError turns an httpclient error into a ResponseError or TransportError
func ClassifyRequestError(url string, resp *httpclient.Response, err error) error {
	if err == nil {
		return nil
	}

	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		kind := KindServer
		if httpErr.IsClientError() {
			kind = KindClient
		}
		re := &ResponseError{
			Kind:       kind,
			StatusCode: httpErr.StatusCode,
			Reason:     httpErr.Message,
			Code:       CodeHTTPStatus,
		}
		if resp != nil && resp.ContentType != "" {
			re.Context = map[string]string{"contenttype": resp.ContentType}
		}
		return re
	}

	var tooLarge *httpclient.ResponseTooLargeError
	if errors.As(err, &tooLarge) {
		return &ResponseError{
			Kind:       KindServer,
			StatusCode: tooLarge.StatusCode,
			Reason:     "Response Too Large",
			Code:       CodeResponseTooLarge,
		}
	}

	return &TransportError{URL: url, Err: err}
}
