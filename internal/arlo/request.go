package arlo

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// APIVersion is the Arlo Auth API version path segment
const APIVersion = "2012-02-01"

// DefaultBaseURL returns the Auth API resource root for a platform host
func DefaultBaseURL(platform string) string {
	return fmt.Sprintf("https://%s/api/%s/auth/resources/", platform, APIVersion)
}

// RequestURI builds a collection request URI
type RequestURI struct {
	base         string
	resourcePath string
	expands      []string
	filters      []string
	orderBy      string
	top          int
}

// NewRequestURI creates a RequestURI rooted at base
func NewRequestURI(base string) *RequestURI {
	return &RequestURI{base: base}
}

// SetResourcePath sets the collection path, e.g. "events/"
func (r *RequestURI) SetResourcePath(path string) *RequestURI {
	r.resourcePath = path
	return r
}

// AddExpand adds an expand directive, e.g. "Event/EventTemplate"
func (r *RequestURI) AddExpand(expand string) *RequestURI {
	if expand != "" {
		r.expands = append(r.expands, expand)
	}
	return r
}

// AddFilter adds a raw filter expression; multiple filters are joined with "and"
func (r *RequestURI) AddFilter(filter string) *RequestURI {
	if filter != "" {
		r.filters = append(r.filters, filter)
	}
	return r
}

// ModifiedAfter restricts the collection to resources modified strictly after
// watermark. An empty watermark adds no filter.
func (r *RequestURI) ModifiedAfter(watermark string) *RequestURI {
	if watermark == "" {
		return r
	}
	return r.AddFilter(fmt.Sprintf("LastModifiedDateTime gt datetime('%s')", watermark))
}

// OrderBy sets the ordering expression
func (r *RequestURI) OrderBy(expr string) *RequestURI {
	r.orderBy = expr
	return r
}

// Top limits the page size. Zero leaves it to the server.
func (r *RequestURI) Top(n int) *RequestURI {
	r.top = n
	return r
}

// String renders the absolute request URI
func (r *RequestURI) String() string {
	base := r.base
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u := base + strings.TrimPrefix(r.resourcePath, "/")

	q := url.Values{}
	if len(r.expands) > 0 {
		q.Set("expand", strings.Join(r.expands, ","))
	}
	if len(r.filters) > 0 {
		q.Set("filter", strings.Join(r.filters, " and "))
	}
	if r.orderBy != "" {
		q.Set("orderby", r.orderBy)
	}
	if r.top > 0 {
		q.Set("top", strconv.Itoa(r.top))
	}
	if len(q) == 0 {
		return u
	}
	return u + "?" + q.Encode()
}
