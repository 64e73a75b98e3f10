package sources

import (
	"context"
	"time"

	"github.com/enrolsync/arlo-catalog-sync/internal/arlo"
	"github.com/enrolsync/arlo-catalog-sync/internal/httpclient"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
	"github.com/enrolsync/arlo-catalog-sync/internal/status"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/state"
)

// OrderByModified is the ordering every collection request uses so that the
// watermark can advance item by item
const OrderByModified = "LastModifiedDateTime ASC"

// Fetcher retrieves collection pages for one tenant
//
//go:generate mockgen -destination=mocks/mock_fetcher.go -package=mocks github.com/enrolsync/arlo-catalog-sync/internal/sources Fetcher,FetcherFactory
type Fetcher interface {
	// Platform returns the tenant this fetcher talks to
	Platform() string
	// Executable reports whether a request may be made for checkpoint now
	Executable(ctx context.Context, checkpoint *state.Checkpoint, manualOverride bool) bool
	// FetchPage requests the next page of resourcePath after the checkpoint watermark
	FetchPage(
		ctx context.Context,
		checkpoint *state.Checkpoint,
		resourcePath string,
		expansions []string,
	) (*httpclient.Response, error)
}

// APIFetcher is the Fetcher backed by the Arlo Auth API
type APIFetcher struct {
	platform     string
	baseURL      string
	username     string
	password     string
	pageSize     int
	pullInterval time.Duration

	client    httpclient.Client
	apiStatus status.APIStatus
	now       func() time.Time
}

var _ Fetcher = (*APIFetcher)(nil)

// APIFetcherOption configures an APIFetcher
type APIFetcherOption func(*APIFetcher)

// WithCredentials sets the basic authentication credentials
func WithCredentials(username, password string) APIFetcherOption {
	return func(f *APIFetcher) {
		f.username = username
		f.password = password
	}
}

// WithBaseURL overrides the resource root derived from the platform
func WithBaseURL(baseURL string) APIFetcherOption {
	return func(f *APIFetcher) {
		if baseURL != "" {
			f.baseURL = baseURL
		}
	}
}

// WithPageSize sets the top= parameter; zero leaves paging to the server
func WithPageSize(n int) APIFetcherOption {
	return func(f *APIFetcher) {
		f.pageSize = n
	}
}

// WithPullInterval sets the minimum time between drained pulls
func WithPullInterval(d time.Duration) APIFetcherOption {
	return func(f *APIFetcher) {
		f.pullInterval = d
	}
}

// WithClock overrides the clock used by the gate
func WithClock(now func() time.Time) APIFetcherOption {
	return func(f *APIFetcher) {
		if now != nil {
			f.now = now
		}
	}
}

// NewAPIFetcher creates a fetcher for platform
func NewAPIFetcher(
	platform string,
	client httpclient.Client,
	apiStatus status.APIStatus,
	opts ...APIFetcherOption,
) *APIFetcher {
	f := &APIFetcher{
		platform:  platform,
		baseURL:   arlo.DefaultBaseURL(platform),
		client:    client,
		apiStatus: apiStatus,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Platform returns the tenant platform
func (f *APIFetcher) Platform() string {
	return f.platform
}

// Executable is false while the API status is blocked. Otherwise it is true for
// manual runs or once the pull interval since NextPullTime has elapsed.
func (f *APIFetcher) Executable(ctx context.Context, checkpoint *state.Checkpoint, manualOverride bool) bool {
	code, err := f.apiStatus.Get(ctx)
	if err != nil {
		logger.Warnf("Tenant '%s': failed to read API status, assuming unknown: %v", f.platform, err)
		code = status.Unknown
	}
	if status.IsBlocked(code) {
		return false
	}
	if manualOverride {
		return true
	}
	return !f.now().Before(checkpoint.NextPullTime.Add(f.pullInterval))
}

// FetchPage performs a single GET for the page after the checkpoint watermark
func (f *APIFetcher) FetchPage(
	ctx context.Context,
	checkpoint *state.Checkpoint,
	resourcePath string,
	expansions []string,
) (*httpclient.Response, error) {
	uri := arlo.NewRequestURI(f.baseURL).
		SetResourcePath(resourcePath).
		ModifiedAfter(checkpoint.LatestSourceModified).
		OrderBy(OrderByModified).
		Top(f.pageSize)
	for _, expand := range expansions {
		uri.AddExpand(expand)
	}
	requestURL := uri.String()

	logger.Debugw("Fetching collection page",
		"platform", f.platform,
		"collection", checkpoint.Type,
		"url", requestURL,
	)

	var opts []httpclient.RequestOption
	if f.username != "" {
		opts = append(opts, httpclient.WithBasicAuth(f.username, f.password))
	}

	resp, err := f.client.Get(ctx, requestURL, opts...)
	if resp != nil {
		if setErr := f.apiStatus.Set(ctx, resp.StatusCode); setErr != nil {
			logger.Warnf("Tenant '%s': failed to record API status %d: %v", f.platform, resp.StatusCode, setErr)
		}
	}
	if err != nil {
		return resp, arlo.ClassifyRequestError(requestURL, resp, err)
	}
	return resp, nil
}
