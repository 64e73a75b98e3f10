package sources

import (
	"fmt"
	"time"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
	"github.com/enrolsync/arlo-catalog-sync/internal/httpclient"
	"github.com/enrolsync/arlo-catalog-sync/internal/status"
)

// FetcherFactory creates fetchers for configured tenants
type FetcherFactory interface {
	CreateFetcher(tenant *config.TenantConfig) (Fetcher, error)
}

// defaultFetcherFactory is the default implementation of FetcherFactory
type defaultFetcherFactory struct {
	client       httpclient.Client
	apiStatus    status.APIStatus
	pullInterval time.Duration
	clock        func() time.Time
}

var _ FetcherFactory = (*defaultFetcherFactory)(nil)

// NewFetcherFactory creates a new fetcher factory sharing client and apiStatus
func NewFetcherFactory(
	client httpclient.Client,
	apiStatus status.APIStatus,
	pullInterval time.Duration,
	clock func() time.Time,
) FetcherFactory {
	return &defaultFetcherFactory{
		client:       client,
		apiStatus:    apiStatus,
		pullInterval: pullInterval,
		clock:        clock,
	}
}

// CreateFetcher builds a fetcher from the tenant configuration
func (d *defaultFetcherFactory) CreateFetcher(tenant *config.TenantConfig) (Fetcher, error) {
	if tenant == nil {
		return nil, fmt.Errorf("tenant configuration is required")
	}
	if tenant.Platform == "" {
		return nil, fmt.Errorf("tenant platform is required")
	}

	password, err := tenant.GetPassword()
	if err != nil {
		return nil, fmt.Errorf("tenant '%s': %w", tenant.Platform, err)
	}

	return NewAPIFetcher(tenant.Platform, d.client, d.apiStatus,
		WithBaseURL(tenant.GetBaseURL()),
		WithCredentials(tenant.Username, password),
		WithPageSize(tenant.PageSize),
		WithPullInterval(d.pullInterval),
		WithClock(d.clock),
	), nil
}
