// Package sources provides the paged fetcher that retrieves collection pages
// from a tenant's Arlo Auth API.
//
// Architecture:
//   - Fetcher: one tenant's view of the API. Decides whether a collection may be
//     pulled now (Executable) and performs a single page request (FetchPage).
//   - FetcherFactory: builds fetchers from tenant configuration, sharing one HTTP
//     client and one process-wide API status flag.
//
// Every response's HTTP status is recorded into the API status flag. While the
// flag holds 401 or 403 no scheduled or manual request is attempted until an
// operator resets it.
//
// FetchPage never retries. Failures are returned as *arlo.TransportError when
// no response was received and *arlo.ResponseError otherwise.
package sources
