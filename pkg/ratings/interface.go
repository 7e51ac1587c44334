// Package ratings defines the interface and shared error types used to fetch
// a security rating for a domain from a backing provider.
package ratings

import (
	"context"
	"fmt"
	"net/http"
	"scorecard/pkg/domain"
)

// Client is the abstraction for security-rating providers.
//
//go:generate mockgen -package mockratings -source=interface.go -destination=mock/mockratings.go *
type Client interface {
	// CompanyRating fetches the rating of an already normalized domain with a
	// single request. A domain unknown to the provider yields serrors.ErrNotFound.
	CompanyRating(ctx context.Context, domain string) (*domain.Rating, error)
}

// StatusError describes a non-success HTTP answer from a provider.
type StatusError struct {
	StatusCode int    // StatusCode is the HTTP status returned by the provider.
	URL        string // URL is the requested resource.
	Body       string // Body is the trimmed response body, kept for debugging.
}

// Error mirrors the "<code> <text> for url: <url>" form users of HTTP tooling expect.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s for url: %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}
