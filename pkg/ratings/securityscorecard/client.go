// Package securityscorecard provides a ratings.Client implementation backed by
// the SecurityScorecard REST API.
package securityscorecard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"scorecard/pkg/domain"
	"scorecard/pkg/logger"
	"scorecard/pkg/ratings"
	"scorecard/pkg/serrors"
	"strconv"
	"strings"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public SecurityScorecard API endpoint.
const DefaultBaseURL = "https://api.securityscorecard.io"

// Client talks to the SecurityScorecard API and fulfills the ratings.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the API
	baseURL    string       // baseURL is the API root without a trailing slash
	token      string       // token is the SecurityScorecard API key
}

// CompanyRating fetches the score and grade of the given domain. The domain is
// expected to be normalized already; it is only path-escaped here.
func (c *Client) CompanyRating(ctx context.Context, domainName string) (*domain.Rating, error) {
	// https://securityscorecard.readme.io/reference/getcompany
	target := c.baseURL + "/companies/" + url.PathEscape(domainName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("cache-control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, serrors.Wrap(serrors.ErrTimeout, err, "request timed out")
		}

		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &ratings.StatusError{
			StatusCode: resp.StatusCode,
			URL:        target,
			Body:       strings.TrimSpace(string(b)),
		}
		logger.Debug(ctx, "rating request failed",
			zap.Int("status_code", statusErr.StatusCode),
			zap.String("body", statusErr.Body))

		return nil, serrors.Wrap(kindForStatus(resp.StatusCode), statusErr, "")
	}

	rating, err := DecodeRating(b)
	if err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	rating.Domain = domainName

	return rating, nil
}

// kindForStatus maps a non-success HTTP status to a semantic error kind.
func kindForStatus(code int) serrors.Kind {
	switch {
	case code == http.StatusNotFound:
		return serrors.ErrNotFound
	case code == http.StatusUnauthorized:
		return serrors.ErrUnauthorized
	case code == http.StatusForbidden:
		return serrors.ErrForbidden
	case code == http.StatusTooManyRequests:
		return serrors.ErrRateLimited
	case code >= 500:
		return serrors.ErrUnavailable
	default:
		return serrors.ErrUpstream
	}
}

// DecodeRating reads the score and grade out of a company payload. Other keys
// are skipped. Missing or null fields stay nil. A score sent as a numeric
// string is accepted too.
func DecodeRating(b []byte) (*domain.Rating, error) {
	out := &domain.Rating{}
	d := jx.DecodeBytes(b)
	if d.Next() != jx.Object {
		return nil, errors.New("expected a JSON object")
	}

	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "score":
			score, err := decodeScore(d)
			if err != nil {
				return fmt.Errorf("score: %w", err)
			}
			out.Score = score
		case "grade":
			if d.Next() == jx.Null {
				return d.Null() //nolint: wrapcheck
			}
			grade, err := d.Str()
			if err != nil {
				return fmt.Errorf("grade: %w", err)
			}
			out.Grade = &grade
		default:
			return d.Skip() //nolint: wrapcheck
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not parse rating: %w", err)
	}

	return out, nil
}

func decodeScore(d *jx.Decoder) (*float64, error) {
	switch d.Next() {
	case jx.Null:
		return nil, d.Null() //nolint: wrapcheck
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return nil, err //nolint: wrapcheck
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", s)
		}

		return &f, nil
	default:
		n, err := d.Num()
		if err != nil {
			return nil, err //nolint: wrapcheck
		}
		f, err := n.Float64()
		if err != nil {
			return nil, err //nolint: wrapcheck
		}

		return &f, nil
	}
}

// Ensure Client conforms to the ratings.Client interface at compile time.
var _ ratings.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client, API root and
// API key. An empty baseURL selects DefaultBaseURL.
func New(httpClient *http.Client, baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}
