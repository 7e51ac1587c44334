package securityscorecard_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"scorecard/pkg/ratings"
	"scorecard/pkg/ratings/securityscorecard"
	"scorecard/pkg/serrors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(fn rtFunc) *securityscorecard.Client {
	return securityscorecard.New(&http.Client{Transport: fn}, "", "test-token")
}

func respond(status int, body string) rtFunc {
	return func(*http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}, nil
	}
}

func TestClient_CompanyRating_success(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "api.securityscorecard.io", r.URL.Host)
		require.Equal(t, "https", r.URL.Scheme)
		require.Equal(t, "/companies/example.com", r.URL.Path)
		require.Equal(t, "Token test-token", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "no-cache", r.Header.Get("Cache-Control"))

		return &http.Response{
			StatusCode: http.StatusOK,
			Body: io.NopCloser(strings.NewReader(
				`{"name":"Example","score":87,"grade":"B","industry":"technology","tags":[1,2]}`)),
		}, nil
	})

	res, err := c.CompanyRating(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, "example.com", res.Domain)
	require.NotNil(t, res.Score)
	require.InDelta(t, 87.0, *res.Score, 0)
	require.NotNil(t, res.Grade)
	require.Equal(t, "B", *res.Grade)
}

func TestClient_CompanyRating_customBaseURL(t *testing.T) {
	c := securityscorecard.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "localhost:8080", r.URL.Host)
		require.Equal(t, "/v1/companies/example.com", r.URL.Path)

		return respond(http.StatusOK, `{"score":1,"grade":"A"}`)(r)
	})}, "http://localhost:8080/v1/", "k")

	_, err := c.CompanyRating(context.Background(), "example.com")
	require.NoError(t, err)
}

func TestClient_CompanyRating_404(t *testing.T) {
	c := newTestClient(respond(http.StatusNotFound, `{"error":"not found"}`))

	res, err := c.CompanyRating(context.Background(), "unknown.example")
	require.Error(t, err)
	require.Nil(t, res)
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestClient_CompanyRating_statusKinds(t *testing.T) {
	cases := []struct {
		status int
		kind   serrors.Kind
	}{
		{status: http.StatusUnauthorized, kind: serrors.ErrUnauthorized},
		{status: http.StatusForbidden, kind: serrors.ErrForbidden},
		{status: http.StatusTooManyRequests, kind: serrors.ErrRateLimited},
		{status: http.StatusBadGateway, kind: serrors.ErrUnavailable},
		{status: http.StatusBadRequest, kind: serrors.ErrUpstream},
		{status: http.StatusMovedPermanently, kind: serrors.ErrUpstream},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			c := newTestClient(respond(tc.status, "upstream says no"))

			res, err := c.CompanyRating(context.Background(), "example.com")
			require.Nil(t, res)
			require.ErrorIs(t, err, tc.kind)

			var statusErr *ratings.StatusError
			require.ErrorAs(t, err, &statusErr)
			require.Equal(t, tc.status, statusErr.StatusCode)
			require.Equal(t, "upstream says no", statusErr.Body)
			require.Equal(t, "https://api.securityscorecard.io/companies/example.com", statusErr.URL)
		})
	}
}

func TestClient_CompanyRating_transportError(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})

	res, err := c.CompanyRating(context.Background(), "example.com")
	require.Nil(t, res)
	require.ErrorContains(t, err, "connection refused")
	require.Nil(t, serrors.KindOf(err))
}

func TestClient_CompanyRating_malformedJSON(t *testing.T) {
	c := newTestClient(respond(http.StatusOK, `{"score":`))

	res, err := c.CompanyRating(context.Background(), "example.com")
	require.Nil(t, res)
	require.ErrorContains(t, err, "could not decode response")
}

func TestDecodeRating(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		score string
		grade string
		ok    bool
	}{
		{name: "both present", in: `{"score":92,"grade":"A"}`, score: "92", grade: "A", ok: true},
		{name: "fractional score", in: `{"score":71.25,"grade":"C"}`, score: "71.25", grade: "C", ok: true},
		{name: "score as string", in: `{"score":"64","grade":"D"}`, score: "64", grade: "D", ok: true},
		{name: "grade only", in: `{"grade":"A"}`, score: "N/A", grade: "A", ok: true},
		{name: "score only", in: `{"score":50}`, score: "50", grade: "N/A", ok: true},
		{name: "nulls", in: `{"score":null,"grade":null}`, score: "N/A", grade: "N/A", ok: true},
		{name: "empty object", in: `{}`, score: "N/A", grade: "N/A", ok: true},
		{name: "nested noise", in: `{"meta":{"score":1},"grade":"B","score":80}`, score: "80", grade: "B", ok: true},
		{name: "array body", in: `[1,2]`, ok: false},
		{name: "empty body", in: ``, ok: false},
		{name: "non numeric score", in: `{"score":"high"}`, ok: false},
		{name: "numeric grade", in: `{"grade":5}`, ok: false},
		{name: "truncated", in: `{"grade":"A"`, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := securityscorecard.DecodeRating([]byte(tc.in))
			if !tc.ok {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.score, got.ScoreText())
			require.Equal(t, tc.grade, got.GradeText())
		})
	}
}
