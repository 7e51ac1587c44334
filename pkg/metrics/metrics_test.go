package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"scorecard/pkg/metrics"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveLookup(t *testing.T) {
	m := metrics.New()
	m.ObserveLookup(metrics.OutcomeSuccess, 120*time.Millisecond)
	m.ObserveLookup(metrics.OutcomeNotFound, 80*time.Millisecond)

	expected := `
# HELP scorecard_lookups_total Number of domain lookups by outcome.
# TYPE scorecard_lookups_total counter
scorecard_lookups_total{outcome="not_found"} 1
scorecard_lookups_total{outcome="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "scorecard_lookups_total"))
}

func TestInstrumentRoundTripper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	m := metrics.New()
	client := &http.Client{Transport: m.InstrumentRoundTripper(nil)}
	res, err := client.Get(srv.URL) //nolint: noctx
	require.NoError(t, err)
	_ = res.Body.Close()

	count, err := testutil.GatherAndCount(m.Registry(), "scorecard_http_request_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.ObserveLookup(metrics.OutcomeIncomplete, time.Second)

	path := filepath.Join(t.TempDir(), "scorecard.prom")
	require.NoError(t, m.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), `scorecard_lookups_total{outcome="incomplete"} 1`)
	require.Contains(t, string(b), "scorecard_lookup_duration_seconds_count 1")
}

func TestWriteTextfile_badPath(t *testing.T) {
	m := metrics.New()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	require.Error(t, err)
}
