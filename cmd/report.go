package main

import (
	"errors"
	"fmt"
	"io"
	"scorecard/internal/config"
	"scorecard/pkg/metrics"
	"scorecard/pkg/ratings"
	"scorecard/pkg/serrors"
)

// report writes the single diagnostic matching err to w. The configuration
// error keeps its extra hint line.
func report(w io.Writer, domainName string, err error) {
	var statusErr *ratings.StatusError

	switch {
	case errors.Is(err, config.ErrMissingAPIKey):
		_, _ = fmt.Fprintf(w, "Error: %s not found in environment.\n", config.EnvAPIKey)
		_, _ = fmt.Fprintln(w, "Please set it in a .env file or as an environment variable.")
	case errors.Is(err, serrors.ErrConfig):
		_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	case errors.Is(err, serrors.ErrUsage):
		_, _ = fmt.Fprintf(w, "Usage: %s\n", usageLine)
	case errors.Is(err, serrors.ErrNotFound):
		_, _ = fmt.Fprintf(w, "Error: Domain '%s' not found in SecurityScorecard.\n", domainName)
	case errors.Is(err, serrors.ErrIncomplete):
		_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	case errors.As(err, &statusErr):
		_, _ = fmt.Fprintf(w, "HTTP Error: %v\n", statusErr)
	default:
		_, _ = fmt.Fprintf(w, "Unexpected error: %v\n", err)
	}
}

// outcome classifies a lookup result for metrics.
func outcome(err error) string {
	var statusErr *ratings.StatusError

	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, serrors.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, serrors.ErrIncomplete):
		return metrics.OutcomeIncomplete
	case errors.As(err, &statusErr):
		return metrics.OutcomeHTTPError
	default:
		return metrics.OutcomeError
	}
}
