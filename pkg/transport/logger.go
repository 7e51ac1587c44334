package transport

import (
	"context"
	"net/http"
	"scorecard/pkg/logger"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CtxKey is a string-based type used for storing values in request contexts.
// It avoids collisions with other packages' context keys.
type CtxKey string

// RequestIDKey is the context key under which the current correlation ID is stored.
const RequestIDKey CtxKey = "RequestID"

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(r).
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// RequestID returns the correlation ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)

	return id
}

// WithLogger returns a middleware that tags each outgoing request with a
// correlation ID, attaches a logger carrying that ID to the request context,
// and logs a structured access line at debug level. Request headers are never
// logged since they carry the API key. A nil next uses http.DefaultTransport.
func WithLogger(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		ctx := r.Context()

		requestID := RequestID(ctx)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx = context.WithValue(ctx, RequestIDKey, requestID)
		ctx = logger.WithFields(ctx, zap.String(string(RequestIDKey), requestID))

		start := time.Now()
		logger.Debug(ctx, "sending request",
			zap.String("method", r.Method),
			zap.String("url", r.URL.Redacted()),
		)

		resp, err := next.RoundTrip(r.WithContext(ctx))
		if err != nil {
			logger.Debug(ctx, "request failed",
				zap.Float64("latency", time.Since(start).Seconds()),
				zap.Error(err),
			)

			return nil, err //nolint: wrapcheck
		}

		logger.Debug(ctx, "Access log",
			zap.Int("status_code", resp.StatusCode),
			zap.Float64("latency", time.Since(start).Seconds()),
			zap.String("url", r.URL.Redacted()),
			zap.String("method", r.Method),
			zap.Int64("content_length", resp.ContentLength),
		)

		return resp, nil
	})
}
