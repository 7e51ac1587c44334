// Package transport contains http.RoundTripper middlewares used by the
// provider clients.
//
// Provided middlewares:
//   - WithLogger: Attaches a correlation ID and request-scoped logger to the
//     request context and logs an access line once the response headers arrive.
package transport
