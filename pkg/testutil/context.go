package testutil

import (
	"net/http"
	"time"

	"nurture/pkg/requestcontext"
)

// WithRequestID adds a request ID to the request context.
// This simulates what the request ID middleware would do.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithClientIP adds client metadata to the request context.
// This simulates what the client metadata middleware would do; rate limiting
// keys on the IP.
func WithClientIP(req *http.Request, clientIP string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), clientIP, req.UserAgent())
	return req.WithContext(ctx)
}

// WithRequestTime pins the request clock so window calculations are
// reproducible.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
