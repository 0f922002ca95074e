// Package trace tags outgoing API requests with a request id and logs their
// outcome.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"finboard/internal/log"
)

// HeaderRequestID carries the request id to the server.
const HeaderRequestID = "X-Request-ID"

type ctxKey struct{}

// Metrics tracks request metrics
type Metrics struct {
	TotalRequests  int64
	FailedRequests int64
	// LastDuration is in microseconds.
	LastDuration int64
}

// Transport is an http.RoundTripper that assigns a request id, logs the
// start and end of each request and keeps simple counters.
type Transport struct {
	Base    http.RoundTripper
	Logger  *log.Logger
	metrics Metrics
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(base http.RoundTripper, logger *log.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Transport{Base: base, Logger: logger.WithComponent(log.ComponentAPI)}
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()
	requestID := GetRequestID(ctx)
	if requestID == "" {
		requestID = GenerateRequestID()
		ctx = WithRequestID(ctx, requestID)
	}

	// RoundTrippers must not modify the caller's request.
	r = r.Clone(ctx)
	r.Header.Set(HeaderRequestID, requestID)

	fields := log.NewFields().
		WithRequestID(requestID).
		WithHTTPRequest(r.Method, r.URL.Redacted())
	t.Logger.DebugContext(ctx, "API request started", fields.ToSlice()...)

	start := time.Now()
	resp, err := t.Base.RoundTrip(r)
	elapsed := time.Since(start)

	atomic.AddInt64(&t.metrics.TotalRequests, 1)
	atomic.StoreInt64(&t.metrics.LastDuration, elapsed.Microseconds())

	if err != nil {
		atomic.AddInt64(&t.metrics.FailedRequests, 1)
		fields = fields.WithHTTPResponse(0, elapsed).WithError(err).WithErrorType(log.ErrorTypeNetwork)
		t.Logger.ErrorContext(ctx, "API request failed", fields.ToSlice()...)
		return nil, err
	}

	level := slog.LevelDebug
	switch {
	case resp.StatusCode >= 500:
		level = slog.LevelError
		atomic.AddInt64(&t.metrics.FailedRequests, 1)
	case resp.StatusCode >= 400:
		level = slog.LevelWarn
		atomic.AddInt64(&t.metrics.FailedRequests, 1)
	}
	fields = fields.WithHTTPResponse(resp.StatusCode, elapsed)
	t.Logger.LogContext(ctx, level, "API request completed", fields.ToSlice()...)
	return resp, nil
}

// GetMetrics returns current metrics
func (t *Transport) GetMetrics() Metrics {
	return Metrics{
		TotalRequests:  atomic.LoadInt64(&t.metrics.TotalRequests),
		FailedRequests: atomic.LoadInt64(&t.metrics.FailedRequests),
		LastDuration:   atomic.LoadInt64(&t.metrics.LastDuration),
	}
}

// GenerateRequestID creates a unique request ID for tracing
func GenerateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// WithRequestID pins the id used for requests made with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}
