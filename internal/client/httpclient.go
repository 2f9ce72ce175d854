package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Houeta/staff-console/internal/models"
)

// RequestIDHeader carries a per-call identifier so console and API logs can be correlated.
const RequestIDHeader = "X-Request-ID"

// CreateHTTPClient initializes an HTTP client that tags and logs every outbound request.
// No timeout is set: calls are bounded only by the caller's context.
func CreateHTTPClient(log *slog.Logger) *http.Client {
	return &http.Client{
		Transport: NewTransport(log, http.DefaultTransport),
		CheckRedirect: func(req *http.Request, _ []*http.Request) error {
			log.Debug("Redirected to URL", "URL", req.URL)

			return nil
		},
	}
}

// NewTransport wraps next with User-Agent and request id headers and debug logging.
func NewTransport(log *slog.Logger, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &taggingTransport{log: log, next: next}
}

type taggingTransport struct {
	log  *slog.Logger
	next http.RoundTripper
}

func (t *taggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	out := req.Clone(req.Context())
	if out.Header.Get("User-Agent") == "" {
		out.Header.Set("User-Agent", models.UserAgent)
	}
	if out.Header.Get(RequestIDHeader) == "" {
		out.Header.Set(RequestIDHeader, uuid.NewString())
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(out)

	attrs := []any{
		"method", out.Method,
		"URL", out.URL.String(),
		"request_id", out.Header.Get(RequestIDHeader),
		"duration", time.Since(start),
	}
	if err != nil {
		t.log.DebugContext(req.Context(), "Outbound request failed", append(attrs, "error", err)...)

		return nil, err //nolint:wrapcheck // the transport error is wrapped by the caller
	}

	t.log.DebugContext(req.Context(), "Outbound request completed", append(attrs, "status", resp.StatusCode)...)

	return resp, nil
}
