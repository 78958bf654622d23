package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/evekit/pkg/buildinfo"
	"github.com/matzehuels/evekit/pkg/observability"
)

// DefaultTimeout bounds a single HTTP exchange.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a response body is read into memory.
const maxBodySize = 32 << 20

// HTTP is the net/http Transport.
//
// It is safe for concurrent use by multiple goroutines.
type HTTP struct {
	client    *http.Client
	userAgent string
}

// HTTPOption configures an HTTP transport.
type HTTPOption func(*HTTP)

// WithHTTPClient replaces the underlying client (tests pass httptest clients).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTP) { h.client = c }
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		if d > 0 {
			h.client = &http.Client{Timeout: d}
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(h *HTTP) { h.userAgent = ua }
}

// NewHTTP creates an HTTP transport with DefaultTimeout.
func NewHTTP(opts ...HTTPOption) *HTTP {
	h := &HTTP{
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: buildinfo.UserAgent(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Fetch performs a GET and returns the body of a 2xx response.
func (h *HTTP) Fetch(ctx context.Context, r *Request) ([]byte, error) {
	redacted := RedactURL(r.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, &Error{Kind: KindConnection, URL: redacted, Cause: err}
	}
	req.Header.Set("User-Agent", h.userAgent)
	if r.Accept != "" {
		req.Header.Set("Accept", r.Accept)
	}
	if r.RequestID != "" {
		req.Header.Set("X-Request-Id", r.RequestID)
	}

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodGet, host, path)

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		return nil, &Error{Kind: failureKind(ctx, err), URL: redacted, Cause: stripURL(err)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &Error{Kind: err.kind, Status: resp.StatusCode, URL: redacted}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &Error{Kind: failureKind(ctx, err), Status: resp.StatusCode, URL: redacted, Cause: err}
	}
	return body, nil
}

type statusError struct{ kind Kind }

func checkStatus(code int) *statusError {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusForbidden:
		return &statusError{kind: KindForbidden}
	default:
		return &statusError{kind: KindStatus}
	}
}

func failureKind(ctx context.Context, err error) Kind {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	return KindConnection
}

// stripURL drops the *url.Error wrapper, whose message embeds the full URL
// including the verification code.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}
