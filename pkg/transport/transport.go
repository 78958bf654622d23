// Package transport performs the network fetch behind every dispatch.
//
// A [Transport] turns a [Request] into raw response bytes. Failures are
// reported as [*Error] values whose [Kind] tells the dispatcher how to
// classify them; callers never inspect HTTP responses directly.
package transport

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Kind classifies a transport failure.
type Kind int

const (
	// KindConnection is a dial, read or timeout failure with no usable response.
	KindConnection Kind = iota + 1

	// KindForbidden is an explicit "access forbidden" answer (HTTP 403).
	KindForbidden

	// KindStatus is any other non-success status.
	KindStatus

	// KindCanceled means the caller's context ended first.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindForbidden:
		return "forbidden"
	case KindStatus:
		return "status"
	case KindCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Request describes one fetch.
type Request struct {
	URL       string // Final URL including the query string
	Accept    string // Accept header; empty leaves the default
	RequestID string // Correlation ID sent as X-Request-Id when set
}

// Error is a classified transport failure.
type Error struct {
	Kind   Kind
	Status int    // HTTP status; 0 when no response was received
	URL    string // Request URL with credentials redacted
	Cause  error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Cause != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Kind, e.Status, e.Cause)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", e.Kind, e.Status)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Transport fetches the body at a URL.
type Transport interface {
	Fetch(ctx context.Context, req *Request) ([]byte, error)
}

// Func adapts an ordinary function to the Transport interface.
type Func func(ctx context.Context, req *Request) ([]byte, error)

// Fetch calls f(ctx, req).
func (f Func) Fetch(ctx context.Context, req *Request) ([]byte, error) {
	return f(ctx, req)
}

// secretParams are query parameters whose values never appear in logs or errors.
var secretParams = []string{"vcode"}

// RedactURL replaces the values of credential query parameters with "REDACTED".
// Unparseable input is returned unchanged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return raw
	}
	parts := strings.Split(u.RawQuery, "&")
	changed := false
	for i, p := range parts {
		name, _, ok := strings.Cut(p, "=")
		if !ok {
			continue
		}
		for _, s := range secretParams {
			if strings.EqualFold(name, s) {
				parts[i] = name + "=REDACTED"
				changed = true
			}
		}
	}
	if !changed {
		return raw
	}
	u.RawQuery = strings.Join(parts, "&")
	return u.String()
}
