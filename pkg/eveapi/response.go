package eveapi

import (
	"encoding/xml"
	"time"

	"github.com/matzehuels/evekit/pkg/errors"
)

// Response is the envelope around every XML API answer.
type Response[T any] struct {
	XMLName     xml.Name  `xml:"eveapi" json:"-"`
	Version     int       `xml:"version,attr" json:"version"`
	CurrentTime Time      `xml:"currentTime" json:"currentTime"`
	Result      T         `xml:"result" json:"result"`
	CachedUntil Time      `xml:"cachedUntil" json:"cachedUntil"`
	Error       *APIError `xml:"error" json:"error,omitempty"`
}

// APIError is an error element reported inside a successful HTTP answer.
type APIError struct {
	Code    int    `xml:"code,attr" json:"code"`
	Message string `xml:",chardata" json:"message"`
}

// Err converts the error element, if any, into an UNEXPECTED_FAILURE.
func (r *Response[T]) Err() error {
	if r.Error == nil {
		return nil
	}
	return errors.New(errors.ErrCodeUnexpected, "remote error %d: %s", r.Error.Code, r.Error.Message)
}

// TTL is how long the answer stays fresh according to the server clock.
// It is zero when either timestamp is missing or the answer is already stale.
func (r *Response[T]) TTL() time.Duration {
	if r.CurrentTime.IsZero() || r.CachedUntil.IsZero() {
		return 0
	}
	return max(r.CachedUntil.Sub(r.CurrentTime.Time), 0)
}
