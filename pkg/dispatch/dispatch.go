package dispatch

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/matzehuels/evekit/pkg/codec"
	"github.com/matzehuels/evekit/pkg/errors"
	"github.com/matzehuels/evekit/pkg/httputil"
	"github.com/matzehuels/evekit/pkg/observability"
	"github.com/matzehuels/evekit/pkg/transport"
)

// DefaultMaxInFlight bounds concurrently running non-blocking dispatches.
const DefaultMaxInFlight = 16

var redact = transport.RedactURL

// Dispatcher runs descriptors against a transport and decodes the results.
// It holds configuration only and is safe for concurrent use.
type Dispatcher struct {
	transport   transport.Transport
	codec       codec.Codec
	logger      *log.Logger
	maxInFlight int
	slots       *semaphore.Weighted
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for per-request debug output.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMaxInFlight bounds how many non-blocking dispatches run at once.
// Values below 1 are ignored.
func WithMaxInFlight(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxInFlight = n
		}
	}
}

// New creates a Dispatcher.
func New(t transport.Transport, c codec.Codec, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport:   t,
		codec:       c,
		logger:      log.New(io.Discard),
		maxInFlight: DefaultMaxInFlight,
	}
	for _, o := range opts {
		o(d)
	}
	d.slots = semaphore.NewWeighted(int64(d.maxInFlight))
	return d
}

// Dispatch starts desc on a background goroutine and returns immediately.
//
// The goroutine first waits for an in-flight slot. If ctx ends while waiting,
// the call completes with a CANCELED error without fetching.
func Dispatch[T any](ctx context.Context, d *Dispatcher, desc Descriptor) *Call[T] {
	c := newCall[T]()
	go func() {
		if err := d.slots.Acquire(ctx, 1); err != nil {
			var zero T
			c.complete(zero, errors.Wrap(errors.ErrCodeCanceled, err, "GET %s", desc))
			return
		}
		defer d.slots.Release(1)
		c.complete(run[T](ctx, d, desc))
	}()
	return c
}

// DispatchBlocking runs desc on the calling goroutine and returns the decoded
// result. It produces the same value or error class as Dispatch for the same
// remote outcome.
func DispatchBlocking[T any](ctx context.Context, d *Dispatcher, desc Descriptor) (T, error) {
	return run[T](ctx, d, desc)
}

func run[T any](ctx context.Context, d *Dispatcher, desc Descriptor) (T, error) {
	var out T
	rawURL := desc.URL()
	safeURL := redact(rawURL)
	accept := desc.Accept
	if accept == "" {
		accept = d.codec.MediaType()
	}

	id := uuid.NewString()
	hooks := observability.Dispatch()
	hooks.OnDispatchStart(ctx, id, safeURL)
	d.logger.Debug("dispatch", "id", id, "url", safeURL)
	start := time.Now()

	err := fetchDecode(ctx, d, rawURL, accept, id, &out)
	if err != nil {
		err = classify(err, safeURL)
	}

	elapsed := time.Since(start)
	hooks.OnDispatchComplete(ctx, id, safeURL, elapsed, err)
	if err != nil {
		d.logger.Debug("dispatch failed", "id", id, "code", errors.GetCode(err), "elapsed", elapsed)
		var zero T
		return zero, err
	}
	d.logger.Debug("dispatch done", "id", id, "elapsed", elapsed)
	return out, nil
}

func fetchDecode(ctx context.Context, d *Dispatcher, rawURL, accept, id string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := d.transport.Fetch(ctx, &transport.Request{URL: rawURL, Accept: accept, RequestID: id})
	if err != nil {
		return err
	}
	if err := d.codec.Decode(body, out); err != nil {
		return &decodeError{size: len(body), err: err}
	}
	return nil
}

type decodeError struct {
	size int
	err  error
}

func (e *decodeError) Error() string { return e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// classify maps a fetch failure onto the dispatch error taxonomy.
func classify(err error, safeURL string) error {
	var derr *decodeError
	if stderrors.As(err, &derr) {
		return errors.Wrap(errors.ErrCodeDecode, derr.err, "GET %s: decode %d bytes", safeURL, derr.size)
	}
	var terr *transport.Error
	if stderrors.As(err, &terr) {
		switch terr.Kind {
		case transport.KindConnection:
			return errors.Wrap(errors.ErrCodeTransport, httputil.Retryable(terr), "GET %s", safeURL)
		case transport.KindForbidden:
			return errors.Wrap(errors.ErrCodeRejected, terr, "GET %s", safeURL)
		case transport.KindCanceled:
			return errors.Wrap(errors.ErrCodeCanceled, terr, "GET %s", safeURL)
		case transport.KindStatus:
			if terr.Status >= http.StatusInternalServerError {
				return errors.Wrap(errors.ErrCodeTransport, httputil.Retryable(terr), "GET %s", safeURL)
			}
			return errors.Wrap(errors.ErrCodeUnexpected, terr, "GET %s: unexpected status %d", safeURL, terr.Status)
		}
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeCanceled, err, "GET %s", safeURL)
	}
	return errors.Wrap(errors.ErrCodeUnexpected, err, "GET %s", safeURL)
}
