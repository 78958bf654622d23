package eveapi

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/evekit/pkg/apikey"
	"github.com/matzehuels/evekit/pkg/cache"
	"github.com/matzehuels/evekit/pkg/codec"
	"github.com/matzehuels/evekit/pkg/dispatch"
	"github.com/matzehuels/evekit/pkg/errors"
	"github.com/matzehuels/evekit/pkg/httputil"
	"github.com/matzehuels/evekit/pkg/observability"
	"github.com/matzehuels/evekit/pkg/transport"
)

// DefaultBaseURL is the production XML API.
const DefaultBaseURL = "https://api.eveonline.com"

// cacheNamespace scopes response cache keys for this client.
const cacheNamespace = "eveapi"

// Client talks to the XML API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	dispatcher *dispatch.Dispatcher
	cache      cache.Cache
	keyer      cache.Keyer
	logger     *log.Logger
	attempts   int
	retryDelay time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another server.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithDispatcher replaces the default HTTP/XML dispatcher.
func WithDispatcher(d *dispatch.Dispatcher) ClientOption {
	return func(c *Client) { c.dispatcher = d }
}

// WithCache enables response caching for character endpoints.
func WithCache(cc cache.Cache) ClientOption {
	return func(c *Client) {
		if cc != nil {
			c.cache = cc
		}
	}
}

// WithKeyer replaces the cache key builder.
func WithKeyer(k cache.Keyer) ClientOption {
	return func(c *Client) {
		if k != nil {
			c.keyer = k
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *log.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRetry sets how often cached endpoints retry transient failures and the
// initial delay between attempts. attempts of 1 disables retrying.
func WithRetry(attempts int, delay time.Duration) ClientOption {
	return func(c *Client) {
		c.attempts = max(attempts, 1)
		c.retryDelay = delay
	}
}

// NewClient creates a client for DefaultBaseURL with caching disabled.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		cache:      cache.NewNullCache(),
		keyer:      cache.NewDefaultKeyer(),
		logger:     log.New(io.Discard),
		attempts:   3,
		retryDelay: time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	if c.dispatcher == nil {
		c.dispatcher = dispatch.New(transport.NewHTTP(), codec.XML{}, dispatch.WithLogger(c.logger))
	}
	return c
}

// BaseURL returns the server the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// NewKey creates a key whose metadata loads through this client.
func (c *Client) NewKey(keyID int64, vCode string) *apikey.Key {
	return apikey.New(keyID, vCode, c)
}

func (c *Client) descriptor(relPath string, kv ...any) (dispatch.Descriptor, error) {
	return dispatch.NewDescriptor(c.baseURL, relPath, kv...)
}

// keyDescriptor builds a key-scoped descriptor: keyID and vCode come first,
// then the endpoint parameters in the given order.
func (c *Client) keyDescriptor(relPath string, keyID int64, vCode string, kv ...any) (dispatch.Descriptor, error) {
	desc, err := c.descriptor(relPath, "keyID", keyID, "vCode", vCode)
	if err != nil {
		return desc, err
	}
	return desc.With(kv...)
}

// dispatchAsync starts desc and converts body-level API errors.
func dispatchAsync[T any](ctx context.Context, c *Client, desc dispatch.Descriptor, err error) *dispatch.Call[*Response[T]] {
	if err != nil {
		return dispatch.Resolved[*Response[T]](nil, err)
	}
	call := dispatch.Dispatch[Response[T]](ctx, c.dispatcher, desc)
	return dispatch.Then(call, checkResponse[T])
}

// dispatchBlocking runs desc on the calling goroutine and converts body-level API errors.
func dispatchBlocking[T any](ctx context.Context, c *Client, desc dispatch.Descriptor, err error) (*Response[T], error) {
	if err != nil {
		return nil, err
	}
	resp, err := dispatch.DispatchBlocking[Response[T]](ctx, c.dispatcher, desc)
	if err != nil {
		return nil, err
	}
	return checkResponse(resp)
}

func checkResponse[T any](resp Response[T]) (*Response[T], error) {
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return &resp, nil
}

// cached reads desc through the response cache. Misses dispatch with retries
// and store the answer for its announced lifetime.
func cached[T any](ctx context.Context, c *Client, desc dispatch.Descriptor, err error) (*Response[T], error) {
	if err != nil {
		return nil, err
	}
	key := c.keyer.ResponseKey(cacheNamespace, desc.URL())
	hooks := observability.Cache()

	if data, ok, gerr := c.cache.Get(ctx, key); gerr != nil {
		c.logger.Warn("cache read failed", "url", desc, "err", gerr)
	} else if ok {
		var resp Response[T]
		derr := (codec.JSON{}).Decode(data, &resp)
		if derr == nil {
			hooks.OnCacheHit(ctx, cacheNamespace)
			c.logger.Debug("cache hit", "url", desc)
			return &resp, nil
		}
		c.logger.Warn("cache entry unreadable", "url", desc, "err", derr)
		if derr := c.cache.Delete(ctx, key); derr != nil {
			c.logger.Warn("cache delete failed", "url", desc, "err", derr)
		}
	}
	hooks.OnCacheMiss(ctx, cacheNamespace)

	var resp *Response[T]
	err = httputil.Retry(ctx, c.attempts, c.retryDelay, func() error {
		var ferr error
		resp, ferr = dispatchBlocking[T](ctx, c, desc, nil)
		return ferr
	})
	if err != nil {
		if ctx.Err() != nil && !errors.Is(err, errors.ErrCodeCanceled) {
			return nil, errors.Wrap(errors.ErrCodeCanceled, err, "GET %s", desc)
		}
		return nil, err
	}

	if ttl := resp.TTL(); ttl > 0 {
		if data, eerr := (codec.JSON{}).Encode(resp); eerr != nil {
			c.logger.Warn("cache encode failed", "url", desc, "err", eerr)
		} else if serr := c.cache.Set(ctx, key, data, ttl); serr != nil {
			c.logger.Warn("cache write failed", "url", desc, "err", serr)
		} else {
			hooks.OnCacheSet(ctx, cacheNamespace, len(data))
		}
	}
	return resp, nil
}
