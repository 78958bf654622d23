package crest

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/evekit/pkg/codec"
	"github.com/matzehuels/evekit/pkg/dispatch"
	"github.com/matzehuels/evekit/pkg/errors"
	"github.com/matzehuels/evekit/pkg/transport"
)

// DefaultURI is the public JSON API root.
const DefaultURI = "http://public-crest.eveonline.com/"

// Client talks to the JSON API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	dispatcher *dispatch.Dispatcher
	logger     *log.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another server.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithDispatcher replaces the default HTTP/JSON dispatcher.
func WithDispatcher(d *dispatch.Dispatcher) ClientOption {
	return func(c *Client) { c.dispatcher = d }
}

// WithLogger sets the client logger.
func WithLogger(l *log.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for DefaultURI.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{baseURL: DefaultURI, logger: log.New(io.Discard)}
	for _, o := range opts {
		o(c)
	}
	if c.dispatcher == nil {
		c.dispatcher = dispatch.New(transport.NewHTTP(), codec.JSON{}, dispatch.WithLogger(c.logger))
	}
	return c
}

// BaseURL returns the server the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) desc(segments ...any) dispatch.Descriptor {
	parts := make([]string, len(segments))
	for i, s := range segments {
		switch v := s.(type) {
		case string:
			parts[i] = v
		case int64:
			parts[i] = strconv.FormatInt(v, 10)
		case int:
			parts[i] = strconv.Itoa(v)
		}
	}
	return dispatch.Descriptor{BaseURL: c.baseURL, Path: strings.Join(parts, "/") + "/"}
}

// KillmailAsync starts a killmail request.
func (c *Client) KillmailAsync(ctx context.Context, id int64, hash string) *dispatch.Call[Resource] {
	if err := checkHash(hash); err != nil {
		return dispatch.Resolved[Resource](nil, err)
	}
	return dispatch.Dispatch[Resource](ctx, c.dispatcher, c.desc("killmails", id, hash))
}

// Killmail returns the killmail with the given ID and verification hash.
func (c *Client) Killmail(ctx context.Context, id int64, hash string) (Resource, error) {
	if err := checkHash(hash); err != nil {
		return nil, err
	}
	return dispatch.DispatchBlocking[Resource](ctx, c.dispatcher, c.desc("killmails", id, hash))
}

func checkHash(hash string) error {
	if hash == "" || strings.ContainsAny(hash, "/?#") {
		return errors.New(errors.ErrCodeInvalidInput, "invalid killmail hash %q", hash)
	}
	return nil
}

// IncursionsAsync starts an incursions request.
func (c *Client) IncursionsAsync(ctx context.Context) *dispatch.Call[Resource] {
	return dispatch.Dispatch[Resource](ctx, c.dispatcher, c.desc("incursions"))
}

// Incursions returns the active incursions.
func (c *Client) Incursions(ctx context.Context) (Resource, error) {
	return dispatch.DispatchBlocking[Resource](ctx, c.dispatcher, c.desc("incursions"))
}

// AlliancesAsync starts an alliance list request.
func (c *Client) AlliancesAsync(ctx context.Context) *dispatch.Call[Resource] {
	return dispatch.Dispatch[Resource](ctx, c.dispatcher, c.desc("alliances"))
}

// Alliances returns the first page of the alliance list.
func (c *Client) Alliances(ctx context.Context) (Resource, error) {
	return dispatch.DispatchBlocking[Resource](ctx, c.dispatcher, c.desc("alliances"))
}

// AllianceAsync starts a request for one alliance.
func (c *Client) AllianceAsync(ctx context.Context, id int64) *dispatch.Call[Resource] {
	return dispatch.Dispatch[Resource](ctx, c.dispatcher, c.desc("alliances", id))
}

// Alliance returns one alliance.
func (c *Client) Alliance(ctx context.Context, id int64) (Resource, error) {
	return dispatch.DispatchBlocking[Resource](ctx, c.dispatcher, c.desc("alliances", id))
}

func (c *Client) marketHistoryDesc(regionID, typeID int64) dispatch.Descriptor {
	return c.desc("market", regionID, "types", typeID, "history").WithAccept(MarketHistoryMediaType)
}

// MarketHistoryAsync starts a market history request.
func (c *Client) MarketHistoryAsync(ctx context.Context, regionID, typeID int64) *dispatch.Call[MarketHistory] {
	return dispatch.Dispatch[MarketHistory](ctx, c.dispatcher, c.marketHistoryDesc(regionID, typeID))
}

// MarketHistory returns the daily market history of typeID in regionID.
func (c *Client) MarketHistory(ctx context.Context, regionID, typeID int64) (MarketHistory, error) {
	return dispatch.DispatchBlocking[MarketHistory](ctx, c.dispatcher, c.marketHistoryDesc(regionID, typeID))
}

// Follow fetches the resource at href. Links must point into the client's
// base URL; anything else is INVALID_INPUT.
func (c *Client) Follow(ctx context.Context, href string) (Resource, error) {
	base := strings.TrimRight(c.baseURL, "/") + "/"
	rel, ok := strings.CutPrefix(href, base)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "link %q is outside %s", href, base)
	}
	return dispatch.DispatchBlocking[Resource](ctx, c.dispatcher, dispatch.Descriptor{BaseURL: base, Path: rel})
}
