// Package cli implements the evekit command-line interface.
//
// The CLI stores named API keys locally and queries both remote APIs through
// the evekit client packages. It is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
//   - key: Store, inspect and validate API keys
//   - char: Query character endpoints through a stored key
//   - crest: Query the public JSON API
//   - cache: Manage the response cache
//
// # Configuration
//
// Settings come from config.toml and EVEKIT_* variables (see pkg/config).
// --config selects another file; --no-cache disables response caching.
package cli

import (
	"context"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/evekit/pkg/apikey"
	"github.com/matzehuels/evekit/pkg/cache"
	"github.com/matzehuels/evekit/pkg/codec"
	"github.com/matzehuels/evekit/pkg/config"
	"github.com/matzehuels/evekit/pkg/crest"
	"github.com/matzehuels/evekit/pkg/dispatch"
	"github.com/matzehuels/evekit/pkg/errors"
	"github.com/matzehuels/evekit/pkg/eveapi"
	"github.com/matzehuels/evekit/pkg/keystore"
	"github.com/matzehuels/evekit/pkg/transport"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "evekit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string
	noCache     bool
	metricsFile string

	cfg config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file and environment into c.cfg.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "api", cfg.APIURL, "crest", cfg.CrestURL, "cache", cfg.Cache)
	return nil
}

// =============================================================================
// Client Factories
// =============================================================================

func (c *CLI) newTransport() *transport.HTTP {
	return transport.NewHTTP(transport.WithTimeout(c.cfg.Timeout))
}

func (c *CLI) newDispatcher(cd codec.Codec) *dispatch.Dispatcher {
	return dispatch.New(c.newTransport(), cd,
		dispatch.WithLogger(c.Logger),
		dispatch.WithMaxInFlight(c.cfg.MaxInFlight),
	)
}

// newCache opens the configured response cache backend.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache {
	case config.CacheRedis:
		rc, err := cache.DialRedis(ctx, c.cfg.RedisAddr)
		if err != nil {
			c.Logger.Warn("Redis cache unavailable, continuing without cache", "addr", c.cfg.RedisAddr, "err", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	case config.CacheNone:
		return cache.NewNullCache(), nil
	default:
		dir, err := c.cfg.ResolvedCacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// eveClient builds an XML API client. The returned cache must be closed by the caller.
func (c *CLI) eveClient(ctx context.Context) (*eveapi.Client, cache.Cache, error) {
	cc, err := c.newCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	client := eveapi.NewClient(
		eveapi.WithBaseURL(c.cfg.APIURL),
		eveapi.WithDispatcher(c.newDispatcher(codec.XML{})),
		eveapi.WithCache(cc),
		eveapi.WithKeyer(cache.NewScopedKeyer(cache.NewDefaultKeyer(), cache.Hash([]byte(c.cfg.APIURL))[:8]+":")),
		eveapi.WithLogger(c.Logger),
	)
	return client, cc, nil
}

func (c *CLI) crestClient() *crest.Client {
	return crest.NewClient(
		crest.WithBaseURL(c.cfg.CrestURL),
		crest.WithDispatcher(c.newDispatcher(codec.JSON{})),
		crest.WithLogger(c.Logger),
	)
}

func (c *CLI) keyStore() (*keystore.Store, error) {
	dir, err := c.cfg.ResolvedKeysDir()
	if err != nil {
		return nil, err
	}
	return keystore.New(dir)
}

// storedKey loads the named key from the key store and binds it to client.
func (c *CLI) storedKey(ctx context.Context, client *eveapi.Client, name string) (*apikey.Key, error) {
	store, err := c.keyStore()
	if err != nil {
		return nil, err
	}
	entry, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return client.NewKey(entry.KeyID, entry.VCode), nil
}

// findCharacter resolves ref (an ID or a name) among the characters of key.
func findCharacter(ctx context.Context, client *eveapi.Client, key *apikey.Key, ref string) (*eveapi.Character, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return client.Character(ctx, key, id)
	}
	chars, err := client.Characters(ctx, key)
	if err != nil {
		return nil, err
	}
	for _, ch := range chars {
		if ch.Name == ref {
			return ch, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "%s has no character named %q", key, ref)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the response cache directory for the current settings.
func (c *CLI) cacheDir() (string, error) {
	return c.cfg.ResolvedCacheDir()
}

// ExitCode maps an error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errors.ErrCodeCanceled):
		return 130
	case errors.Is(err, errors.ErrCodeInvalidInput):
		return 2
	default:
		return 1
	}
}
