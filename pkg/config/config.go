// Package config loads evekit settings from a TOML file and the environment.
//
// Settings are resolved in this order, later sources winning:
//
//  1. Built-in defaults ([Default])
//  2. $XDG_CONFIG_HOME/evekit/config.toml, or ~/.config/evekit/config.toml
//  3. EVEKIT_* environment variables
//
// A missing config file is not an error. Example file:
//
//	api_url = "https://api.eveonline.com"
//	timeout = "15s"
//	max_in_flight = 8
//	cache = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/evekit/pkg/errors"
)

const appName = "evekit"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Environment variables that override file settings.
const (
	EnvAPIURL      = "EVEKIT_API_URL"
	EnvCrestURL    = "EVEKIT_CREST_URL"
	EnvTimeout     = "EVEKIT_TIMEOUT"
	EnvMaxInFlight = "EVEKIT_MAX_IN_FLIGHT"
	EnvCache       = "EVEKIT_CACHE"
	EnvRedisAddr   = "EVEKIT_REDIS_ADDR"
)

// Config holds all user-tunable settings.
type Config struct {
	APIURL      string        `toml:"api_url"`
	CrestURL    string        `toml:"crest_url"`
	Timeout     time.Duration `toml:"timeout"`
	MaxInFlight int           `toml:"max_in_flight"`
	Cache       string        `toml:"cache"`
	RedisAddr   string        `toml:"redis_addr"`
	CacheDir    string        `toml:"cache_dir"`
	KeysDir     string        `toml:"keys_dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:      "https://api.eveonline.com",
		CrestURL:    "http://public-crest.eveonline.com/",
		Timeout:     10 * time.Second,
		MaxInFlight: 16,
		Cache:       CacheFile,
		RedisAddr:   "localhost:6379",
	}
}

// Dir returns the evekit config directory.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file at path (the default location if empty),
// applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInternal, err, "locate config")
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv(EnvCrestURL); v != "" {
		c.CrestURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", EnvTimeout)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvMaxInFlight); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", EnvMaxInFlight)
		}
		c.MaxInFlight = n
	}
	if v := os.Getenv(EnvCache); v != "" {
		c.Cache = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.RedisAddr = v
	}
	return nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if err := errors.ValidateURL(c.APIURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "api_url")
	}
	if err := errors.ValidateURL(c.CrestURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "crest_url")
	}
	if c.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxInFlight < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "max_in_flight must be at least 1, got %d", c.MaxInFlight)
	}
	switch c.Cache {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "redis_addr is required when cache = %q", CacheRedis)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache)
	}
	return nil
}

// ResolvedCacheDir returns CacheDir, or the XDG cache location when unset.
func (c Config) ResolvedCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// ResolvedKeysDir returns KeysDir, or "keys" under the config directory when unset.
func (c Config) ResolvedKeysDir() (string, error) {
	if c.KeysDir != "" {
		return c.KeysDir, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keys"), nil
}
