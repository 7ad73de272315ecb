package config

import (
	"path/filepath"

	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
)

var formats = map[string]bool{"text": true, "json": true, "dot": true, "svg": true}

// Validate checks c for settings that cannot work.
// Root is checked by the auditor, which knows whether a scan is requested.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return lerrors.New(lerrors.ErrCodeInvalidConfig, "concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Format != "" && !formats[c.Format] {
		return lerrors.New(lerrors.ErrCodeInvalidConfig, "unknown format %q", c.Format)
	}
	if c.HTTPTimeout < 0 {
		return lerrors.New(lerrors.ErrCodeInvalidConfig, "http_timeout must not be negative")
	}
	for _, p := range c.Exclude {
		if _, err := filepath.Match(p, ""); err != nil {
			return lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "exclude pattern %q", p)
		}
	}
	for _, u := range []string{c.NPMRegistry, c.PackagistRegistry} {
		if u == "" {
			continue
		}
		if err := lerrors.ValidateURL(u); err != nil {
			return lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "registry URL %q", u)
		}
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone, "":
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return lerrors.New(lerrors.ErrCodeInvalidConfig, "cache backend redis requires redis_url")
		}
	default:
		return lerrors.New(lerrors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return lerrors.New(lerrors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}

// ResolveRoot returns Root as an absolute path. Relative roots are taken
// from the working directory.
func (c *Config) ResolveRoot() (string, error) {
	if c.Root == "" {
		return "", lerrors.New(lerrors.ErrCodeInvalidPath, "no repository root configured (pass it as an argument or set %s)", EnvRoot)
	}
	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return "", lerrors.Wrap(lerrors.ErrCodeInvalidPath, err, "resolve %s", c.Root)
	}
	return abs, nil
}
