// Package cli implements the licenseaudit command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licenseaudit/pkg/audit"
	"github.com/matzehuels/licenseaudit/pkg/cache"
	"github.com/matzehuels/licenseaudit/pkg/config"
	"github.com/matzehuels/licenseaudit/pkg/deps"
	"github.com/matzehuels/licenseaudit/pkg/deps/javascript"
	"github.com/matzehuels/licenseaudit/pkg/deps/php"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ecosystems lists the supported package-manager families in the order
// their manifests are read for every repository.
var ecosystems = []*deps.Ecosystem{javascript.Ecosystem, php.Ecosystem}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config // Loaded before every command runs
	Out    io.Writer      // Report and lookup output

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache opens the configured response cache. Cache problems never stop a
// scan: an unusable backend is reported and replaced by a NullCache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer) {
	cfg := c.Config.Cache
	keyer := cache.NewDefaultKeyer()
	if cfg.Namespace != "" {
		keyer = cache.NewScopedKeyer(keyer, cfg.Namespace+":")
	}

	backend := cfg.Backend
	if noCache {
		backend = config.CacheNone
	}

	switch backend {
	case config.CacheNone:
		return cache.NewNullCache(), keyer
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, continuing without cache", "err", err)
			return cache.NewNullCache(), keyer
		}
		c.Logger.Debug("using redis cache", "url", cfg.RedisURL)
		return rc, keyer
	}

	dir, err := c.fileCacheDir()
	if err != nil {
		return cache.NewNullCache(), keyer
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, continuing without cache", "dir", dir, "err", err)
		return cache.NewNullCache(), keyer
	}
	c.Logger.Debug("using file cache", "dir", dir)
	return fc, keyer
}

// fileCacheDir returns the configured cache directory or the XDG default.
func (c *CLI) fileCacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// =============================================================================
// Auditor Factory
// =============================================================================

// clientConfig builds the registry client settings for one ecosystem.
func (c *CLI) clientConfig(e *deps.Ecosystem, store cache.Cache, keyer cache.Keyer) deps.ClientConfig {
	return deps.ClientConfig{
		Cache:    store,
		Keyer:    keyer,
		CacheTTL: c.Config.Cache.TTL,
		BaseURL:  c.registryURL(e),
		Timeout:  c.Config.HTTPTimeout,
	}
}

// registryURL returns the configured registry override for e, if any.
func (c *CLI) registryURL(e *deps.Ecosystem) string {
	switch e.Registry {
	case javascript.Ecosystem.Registry:
		return c.Config.NPMRegistry
	case php.Ecosystem.Registry:
		return c.Config.PackagistRegistry
	}
	return ""
}

// newAuditor creates an auditor with one reader per supported ecosystem.
func (c *CLI) newAuditor(store cache.Cache, keyer cache.Keyer, opts deps.Options) (*audit.Auditor, error) {
	readers := make([]deps.ManifestReader, 0, len(ecosystems))
	for _, e := range ecosystems {
		r, err := e.Reader(c.clientConfig(e, store, keyer))
		if err != nil {
			return nil, err
		}
		readers = append(readers, r)
	}

	a := audit.New(c.Logger, readers...)
	a.Concurrency = c.Config.Concurrency
	a.Exclude = c.Config.Exclude
	a.Options = opts
	return a, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/licenseaudit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
