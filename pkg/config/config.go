// Package config loads licenseaudit settings.
//
// Settings are layered, later sources winning:
//
//  1. [Default] values
//  2. a TOML file ([DefaultFile] in the working directory, or an explicit path)
//  3. environment variables, including a .env file in the working directory
//  4. command-line flags (applied by the caller)
//
// Example licenseaudit.toml:
//
//	root = "/srv/repos"
//	exclude = ["archive-*", ".*"]
//	concurrency = 4
//	http_timeout = "15s"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "12h"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
)

const (
	// AppName names the config file, cache directory and env prefix.
	AppName = "licenseaudit"

	// DefaultFile is the config file looked up in the working directory.
	DefaultFile = AppName + ".toml"

	// DotEnvFile is the env file looked up in the working directory.
	DotEnvFile = ".env"

	DefaultConcurrency = 1
	DefaultHTTPTimeout = 10 * time.Second
	DefaultCacheTTL    = 24 * time.Hour
	DefaultFormat      = "text"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config holds all settings for a run.
type Config struct {
	Root              string        `toml:"root"`
	Exclude           []string      `toml:"exclude"`
	Concurrency       int           `toml:"concurrency"`
	IncludeLockOnly   bool          `toml:"include_lock_only"`
	SkipPlatform      bool          `toml:"skip_platform"`
	Format            string        `toml:"format"`
	HTTPTimeout       time.Duration `toml:"http_timeout"`
	NPMRegistry       string        `toml:"npm_registry"`
	PackagistRegistry string        `toml:"packagist_registry"`
	Cache             CacheConfig   `toml:"cache"`

	// Source is the config file that was loaded, if any.
	Source string `toml:"-"`
}

// CacheConfig configures the registry response cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`   // file, redis or none
	TTL       time.Duration `toml:"ttl"`       // Response lifetime
	Dir       string        `toml:"dir"`       // File backend directory (XDG cache dir when empty)
	RedisURL  string        `toml:"redis_url"` // Redis backend URL
	Namespace string        `toml:"namespace"` // Key prefix shared by all entries
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Concurrency: DefaultConcurrency,
		Format:      DefaultFormat,
		HTTPTimeout: DefaultHTTPTimeout,
		Cache: CacheConfig{
			Backend:   CacheFile,
			TTL:       DefaultCacheTTL,
			Namespace: AppName,
		},
	}
}

// Load builds a Config from defaults, the TOML file at path and the
// environment. An empty path loads [DefaultFile] if it exists; an explicit
// path must exist. The result is not validated so that flags can still
// override it; call [Config.Validate] once all sources are applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		return nil, err
	}

	dotenv, err := ReadDotEnv(DotEnvFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(LookupWithFallback(os.LookupEnv, dotenv)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes the TOML file at path into c. Keys that c does not
// know are rejected so typos do not pass silently.
func (c *Config) LoadFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "config file %s", path)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return lerrors.New(lerrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if abs, err := filepath.Abs(path); err == nil {
		c.Source = abs
	} else {
		c.Source = path
	}
	return nil
}
