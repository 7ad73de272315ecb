package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
)

// Environment variables read by [Config.ApplyEnv].
const (
	EnvRoot              = "LICENSEAUDIT_ROOT"
	EnvCache             = "LICENSEAUDIT_CACHE"
	EnvCacheTTL          = "LICENSEAUDIT_CACHE_TTL"
	EnvRedisURL          = "LICENSEAUDIT_REDIS_URL"
	EnvConcurrency       = "LICENSEAUDIT_CONCURRENCY"
	EnvNPMRegistry       = "LICENSEAUDIT_NPM_REGISTRY"
	EnvPackagistRegistry = "LICENSEAUDIT_PACKAGIST_REGISTRY"
)

// LookupFunc reports the value of an environment variable.
type LookupFunc func(key string) (string, bool)

// ReadDotEnv parses the env file at path without touching the process
// environment. A missing file yields an empty map.
func ReadDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return env, nil
}

// LookupWithFallback returns a LookupFunc that consults primary first and
// then the given map. Real environment variables thus override .env entries.
func LookupWithFallback(primary LookupFunc, fallback map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := primary(key); ok {
			return v, true
		}
		v, ok := fallback[key]
		return v, ok
	}
}

// ApplyEnv overrides c with the LICENSEAUDIT_* variables reported by lookup.
// Empty values are ignored.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvRoot); ok {
		c.Root = v
	}
	if v, ok := get(EnvCache); ok {
		c.Cache.Backend = strings.ToLower(v)
	}
	if v, ok := get(EnvCacheTTL); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "%s", EnvCacheTTL)
		}
		c.Cache.TTL = d
	}
	if v, ok := get(EnvRedisURL); ok {
		c.Cache.RedisURL = v
	}
	if v, ok := get(EnvConcurrency); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "%s", EnvConcurrency)
		}
		c.Concurrency = n
	}
	if v, ok := get(EnvNPMRegistry); ok {
		c.NPMRegistry = v
	}
	if v, ok := get(EnvPackagistRegistry); ok {
		c.PackagistRegistry = v
	}
	return nil
}
