package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Concurrency != 1 || cfg.Format != "text" || cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("Default() = %+v", cfg)
	}
	if cfg.Cache.Backend != CacheFile || cfg.Cache.TTL != 24*time.Hour || cfg.Cache.Namespace != "licenseaudit" {
		t.Errorf("Default().Cache = %+v", cfg.Cache)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "licenseaudit.toml", `
root = "/srv/repos"
exclude = ["archive-*", ".*"]
concurrency = 4
include_lock_only = true
skip_platform = true
format = "json"
http_timeout = "15s"
npm_registry = "http://npm.internal"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"
ttl = "12h"
namespace = "ci"
`)

	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	want := &Config{
		Root:            "/srv/repos",
		Exclude:         []string{"archive-*", ".*"},
		Concurrency:     4,
		IncludeLockOnly: true,
		SkipPlatform:    true,
		Format:          "json",
		HTTPTimeout:     15 * time.Second,
		NPMRegistry:     "http://npm.internal",
		Cache: CacheConfig{
			Backend:   CacheRedis,
			TTL:       12 * time.Hour,
			RedisURL:  "redis://localhost:6379/1",
			Namespace: "ci",
		},
		Source: path,
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("LoadFile() =\n%+v\nwant\n%+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, "partial.toml", `root = "/srv"`)
	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Concurrency != DefaultConcurrency || cfg.Cache.TTL != DefaultCacheTTL {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key": `concurreny = 4`,
		"bad syntax":  `root = `,
		"bad type":    `concurrency = "four"`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			err := Default().LoadFile(writeFile(t, "bad.toml", content))
			if !lerrors.Is(err, lerrors.ErrCodeInvalidConfig) {
				t.Errorf("LoadFile() error = %v, want INVALID_CONFIG", err)
			}
		})
	}

	t.Run("explicit missing", func(t *testing.T) {
		err := Default().LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
		if !lerrors.Is(err, lerrors.ErrCodeInvalidConfig) {
			t.Errorf("LoadFile() error = %v, want INVALID_CONFIG", err)
		}
	})
}

func TestLoadFileImplicitMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := Default()
	if err := cfg.LoadFile(""); err != nil {
		t.Fatalf("LoadFile(\"\") error: %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	os.WriteFile(DefaultFile, []byte("root = \"/from/toml\"\nconcurrency = 2\n"), 0o644)
	os.WriteFile(DotEnvFile, []byte("LICENSEAUDIT_CONCURRENCY=3\nLICENSEAUDIT_CACHE=none\n"), 0o644)
	t.Setenv(EnvRoot, "/from/env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Root != "/from/env" {
		t.Errorf("Root = %q, want env to override toml", cfg.Root)
	}
	if cfg.Concurrency != 3 {
		t.Errorf("Concurrency = %d, want .env to override toml", cfg.Concurrency)
	}
	if cfg.Cache.Backend != CacheNone {
		t.Errorf("Cache.Backend = %q, want none", cfg.Cache.Backend)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvRoot:              "/srv/repos",
		EnvCache:             "Redis",
		EnvCacheTTL:          "90m",
		EnvRedisURL:          "redis://cache:6379",
		EnvConcurrency:       "8",
		EnvNPMRegistry:       "http://npm.local",
		EnvPackagistRegistry: "http://packagist.local",
	}
	cfg := Default()
	if err := cfg.ApplyEnv(LookupWithFallback(func(string) (string, bool) { return "", false }, env)); err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}
	if cfg.Root != "/srv/repos" || cfg.Concurrency != 8 || cfg.Cache.Backend != CacheRedis ||
		cfg.Cache.TTL != 90*time.Minute || cfg.Cache.RedisURL != "redis://cache:6379" ||
		cfg.NPMRegistry != "http://npm.local" || cfg.PackagistRegistry != "http://packagist.local" {
		t.Errorf("ApplyEnv() = %+v", cfg)
	}
}

func TestApplyEnvIgnoresEmpty(t *testing.T) {
	cfg := Default()
	cfg.Root = "/keep"
	err := cfg.ApplyEnv(func(key string) (string, bool) { return "  ", true })
	if err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}
	if cfg.Root != "/keep" {
		t.Errorf("Root = %q, empty env values should be ignored", cfg.Root)
	}
}

func TestApplyEnvErrors(t *testing.T) {
	for _, key := range []string{EnvConcurrency, EnvCacheTTL} {
		err := Default().ApplyEnv(func(k string) (string, bool) {
			if k == key {
				return "not-a-number", true
			}
			return "", false
		})
		if !lerrors.Is(err, lerrors.ErrCodeInvalidConfig) {
			t.Errorf("%s: ApplyEnv() error = %v, want INVALID_CONFIG", key, err)
		}
	}
}

func TestReadDotEnvMissing(t *testing.T) {
	env, err := ReadDotEnv(filepath.Join(t.TempDir(), ".env"))
	if err != nil || len(env) != 0 {
		t.Errorf("ReadDotEnv(missing) = %v, %v", env, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"unknown format", func(c *Config) { c.Format = "pdf" }},
		{"negative timeout", func(c *Config) { c.HTTPTimeout = -time.Second }},
		{"bad exclude", func(c *Config) { c.Exclude = []string{"[oops"} }},
		{"bad registry", func(c *Config) { c.NPMRegistry = "ftp://npm" }},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"redis without url", func(c *Config) { c.Cache.Backend = CacheRedis }},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Hour }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !lerrors.Is(err, lerrors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestResolveRoot(t *testing.T) {
	cfg := Default()
	if _, err := cfg.ResolveRoot(); !lerrors.Is(err, lerrors.ErrCodeInvalidPath) {
		t.Errorf("ResolveRoot() with no root error = %v, want INVALID_PATH", err)
	}

	cfg.Root = "repos"
	got, err := cfg.ResolveRoot()
	if err != nil {
		t.Fatalf("ResolveRoot() error: %v", err)
	}
	if !filepath.IsAbs(got) || filepath.Base(got) != "repos" {
		t.Errorf("ResolveRoot() = %q, want absolute path ending in repos", got)
	}
}
