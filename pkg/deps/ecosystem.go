package deps

import (
	"fmt"
	"time"

	"github.com/matzehuels/licenseaudit/pkg/cache"
)

// ClientConfig configures the registry client behind an Ecosystem.
type ClientConfig struct {
	Cache    cache.Cache   // Response cache (NullCache when nil)
	Keyer    cache.Keyer   // Cache key builder (DefaultKeyer when nil)
	CacheTTL time.Duration // Response TTL (DefaultCacheTTL when zero)
	BaseURL  string        // Registry base URL override (empty for default)
	Timeout  time.Duration // HTTP timeout (client default when zero)
	MemoSize int           // In-run memo capacity (DefaultMemoSize when zero)
}

// WithDefaults returns a copy of ClientConfig with zero values replaced by defaults.
func (c ClientConfig) WithDefaults() ClientConfig {
	cfg := c
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.MemoSize <= 0 {
		cfg.MemoSize = DefaultMemoSize
	}
	return cfg
}

// Ecosystem describes a package-manager family: its registry and how to
// read its manifests.
type Ecosystem struct {
	Name          string   // Family name (e.g. "javascript")
	Registry      string   // Registry name (e.g. "npm")
	ManifestFiles []string // Files read per repository
	NewFetcher    func(cfg ClientConfig) (LicenseFetcher, error)
	NewReader     func(f LicenseFetcher) ManifestReader
}

// Fetcher builds the memoized registry fetcher for this ecosystem.
func (e *Ecosystem) Fetcher(cfg ClientConfig) (LicenseFetcher, error) {
	cfg = cfg.WithDefaults()
	f, err := e.NewFetcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Registry, err)
	}
	return NewMemo(e.Registry, f, cfg.MemoSize), nil
}

// Reader builds a manifest reader backed by a memoized registry fetcher.
func (e *Ecosystem) Reader(cfg ClientConfig) (ManifestReader, error) {
	f, err := e.Fetcher(cfg)
	if err != nil {
		return nil, err
	}
	return e.NewReader(f), nil
}

// FindEcosystem returns the ecosystem whose Name or Registry equals name.
func FindEcosystem(name string, ecosystems ...*Ecosystem) (*Ecosystem, error) {
	for _, e := range ecosystems {
		if e.Name == name || e.Registry == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("unknown ecosystem %q", name)
}
