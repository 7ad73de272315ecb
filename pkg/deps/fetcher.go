package deps

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/licenseaudit/pkg/integrations"
	"github.com/matzehuels/licenseaudit/pkg/observability"
)

// LicenseFetcher looks up the declared license of a package in a registry.
type LicenseFetcher interface {
	// FetchLicense returns the package's license. A package unknown to the
	// registry yields an error wrapping [integrations.ErrNotFound]; a known
	// package without a license yields an absent License and nil error.
	// If refresh is true, cached registry responses are bypassed.
	FetchLicense(ctx context.Context, name string, refresh bool) (License, error)
}

// LicenseFetcherFunc adapts a function to [LicenseFetcher].
type LicenseFetcherFunc func(ctx context.Context, name string, refresh bool) (License, error)

// FetchLicense calls f.
func (f LicenseFetcherFunc) FetchLicense(ctx context.Context, name string, refresh bool) (License, error) {
	return f(ctx, name, refresh)
}

// Memo wraps a LicenseFetcher so each package name is fetched at most once
// per Memo. Concurrent lookups of the same name share one call. Successful
// results and not-found responses are remembered; transient errors are not.
//
// Memo is safe for concurrent use.
type Memo struct {
	registry string
	next     LicenseFetcher
	results  *lru.Cache[string, memoResult]
	group    singleflight.Group
}

type memoResult struct {
	license License
	err     error
}

// NewMemo wraps next. registry names the lookups in observability events
// (e.g. "npm"); size bounds the number of remembered names.
func NewMemo(registry string, next LicenseFetcher, size int) *Memo {
	if size <= 0 {
		size = DefaultMemoSize
	}
	results, _ := lru.New[string, memoResult](size)
	return &Memo{registry: registry, next: next, results: results}
}

// FetchLicense returns the remembered result for name or fetches it.
// refresh is forwarded on the first lookup only.
func (m *Memo) FetchLicense(ctx context.Context, name string, refresh bool) (License, error) {
	start := time.Now()
	if r, ok := m.results.Get(name); ok {
		observability.Audit().OnLookup(ctx, m.registry, name, true, time.Since(start), r.err)
		return r.license, r.err
	}

	v, err, _ := m.group.Do(name, func() (any, error) {
		if r, ok := m.results.Get(name); ok {
			return r, nil
		}
		lic, err := m.next.FetchLicense(ctx, name, refresh)
		r := memoResult{license: lic, err: err}
		if err == nil || errors.Is(err, integrations.ErrNotFound) {
			m.results.Add(name, r)
		}
		return r, nil
	})
	if err != nil {
		return License{}, err
	}
	r := v.(memoResult)
	observability.Audit().OnLookup(ctx, m.registry, name, false, time.Since(start), r.err)
	return r.license, r.err
}
