package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/licenseaudit/pkg/observability"
)

// runStats counts registry and cache activity during one command.
// All counters are safe for concurrent use.
type runStats struct {
	repositories atomic.Int64 // Repositories to scan
	scanned      atomic.Int64 // Repositories finished
	lookups      atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	requests     atomic.Int64
	httpErrors   atomic.Int64
}

// statsSnapshot is a point-in-time copy of runStats.
type statsSnapshot struct {
	Lookups     int64
	CacheHits   int64
	CacheMisses int64
	Requests    int64
	HTTPErrors  int64
}

func (s *runStats) snapshot() statsSnapshot {
	return statsSnapshot{
		Lookups:     s.lookups.Load(),
		CacheHits:   s.cacheHits.Load(),
		CacheMisses: s.cacheMisses.Load(),
		Requests:    s.requests.Load(),
		HTTPErrors:  s.httpErrors.Load(),
	}
}

// cliHooks implements the observability hook interfaces: it logs every
// event at debug level, updates runStats, and reports scan progress.
type cliHooks struct {
	logger   *log.Logger
	stats    *runStats
	progress func(scanned, total int64) // Optional
}

var (
	_ observability.AuditHooks = (*cliHooks)(nil)
	_ observability.CacheHooks = (*cliHooks)(nil)
	_ observability.HTTPHooks  = (*cliHooks)(nil)
)

// installHooks registers hooks for the duration of a command. The returned
// function restores the no-op hooks.
func installHooks(logger *log.Logger, progress func(scanned, total int64)) (*runStats, func()) {
	h := &cliHooks{logger: logger, stats: &runStats{}, progress: progress}
	observability.SetAuditHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
	return h.stats, observability.Reset
}

func (h *cliHooks) OnScanStart(_ context.Context, root string, repositories int) {
	h.stats.repositories.Store(int64(repositories))
	h.logger.Debug("scan started", "root", root, "repositories", repositories)
}

func (h *cliHooks) OnScanComplete(_ context.Context, root string, entries int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("scan aborted", "root", root, "err", err)
		return
	}
	h.logger.Debug("scan finished", "root", root, "entries", entries, "duration", d.Round(time.Millisecond))
}

func (h *cliHooks) OnRepositoryStart(_ context.Context, repo string) {
	h.logger.Debug("repository started", "repo", repo)
}

func (h *cliHooks) OnRepositoryComplete(_ context.Context, repo string, dependencies int, d time.Duration, err error) {
	n := h.stats.scanned.Add(1)
	h.logger.Debug("repository finished", "repo", repo, "dependencies", dependencies, "duration", d.Round(time.Millisecond), "err", err)
	if h.progress != nil {
		h.progress(n, h.stats.repositories.Load())
	}
}

func (h *cliHooks) OnLookup(_ context.Context, registry, pkg string, cached bool, d time.Duration, err error) {
	h.stats.lookups.Add(1)
	if err != nil {
		h.logger.Debug("lookup failed", "registry", registry, "package", pkg, "err", err)
		return
	}
	h.logger.Debug("lookup", "registry", registry, "package", pkg, "memo", cached, "duration", d.Round(time.Millisecond))
}

func (h *cliHooks) OnCacheHit(_ context.Context, keyType string) {
	h.stats.cacheHits.Add(1)
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *cliHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.stats.cacheMisses.Add(1)
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *cliHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *cliHooks) OnRequest(_ context.Context, method, host, path string) {
	h.stats.requests.Add(1)
	h.logger.Debug("request", "method", method, "url", host+path)
}

func (h *cliHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "url", host+path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *cliHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.stats.httpErrors.Add(1)
	h.logger.Debug("request failed", "method", method, "url", host+path, "err", err)
}

// scanProgress returns a progress callback that updates the spinner message.
func scanProgress(s *Spinner) func(scanned, total int64) {
	return func(scanned, total int64) {
		s.SetMessage(fmt.Sprintf("Scanning repositories (%d/%d)...", scanned, total))
	}
}
