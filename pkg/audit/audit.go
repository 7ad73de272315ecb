package audit

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/licenseaudit/pkg/deps"
	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
	"github.com/matzehuels/licenseaudit/pkg/observability"
)

// Auditor scans repositories with a fixed set of manifest readers.
//
// The zero value scans nothing; use [New] or set Readers. An Auditor may be
// reused across runs and its fields must not change during a run.
type Auditor struct {
	Readers     []deps.ManifestReader // Run in order for every repository
	Logger      *log.Logger           // Progress logging (discarded when nil)
	Concurrency int                   // Repositories scanned in parallel (1 when < 1)
	Exclude     []string              // Repository name globs to skip
	Options     deps.Options          // Passed to every reader
}

// New returns an Auditor running readers in the given order.
func New(logger *log.Logger, readers ...deps.ManifestReader) *Auditor {
	return &Auditor{Readers: readers, Logger: logger, Concurrency: 1}
}

type repoResult struct {
	records  []deps.Dependency
	failures []Failure
}

// Run scans every repository under root and returns the aggregated report.
//
// It fails only if root is invalid or unreadable or ctx is cancelled;
// everything else degrades into [Report].Failures.
func (a *Auditor) Run(ctx context.Context, root string) (*Report, error) {
	start := time.Now()
	logger := a.logger()

	if err := lerrors.ValidateRoot(root); err != nil {
		return nil, err
	}
	root = filepath.Clean(root)

	repos, err := ListRepositories(root, a.Exclude)
	if err != nil {
		return nil, err
	}

	hooks := observability.Audit()
	hooks.OnScanStart(ctx, root, len(repos))
	logger.Debug("scanning repositories", "root", root, "repositories", len(repos), "readers", len(a.Readers))

	results := make([]repoResult, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.Concurrency, 1))
	for i, repo := range repos {
		g.Go(func() error {
			res, err := a.scanRepository(gctx, root, repo)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		hooks.OnScanComplete(ctx, root, 0, time.Since(start), err)
		return nil, err
	}

	var idx Index
	report := &Report{
		RunID:        uuid.New(),
		Root:         root,
		StartedAt:    start,
		Repositories: repos,
		Failures:     []Failure{},
	}
	for i, repo := range repos {
		for _, d := range results[i].records {
			idx.Add(repo, d)
		}
		report.Failures = append(report.Failures, results[i].failures...)
	}
	report.Entries = idx.Entries()
	report.Duration = time.Since(start)

	hooks.OnScanComplete(ctx, root, len(report.Entries), report.Duration, nil)
	logger.Debug("scan complete",
		"entries", len(report.Entries),
		"failures", len(report.Failures),
		"duration", report.Duration.Round(time.Millisecond))
	return report, nil
}

// scanRepository runs every reader on one repository. The returned error
// is non-nil only when ctx is done.
func (a *Auditor) scanRepository(ctx context.Context, root, repo string) (repoResult, error) {
	var res repoResult
	if err := ctx.Err(); err != nil {
		return res, err
	}

	start := time.Now()
	hooks := observability.Audit()
	hooks.OnRepositoryStart(ctx, repo)
	logger := a.logger().With("repo", repo)

	opts := a.Options
	if opts.Logger == nil {
		opts.Logger = func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		}
	}

	path := filepath.Join(root, repo)
	for _, r := range a.Readers {
		records, err := r.Read(ctx, path, opts)
		if ctxErr := ctx.Err(); ctxErr != nil {
			hooks.OnRepositoryComplete(ctx, repo, len(res.records), time.Since(start), ctxErr)
			return res, ctxErr
		}
		if err != nil {
			logger.Warn("skipping manifest", "ecosystem", r.Ecosystem(), "err", lerrors.UserMessage(err))
			res.failures = append(res.failures, Failure{
				Repository: repo,
				Ecosystem:  r.Ecosystem(),
				Code:       lerrors.Classify(err),
				Message:    lerrors.UserMessage(err),
			})
			continue
		}
		for _, d := range records {
			if d.Failed() {
				res.failures = append(res.failures, Failure{
					Repository: repo,
					Ecosystem:  r.Ecosystem(),
					Dependency: d.Name,
					Code:       classifyLookup(d.Err),
					Message:    lerrors.UserMessage(d.Err),
				})
			}
		}
		res.records = append(res.records, records...)
		logger.Debug("read manifest", "ecosystem", r.Ecosystem(), "dependencies", len(records))
	}

	hooks.OnRepositoryComplete(ctx, repo, len(res.records), time.Since(start), nil)
	return res, nil
}

func (a *Auditor) logger() *log.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return log.New(io.Discard)
}
