// Package audit scans a directory of repositories and aggregates their
// production dependencies by license.
//
// # Overview
//
// An [Auditor] treats every immediate subdirectory of a root as a
// repository, runs each configured [deps.ManifestReader] on it and merges
// the records into an ordered index keyed by "<name> (<license>)":
//
//	a := audit.New(logger,
//	    must(javascript.Ecosystem.Reader(cfg)),
//	    must(php.Ecosystem.Reader(cfg)),
//	)
//	report, err := a.Run(ctx, "/srv/repos")
//	for _, e := range report.Entries {
//	    fmt.Println(e.Key, e.Repositories)
//	}
//
// # Ordering
//
// Entries appear in first-seen order, repositories within an entry in
// directory-listing order. Repositories may be scanned concurrently
// ([Auditor].Concurrency) but are always aggregated in listing order, so
// the same inputs produce the same report.
//
// # Degradation
//
// Only an unreadable root or a cancelled context fails [Auditor.Run].
// A reader error skips that (repository, ecosystem) pair and a failed
// registry lookup keeps its placeholder license; both are recorded in
// [Report].Failures.
//
// [deps.ManifestReader]: github.com/matzehuels/licenseaudit/pkg/deps.ManifestReader
package audit
