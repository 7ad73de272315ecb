// Package pkg provides the core libraries for licenseaudit.
//
// # Overview
//
// licenseaudit answers one question for a directory of repositories: which
// production dependencies are in use, under which license, and where. The
// pkg directory is organized into four main areas:
//
//  1. [deps] - Manifest reading and license resolution per ecosystem
//  2. [integrations] - Registry clients (npm, Packagist)
//  3. [audit] - Repository scanning and aggregation
//  4. [report] - Output formats (text, JSON, DOT, SVG)
//
// # Architecture
//
// The data flow of one run:
//
//	root/<repo>/package.json, composer.json, composer.lock
//	         ↓
//	    [deps/javascript], [deps/php] (read manifests, reconcile lock files)
//	         ↓
//	    [deps.Memo] → [integrations/npm], [integrations/packagist] (+ [cache])
//	         ↓
//	    [audit] (aggregate "<name> (<license>)" → repositories)
//	         ↓
//	    [report] (text, JSON, DOT or SVG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/licenseaudit/pkg/audit"
//	    "github.com/matzehuels/licenseaudit/pkg/deps"
//	    "github.com/matzehuels/licenseaudit/pkg/deps/javascript"
//	    "github.com/matzehuels/licenseaudit/pkg/deps/php"
//	    "github.com/matzehuels/licenseaudit/pkg/report"
//	)
//
//	js, _ := javascript.Ecosystem.Reader(deps.ClientConfig{})
//	composer, _ := php.Ecosystem.Reader(deps.ClientConfig{})
//
//	r, err := audit.New(logger, js, composer).Run(ctx, "/srv/repos")
//	if err != nil {
//	    return err
//	}
//	report.WriteText(os.Stdout, r)
//
// # Supporting Packages
//
// [cache] - Registry response caches: file (CLI default), Redis (shared)
// and null (disabled).
//
// [config] - Settings from defaults, licenseaudit.toml, .env and the
// environment.
//
// [errors] - Structured errors with machine-readable codes, used to classify
// degraded lookups in the report.
//
// [httputil] - Retry with exponential backoff for transient failures.
//
// [observability] - Hooks for scan, lookup, cache and HTTP events.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include live registry tests
//
// [deps]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/deps
// [deps.Memo]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/deps#Memo
// [deps/javascript]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/deps/javascript
// [deps/php]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/deps/php
// [integrations]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/integrations
// [integrations/npm]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/integrations/npm
// [integrations/packagist]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/integrations/packagist
// [audit]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/audit
// [report]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/report
// [cache]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/licenseaudit/pkg/observability
package pkg
