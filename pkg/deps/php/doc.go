// Package php reads Composer manifests and resolves their licenses.
//
// # Overview
//
// This package implements [deps.Ecosystem] for PHP:
//
//   - composer.json "require" reading, in file order
//   - composer.lock "packages" reading (no network access)
//   - license lookup via the [packagist] client for unlocked names
//
// # Reconciliation
//
// For every required name the lock file's license wins; Packagist is only
// asked about names the lock does not pin. Lock entries that are not
// required directly (transitive packages) are dropped unless
// [deps.Options].IncludeLockOnly is set:
//
//	reader, _ := php.Ecosystem.Reader(deps.ClientConfig{})
//	records, _ := reader.Read(ctx, "/srv/repos/shop", deps.Options{IncludeLockOnly: true})
//
// Platform requirements (php, ext-*, lib-*, composer-*-api) are reported
// like any other key unless [deps.Options].SkipPlatform is set.
//
// [packagist]: github.com/matzehuels/licenseaudit/pkg/integrations/packagist
package php
