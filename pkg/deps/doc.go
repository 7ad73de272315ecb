// Package deps defines the dependency records produced by manifest readers
// and the license lookup plumbing shared by all ecosystems.
//
// # Overview
//
// Each supported package-manager family lives in a subpackage that exposes
// an [Ecosystem]:
//
//   - [javascript]: package.json, licenses from the npm registry
//   - [php]: composer.json + composer.lock, licenses from Packagist
//
// An Ecosystem builds a [ManifestReader] that reads one repository and
// returns a [Dependency] per declared production dependency:
//
//	reader, _ := javascript.Ecosystem.Reader(deps.ClientConfig{Cache: c})
//	records, _ := reader.Read(ctx, "/srv/repos/api", deps.Options{})
//	for _, d := range records {
//	    fmt.Println(d) // "left-pad (MIT)"
//	}
//
// # Licenses
//
// [License] keeps the value exactly as the manifest or registry returned
// it (string, array or object) and renders it with [License.String].
// When no value can be resolved the reader substitutes one of the
// placeholders [LicenseNotFound] or [LicenseNotSpecified].
//
// # Lookups
//
// Registry lookups go through a [LicenseFetcher]. [Memo] wraps a fetcher
// so that each package is looked up at most once per run, even when many
// repositories declare it.
//
// [javascript]: github.com/matzehuels/licenseaudit/pkg/deps/javascript
// [php]: github.com/matzehuels/licenseaudit/pkg/deps/php
package deps
