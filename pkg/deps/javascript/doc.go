// Package javascript reads npm manifests and resolves their licenses.
//
// # Overview
//
// This package implements [deps.Ecosystem] for JavaScript/Node.js:
//
//   - package.json manifest reading ("dependencies" only, in file order)
//   - license lookup via the [npm] registry client
//
// # Usage
//
//	reader, _ := javascript.Ecosystem.Reader(deps.ClientConfig{})
//	records, _ := reader.Read(ctx, "/srv/repos/web", deps.Options{})
//
// A record's license is the registry's top-level "license" value. Packages
// unknown to the registry are reported as [deps.LicenseNotFound].
//
// [npm]: github.com/matzehuels/licenseaudit/pkg/integrations/npm
package javascript
