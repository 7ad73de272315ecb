// Package integrations provides HTTP clients for package registry APIs.
//
// # Overview
//
// Each registry has its own subpackage:
//
//   - [npm]: the npm registry (https://registry.npmjs.org)
//   - [packagist]: Packagist, the Composer repository (https://repo.packagist.org)
//
// # Client Pattern
//
// Registry clients embed [Client] and expose a FetchLicense method:
//
//	client := npm.NewClient(cache.NewNullCache(), 24*time.Hour)
//	info, err := client.FetchLicense(ctx, "left-pad", false) // false = use cache
//
// [Client] handles:
//   - Response caching through a [cache.Cache] with a per-registry namespace
//   - Retry with exponential backoff for network errors, 429 and 5xx
//   - Status classification into [ErrNotFound] and [ErrNetwork]
//   - HTTP events for [observability.HTTPHooks]
//
// [npm]: github.com/matzehuels/licenseaudit/pkg/integrations/npm
// [packagist]: github.com/matzehuels/licenseaudit/pkg/integrations/packagist
// [cache.Cache]: github.com/matzehuels/licenseaudit/pkg/cache.Cache
// [observability.HTTPHooks]: github.com/matzehuels/licenseaudit/pkg/observability.HTTPHooks
package integrations
