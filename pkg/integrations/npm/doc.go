// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// This package reads package documents from the npm registry
// (https://registry.npmjs.org), the package manager for JavaScript.
// Only the top-level "license" field is used; version-specific metadata
// is ignored.
//
// # Usage
//
//	client := npm.NewClient(cache.NewNullCache(), 24*time.Hour)
//
//	pkg, err := client.FetchPackage(ctx, "left-pad", false)
//	if errors.Is(err, integrations.ErrNotFound) {
//	    // unknown package
//	}
//	fmt.Println(pkg.Name, string(pkg.License))
//
// # Caching
//
// Responses are cached under the "npm" namespace for the TTL given to
// [NewClient]. Pass refresh=true to bypass the cache.
package npm
