// Package packagist provides an HTTP client for the Packagist API.
//
// # Overview
//
// Packagist (https://packagist.org) is the main Composer repository for PHP
// packages. This client reads https://repo.packagist.org/p/{vendor}/{name}.json
// and extracts the "package.license" field.
//
// # Usage
//
//	client := packagist.NewClient(cache.NewNullCache(), 24*time.Hour)
//
//	pkg, err := client.FetchPackage(ctx, "monolog/monolog", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(pkg.Name, string(pkg.License)) // monolog/monolog ["MIT"]
//
// Names are lowercased before lookup, matching Composer's own handling.
package packagist
