package packagist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/licenseaudit/pkg/cache"
	"github.com/matzehuels/licenseaudit/pkg/deps"
	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
	"github.com/matzehuels/licenseaudit/pkg/integrations"
)

// DefaultBaseURL is the public Packagist metadata repository.
const DefaultBaseURL = "https://repo.packagist.org"

// PackageInfo holds the metadata fields used for license audits.
//
// Package names follow Composer conventions (vendor/package format).
// License is the raw "package.license" value of the metadata document,
// usually a list of SPDX identifiers. It is nil when absent.
type PackageInfo struct {
	Name    string          `json:"name"`
	License json.RawMessage `json:"license,omitempty"`
}

// Client provides access to the Packagist package registry API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Packagist client storing responses in c for cacheTTL.
// A nil cache disables response caching.
func NewClient(c cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(c, "packagist", cacheTTL, nil),
		baseURL: DefaultBaseURL,
	}
}

// SetBaseURL points the client at a Composer repository mirror. Empty
// values are ignored.
func (c *Client) SetBaseURL(u string) {
	if u != "" {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// BaseURL returns the repository base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchPackage retrieves metadata for a PHP package from Packagist.
//
// The pkg parameter should be in "vendor/package" format (e.g., "monolog/monolog").
// The name is normalized to lowercase with whitespace trimmed.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns:
//   - PackageInfo on success (License may be nil)
//   - an INVALID_PACKAGE error if pkg is not a valid Composer name
//   - [integrations.ErrNotFound] if the package doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	pkg = integrations.NormalizePkgName(pkg)
	if err := lerrors.ValidateComposerPackageName(pkg); err != nil {
		return nil, err
	}

	var info PackageInfo
	err := c.Cached(ctx, pkg, refresh, &info, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// FetchLicense returns the package's declared license. It implements
// [deps.LicenseFetcher]; a package without a license yields an absent
// [deps.License] and a nil error.
func (c *Client) FetchLicense(ctx context.Context, pkg string, refresh bool) (deps.License, error) {
	info, err := c.FetchPackage(ctx, pkg, refresh)
	if err != nil {
		return deps.License{}, err
	}
	return deps.LicenseFromJSON(info.License), nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	var data metadataResponse
	if err := c.Get(ctx, integrations.JoinURL(c.baseURL, "p/"+pkg+".json"), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: packagist package %s", err, pkg)
		}
		return err
	}

	*info = PackageInfo{Name: data.Package.Name, License: data.Package.License}
	if info.Name == "" {
		info.Name = pkg
	}
	return nil
}

type metadataResponse struct {
	Package struct {
		Name    string          `json:"name"`
		License json.RawMessage `json:"license"`
	} `json:"package"`
}
