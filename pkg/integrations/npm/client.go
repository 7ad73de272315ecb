package npm

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

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// PackageInfo holds the registry document fields used for license audits.
//
// License is the raw top-level "license" value of the package document,
// which may be a string, a list or a legacy {"type": ...} object. It is
// nil when the document carries no license.
type PackageInfo struct {
	Name    string          `json:"name"`
	License json.RawMessage `json:"license,omitempty"`
}

// Client provides access to the npm registry API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an npm client storing responses in c for cacheTTL.
// A nil cache disables response caching.
func NewClient(c cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(c, "npm", cacheTTL, map[string]string{"Accept": "application/json"}),
		baseURL: DefaultBaseURL,
	}
}

// SetBaseURL points the client at a registry mirror. Empty values are ignored.
func (c *Client) SetBaseURL(u string) {
	if u != "" {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// BaseURL returns the registry base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchPackage retrieves the registry document for pkg.
//
// Scoped names ("@scope/name") are requested verbatim. If refresh is true,
// the response cache is bypassed.
//
// Returns:
//   - PackageInfo on success (License may be nil)
//   - an INVALID_PACKAGE error if pkg is not a valid npm name
//   - [integrations.ErrNotFound] if the package doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	pkg = strings.TrimSpace(pkg)
	if err := lerrors.ValidateNpmPackageName(pkg); err != nil {
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
	var data registryResponse
	if err := c.Get(ctx, integrations.JoinURL(c.baseURL, pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return err
	}

	*info = PackageInfo{Name: data.Name, License: data.License}
	if info.Name == "" {
		info.Name = pkg
	}
	return nil
}

type registryResponse struct {
	Name    string          `json:"name"`
	License json.RawMessage `json:"license"`
}
