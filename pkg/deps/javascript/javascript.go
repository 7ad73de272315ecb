package javascript

import (
	"github.com/matzehuels/licenseaudit/pkg/deps"
	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
	"github.com/matzehuels/licenseaudit/pkg/integrations/npm"
)

// Ecosystem reads package.json manifests and looks licenses up in npm.
var Ecosystem = &deps.Ecosystem{
	Name:          "javascript",
	Registry:      "npm",
	ManifestFiles: []string{ManifestFile},
	NewFetcher:    newFetcher,
	NewReader:     newReader,
}

func newReader(f deps.LicenseFetcher) deps.ManifestReader {
	return &PackageJSON{fetcher: f}
}

func newFetcher(cfg deps.ClientConfig) (deps.LicenseFetcher, error) {
	if cfg.BaseURL != "" {
		if err := lerrors.ValidateURL(cfg.BaseURL); err != nil {
			return nil, err
		}
	}
	c := npm.NewClient(cfg.Cache, cfg.CacheTTL)
	c.SetKeyer(cfg.Keyer)
	c.SetTimeout(cfg.Timeout)
	c.SetBaseURL(cfg.BaseURL)
	return c, nil
}
