package php

import (
	"github.com/matzehuels/licenseaudit/pkg/deps"
	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
	"github.com/matzehuels/licenseaudit/pkg/integrations/packagist"
)

// Ecosystem reads composer.json and composer.lock and looks unlocked
// licenses up in Packagist.
var Ecosystem = &deps.Ecosystem{
	Name:          "php",
	Registry:      "packagist",
	ManifestFiles: []string{ManifestFile, LockFile},
	NewFetcher:    newFetcher,
	NewReader:     newReader,
}

func newReader(f deps.LicenseFetcher) deps.ManifestReader {
	return &Composer{fetcher: f}
}

func newFetcher(cfg deps.ClientConfig) (deps.LicenseFetcher, error) {
	if cfg.BaseURL != "" {
		if err := lerrors.ValidateURL(cfg.BaseURL); err != nil {
			return nil, err
		}
	}
	c := packagist.NewClient(cfg.Cache, cfg.CacheTTL)
	c.SetKeyer(cfg.Keyer)
	c.SetTimeout(cfg.Timeout)
	c.SetBaseURL(cfg.BaseURL)
	return c, nil
}
