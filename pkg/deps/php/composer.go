package php

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/matzehuels/licenseaudit/pkg/deps"
)

// ManifestFile is the Composer manifest name.
const ManifestFile = "composer.json"

// Composer reads a repository's composer.json "require" mapping and
// reconciles it with composer.lock. Licenses pinned in the lock file take
// precedence; the remaining names are looked up in Packagist.
type Composer struct {
	fetcher deps.LicenseFetcher
}

// NewComposer returns a reader resolving unlocked licenses through f.
func NewComposer(f deps.LicenseFetcher) *Composer {
	return &Composer{fetcher: f}
}

func (c *Composer) Ecosystem() string { return "php" }
func (c *Composer) Files() []string   { return []string{ManifestFile, LockFile} }

// Read returns one record per "require" entry in declaration order.
//
// A name present in composer.lock takes the lock's license (or
// [deps.LicenseNotSpecified]) and is not looked up. Other names are
// resolved through Packagist, falling back to [deps.LicenseNotFound].
// Lock entries absent from "require" are only reported when
// opts.IncludeLockOnly is set, after the require entries. A repository
// without composer.json yields no records, even if it has a lock file.
func (c *Composer) Read(ctx context.Context, repoPath string, opts deps.Options) ([]deps.Dependency, error) {
	opts = opts.WithDefaults()

	var comp composerFile
	found, err := deps.ReadJSON(filepath.Join(repoPath, ManifestFile), &comp)
	if err != nil || !found {
		return nil, err
	}

	lock, err := ReadLock(filepath.Join(repoPath, LockFile))
	if err != nil {
		return nil, err
	}

	out := make([]deps.Dependency, 0, len(comp.Require))
	required := make(map[string]bool, len(comp.Require))
	for _, req := range comp.Require {
		required[req.Name] = true
		if opts.SkipPlatform && IsPlatformRequirement(req.Name) {
			continue
		}
		if e, ok := lock.Get(req.Name); ok {
			out = append(out, deps.Dependency{
				Name:       req.Name,
				Constraint: req.Constraint,
				License:    e.License,
				Source:     deps.SourceLock,
			})
			continue
		}

		if err := ctx.Err(); err != nil {
			return out, err
		}
		d := deps.Resolve(ctx, c.fetcher, req, opts)
		if d.Failed() {
			opts.Logger("packagist lookup failed: %s: %v", req.Name, d.Err)
		}
		out = append(out, d)
	}

	if opts.IncludeLockOnly {
		for _, e := range lock.Entries {
			if required[e.Name] {
				continue
			}
			if opts.SkipPlatform && IsPlatformRequirement(e.Name) {
				continue
			}
			out = append(out, deps.Dependency{
				Name:       e.Name,
				Constraint: e.Version,
				License:    e.License,
				Source:     deps.SourceLock,
			})
		}
	}
	return out, nil
}

// IsPlatformRequirement reports whether name refers to the PHP runtime,
// an extension, a system library or Composer itself rather than a
// Packagist package.
func IsPlatformRequirement(name string) bool {
	name = strings.ToLower(name)
	switch {
	case name == "php", name == "composer-plugin-api", name == "composer-runtime-api":
		return true
	case strings.HasPrefix(name, "php-"), strings.HasPrefix(name, "ext-"), strings.HasPrefix(name, "lib-"):
		return true
	}
	return !strings.Contains(name, "/")
}

type composerFile struct {
	Name    string            `json:"name"`
	Require deps.Requirements `json:"require"`
}
