package javascript

import (
	"context"
	"path/filepath"

	"github.com/matzehuels/licenseaudit/pkg/deps"
)

// ManifestFile is the npm manifest name.
const ManifestFile = "package.json"

// PackageJSON reads the "dependencies" mapping of a repository's
// package.json. devDependencies, peerDependencies and optionalDependencies
// are not production dependencies and are ignored.
type PackageJSON struct {
	fetcher deps.LicenseFetcher
}

// NewPackageJSON returns a reader resolving licenses through f.
func NewPackageJSON(f deps.LicenseFetcher) *PackageJSON {
	return &PackageJSON{fetcher: f}
}

func (p *PackageJSON) Ecosystem() string { return "javascript" }
func (p *PackageJSON) Files() []string   { return []string{ManifestFile} }

// Read returns one record per "dependencies" entry in declaration order.
// Each license comes from the npm registry; packages the registry does
// not know, or that declare no license, get [deps.LicenseNotFound].
func (p *PackageJSON) Read(ctx context.Context, repoPath string, opts deps.Options) ([]deps.Dependency, error) {
	opts = opts.WithDefaults()

	var pkg packageFile
	found, err := deps.ReadJSON(filepath.Join(repoPath, ManifestFile), &pkg)
	if err != nil || !found {
		return nil, err
	}

	out := make([]deps.Dependency, 0, len(pkg.Dependencies))
	for _, req := range pkg.Dependencies {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		d := deps.Resolve(ctx, p.fetcher, req, opts)
		if d.Failed() {
			opts.Logger("npm lookup failed: %s: %v", req.Name, d.Err)
		}
		out = append(out, d)
	}
	return out, nil
}

type packageFile struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Dependencies deps.Requirements `json:"dependencies"`
}
