package deps

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
)

// ManifestReader reads the production dependencies of one repository for
// one package-manager family.
type ManifestReader interface {
	// Ecosystem returns the family name (e.g. "javascript").
	Ecosystem() string
	// Files returns the manifest file names the reader looks for.
	Files() []string
	// Read returns one Dependency per declared production dependency of
	// the repository at repoPath, in declaration order. A repository
	// without the manifest yields no records and no error.
	Read(ctx context.Context, repoPath string, opts Options) ([]Dependency, error)
}

// ReadJSON decodes the JSON file at path into v. It reports found=false
// with a nil error when the file does not exist; unreadable or malformed
// files yield an INVALID_MANIFEST error.
func ReadJSON(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return true, lerrors.Wrap(lerrors.ErrCodeInvalidManifest, err, "read %s", filepath.Base(path))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, lerrors.Wrap(lerrors.ErrCodeInvalidManifest, err, "parse %s", filepath.Base(path))
	}
	return true, nil
}

// Exists reports whether path exists and is a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
