package audit

import (
	"os"
	"path/filepath"

	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
)

// ListRepositories returns the names of the immediate subdirectories of
// root in lexical order. Symlinks to directories count as repositories.
// Names matching any exclude glob ([filepath.Match] syntax) are skipped.
func ListRepositories(root string, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "exclude pattern %q", pattern)
		}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, lerrors.Wrap(lerrors.ErrCodeFileNotFound, err, "repository root %s", root)
		}
		return nil, lerrors.Wrap(lerrors.ErrCodeInvalidPath, err, "read repository root %s", root)
	}

	var repos []string
	for _, e := range entries {
		name := e.Name()
		if excluded(name, exclude) {
			continue
		}
		info, err := os.Stat(filepath.Join(root, name))
		if err != nil || !info.IsDir() {
			continue
		}
		repos = append(repos, name)
	}
	return repos, nil
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
