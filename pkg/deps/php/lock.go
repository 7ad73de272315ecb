package php

import (
	"github.com/matzehuels/licenseaudit/pkg/deps"
)

// LockFile is the Composer lock file name.
const LockFile = "composer.lock"

// LockEntry is one package pinned by composer.lock.
type LockEntry struct {
	Name    string
	Version string
	License string // Rendered license or [deps.LicenseNotSpecified]
}

// Lock is the ordered package list of a composer.lock file. Only the
// "packages" array is read; "packages-dev" holds development packages.
type Lock struct {
	Entries []LockEntry
	index   map[string]int
}

// ReadLock reads the composer.lock at path. A missing file yields an empty
// Lock and a nil error. Entries keep file order; a package listed twice
// keeps its first position and its last license.
func ReadLock(path string) (*Lock, error) {
	var lf lockFile
	lock := &Lock{index: make(map[string]int)}
	found, err := deps.ReadJSON(path, &lf)
	if err != nil || !found {
		return lock, err
	}

	for _, p := range lf.Packages {
		if p.Name == "" {
			continue
		}
		e := LockEntry{
			Name:    p.Name,
			Version: p.Version,
			License: p.License.Or(deps.LicenseNotSpecified),
		}
		if i, ok := lock.index[p.Name]; ok {
			lock.Entries[i] = e
			continue
		}
		lock.index[p.Name] = len(lock.Entries)
		lock.Entries = append(lock.Entries, e)
	}
	return lock, nil
}

// Get returns the entry locked under exactly name. Names differing only in
// case are distinct entries.
func (l *Lock) Get(name string) (LockEntry, bool) {
	if l == nil {
		return LockEntry{}, false
	}
	i, ok := l.index[name]
	if !ok {
		return LockEntry{}, false
	}
	return l.Entries[i], true
}

type lockFile struct {
	Packages []lockPackage `json:"packages"`
}

type lockPackage struct {
	Name    string       `json:"name"`
	Version string       `json:"version"`
	License deps.License `json:"license"`
}
