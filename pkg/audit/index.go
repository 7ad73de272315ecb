package audit

import "github.com/matzehuels/licenseaudit/pkg/deps"

// Index is an insertion-ordered mapping from dependency key to the ordered
// set of repositories declaring it. The zero value is ready to use.
// Index is not safe for concurrent use.
type Index struct {
	order   []string
	entries map[string]*indexEntry
}

type indexEntry struct {
	Entry
	seen map[string]bool
}

// Add records that repo declares d. A repeated (key, repo) pair is a no-op.
func (x *Index) Add(repo string, d deps.Dependency) {
	if x.entries == nil {
		x.entries = make(map[string]*indexEntry)
	}
	key := d.String()
	e, ok := x.entries[key]
	if !ok {
		e = &indexEntry{
			Entry: Entry{Key: key, Name: d.Name, License: d.License},
			seen:  make(map[string]bool),
		}
		x.entries[key] = e
		x.order = append(x.order, key)
	}
	if !e.seen[repo] {
		e.seen[repo] = true
		e.Repositories = append(e.Repositories, repo)
	}
}

// Len returns the number of keys.
func (x *Index) Len() int { return len(x.order) }

// Entries returns a copy of the entries in insertion order.
func (x *Index) Entries() []Entry {
	out := make([]Entry, 0, len(x.order))
	for _, key := range x.order {
		e := x.entries[key].Entry
		e.Repositories = append([]string(nil), e.Repositories...)
		out = append(out, e)
	}
	return out
}
