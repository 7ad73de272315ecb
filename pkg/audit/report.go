package audit

import (
	"time"

	"github.com/google/uuid"

	lerrors "github.com/matzehuels/licenseaudit/pkg/errors"
)

// Entry is one aggregated dependency: a name/license pair and the
// repositories declaring it. Repositories is never empty.
type Entry struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	License      string   `json:"license"`
	Repositories []string `json:"repositories"`
}

// Failure is a degraded operation. Dependency is empty when a whole
// (repository, ecosystem) pair was skipped.
type Failure struct {
	Repository string       `json:"repository"`
	Ecosystem  string       `json:"ecosystem"`
	Dependency string       `json:"dependency,omitempty"`
	Code       lerrors.Code `json:"code"`
	Message    string       `json:"message"`
}

// Report is the result of one audit run.
type Report struct {
	RunID        uuid.UUID     `json:"run_id"`
	Root         string        `json:"root"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration_ns"`
	Repositories []string      `json:"repositories"`
	Entries      []Entry       `json:"entries"`
	Failures     []Failure     `json:"failures"`
}

// HasFailures reports whether any operation degraded during the run.
func (r *Report) HasFailures() bool { return len(r.Failures) > 0 }

// Entry returns the entry with the given key.
func (r *Report) Entry(key string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}
