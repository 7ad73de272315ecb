package deps

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/licenseaudit/pkg/integrations"
)

const (
	DefaultCacheTTL = 24 * time.Hour // Default registry response cache duration
	DefaultMemoSize = 4096           // Default in-run lookup memo capacity
)

// Source records where a dependency's license came from.
type Source string

const (
	SourceRegistry    Source = "registry"    // Registry lookup
	SourceLock        Source = "lock"        // Lock file entry
	SourcePlaceholder Source = "placeholder" // Nothing resolved
)

// Options configures manifest reading.
type Options struct {
	Refresh         bool                 // Bypass the registry response cache
	IncludeLockOnly bool                 // Report lock entries absent from the manifest
	SkipPlatform    bool                 // Drop platform requirements (php, ext-*, ...)
	Logger          func(string, ...any) // Progress/error callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Dependency is one declared production dependency of a repository.
type Dependency struct {
	Name       string // Package name as declared
	Constraint string // Version constraint as declared (informational)
	License    string // Rendered license or placeholder
	Source     Source // Where License came from
	Err        error  // Lookup failure other than not-found, if any
}

// String returns "<name> (<license>)", the aggregation key.
func (d Dependency) String() string {
	return d.Name + " (" + d.License + ")"
}

// Failed reports whether the license lookup degraded with an error.
func (d Dependency) Failed() bool { return d.Err != nil }

// Resolve looks up the license for req through f and returns the record.
// A not-found response or an absent license yields [LicenseNotFound] with
// no error; any other lookup error also yields the placeholder and is kept
// in Dependency.Err so the caller can report it without aborting.
func Resolve(ctx context.Context, f LicenseFetcher, req Requirement, opts Options) Dependency {
	d := Dependency{
		Name:       req.Name,
		Constraint: req.Constraint,
		License:    LicenseNotFound,
		Source:     SourcePlaceholder,
	}

	lic, err := f.FetchLicense(ctx, req.Name, opts.Refresh)
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		return d
	case err != nil:
		d.Err = err
		return d
	case lic.IsZero():
		return d
	}

	d.License = lic.String()
	d.Source = SourceRegistry
	return d
}
