package php

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/matzehuels/licenseaudit/pkg/deps"
	"github.com/matzehuels/licenseaudit/pkg/integrations"
)

func writeRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// recordingFetcher serves licenses from a map and remembers which names
// were requested.
type recordingFetcher struct {
	mu       sync.Mutex
	licenses map[string]string
	asked    []string
}

func (f *recordingFetcher) FetchLicense(_ context.Context, name string, _ bool) (deps.License, error) {
	f.mu.Lock()
	f.asked = append(f.asked, name)
	f.mu.Unlock()
	lic, ok := f.licenses[name]
	if !ok {
		return deps.License{}, fmt.Errorf("%w: %s", integrations.ErrNotFound, name)
	}
	return deps.LicenseFromJSON([]byte(lic)), nil
}

func keys(records []deps.Dependency) []string {
	out := make([]string, len(records))
	for i, d := range records {
		out[i] = d.String()
	}
	return out
}

func assertKeys(t *testing.T, got []deps.Dependency, want ...string) {
	t.Helper()
	k := keys(got)
	if len(k) != len(want) {
		t.Fatalf("records = %q, want %q", k, want)
	}
	for i := range want {
		if k[i] != want[i] {
			t.Errorf("record[%d] = %q, want %q", i, k[i], want[i])
		}
	}
}

func TestComposer_LockWinsOverRegistry(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"composer.json": `{"require": {"acme/widget": "^1.0", "acme/gadget": "^2.0"}}`,
		"composer.lock": `{"packages": [{"name": "acme/widget", "version": "1.2.0", "license": ["MIT"]}]}`,
	})
	f := &recordingFetcher{licenses: map[string]string{
		"acme/widget": `["GPL-3.0"]`,
		"acme/gadget": `["Apache-2.0"]`,
	}}

	got, err := NewComposer(f).Read(context.Background(), dir, deps.Options{})
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertKeys(t, got, "acme/widget (MIT)", "acme/gadget (Apache-2.0)")

	if got[0].Source != deps.SourceLock || got[1].Source != deps.SourceRegistry {
		t.Errorf("sources = %q, %q; want lock, registry", got[0].Source, got[1].Source)
	}
	if len(f.asked) != 1 || f.asked[0] != "acme/gadget" {
		t.Errorf("registry asked for %v, want only acme/gadget", f.asked)
	}
}

func TestComposer_MixedCaseNameQueriesRegistry(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"composer.json": `{"require": {"Acme/Widget": "^1.0"}}`,
		"composer.lock": `{"packages": [{"name": "acme/widget", "version": "1.2.0", "license": ["MIT"]}]}`,
	})
	f := &recordingFetcher{licenses: map[string]string{"Acme/Widget": `"Apache-2.0"`}}

	got, err := NewComposer(f).Read(context.Background(), dir, deps.Options{})
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertKeys(t, got, "Acme/Widget (Apache-2.0)")
	if len(f.asked) != 1 || f.asked[0] != "Acme/Widget" {
		t.Errorf("registry asked for %v, want [Acme/Widget]", f.asked)
	}
}

func TestComposer_LockOnlyEntriesAreNotReported(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"composer.json": `{"require": {"acme/widget": "^1.0"}}`,
		"composer.lock": `{"packages": [
			{"name": "psr/log", "version": "3.0.0", "license": ["MIT"]},
			{"name": "acme/widget", "version": "1.2.0", "license": ["MIT"]}
		]}`,
	})

	got, err := NewComposer(&recordingFetcher{}).Read(context.Background(), dir, deps.Options{})
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertKeys(t, got, "acme/widget (MIT)")
}

func TestComposer_IncludeLockOnly(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"composer.json": `{"require": {"acme/widget": "^1.0"}}`,
		"composer.lock": `{"packages": [
			{"name": "psr/log", "version": "3.0.0", "license": ["MIT"]},
			{"name": "acme/widget", "version": "1.2.0", "license": ["MIT"]},
			{"name": "acme/nolicense", "version": "0.1.0"}
		]}`,
	})

	got, err := NewComposer(&recordingFetcher{}).Read(context.Background(), dir, deps.Options{IncludeLockOnly: true})
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertKeys(t, got,
		"acme/widget (MIT)",
		"psr/log (MIT)",
		"acme/nolicense (No license specified)",
	)
	if got[1].Constraint != "3.0.0" {
		t.Errorf("lock-only Constraint = %q, want locked version", got[1].Constraint)
	}
}

func TestComposer_LockEntryWithoutLicense(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"composer.json": `{"require": {"acme/bare": "*"}}`,
		"composer.lock": `{"packages": [{"name": "acme/bare", "license": []}]}`,
	})
	f := &recordingFetcher{licenses: map[string]string{"acme/bare": `["MIT"]`}}

	got, err := NewComposer(f).Read(context.Background(), dir, deps.Options{})
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertKeys(t, got, "acme/bare (No license specified)")
	if len(f.asked) != 0 {
		t.Errorf("locked name was looked up: %v", f.asked)
	}
}

func TestComposer_NoLockFile(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"composer.json": `{"require": {"php": ">=8.1", "monolog/monolog": "^3.0", "acme/ghost": "1.0"}}`,
	})
	f := &recordingFetcher{licenses: map[string]string{"monolog/monolog": `["MIT"]`}}

	got, err := NewComposer(f).Read(context.Background(), dir, deps.Options{})
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertKeys(t, got,
		"php (License not found)",
		"monolog/monolog (MIT)",
		"acme/ghost (License not found)",
	)
}

func TestComposer_SkipPlatform(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"composer.json": `{"require": {
			"php": ">=8.1",
			"ext-json": "*",
			"lib-curl": "*",
			"composer-plugin-api": "^2.0",
			"monolog/monolog": "^3.0"
		}}`,
	})
	f := &recordingFetcher{licenses: map[string]string{"monolog/monolog": `["MIT"]`}}

	got, err := NewComposer(f).Read(context.Background(), dir, deps.Options{SkipPlatform: true})
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertKeys(t, got, "monolog/monolog (MIT)")
}

func TestComposer_LockWithoutManifest(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"composer.lock": `{"packages": [{"name": "psr/log", "license": ["MIT"]}]}`,
	})

	got, err := NewComposer(&recordingFetcher{}).Read(context.Background(), dir, deps.Options{IncludeLockOnly: true})
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Read() = %q, want no records without composer.json", keys(got))
	}
}

func TestComposer_Malformed(t *testing.T) {
	tests := map[string]map[string]string{
		"manifest": {"composer.json": `{"require": [`},
		"lock": {
			"composer.json": `{"require": {"acme/widget": "^1.0"}}`,
			"composer.lock": `not json`,
		},
	}
	for name, files := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewComposer(&recordingFetcher{}).Read(context.Background(), writeRepo(t, files), deps.Options{})
			if err == nil {
				t.Error("Read() should fail")
			}
		})
	}
}

func TestIsPlatformRequirement(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"php", true},
		{"php-64bit", true},
		{"ext-mbstring", true},
		{"lib-icu", true},
		{"composer-plugin-api", true},
		{"composer-runtime-api", true},
		{"hhvm", true},
		{"monolog/monolog", false},
		{"symfony/console", false},
		{"phpunit/phpunit", false},
	}
	for _, tt := range tests {
		if got := IsPlatformRequirement(tt.name); got != tt.want {
			t.Errorf("IsPlatformRequirement(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEcosystemReader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/p/acme/gadget.json" {
			w.Write([]byte(`{"package":{"name":"acme/gadget","license":["Apache-2.0"]}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	reader, err := Ecosystem.Reader(deps.ClientConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Reader() error: %v", err)
	}
	if reader.Ecosystem() != "php" {
		t.Errorf("Ecosystem() = %q, want php", reader.Ecosystem())
	}

	dir := writeRepo(t, map[string]string{
		"composer.json": `{"require": {"acme/widget": "^1.0", "acme/gadget": "^2.0"}}`,
		"composer.lock": `{"packages": [{"name": "acme/widget", "license": ["MIT"]}]}`,
	})
	got, err := reader.Read(context.Background(), dir, deps.Options{})
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertKeys(t, got, "acme/widget (MIT)", "acme/gadget (Apache-2.0)")
}
