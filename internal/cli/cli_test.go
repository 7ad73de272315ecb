package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/licenseaudit/pkg/cache"
	"github.com/matzehuels/licenseaudit/pkg/config"
	"github.com/matzehuels/licenseaudit/pkg/deps"
	"github.com/matzehuels/licenseaudit/pkg/deps/javascript"
	"github.com/matzehuels/licenseaudit/pkg/deps/php"
)

// runCLI executes the root command with args from an empty working
// directory and returns what the command wrote to its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	quietUI(t)

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Out = &out
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func quietUI(t *testing.T) {
	t.Helper()
	prev := uiOut
	uiOut = io.Discard
	t.Cleanup(func() { uiOut = prev })
}

// writeFiles creates dir/<path> for every entry and returns dir.
func writeFiles(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// registry serves npm documents under /npm/ and Packagist metadata under
// /packagist/p/. Unknown packages return 404; npm names starting with
// "down" are rejected with 400.
func registry(t *testing.T, npm, packagist map[string]string) (npmURL, packagistURL string) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/npm/"):
			name := strings.TrimPrefix(r.URL.Path, "/npm/")
			if strings.HasPrefix(name, "down") {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if lic, ok := npm[name]; ok {
				fmt.Fprintf(w, `{"name":%q,"license":%s}`, name, lic)
				return
			}
		case strings.HasPrefix(r.URL.Path, "/packagist/p/"):
			name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/packagist/p/"), ".json")
			if lic, ok := packagist[name]; ok {
				fmt.Fprintf(w, `{"package":{"name":%q,"license":%s}}`, name, lic)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server.URL + "/npm", server.URL + "/packagist"
}

// writeConfig writes a config file pointing both registries at the test
// server with caching disabled, and returns its path.
func writeConfig(t *testing.T, npmURL, packagistURL string, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultFile)
	content := fmt.Sprintf("npm_registry = %q\npackagist_registry = %q\n%s\n[cache]\nbackend = \"none\"\n", npmURL, packagistURL, extra)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(custom, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestNewCache(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		noCache bool
		want    string
	}{
		{"file", config.CacheFile, false, "*cache.FileCache"},
		{"none", config.CacheNone, false, "*cache.NullCache"},
		{"no-cache flag", config.CacheFile, true, "*cache.NullCache"},
		{"unreachable redis", config.CacheRedis, false, "*cache.NullCache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.Config.Cache.Backend = tt.backend
			c.Config.Cache.Dir = t.TempDir()
			c.Config.Cache.RedisURL = "redis://127.0.0.1:1/0"

			store, keyer := c.newCache(context.Background(), tt.noCache)
			defer store.Close()

			if got := fmt.Sprintf("%T", store); got != tt.want {
				t.Errorf("newCache() = %s, want %s", got, tt.want)
			}
			if key := keyer.HTTPKey("npm", "left-pad"); !strings.HasPrefix(key, appName+":") {
				t.Errorf("HTTPKey() = %q, want namespace prefix", key)
			}
		})
	}
}

func TestNewCacheFileDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "responses")
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Dir = dir

	store, _ := c.newCache(context.Background(), false)
	fc, ok := store.(*cache.FileCache)
	if !ok {
		t.Fatalf("newCache() = %T, want *cache.FileCache", store)
	}
	if fc.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir not created: %v", err)
	}
}

func TestRegistryURL(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.NPMRegistry = "http://npm.internal"
	c.Config.PackagistRegistry = "http://packagist.internal"

	tests := []struct {
		eco  *deps.Ecosystem
		want string
	}{
		{javascript.Ecosystem, "http://npm.internal"},
		{php.Ecosystem, "http://packagist.internal"},
		{&deps.Ecosystem{Registry: "other"}, ""},
	}
	for _, tt := range tests {
		if got := c.registryURL(tt.eco); got != tt.want {
			t.Errorf("registryURL(%s) = %q, want %q", tt.eco.Registry, got, tt.want)
		}
	}
}

func TestNewAuditor(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Concurrency = 3
	c.Config.Exclude = []string{"archive-*"}

	a, err := c.newAuditor(cache.NewNullCache(), cache.NewDefaultKeyer(), deps.Options{SkipPlatform: true})
	if err != nil {
		t.Fatalf("newAuditor() error: %v", err)
	}

	var got []string
	for _, r := range a.Readers {
		got = append(got, r.Ecosystem())
	}
	if strings.Join(got, ",") != "javascript,php" {
		t.Errorf("reader order = %v, want [javascript php]", got)
	}
	if a.Concurrency != 3 || len(a.Exclude) != 1 || !a.Options.SkipPlatform {
		t.Errorf("auditor settings = %d, %v, %+v", a.Concurrency, a.Exclude, a.Options)
	}
}

func TestNewAuditorInvalidRegistry(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.NPMRegistry = "ftp://npm.internal"

	if _, err := c.newAuditor(cache.NewNullCache(), nil, deps.Options{}); err == nil {
		t.Error("newAuditor() with ftp registry should fail")
	}
}
