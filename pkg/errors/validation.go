package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name before it is placed in a
// registry URL. It rejects names that could be used for path traversal or
// injection:
//   - No empty names
//   - No control characters or null bytes
//   - No path traversal sequences (.., //) or backslashes
//   - Maximum length of 256 characters
//
// Ecosystem-specific checks live in [ValidateNpmPackageName] and
// [ValidateComposerPackageName].
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "//", "\x00", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// npmPackageNameRegex matches npm package names, including scoped ones.
// Uppercase letters are accepted because legacy packages still use them.
var npmPackageNameRegex = regexp.MustCompile(`^(@[A-Za-z0-9-~][A-Za-z0-9-._~]*/)?[A-Za-z0-9-~][A-Za-z0-9-._~]*$`)

// ValidateNpmPackageName validates an npm package name.
func ValidateNpmPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}
	if !npmPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid npm package name: %q", name)
	}
	return nil
}

// composerPackageNameRegex matches vendor/package names as well as bare
// platform requirements such as "php" or "ext-json".
var composerPackageNameRegex = regexp.MustCompile(`^[A-Za-z0-9]([_.-]?[A-Za-z0-9]+)*(/[A-Za-z0-9](([_.]?|-{0,2})[A-Za-z0-9]+)*)?$`)

// ValidateComposerPackageName validates a Composer package name.
func ValidateComposerPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}
	if !composerPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid composer package name: %q", name)
	}
	return nil
}

// ValidateRoot validates the repository root directory path.
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must be absolute after cleaning
func ValidateRoot(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "repository root cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "repository root contains invalid characters")
		}
	}
	if !filepath.IsAbs(filepath.Clean(path)) {
		return New(ErrCodeInvalidPath, "repository root must be absolute: %q", path)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}
