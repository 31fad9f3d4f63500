package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName rejects empty, overlong and path-like names.
// Registry-specific rules are checked separately.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains control characters")
		}
	}
	for _, bad := range []string{"..", "//", "\\"} {
		if strings.Contains(name, bad) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", bad)
		}
	}
	return nil
}

// pythonPackageNameRegex matches PEP 508 distribution names.
var pythonPackageNameRegex = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// ValidatePythonPackageName validates a PyPI distribution name.
func ValidatePythonPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}
	if !pythonPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid Python package name: %q", name)
	}
	return nil
}

// ValidatePath validates a relative file path inside a repository.
func ValidatePath(path string) error {
	const maxPathLength = 500
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(path) > maxPathLength:
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	case strings.IndexFunc(path, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	case strings.HasPrefix(path, "/"):
		return New(ErrCodeInvalidPath, "path must be relative")
	case strings.Contains(path, ".."):
		return New(ErrCodeInvalidPath, "path cannot contain ..")
	case strings.Contains(path, "\\"):
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}
	return nil
}

// ValidateURL requires an http or https URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme: %q", rawURL)
	}
	return nil
}

// ValidateChapterTitle checks a chapter title taken from user input.
// Titles are matched exactly, so only emptiness, length and control
// characters are rejected.
func ValidateChapterTitle(title string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return New(ErrCodeInvalidInput, "chapter title cannot be empty")
	case len(title) > 200:
		return New(ErrCodeInvalidInput, "chapter title too long (max 200 characters)")
	case strings.IndexFunc(title, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidInput, "chapter title contains control characters")
	}
	return nil
}

var pluginNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// ValidatePluginName checks a rendering plugin name ("cms_packages").
func ValidatePluginName(name string) error {
	if !pluginNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid plugin name %q: use lower case letters, digits and underscores", name)
	}
	return nil
}
