package errors

import (
	"strings"
	"unicode"
)

// MaxNameLength bounds hierarchy node names.
const MaxNameLength = 256

// ValidateNodeName validates a hierarchy node name.
//
// Names are display keys, not identifiers, so the rules are loose:
//   - No empty (or whitespace-only) names
//   - No control characters
//   - No '/', which separates segments of a node path
//   - Maximum length of 256 characters
func ValidateNodeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeMalformedHierarchy, "node name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return New(ErrCodeMalformedHierarchy, "node name too long (max %d characters)", MaxNameLength)
	}

	if strings.Contains(name, "/") {
		return New(ErrCodeMalformedHierarchy, "node name %q contains '/'", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedHierarchy, "node name %q contains control characters", name)
		}
	}

	return nil
}

// ValidatePath validates a relative asset path served by the viewer.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateCacheURL validates a cache backend URL.
// Empty, "file" and "none" select local backends; anything else must use
// a redis:// , rediss:// or mongodb(+srv):// scheme.
func ValidateCacheURL(rawURL string) error {
	switch rawURL {
	case "", "file", "none":
		return nil
	}
	for _, scheme := range []string{"redis://", "rediss://", "mongodb://", "mongodb+srv://"} {
		if strings.HasPrefix(rawURL, scheme) {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "cache URL must use redis://, rediss://, mongodb:// or mongodb+srv://")
}
