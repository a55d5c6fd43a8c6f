package errors

import (
	"strings"
	"unicode"
)

// maxPathLength bounds user-supplied paths. It matches PATH_MAX on Linux.
const maxPathLength = 4096

// ValidatePath validates a user-supplied file path (the root module, a
// config file, an output file) before it touches the filesystem.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// Unlike repository paths, absolute paths and ".." segments are allowed:
// the user points heft at files anywhere on their machine.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateExtension validates a resolver extension such as ".ts".
func ValidateExtension(ext string) error {
	if ext == "" {
		return New(ErrCodeInvalidInput, "extension cannot be empty")
	}
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		return New(ErrCodeInvalidInput, "extension must start with a dot: %q", ext)
	}
	if strings.ContainsAny(ext, "/\\") {
		return New(ErrCodeInvalidInput, "extension cannot contain path separators: %q", ext)
	}
	for _, r := range ext {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "extension contains invalid characters: %q", ext)
		}
	}
	return nil
}
