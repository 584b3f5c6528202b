package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxNameLength bounds names that end up as XML text in the export.
const MaxNameLength = 256

// ValidateLine checks that text fits on one line.
// Labels are drawn as a single line of text, so embedded line breaks
// (LF, CR, or the Unicode line/paragraph separators) are rejected.
// The empty string is a valid line.
func ValidateLine(text string) error {
	if i := strings.IndexFunc(text, isLineBreak); i >= 0 {
		return New(ErrCodeValidation, "text must not contain line breaks (at offset %d)", i)
	}
	return nil
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// ValidateName validates a user-facing name such as a signal, block or
// group name. The rules are conservative:
//   - No empty or whitespace-only names
//   - No line breaks or other control characters
//   - Maximum length of MaxNameLength bytes
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeValidation, "name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return New(ErrCodeValidation, "name too long (max %d characters)", MaxNameLength)
	}
	if err := ValidateLine(name); err != nil {
		return err
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeValidation, "name contains invalid control characters")
		}
	}
	return nil
}

// ValidateProjectPath validates the path of a project document.
// Project files are JSON documents and must carry the .json extension.
func ValidateProjectPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "project path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "project path contains invalid characters")
	}
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return New(ErrCodeInvalidPath, "project path must end in .json: %q", path)
	}
	return nil
}
