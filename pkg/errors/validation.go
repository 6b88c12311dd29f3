package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches #rgb, #rrggbb and #rrggbbaa colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateHexColor validates a CSS-style hex color string.
func ValidateHexColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q (want #rgb or #rrggbb)", s)
	}
	return nil
}

// languageIDRegex matches lexer names and aliases such as "c++", "objective-c"
// or "F#". Spaces are allowed for names like "plain text".
var languageIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._+#-]*$`)

// ValidateLanguageID validates a language identifier. The empty string is
// valid and requests auto-detection.
func ValidateLanguageID(lang string) error {
	if lang == "" {
		return nil
	}
	if len(lang) > 64 {
		return New(ErrCodeInvalidInput, "language too long (max 64 characters)")
	}
	if !languageIDRegex.MatchString(lang) {
		return New(ErrCodeInvalidInput, "invalid language: %q", lang)
	}
	return nil
}

// ValidateThemeName validates a theme name as accepted from user input.
// Unknown names are not an error; only malformed ones are.
func ValidateThemeName(name string) error {
	if len(name) > 128 {
		return New(ErrCodeInvalidTheme, "theme name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTheme, "theme name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal and ensures reasonable path length.
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
