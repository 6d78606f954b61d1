package validation

import (
	"path/filepath"
	"strings"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidImageContentType reports whether contentType is one of the
// accepted upload formats (JPG, JPEG, PNG, GIF, WEBP).
func ValidImageContentType(contentType string) bool {
	return allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]
}

// FileExtension returns the extension of fileName including the dot,
// or "" if it has none.
func FileExtension(fileName string) string {
	return filepath.Ext(fileName)
}

// ValidTagName reports whether a tag name is usable after trimming.
func ValidTagName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// SanitizeString removes potentially harmful characters
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
