package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxNameLength bounds category, subcategory and item names.
const MaxNameLength = 256

// ValidateName validates a category, subcategory or item name.
//
// Names are displayed as wedge labels, so the rules only reject what cannot
// be drawn or stored sensibly:
//   - No empty or whitespace-only names
//   - No control characters (newlines break label layout)
//   - Maximum length of MaxNameLength bytes
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidName, "name too long (max %d characters)", MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains invalid control characters")
		}
	}

	return nil
}

// imageExtensions maps raster output extensions to their canonical format.
var imageExtensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
}

// ImageFormat returns the raster format implied by a file path's extension.
// Only PNG and JPEG are accepted; the check is case-insensitive.
func ImageFormat(path string) (string, error) {
	if path == "" {
		return "", New(ErrCodeInvalidFormat, "output path cannot be empty")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := imageExtensions[ext]; ok {
		return f, nil
	}
	return "", New(ErrCodeInvalidFormat, "unsupported image extension %q (must be .png, .jpg or .jpeg)", ext)
}
