package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxWidth is the largest container width accepted from callers.
const MaxWidth = 1 << 20

// ValidateWidth validates a caller-supplied container width.
// The engine itself accepts any width; this guards outer surfaces (CLI, API)
// against values that are almost certainly mistakes.
func ValidateWidth(width float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) {
		return New(ErrCodeInvalidWidth, "width must be a finite number")
	}
	if width < 0 {
		return New(ErrCodeInvalidWidth, "width cannot be negative: %v", width)
	}
	if width > MaxWidth {
		return New(ErrCodeInvalidWidth, "width too large (max %d)", MaxWidth)
	}
	return nil
}

// ValidateColumns validates an explicit column count.
func ValidateColumns(columns int) error {
	if columns < 0 {
		return New(ErrCodeInvalidColumns, "column count cannot be negative: %d", columns)
	}
	return nil
}

// ValidatePath validates a document path supplied to the CLI or API.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path cannot start or end with whitespace")
	}

	return nil
}
