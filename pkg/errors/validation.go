package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateDimension checks that a canvas dimension is positive and finite.
// A zero or negative canvas leaves no room for any layout.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidCanvas, "%s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidCanvas, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateScale checks that a zoom factor is positive and finite.
func ValidateScale(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidScale, "scale must be a positive finite number, got %v", v)
	}
	return nil
}

// ValidateTarget checks a "fit N staves/columns per page" target.
func ValidateTarget(name string, n int) error {
	if n < 1 {
		return New(ErrCodeInvalidTarget, "%s must be at least 1, got %d", name, n)
	}
	const maxTarget = 1000
	if n > maxTarget {
		return New(ErrCodeInvalidTarget, "%s too large (max %d), got %d", name, maxTarget, n)
	}
	return nil
}

// ValidateScoreID validates a score identifier used as a session key.
// It rejects identifiers that could be used for path traversal when the
// key is turned into a file name.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateScoreID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "score ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "score ID too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "score ID contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "score ID contains invalid characters: %q", pattern)
		}
	}

	return nil
}
