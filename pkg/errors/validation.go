package errors

import (
	"strings"
	"unicode"
)

// maxTopologyInput bounds the raw topology strings accepted from flags and
// HTTP queries before they are parsed.
const maxTopologyInput = 256

// ValidateTopologyString rejects raw topology input that cannot possibly be
// a list of layer counts, before any number parsing happens.
//
// The validation rules are intentionally conservative:
//   - No empty input
//   - Maximum length of 256 characters
//   - Only digits and the separators ',', '-', 'x', ';' and spaces
func ValidateTopologyString(s string) error {
	if strings.TrimSpace(s) == "" {
		return New(ErrCodeInvalidTopology, "topology cannot be empty")
	}

	if len(s) > maxTopologyInput {
		return New(ErrCodeInvalidTopology, "topology too long (max %d characters)", maxTopologyInput)
	}

	for _, r := range s {
		switch {
		case unicode.IsDigit(r), r == ',', r == '-', r == 'x', r == ';', r == ' ':
		default:
			return New(ErrCodeInvalidTopology, "topology contains invalid character %q", r)
		}
	}

	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
