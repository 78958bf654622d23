package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateKeyID validates a key identifier. Key IDs are positive integers.
func ValidateKeyID(id int64) error {
	if id <= 0 {
		return New(ErrCodeInvalidInput, "key id must be positive, got %d", id)
	}
	return nil
}

// vCodeRegex matches verification codes: the remote service issues 64 alphanumeric
// characters, but older keys are shorter, so only the alphabet and a sane length
// range are enforced.
var vCodeRegex = regexp.MustCompile(`^[A-Za-z0-9]{20,64}$`)

// ValidateVCode validates a verification code.
func ValidateVCode(vCode string) error {
	if vCode == "" {
		return New(ErrCodeInvalidInput, "verification code cannot be empty")
	}
	if !vCodeRegex.MatchString(vCode) {
		return New(ErrCodeInvalidInput, "verification code must be 20-64 alphanumeric characters")
	}
	return nil
}

// ValidateName validates a local key name used by the key store.
// It rejects names that could be used for path traversal.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 64 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "name contains invalid characters: %q", pattern)
		}
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidInput, "name cannot start with a dot")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
