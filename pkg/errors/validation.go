package errors

import (
	"strings"
	"unicode"
)

// ValidateObjectID validates a canvas object identifier.
// IDs end up in JSON documents, cache keys, and SVG element ids, so the
// rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 128 characters
func ValidateObjectID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidObject, "object id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidObject, "object id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidObject, "object id contains control characters")
		}
	}

	return nil
}

// ValidateLabel validates a classification label name.
// Labels are user-facing display strings; the caller is expected to trim
// whitespace before registration, so a label that is empty after trimming
// is rejected here.
func ValidateLabel(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidLabel, "label cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidLabel, "label too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains control characters")
		}
	}

	return nil
}

// ValidateBoardID validates a board identifier used by stores.
// Board IDs become file names and Mongo document keys, so path separators
// and traversal sequences are rejected.
func ValidateBoardID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "board id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "board id too long (max 128 characters)")
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "board id cannot contain path separators")
	}

	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "board id cannot contain traversal sequences (..)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "board id contains control characters")
		}
	}

	return nil
}
