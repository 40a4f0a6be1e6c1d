package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxIdentifierLength bounds record and graph identifiers.
const maxIdentifierLength = 256

// ValidateIdentifier validates a record or graph node identifier.
//
// Identifiers are opaque to the core, so the rules only reject values that
// cannot be displayed or round-tripped through a dataset file:
//   - No empty identifiers
//   - No control characters (including null bytes and newlines)
//   - No leading or trailing whitespace
//   - Maximum length of 256 bytes
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidRecord, "identifier cannot be empty")
	}

	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidRecord, "identifier too long (max %d characters)", maxIdentifierLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRecord, "identifier %q contains control characters", id)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidRecord, "identifier %q has surrounding whitespace", id)
	}

	return nil
}

// ValidateValue rejects values that have no place in a total order.
// NaN compares false against everything and ±Inf usually signals a parse
// failure upstream, so both are precondition violations for the sorter and
// the tree.
func ValidateValue(v float64) error {
	if math.IsNaN(v) {
		return New(ErrCodeInvalidRecord, "value is NaN")
	}
	if math.IsInf(v, 0) {
		return New(ErrCodeInvalidRecord, "value is infinite")
	}
	return nil
}

// ValidateFormat checks format against the allowed set.
// The comparison is case-sensitive; callers normalize beforehand.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of: %s)", format, strings.Join(allowed, ", "))
}
