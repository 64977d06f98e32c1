package errors

import (
	"math"
	"unicode"
)

// maxNodeIDLength caps node ids; editor-generated ids are short, anything
// past this is almost certainly corrupted input.
const maxNodeIDLength = 256

// reservedNodeID is claimed internally as the synthetic root of every tree
// and can never appear in input.
const reservedNodeID = "__GHOST_ROOT__"

// ValidateNodeID validates a node identifier.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//   - The reserved internal root id is rejected
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNode, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidNode, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNode, "node id contains invalid control characters")
		}
	}

	if id == reservedNodeID {
		return New(ErrCodeInvalidNode, "node id %q is reserved", id)
	}

	return nil
}

// ValidateDimensions validates a node's width and height.
// Zero is allowed (dimensions not yet measured); negative values and
// non-finite values are not.
func ValidateDimensions(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidNode, "node dimensions must be finite")
		}
		if v < 0 {
			return New(ErrCodeInvalidNode, "node dimensions cannot be negative")
		}
	}
	return nil
}

// ValidateSessionID validates a layout session identifier. Empty is allowed
// (it requests a new session); otherwise the same rules as node ids apply.
func ValidateSessionID(id string) error {
	if id == "" {
		return nil
	}
	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidInput, "session id too long (max %d characters)", maxNodeIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "session id contains invalid control characters")
		}
	}
	return nil
}
