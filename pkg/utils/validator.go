package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// maxReferenceLength bounds external identifiers such as applicant references
const maxReferenceLength = 64

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// ValidateReference checks an externally supplied identifier, such as an
// applicant or actor reference
func ValidateReference(ref string) error {
	if ref == "" {
		return fmt.Errorf("reference is required")
	}
	if len(ref) > maxReferenceLength {
		return fmt.Errorf("reference exceeds %d characters", maxReferenceLength)
	}
	if controlChars.MatchString(ref) {
		return fmt.Errorf("reference contains control characters")
	}
	return nil
}

// SanitizeReason strips control characters from a human-supplied reason and
// trims surrounding whitespace, keeping the audit trail printable
func SanitizeReason(s string) string {
	return strings.TrimSpace(controlChars.ReplaceAllString(s, ""))
}
