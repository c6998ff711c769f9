package utils

import (
	"strings"
	"testing"
)

func TestValidateReference(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{"plain id", "applicant-1", false},
		{"uuid", "9b2fd3a4-3a3e-4d69-a9b8-2f62f53f3f30", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"control character", "user\x001", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReference(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateReference(%q) = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeReason(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean", "missing income statement", "missing income statement"},
		{"surrounding whitespace", "  duplicate request  ", "duplicate request"},
		{"control characters", "household\x00 moved\x1f away", "household moved away"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeReason(tt.in); got != tt.want {
				t.Errorf("SanitizeReason(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
