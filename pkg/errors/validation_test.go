package errors

import (
	"strings"
	"testing"
)

func TestValidateTopologyString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"commas", "3,6,10", false},
		{"dashes", "3-6-10", false},
		{"spaces", "3 6 10", false},
		{"times", "784x128x10", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("1,", 200), true},
		{"letters", "3,six,10", true},
		{"decimal", "3.5,2", true},
		{"null byte", "3\x006", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTopologyString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTopologyString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTopology) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidTopology)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/net.svg", false},
		{"absolute", "/tmp/net.png", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 600), true},
		{"control char", "net\x01.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
