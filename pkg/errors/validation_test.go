package errors

import (
	"strings"
	"testing"
)

func TestValidatePersonID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "a", false},
		{"slug", "ann-smith", false},
		{"unicode", "zoë", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 300), true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePersonID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePersonID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDataset) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidDataset)
			}
		})
	}
}

func TestValidateSelectionInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"name", "Ann", false},
		{"none sentinel", "(none)", false},
		{"control", "Ann\x07", true},
		{"too long", strings.Repeat("n", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelectionInput(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSelectionInput(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDatasetPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"json", "network.json", ""},
		{"yaml", "data/network.yaml", ""},
		{"yml upper", "NETWORK.YML", ""},
		{"empty", "", ErrCodeInvalidPath},
		{"null byte", "net\x00.json", ErrCodeInvalidPath},
		{"csv", "network.csv", ErrCodeInvalidFormat},
		{"no extension", "network", ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatasetPath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateDatasetPath(%q) code = %q, want %q (err %v)", tt.input, got, tt.wantCode, err)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		wantCode Code
	}{
		{"out.svg", ""},
		{"exports/ann.dot", ""},
		{"", ErrCodeInvalidPath},
		{"   ", ErrCodeInvalidPath},
		{"a\x00.svg", ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := GetCode(ValidateOutputPath(tt.input)); got != tt.wantCode {
				t.Errorf("ValidateOutputPath(%q) code = %q, want %q", tt.input, got, tt.wantCode)
			}
		})
	}
}
