package errors

import (
	"testing"
)

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"short", "#fff", false},
		{"long", "#282a36", false},
		{"upper", "#282A36", false},
		{"with alpha", "#282a36ff", false},

		{"empty", "", true},
		{"no hash", "282a36", true},
		{"bad digit", "#28zz36", true},
		{"wrong length", "#2828", true},
		{"named", "red", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("ValidateHexColor(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidColor)
			}
		})
	}
}

func TestValidateLanguageID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty means detect", "", false},
		{"simple", "javascript", false},
		{"cpp", "c++", false},
		{"fsharp", "F#", false},
		{"dashed", "objective-c", false},
		{"spaced", "plain text", false},

		{"leading dash", "-go", true},
		{"shell meta", "go;rm", true},
		{"slash", "../go", true},
		{"too long", string(make([]byte, 65)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLanguageID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLanguageID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateThemeName(t *testing.T) {
	if err := ValidateThemeName("Tokyo Night"); err != nil {
		t.Errorf("ValidateThemeName() unexpected error: %v", err)
	}
	if err := ValidateThemeName(""); err != nil {
		t.Errorf("empty theme name should be accepted: %v", err)
	}
	if err := ValidateThemeName("bad\x07name"); err == nil {
		t.Error("control characters should be rejected")
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "1f600.png", false},
		{"nested", "72x72/1f600.png", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secret.png", true},
		{"backslash", "a\\b.png", true},
		{"null byte", "a\x00.png", true},
		{"too long", string(make([]byte, 501)), true},
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
