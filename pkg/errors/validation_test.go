package errors

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Fruit", false},
		{"valid with spaces", "Stone fruit", false},
		{"valid unicode", "Früchte", false},
		{"valid punctuation", "a/b (c)", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("x", MaxNameLength+1), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestImageFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"chart.png", "png", false},
		{"chart.PNG", "png", false},
		{"out/chart.jpg", "jpeg", false},
		{"chart.jpeg", "jpeg", false},

		{"", "", true},
		{"chart", "", true},
		{"chart.svg", "", true},
		{"chart.gif", "", true},
	}

	for _, tt := range tests {
		got, err := ImageFormat(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ImageFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ImageFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
