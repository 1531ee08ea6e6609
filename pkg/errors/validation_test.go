package errors

import (
	"math"
	"testing"
)

func TestValidateDimension(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 1000, false},
		{"fractional", 0.5, false},

		{"zero", 0, true},
		{"negative", -10, true},
		{"NaN", math.NaN(), true},
		{"infinity", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimension("width", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimension(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCanvas) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidCanvas)
			}
		})
	}
}

func TestValidateScale(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"unit", 1, false},
		{"small", 0.001, false},

		{"zero", 0, true},
		{"negative", -1, true},
		{"NaN", math.NaN(), true},
		{"infinity", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScale(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScale(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"one", 1, false},
		{"typical", 4, false},

		{"zero", 0, true},
		{"negative", -3, true},
		{"huge", 100000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget("staves", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTarget(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateScoreID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "moonlight-sonata", false},
		{"with dot", "op27.no2", false},
		{"uuid", "4f1c2d9e-8d6b-4b8e-9a57-0e7b1f0c2a11", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"traversal", "../etc", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScoreID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScoreID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
