package validation

import (
	"testing"
)

func TestValidateThreadCount(t *testing.T) {
	tests := []struct {
		name    string
		threads int
		wantErr bool
	}{
		{"valid minimum", 1, false},
		{"valid middle", 10, false},
		{"valid maximum", 20, false},
		{"too low", 0, true},
		{"negative", -1, true},
		{"too high", 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThreadCount(tt.threads)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThreadCount(%d) error = %v, wantErr %v", tt.threads, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNonEmptyString(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"non-empty", "101", false},
		{"whitespace is accepted", " ", false},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonEmptyString("room number", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonEmptyString(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRoomStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr bool
	}{
		{"available", "available", false},
		{"occupied", "occupied", false},
		{"unavailable", "unavailable", false},
		{"unknown", "vacant", true},
		{"empty", "", true},
		{"case sensitive", "Available", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoomStatus(tt.status)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRoomStatus(%q) error = %v, wantErr %v", tt.status, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		name    string
		price   int64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 3500000, false},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrice("rent price", tt.price)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePrice(%d) error = %v, wantErr %v", tt.price, err, tt.wantErr)
			}
		})
	}
}
