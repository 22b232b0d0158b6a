package parser

import "testing"

func TestToASCII(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"anna", "anna"},
		{"åsa", "asa"},
		{"örebro", "orebro"},
		{"umeå", "umea"},
		{"jørgensen", "jorgensen"},
		{"müller", "muller"},
		{"straße", "strasse"},
		{"łódź", "lodz"},
		{"anna-karin", "anna-karin"},
	}

	for _, tt := range tests {
		if got := ToASCII(tt.input); got != tt.expected {
			t.Errorf("ToASCII(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
