package parser

import "testing"

func TestIsDateFormat(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		numFmt   int
		custom   *string
		expected bool
	}{
		{0, nil, false},
		{2, nil, false},
		{14, nil, true},
		{22, nil, true},
		{49, nil, false},
		{0, str("yyyy-mm-dd"), true},
		{0, str("[$-409]d-mmm-yy"), true},
		{0, str("0.00"), false},
		{0, str(`#,##0" days"`), false},
		{0, str("General"), false},
		{0, str(""), false},
	}

	for _, tt := range tests {
		custom := "<nil>"
		if tt.custom != nil {
			custom = *tt.custom
		}
		if got := IsDateFormat(tt.numFmt, tt.custom); got != tt.expected {
			t.Errorf("IsDateFormat(%d, %q) = %v, expected %v", tt.numFmt, custom, got, tt.expected)
		}
	}
}
