package parser

import (
	"errors"
	"testing"
)

func TestRepairEmail(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		last     string
		formula  string
		expected string
	}{
		{"plain", "Anna", "Svensson", `=LOWER(B2&"."&C2)&"@example.org"`, "anna.svensson@example.org"},
		{"diacritics", "Åsa", "Öberg", `=B2&"."&C2&"@uu.se"`, "asa.oberg@uu.se"},
		{"spaces", "Anna Karin", "Svensson", `=B2&"."&C2&"@ki.se"`, "anna-karin.svensson@ki.se"},
		{"trailing paren", "Per", "Ek", `=LOWER(B2&"."&C2&"@scilifelab.se")`, "per.ek@scilifelab.se"},
		{"padded names", " Per ", " Ek", `=B2&"."&C2&"@kth.se"`, "per.ek@kth.se"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RepairEmail(tt.first, tt.last, tt.formula)
			if err != nil {
				t.Fatalf("RepairEmail failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRepairEmailErrors(t *testing.T) {
	tests := []struct {
		first    string
		last     string
		formula  string
		expected error
	}{
		{"Anna", "Svensson", `=B2&"."&C2`, ErrNoDomain},
		{"Anna", "Svensson", `=B2&"@"`, ErrNoDomain},
		{"", "Svensson", `=B2&"@uu.se"`, ErrNameMissing},
		{"Anna", " ", `=B2&"@uu.se"`, ErrNameMissing},
	}

	for _, tt := range tests {
		_, err := RepairEmail(tt.first, tt.last, tt.formula)
		if !errors.Is(err, tt.expected) {
			t.Errorf("RepairEmail(%q, %q, %q) error = %v, expected %v",
				tt.first, tt.last, tt.formula, err, tt.expected)
		}
	}
}

func TestIsEmailFormula(t *testing.T) {
	if !IsEmailFormula(`=A1&"@uu.se"`) {
		t.Error("Expected formula with @ to be an email formula")
	}
	if IsEmailFormula("=SUM(A1:A3)") {
		t.Error("Expected formula without @ not to be an email formula")
	}
}
