package parser

import (
	"errors"
	"strings"
)

// ErrNoDomain indicates a formula without an '@' domain suffix.
var ErrNoDomain = errors.New("formula has no @ domain")

// ErrNameMissing indicates empty name cells preceding an email formula.
var ErrNameMissing = errors.New("name cells preceding email formula are empty")

// IsEmailFormula reports whether a formula builds an email address.
func IsEmailFormula(formula string) bool {
	return strings.Contains(formula, "@")
}

// RepairEmail rebuilds the email address that a formula such as
//
//	=LOWER(A2&"."&B2)&"@example.org"
//
// computes from the first and last name cells preceding it.
func RepairEmail(first, last, formula string) (string, error) {
	at := strings.Index(formula, "@")
	if at < 0 {
		return "", ErrNoDomain
	}
	domain := strings.TrimRight(strings.TrimSpace(formula[at+1:]), `")`)
	if domain == "" {
		return "", ErrNoDomain
	}

	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if first == "" || last == "" {
		return "", ErrNameMissing
	}
	name := ToASCII(strings.ToLower(first)) + "." + ToASCII(strings.ToLower(last))
	name = strings.ReplaceAll(name, " ", "-")
	return name + "@" + domain, nil
}
