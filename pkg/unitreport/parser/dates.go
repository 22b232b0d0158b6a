package parser

import "strings"

// builtinDateFormats holds the built-in number format IDs that display dates or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// IsDateFormat reports whether a number format displays a date.
// custom is the format code of a custom number format, or nil.
func IsDateFormat(numFmt int, custom *string) bool {
	if custom == nil || *custom == "" {
		return builtinDateFormats[numFmt]
	}
	code := strings.ToLower(stripLiterals(*custom))
	if code == "general" {
		return false
	}
	return strings.ContainsAny(code, "ydh") || strings.Contains(code, "mm") ||
		strings.Contains(code, "m/") || strings.Contains(code, "/m") || strings.Contains(code, "-m")
}

// stripLiterals removes quoted text, bracketed sections and escaped
// characters from a number format code.
func stripLiterals(code string) string {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			if r == '"' {
				inQuote = false
			}
		case inBracket:
			if r == ']' {
				inBracket = false
			}
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
