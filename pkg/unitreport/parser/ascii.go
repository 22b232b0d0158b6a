package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldReplacer handles letters that have no canonical decomposition.
var foldReplacer = strings.NewReplacer(
	"ø", "o", "Ø", "O",
	"æ", "ae", "Æ", "AE",
	"ß", "ss",
	"đ", "d", "Đ", "D",
	"ł", "l", "Ł", "L",
	"þ", "th", "Þ", "Th",
)

// ToASCII replaces non-ASCII characters with their closest ASCII equivalents.
// Characters without an equivalent are dropped.
func ToASCII(s string) string {
	s = foldReplacer.Replace(s)
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
