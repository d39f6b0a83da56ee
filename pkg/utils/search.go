package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var arabicFolder = strings.NewReplacer(
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ٱ", "ا",
	"ى", "ي",
	"ة", "ه",
	"ؤ", "و",
	"ئ", "ي",
	"ـ", "",
)

// NormalizeText lowercases, strips diacritics (tashkeel included) and folds
// Arabic letter variants so that search is forgiving about spelling.
func NormalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return arabicFolder.Replace(strings.ToLower(strings.TrimSpace(out)))
}

// MatchesKeyword reports whether any field contains the query. An empty
// query matches everything.
func MatchesKeyword(query string, fields ...string) bool {
	q := NormalizeText(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(NormalizeText(f), q) {
			return true
		}
	}
	return false
}
