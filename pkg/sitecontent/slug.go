package sitecontent

import (
	"strings"
	"unicode"
)

// NormalizeSlug canonicalizes a slug for storage and lookup: Latin diacritics
// fold to their ASCII base letter, letters lowercase, and any run of
// non-alphanumeric characters collapses to a single hyphen. An input that is
// already a clean slug passes through unchanged.
func NormalizeSlug(slug string) string {
	var result strings.Builder
	result.Grow(len(slug))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range slug {
		r = foldLatin(unicode.ToLower(r))
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			result.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				result.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(result.String(), "-")
}

// foldLatin maps common accented Latin letters onto their base ASCII letter.
// Anything it does not recognize passes through untouched.
func foldLatin(r rune) rune {
	switch {
	case r >= 'à' && r <= 'å':
		return 'a'
	case r >= 'è' && r <= 'ë':
		return 'e'
	case r >= 'ì' && r <= 'ï':
		return 'i'
	case r >= 'ò' && r <= 'ö':
		return 'o'
	case r >= 'ù' && r <= 'ü':
		return 'u'
	case r == 'ç':
		return 'c'
	case r == 'ñ':
		return 'n'
	case r == 'ý' || r == 'ÿ':
		return 'y'
	}
	return r
}
