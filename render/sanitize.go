package render

import (
	"strings"
	"unicode"
)

// SanitizeName turns a card name into a safe file stem: lowercase, word
// separators collapsed to single underscores, everything else dropped.
// "Fire // Ice" becomes "fire_ice".
func SanitizeName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r), r == '/', r == ',', r == '-':
			return '_'
		}
		return -1
	}, strings.ToLower(name))
	parts := strings.FieldsFunc(mapped, func(r rune) bool { return r == '_' })
	return strings.Join(parts, "_")
}
