package utils

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display title into a URL-safe slug. Non-latin titles
// are transliterated first so Japanese names produce usable slugs.
func Slugify(title string) string {
	s := unidecode.Unidecode(title)
	s = strings.ToLower(s)
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
