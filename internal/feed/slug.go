package feed

import (
	"strings"
	"unicode"
)

// Slugify builds the URL slug for a category: lowercase the name, collapse
// every run of characters outside [a-z0-9] and the Cyrillic range into a
// single hyphen, trim leading/trailing hyphens, then append "-<id>". The id
// suffix keeps slugs unique even when two categories share a name.
func Slugify(name, id string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(name) {
		keep := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.Is(unicode.Cyrillic, r)
		if keep {
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
			continue
		}
		hyphen = true
	}
	// The id suffix is appended even when the name reduced to nothing, so a
	// nameless category still slugs to "-<id>".
	return b.String() + "-" + id
}
