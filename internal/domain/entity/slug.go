package entity

import "strings"

// Slugify derives a URL-safe slug from a title: lowercase, ASCII letters and
// digits kept, every other run of characters collapsed into a single hyphen.
// The derivation is deterministic; slugs are not unique and the store places
// no uniqueness constraint on them.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	prevHyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
