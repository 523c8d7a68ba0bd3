package slug

import "strings"

const maxLength = 80

// EditMode tracks whether the slug still follows the default-locale title.
// One-way: once an author edits the slug by hand it stays manual for the
// rest of the editing session. Not persisted.
type EditMode int

const (
	Auto EditMode = iota
	Manual
)

// Derive produces a URL-safe slug from a title: lower-cased [a-z0-9] runs
// joined by single hyphens, trimmed, length-capped.
func Derive(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		if b.Len() >= maxLength {
			break
		}
	}
	return strings.Trim(b.String(), "-")
}
