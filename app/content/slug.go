package content

import "strings"

// Slugify derives a URL slug from free text. The text is lowercased and every
// run of characters outside [a-z0-9] becomes a single hyphen, accented letters
// included, so "Café" gives "caf". Slugify(Slugify(s)) == Slugify(s).
func Slugify(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	b.Grow(len(lowered))

	pendingHyphen := false
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}
