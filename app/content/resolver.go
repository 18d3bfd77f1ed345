package content

import (
	"strings"

	"golang.org/x/text/cases"
)

// Resolve returns the first record whose slug field matches q.Target after
// trimming and case folding. When no record matches exactly, records without
// a usable slug are compared by slugifying their title field. Sequence order
// breaks ties; there is no closest-match scoring.
func Resolve(records []RawRecord, q SlugQuery) (RawRecord, bool) {
	fold := cases.Fold()
	target := fold.String(strings.TrimSpace(q.Target))

	if target != "" {
		for _, rec := range records {
			slug, ok := asString(rec[q.SlugField])
			if ok && fold.String(slug) == target {
				return rec, true
			}
		}
	}

	derivedTarget := Slugify(q.Target)
	if derivedTarget == "" {
		return nil, false
	}

	for _, rec := range records {
		if _, ok := asString(rec[q.SlugField]); ok {
			continue
		}
		title, ok := asString(rec[q.TitleField])
		if !ok {
			continue
		}
		if Slugify(title) == derivedTarget {
			return rec, true
		}
	}

	return nil, false
}
