package content

import "time"

// field is one entry of a canonical schema: it reads the raw record and
// writes exactly one canonical field, falling back to its default.
type field[R any] struct {
	name  string
	apply func(raw RawRecord, now time.Time, dst *R)
}

type schema[R any] []field[R]

func (s schema[R]) canonicalize(raw RawRecord, now time.Time) R {
	var rec R
	for _, f := range s {
		f.apply(raw, now, &rec)
	}
	return rec
}

func (s schema[R]) fieldNames() []string {
	names := make([]string, 0, len(s))
	for _, f := range s {
		names = append(names, f.name)
	}
	return names
}

// coalesce returns the first candidate key whose value is non-null and
// accepted by coerce.
func coalesce[T any](raw RawRecord, keys []string, coerce func(any) (T, bool)) (T, bool) {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if out, ok := coerce(v); ok {
			return out, true
		}
	}
	var zero T
	return zero, false
}

func value[R, T any](name string, keys []string, coerce func(any) (T, bool), def func(now time.Time) T, set func(*R, T)) field[R] {
	return field[R]{
		name: name,
		apply: func(raw RawRecord, now time.Time, dst *R) {
			v, ok := coalesce(raw, keys, coerce)
			if !ok {
				v = def(now)
			}
			set(dst, v)
		},
	}
}

// slugValue keeps an explicit slug and otherwise derives one from the
// record's title keys.
func slugValue[R any](keys, titleKeys []string, set func(*R, string)) field[R] {
	return field[R]{
		name: "slug",
		apply: func(raw RawRecord, _ time.Time, dst *R) {
			if slug, ok := coalesce(raw, keys, asString); ok {
				set(dst, slug)
				return
			}
			title, _ := coalesce(raw, titleKeys, asString)
			set(dst, Slugify(title))
		},
	}
}

func fixed[T any](v T) func(time.Time) T {
	return func(time.Time) T { return v }
}

func resolutionTime(now time.Time) time.Time {
	return now
}

func noStrings(time.Time) []string {
	return []string{}
}

func noTagRefs(time.Time) []TagRef {
	return []TagRef{}
}

func noSpecs(time.Time) map[string]string {
	return map[string]string{}
}

func noDescription(time.Time) *string {
	return nil
}

func defaultDimensions(time.Time) Dimensions {
	return Dimensions{Unit: "cm"}
}
