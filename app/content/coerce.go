package content

import (
	encjson "encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hwg121/eProject-sub001/app/json"
)

// Coercions turn an arbitrary decoded JSON value into a typed value. A false
// result means "treat the key as absent" so the caller can move on to the
// next candidate key or the field default.

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

func asString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		return s, s != ""
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", false
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return asString(float64(x))
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case encjson.Number:
		return asString(x.String())
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}

// asName also accepts an object such as {"name": "Jane"}.
func asName(v any) (string, bool) {
	if s, ok := asString(v); ok {
		return s, true
	}
	if obj, ok := v.(map[string]any); ok {
		return coalesce(RawRecord(obj), []string{"name", "displayName", "display_name", "username", "title", "label"}, asString)
	}
	return "", false
}

func asOptionalString(v any) (*string, bool) {
	s, ok := asString(v)
	if !ok {
		return nil, false
	}
	return &s, true
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€£")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case float32:
		return asFloat(float64(x))
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case encjson.Number:
		return parseNumber(x.String())
	case string:
		return parseNumber(x)
	}
	return 0, false
}

// asInt rounds fractional values and accepts strings such as "7 min".
func asInt(v any) (int, bool) {
	f, ok := asFloat(v)
	if !ok {
		s, isString := v.(string)
		if !isString {
			return 0, false
		}
		fields := strings.Fields(s)
		if len(fields) == 0 {
			return 0, false
		}
		if f, ok = parseNumber(fields[0]); !ok {
			return 0, false
		}
	}
	f = math.Round(f)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// asCount is asInt that also counts the elements of an array.
func asCount(v any) (int, bool) {
	if items, ok := v.([]any); ok {
		return len(items), true
	}
	return asInt(v)
}

func asBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "yes", "y":
			return true, true
		case "no", "n":
			return false, true
		}
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		return b, err == nil
	}
	if f, ok := asFloat(v); ok {
		return f != 0, true
	}
	return false, false
}

func asTime(v any) (time.Time, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return inRange(t.UTC())
			}
		}
		if f, ok := parseNumber(s); ok {
			return unixTime(f)
		}
		return time.Time{}, false
	}
	if f, ok := asFloat(v); ok {
		return unixTime(f)
	}
	return time.Time{}, false
}

// maxUnixMilli is 10000-01-01T00:00:00Z.
const maxUnixMilli = 253402300800000

// unixTime treats values past 1e12 as milliseconds.
func unixTime(f float64) (time.Time, bool) {
	if f <= 0 || f >= maxUnixMilli {
		return time.Time{}, false
	}
	if f > 1e12 {
		return inRange(time.UnixMilli(int64(f)).UTC())
	}
	return inRange(time.Unix(int64(f), 0).UTC())
}

// inRange rejects years that time.Time cannot marshal as RFC 3339.
func inRange(t time.Time) (time.Time, bool) {
	if t.Year() < 1 || t.Year() > 9999 {
		return time.Time{}, false
	}
	return t, true
}

func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{")
}

// decodeEmbedded decodes a JSON document stored inside a string field.
func decodeEmbedded(s string) (any, bool) {
	var decoded any
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &decoded); err != nil {
		return nil, false
	}
	return decoded, true
}

// asStringList accepts arrays of strings or named objects, JSON-encoded
// arrays and comma separated strings.
func asStringList(v any) ([]string, bool) {
	switch x := v.(type) {
	case []string:
		out := make([]string, 0, len(x))
		for _, s := range x {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, true
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := asName(item); ok {
				out = append(out, s)
			}
		}
		return out, true
	case string:
		if strings.TrimSpace(x) == "" {
			return nil, false
		}
		if looksLikeJSON(x) {
			decoded, ok := decodeEmbedded(x)
			if !ok {
				return nil, false
			}
			if items, ok := decoded.([]any); ok {
				return asStringList(items)
			}
			return nil, false
		}
		return splitList(x), true
	}
	return nil, false
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// asTagRefs maps plain strings and {id, name, slug, description} objects
// onto TagRef.
func asTagRefs(v any) ([]TagRef, bool) {
	switch x := v.(type) {
	case []string:
		out := make([]TagRef, 0, len(x))
		for _, s := range x {
			if ref, ok := tagFromName(s); ok {
				out = append(out, ref)
			}
		}
		return out, true
	case []any:
		out := make([]TagRef, 0, len(x))
		for _, item := range x {
			var (
				ref TagRef
				ok  bool
			)
			switch el := item.(type) {
			case map[string]any:
				ref, ok = tagFromObject(RawRecord(el))
			default:
				if s, isStr := asString(el); isStr {
					ref, ok = tagFromName(s)
				}
			}
			if ok {
				out = append(out, ref)
			}
		}
		return out, true
	case string:
		if strings.TrimSpace(x) == "" {
			return nil, false
		}
		if looksLikeJSON(x) {
			decoded, ok := decodeEmbedded(x)
			if !ok {
				return nil, false
			}
			if items, ok := decoded.([]any); ok {
				return asTagRefs(items)
			}
			return nil, false
		}
		return asTagRefs(splitList(x))
	}
	return nil, false
}

func tagFromName(name string) (TagRef, bool) {
	name = strings.TrimSpace(name)
	slug := Slugify(name)
	if name == "" {
		return TagRef{}, false
	}
	return TagRef{ID: slug, Name: name, Slug: slug}, true
}

func tagFromObject(obj RawRecord) (TagRef, bool) {
	name, _ := coalesce(obj, []string{"name", "title", "label"}, asString)
	slug, ok := asString(obj["slug"])
	if !ok {
		slug = Slugify(name)
	}
	if name == "" && slug == "" {
		return TagRef{}, false
	}
	if name == "" {
		name = slug
	}
	id, ok := coalesce(obj, []string{"id", "_id", "tagId", "tag_id"}, asString)
	if !ok {
		id = slug
	}
	description, _ := asOptionalString(obj["description"])
	return TagRef{ID: id, Name: name, Slug: slug, Description: description}, true
}

// asImages accepts arrays of URLs or {url} objects and JSON-encoded arrays.
// A plain string that does not decode is absent.
func asImages(v any) ([]string, bool) {
	switch x := v.(type) {
	case []string:
		return asStringList(x)
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if u, ok := asImageURL(item); ok {
				out = append(out, u)
			}
		}
		return out, true
	case map[string]any:
		if u, ok := asImageURL(x); ok {
			return []string{u}, true
		}
		return nil, false
	case string:
		if !looksLikeJSON(x) {
			return nil, false
		}
		decoded, ok := decodeEmbedded(x)
		if !ok {
			return nil, false
		}
		return asImages(decoded)
	}
	return nil, false
}

// asImageURL picks a single URL out of a string, an array of images or an
// image object.
func asImageURL(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		if looksLikeJSON(x) {
			decoded, ok := decodeEmbedded(x)
			if !ok {
				return "", false
			}
			return asImageURL(decoded)
		}
		return asString(x)
	case []string:
		for _, s := range x {
			if u, ok := asString(s); ok {
				return u, true
			}
		}
	case []any:
		for _, item := range x {
			if u, ok := asImageURL(item); ok {
				return u, true
			}
		}
	case map[string]any:
		return coalesce(RawRecord(x), []string{"url", "src", "href", "secure_url", "original"}, asString)
	}
	return "", false
}

func asStringMap(v any) (map[string]string, bool) {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]string, len(x))
		for k, val := range x {
			if s, ok := asString(val); ok {
				out[k] = s
				continue
			}
			switch val.(type) {
			case map[string]any, []any:
				if encoded, err := json.Marshal(val); err == nil {
					out[k] = string(encoded)
				}
			}
		}
		return out, true
	case map[string]string:
		out := make(map[string]string, len(x))
		for k, val := range x {
			out[k] = val
		}
		return out, true
	case []any:
		out := make(map[string]string, len(x))
		for _, item := range x {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			key, ok := coalesce(RawRecord(obj), []string{"name", "key", "label"}, asString)
			if !ok {
				continue
			}
			val, _ := asString(obj["value"])
			out[key] = val
		}
		return out, true
	case string:
		if !looksLikeJSON(x) {
			return nil, false
		}
		decoded, ok := decodeEmbedded(x)
		if !ok {
			return nil, false
		}
		if _, isString := decoded.(string); isString {
			return nil, false
		}
		return asStringMap(decoded)
	}
	return nil, false
}

// asDimensions fills every sub-field independently so a partial object still
// yields a complete value.
func asDimensions(v any) (Dimensions, bool) {
	switch x := v.(type) {
	case map[string]any:
		obj := RawRecord(x)
		d := Dimensions{Unit: "cm"}
		d.Height, _ = coalesce(obj, []string{"height", "h"}, asFloat)
		d.Width, _ = coalesce(obj, []string{"width", "w"}, asFloat)
		d.Depth, _ = coalesce(obj, []string{"depth", "length", "diameter", "d"}, asFloat)
		if unit, ok := coalesce(obj, []string{"unit", "units"}, asString); ok {
			d.Unit = unit
		}
		return d, true
	case string:
		if !looksLikeJSON(x) {
			return Dimensions{}, false
		}
		decoded, ok := decodeEmbedded(x)
		if !ok {
			return Dimensions{}, false
		}
		if _, isMap := decoded.(map[string]any); !isMap {
			return Dimensions{}, false
		}
		return asDimensions(decoded)
	}
	return Dimensions{}, false
}

// asDurationText keeps textual durations and renders seconds as m:ss or
// h:mm:ss.
func asDurationText(v any) (string, bool) {
	if s, ok := v.(string); ok {
		if secs, isNum := parseNumber(s); isNum {
			return formatClock(secs)
		}
		return asString(s)
	}
	if secs, ok := asFloat(v); ok {
		return formatClock(secs)
	}
	return "", false
}

func formatClock(secs float64) (string, bool) {
	if secs < 0 {
		return "", false
	}
	total := int(math.Round(secs))
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s), true
	}
	return fmt.Sprintf("%d:%02d", m, s), true
}
