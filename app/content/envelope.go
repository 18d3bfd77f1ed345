package content

// Unwrap extracts the record sequence from a decoded API response. Accepted
// shapes are a bare array, {"success": true, "data": [...]} and
// {"data": [...]}. Anything else yields an empty sequence; elements that are
// not JSON objects are dropped.
func Unwrap(envelope any) []RawRecord {
	if records, ok := sequence(envelope); ok {
		return records
	}

	var obj map[string]any
	switch env := envelope.(type) {
	case map[string]any:
		obj = env
	case RawRecord:
		obj = env
	default:
		return []RawRecord{}
	}

	if success, _ := obj["success"].(bool); success {
		if records, ok := sequence(obj["data"]); ok {
			return records
		}
	}

	if records, ok := sequence(obj["data"]); ok {
		return records
	}

	return []RawRecord{}
}

func sequence(v any) ([]RawRecord, bool) {
	switch items := v.(type) {
	case []RawRecord:
		if items == nil {
			return []RawRecord{}, true
		}
		return items, true
	case []map[string]any:
		records := make([]RawRecord, 0, len(items))
		for _, item := range items {
			records = append(records, RawRecord(item))
		}
		return records, true
	case []any:
		records := make([]RawRecord, 0, len(items))
		for _, item := range items {
			switch rec := item.(type) {
			case map[string]any:
				records = append(records, RawRecord(rec))
			case RawRecord:
				records = append(records, rec)
			}
		}
		return records, true
	}
	return nil, false
}
