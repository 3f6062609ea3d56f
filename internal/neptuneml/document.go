package neptuneml

// Documents are the generic values produced by encoding/json decoding into any:
// map[string]any, []any, string, float64, bool and nil.

func stringField(doc any, name string) (string, bool) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return "", false
	}
	value, ok := obj[name].(string)
	return value, ok
}

func stringOrStrings(v any) ([]string, bool) {
	switch value := v.(type) {
	case string:
		return []string{value}, true
	case []string:
		return value, true
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
