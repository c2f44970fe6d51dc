package optimize

// normalizeContent returns a copy of parsed resume content with explicit JSON
// nulls scrubbed, so a re-encoded payload omits them instead of sending null.
// Maps are scrubbed value-wise (a null value drops its key), slices
// element-wise with length preserved, scalars pass through unchanged.
// Idempotent: normalizing an already-normalized tree yields the same tree.
func normalizeContent(content map[string]any) map[string]any {
	out, _ := scrubValue(content).(map[string]any)
	if out == nil {
		out = map[string]any{}
	}
	return out
}

func scrubValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			if item == nil {
				continue
			}
			out[key] = scrubValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = scrubValue(item)
		}
		return out
	default:
		return value
	}
}
