package ir

// Clone returns a deep copy of a canonical value.
func Clone(v any) any {
	switch x := v.(type) {
	case []any:
		res := make([]any, len(x))
		for i, e := range x {
			res[i] = Clone(e)
		}
		return res
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, e := range x {
			res[k] = Clone(e)
		}
		return res
	default:
		return v
	}
}

// ShallowClone copies the top level container of v, keeping its kind.
// Scalars are returned as is.
func ShallowClone(v any) any {
	switch x := v.(type) {
	case []any:
		res := make([]any, len(x))
		copy(res, x)
		return res
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, e := range x {
			res[k] = e
		}
		return res
	default:
		return v
	}
}
