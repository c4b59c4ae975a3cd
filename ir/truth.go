package ir

import "math"

func Truth(v any) bool {
	switch x := v.(type) {
	case map[string]any:
		return len(x) != 0
	case []any:
		return len(x) != 0
	case string:
		return x != ""
	case int64:
		return x != 0
	case float64:
		return x != 0.0 && !math.IsNaN(x)
	case bool:
		return x
	case nil:
		return false
	default:
		panic("type")
	}
}
