package ir

import (
	"maps"
	"slices"
	"strconv"
)

// Keys lists the own keys of a canonical value in a stable order: indices
// "0".."n-1" for arrays, lexically sorted keys for objects, and nothing for
// scalars.
func Keys(v any) []string {
	switch x := v.(type) {
	case []any:
		res := make([]string, len(x))
		for i := range x {
			res[i] = strconv.Itoa(i)
		}
		return res
	case map[string]any:
		return slices.Sorted(maps.Keys(x))
	default:
		return nil
	}
}

// Get returns the child of v under key.
func Get(v any, key string) (any, bool) {
	switch x := v.(type) {
	case []any:
		i, ok := ParseIndex(key)
		if !ok || i >= len(x) {
			return nil, false
		}
		return x[i], true
	case map[string]any:
		res, ok := x[key]
		return res, ok
	default:
		return nil, false
	}
}

// Put sets the child of the container v under key in place. It reports
// false when key does not address v.
func Put(v any, key string, child any) bool {
	switch x := v.(type) {
	case []any:
		i, ok := ParseIndex(key)
		if !ok || i >= len(x) {
			return false
		}
		x[i] = child
		return true
	case map[string]any:
		x[key] = child
		return true
	default:
		return false
	}
}

// ParseIndex parses a canonical array key.
func ParseIndex(key string) (int, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return i, true
}
