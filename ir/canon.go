package ir

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Valuer is implemented by values which stand for a JSON-like value, such as
// handles onto a wrapped tree. Canon replaces a Valuer by its Get result.
type Valuer interface {
	Get() any
}

// Canon returns a fresh canonical deep copy of v.
//
// Canonical values are nil, bool, int64, float64, string, []any and
// map[string]any. Every integer kind becomes int64, except unsigned values
// above math.MaxInt64 which become float64. Floats become float64. Typed
// slices, arrays and maps with string keys are converted element by element.
// Pointers are followed.
//
// The result never shares containers with v, so mutating v afterwards
// does not affect it.
func Canon(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return x, nil
	case string:
		return x, nil
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case float64:
		return x, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %q: %w", ErrUnsupported, x, err)
		}
		return f, nil
	case []any:
		res := make([]any, len(x))
		for i, e := range x {
			c, err := Canon(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res[i] = c
		}
		return res, nil
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, e := range x {
			c, err := Canon(e)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", k, err)
			}
			res[k] = c
		}
		return res, nil
	case Valuer:
		if isNilPointer(v) {
			return nil, nil
		}
		return Canon(x.Get())
	}
	return canonReflect(reflect.ValueOf(v))
}

func canonReflect(rv reflect.Value) (any, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return nil, nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return float64(u), nil
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return Canon(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return []any{}, nil
		}
		fallthrough
	case reflect.Array:
		n := rv.Len()
		res := make([]any, n)
		for i := range n {
			c, err := Canon(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res[i] = c
		}
		return res, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map with %s keys", ErrUnsupported, rv.Type().Key())
		}
		res := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			c, err := Canon(iter.Value().Interface())
			if err != nil {
				return nil, fmt.Errorf("%q: %w", k, err)
			}
			res[k] = c
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, rv.Type())
	}
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
