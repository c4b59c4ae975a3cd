package ir

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var equalOpts = cmp.Options{
	cmpopts.EquateNaNs(),
	cmpopts.EquateEmpty(),
	cmp.FilterValues(mixedNumbers, cmp.Comparer(numbersEqual)),
}

// Equal reports whether two canonical values are deeply equal.
//
// NaN equals NaN, and an int64 equals a float64 holding the same number.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, equalOpts)
}

func mixedNumbers(x, y any) bool {
	switch x.(type) {
	case int64:
		_, ok := y.(float64)
		return ok
	case float64:
		_, ok := y.(int64)
		return ok
	}
	return false
}

func numbersEqual(x, y any) bool {
	return asFloat(x) == asFloat(y)
}

func asFloat(v any) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case float64:
		return x
	}
	return 0
}
