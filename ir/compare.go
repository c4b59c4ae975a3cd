package ir

import (
	"cmp"
	"slices"
	"strings"
)

// Compare returns an integer comparing two canonical values.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Values of different types order by type rank, numbers compare by value
// whatever their representation, NaN sorts before every other number.
func Compare(a, b any) int {
	rankA := rank(TypeOf(a))
	rankB := rank(TypeOf(b))
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch x := a.(type) {
	case int64, float64:
		return compareNumbers(a, b)
	case string:
		return strings.Compare(x, b.(string))
	case bool:
		y := b.(bool)
		if x == y {
			return 0
		}
		if !x {
			return -1
		}
		return 1
	case []any:
		return compareArrays(x, b.([]any))
	case map[string]any:
		return compareObjects(x, b.(map[string]any))
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Array < Object
func rank(t Type) int {
	switch t {
	case NullType:
		return 1
	case BoolType:
		return 2
	case NumberType:
		return 3
	case StringType:
		return 4
	case ArrayType:
		return 5
	case ObjectType:
		return 6
	}
	return 100
}

func compareNumbers(a, b any) int {
	x, xInt := a.(int64)
	y, yInt := b.(int64)
	if xInt && yInt {
		return cmp.Compare(x, y)
	}
	// cmp.Compare orders NaN first and equal to itself.
	return cmp.Compare(asFloat(a), asFloat(b))
}

func compareArrays(a, b []any) int {
	minLen := min(len(a), len(b))
	for i := 0; i < minLen; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// compareObjects compares key by key in sorted key order, then by size.
func compareObjects(a, b map[string]any) int {
	keysA := Keys(a)
	keysB := Keys(b)
	minLen := min(len(keysA), len(keysB))
	for i := 0; i < minLen; i++ {
		if c := strings.Compare(keysA[i], keysB[i]); c != 0 {
			return c
		}
		if c := Compare(a[keysA[i]], b[keysB[i]]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(keysA), len(keysB))
}

// Sort sorts a canonical array in place by Compare.
func Sort(vs []any) {
	slices.SortStableFunc(vs, Compare)
}
