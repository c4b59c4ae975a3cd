package ward

import (
	"fmt"
	"strconv"

	"github.com/signadot/ward/ir"
)

// Wrap builds a tree holding a copy of v and returns the handle of its root.
//
// v may be any JSON-like Go value: nil, booleans, numbers, strings, slices,
// arrays and maps with string keys, pointers to those, or a *Handle.
func Wrap(v any, opts ...Option) (*Handle, error) {
	c, err := ir.Canon(v)
	if err != nil {
		return nil, err
	}
	return create(newTree(opts...), c, nil).handle, nil
}

// MustWrap is Wrap which panics on error.
func MustWrap(v any, opts ...Option) *Handle {
	h, err := Wrap(v, opts...)
	if err != nil {
		panic(err)
	}
	return h
}

// Observe registers fn to be called with the new handle each time the node
// of h, or whatever replaced it, is replaced. Observing the zero or nil
// handle registers nothing and returns nil, whose Dispose does nothing.
func Observe(h *Handle, fn func(*Handle)) *Subscription {
	if !h.valid() {
		return nil
	}
	return h.n.addObserver(fn, external)
}

// Keys returns the own keys of h.
func Keys(h *Handle) []string {
	if !h.valid() {
		return nil
	}
	return h.Keys()
}

// Count returns the number of own keys of h.
func Count(h *Handle) int {
	if !h.valid() {
		return 0
	}
	return h.Len()
}

// Assign merges the own keys of each source into the value of target, in
// order, later sources winning, and commits the result with a single Set.
//
// Sources may be maps, arrays or handles holding one; other sources,
// including values which cannot be canonicalized, are ignored. Into an object, arrays contribute their indices as keys. Into an
// array, arrays overwrite by index and objects contribute the keys which are
// indices, extending the array with nulls as needed.
//
// ErrInvalidArgument is returned when target is not a handle or holds
// neither an object nor an array.
func Assign(target *Handle, sources ...any) (*Handle, error) {
	if !target.valid() {
		return nil, fmt.Errorf("%w: assign to an invalid handle", ErrInvalidArgument)
	}
	if !ir.IsComposite(target.n.value) {
		return nil, fmt.Errorf("%w: assign to %s", ErrInvalidArgument, target.n.kind)
	}
	v := ir.ShallowClone(target.n.value)
	for _, src := range sources {
		for key, e := range sourceEntries(sourceValue(src)) {
			v = assignKey(v, key, e)
		}
	}
	return target.commit(v), nil
}

// sourceValue returns the canonical value of an Assign source, or nil when
// the source cannot hold entries.
func sourceValue(src any) any {
	if h, ok := src.(*Handle); ok {
		if !h.valid() {
			return nil
		}
		return h.n.value
	}
	v, err := ir.Canon(src)
	if err != nil {
		return nil
	}
	return v
}

func sourceEntries(v any) map[string]any {
	switch x := v.(type) {
	case map[string]any:
		return x
	case []any:
		res := make(map[string]any, len(x))
		for i, e := range x {
			res[strconv.Itoa(i)] = e
		}
		return res
	default:
		return nil
	}
}

func assignKey(v any, key string, e any) any {
	switch x := v.(type) {
	case map[string]any:
		x[key] = e
		return x
	case []any:
		i, ok := ir.ParseIndex(key)
		if !ok {
			return x
		}
		for len(x) <= i {
			x = append(x, nil)
		}
		x[i] = e
		return x
	}
	return v
}
