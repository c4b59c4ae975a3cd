package libdiff

import (
	"errors"
	"fmt"
	"slices"

	"github.com/signadot/ward"
	"github.com/signadot/ward/ir"
	"github.com/signadot/ward/kpath"
)

// ErrConflict is returned by Apply when a change does not fit the value it
// is applied to.
var ErrConflict = errors.New("cannot patch")

// Apply applies changes, in order, to the value of h and commits the result
// with a single Set. Deleted and replaced values must match the From of
// their change.
func Apply(h *ward.Handle, changes []Change) (*ward.Handle, error) {
	v := h.Get()
	for _, c := range changes {
		kp, err := kpath.Parse(c.Path)
		if err != nil {
			return nil, err
		}
		if kp.IsWild() {
			return nil, fmt.Errorf("%w: wildcard path %q", ErrConflict, c.Path)
		}
		v, err = patchAt(v, kp, c)
		if err != nil {
			return nil, fmt.Errorf("%s at %q: %w", c.Op, c.Path, err)
		}
	}
	return h.Set(v)
}

// patchAt applies c at the position kp below v and returns the new v.
func patchAt(v any, kp *kpath.KPath, c Change) (any, error) {
	if kp == nil {
		switch c.Op {
		case Insert:
			return ir.Clone(c.To), nil
		case Delete:
			if err := expect(v, c.From); err != nil {
				return nil, err
			}
			return nil, nil
		default:
			if err := expect(v, c.From); err != nil {
				return nil, err
			}
			return ir.Clone(c.To), nil
		}
	}
	if kp.Field != nil {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: field %q of %s", ErrConflict, *kp.Field, ir.TypeOf(v))
		}
		return patchObject(m, *kp.Field, kp.Next, c)
	}
	a, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: index %d of %s", ErrConflict, *kp.Index, ir.TypeOf(v))
	}
	return patchArray(a, *kp.Index, kp.Next, c)
}

func patchObject(m map[string]any, key string, next *kpath.KPath, c Change) (any, error) {
	cur, present := m[key]
	switch {
	case next != nil:
		if !present {
			return nil, fmt.Errorf("%w: missing field %q", ErrConflict, key)
		}
		child, err := patchAt(cur, next, c)
		if err != nil {
			return nil, err
		}
		m[key] = child
	case c.Op == Insert:
		if present {
			return nil, fmt.Errorf("%w: field %q already present", ErrConflict, key)
		}
		m[key] = ir.Clone(c.To)
	case !present:
		return nil, fmt.Errorf("%w: missing field %q", ErrConflict, key)
	case c.Op == Delete:
		if err := expect(cur, c.From); err != nil {
			return nil, err
		}
		delete(m, key)
	default:
		if err := expect(cur, c.From); err != nil {
			return nil, err
		}
		m[key] = ir.Clone(c.To)
	}
	return m, nil
}

func patchArray(a []any, i int, next *kpath.KPath, c Change) (any, error) {
	if next == nil && c.Op == Insert {
		if i > len(a) {
			return nil, fmt.Errorf("%w: insert at %d past length %d", ErrConflict, i, len(a))
		}
		return slices.Insert(a, i, ir.Clone(c.To)), nil
	}
	if i >= len(a) {
		return nil, fmt.Errorf("%w: index %d out of range %d", ErrConflict, i, len(a))
	}
	switch {
	case next != nil:
		child, err := patchAt(a[i], next, c)
		if err != nil {
			return nil, err
		}
		a[i] = child
	case c.Op == Delete:
		if err := expect(a[i], c.From); err != nil {
			return nil, err
		}
		return slices.Delete(a, i, i+1), nil
	default:
		if err := expect(a[i], c.From); err != nil {
			return nil, err
		}
		a[i] = ir.Clone(c.To)
	}
	return a, nil
}

func expect(got, want any) error {
	if !ir.Equal(got, want) {
		return fmt.Errorf("%w: unexpected value %s, want %s", ErrConflict, text(got), text(want))
	}
	return nil
}
