package ward

import (
	"encoding/json"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/ward/ir"
)

// Seq holds the operations of a handle onto an array.
//
// Mutating operations work on a copy of the array and commit it with a
// single Set. They return the handle of the result next to their own
// result; the Seq itself keeps referring to the handle it was made from.
type Seq struct {
	h *Handle
}

// Handle returns the handle the sequence operates on.
func (s *Seq) Handle() *Handle { return s.h }

func (s *Seq) items() []any {
	return s.h.n.value.([]any)
}

// work returns a shallow copy of the array with room for extra more items.
func (s *Seq) work(extra int) []any {
	return slices.Grow(slices.Clone(s.items()), extra)
}

func canonAll(vs []any) ([]any, error) {
	res := make([]any, len(vs))
	for i, v := range vs {
		c, err := ir.Canon(v)
		if err != nil {
			return nil, err
		}
		res[i] = c
	}
	return res, nil
}

// Push appends vs and returns the new length.
func (s *Seq) Push(vs ...any) (int, *Handle, error) {
	cs, err := canonAll(vs)
	if err != nil {
		return 0, nil, err
	}
	a := append(s.work(len(cs)), cs...)
	return len(a), s.h.commit(a), nil
}

// Pop removes the last element and returns it, nil when the array is empty.
func (s *Seq) Pop() (any, *Handle) {
	items := s.items()
	if len(items) == 0 {
		return nil, s.h
	}
	last := ir.Clone(items[len(items)-1])
	return last, s.h.commit(slices.Clone(items[:len(items)-1]))
}

// Shift removes the first element and returns it, nil when the array is
// empty.
func (s *Seq) Shift() (any, *Handle) {
	items := s.items()
	if len(items) == 0 {
		return nil, s.h
	}
	first := ir.Clone(items[0])
	return first, s.h.commit(slices.Clone(items[1:]))
}

// Unshift prepends vs and returns the new length.
func (s *Seq) Unshift(vs ...any) (int, *Handle, error) {
	cs, err := canonAll(vs)
	if err != nil {
		return 0, nil, err
	}
	a := append(cs, s.items()...)
	return len(a), s.h.commit(a), nil
}

// Splice removes del elements from start and inserts items in their place.
// A negative start counts from the end. start and del are clamped to the
// array. The removed elements are returned.
func (s *Seq) Splice(start, del int, items ...any) ([]any, *Handle, error) {
	cs, err := canonAll(items)
	if err != nil {
		return nil, nil, err
	}
	cur := s.items()
	start = relIndex(start, len(cur))
	del = max(0, min(del, len(cur)-start))
	removed := ir.Clone(cur[start : start+del]).([]any)
	a := slices.Replace(s.work(len(cs)), start, start+del, cs...)
	return removed, s.h.commit(a), nil
}

// Reverse reverses the order of the elements.
func (s *Seq) Reverse() *Handle {
	a := s.work(0)
	slices.Reverse(a)
	return s.h.commit(a)
}

// Sort sorts the elements in the order of ir.Compare.
func (s *Seq) Sort() *Handle {
	a := s.work(0)
	ir.Sort(a)
	return s.h.commit(a)
}

// SortFunc sorts the elements with cmp, stably. cmp receives the elements'
// values and must not modify them.
func (s *Seq) SortFunc(cmp func(a, b any) int) *Handle {
	a := s.work(0)
	slices.SortStableFunc(a, cmp)
	return s.h.commit(a)
}

// Len returns the number of elements.
func (s *Seq) Len() int {
	return len(s.items())
}

// At returns the handle of the element at i, counting from the end when i is
// negative, or nil when out of range.
func (s *Seq) At(i int) *Handle {
	if i < 0 {
		i += s.Len()
	}
	return s.h.Index(i)
}

// Slice returns a copy of the elements from start up to but excluding end.
// Negative bounds count from the end, bounds are clamped to the array.
func (s *Seq) Slice(start, end int) []any {
	cur := s.items()
	start, end = relIndex(start, len(cur)), relIndex(end, len(cur))
	if end <= start {
		return []any{}
	}
	return ir.Clone(cur[start:end]).([]any)
}

func relIndex(i, n int) int {
	if i < 0 {
		return max(0, n+i)
	}
	return min(i, n)
}

// Join renders the elements as text separated by sep. Null renders as the
// empty string, other scalars in their plain form, arrays and objects as
// JSON.
func (s *Seq) Join(sep string) string {
	var b strings.Builder
	for i, v := range s.items() {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(joinText(v))
	}
	return b.String()
}

func joinText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	d, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(d)
}

// IndexOf returns the index of the first element equal to v, or -1.
func (s *Seq) IndexOf(v any) int {
	c, err := ir.Canon(v)
	if err != nil {
		return -1
	}
	return slices.IndexFunc(s.items(), func(e any) bool {
		return ir.Equal(e, c)
	})
}

// Includes reports whether an element equals v.
func (s *Seq) Includes(v any) bool {
	return s.IndexOf(v) != -1
}

// All iterates over the indices and handles of the elements.
func (s *Seq) All() iter.Seq2[int, *Handle] {
	return func(yield func(int, *Handle) bool) {
		for i := range s.Len() {
			if !yield(i, s.h.Index(i)) {
				return
			}
		}
	}
}

// Each calls fn with each index and element handle.
func (s *Seq) Each(fn func(int, *Handle)) {
	for i, h := range s.All() {
		fn(i, h)
	}
}

// Reduce folds the element values into acc, from first to last.
func (s *Seq) Reduce(fn func(acc, v any, i int) any, acc any) any {
	for i, v := range s.items() {
		acc = fn(acc, ir.Clone(v), i)
	}
	return acc
}
