package ward

import (
	"errors"
	"testing"
)

func TestPatch(t *testing.T) {
	tests := []struct {
		Doc   any
		Patch string
		Res   any
		Err   bool
	}{
		{
			Doc:   map[string]any{"a": 1, "b": []any{1, 2}},
			Patch: `[{"op": "replace", "path": "/a", "value": 5}]`,
			Res:   map[string]any{"a": 5, "b": []any{1, 2}},
		},
		{
			Doc:   map[string]any{"b": []any{1, 2}},
			Patch: `[{"op": "add", "path": "/b/-", "value": {"x": 1.5}}, {"op": "remove", "path": "/b/0"}]`,
			Res:   map[string]any{"b": []any{2, map[string]any{"x": 1.5}}},
		},
		{
			Doc:   map[string]any{"a": "x"},
			Patch: `[{"op": "move", "from": "/a", "path": "/c"}]`,
			Res:   map[string]any{"c": "x"},
		},
		{
			Doc:   map[string]any{"a": 1},
			Patch: `[{"op": "test", "path": "/a", "value": 2}]`,
			Err:   true,
		},
		{
			Doc:   map[string]any{"a": 1},
			Patch: `{"op": "remove"}`,
			Err:   true,
		},
	}
	for i, test := range tests {
		h := MustWrap(test.Doc)
		rec := &recorder{}
		Observe(h, rec.observe)
		res, err := Patch(h, []byte(test.Patch))
		if test.Err {
			if err == nil {
				t.Errorf("%d: expected error", i)
			}
			continue
		}
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		checkValue(t, res, test.Res)
		if len(rec.calls) != 1 {
			t.Errorf("%d: got %d notifications, want 1", i, len(rec.calls))
		}
	}
}

func TestPatchKeepsIdentity(t *testing.T) {
	h := MustWrap(map[string]any{"a": 1, "b": map[string]any{"c": []any{1, 2}}})
	res, err := Patch(h, []byte(`[{"op": "replace", "path": "/a", "value": 2}]`))
	if err != nil {
		t.Fatal(err)
	}
	if res.Field("b") != h.Field("b") {
		t.Errorf("untouched subtree was replaced")
	}
	same, err := Patch(res, []byte(`[{"op": "test", "path": "/a", "value": 2}]`))
	if err != nil {
		t.Fatal(err)
	}
	if same != res {
		t.Errorf("test op replaced the root")
	}
}

func TestMergePatch(t *testing.T) {
	h := MustWrap(map[string]any{"a": 1, "b": map[string]any{"c": 1, "d": 2}, "e": "keep"})
	e := h.Field("e")
	rec := &recorder{}
	Observe(h, rec.observe)
	res, err := MergePatch(h, []byte(`{"a": null, "b": {"d": 3}, "f": [1]}`))
	if err != nil {
		t.Fatal(err)
	}
	checkValue(t, res, map[string]any{"b": map[string]any{"c": 1, "d": 3}, "e": "keep", "f": []any{1}})
	if len(rec.calls) != 1 {
		t.Errorf("got %d notifications, want 1", len(rec.calls))
	}
	if res.Field("e") != e {
		t.Errorf("untouched field was replaced")
	}
	if _, err := MergePatch(res, []byte(`{`)); err == nil {
		t.Errorf("expected error for bad merge patch")
	}

	p, err := MergePatchFrom(h, res)
	if err != nil {
		t.Fatal(err)
	}
	again, err := MergePatch(h, p)
	if err != nil {
		t.Fatal(err)
	}
	checkValue(t, again, res.Get())
}

func TestPatchInvalid(t *testing.T) {
	if _, err := Patch(nil, []byte(`[]`)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Patch(nil): got %v", err)
	}
	if _, err := MergePatch(&Handle{}, []byte(`{}`)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("MergePatch(zero): got %v", err)
	}
	if _, err := MergePatchFrom(nil, MustWrap(1)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("MergePatchFrom(nil): got %v", err)
	}
}
