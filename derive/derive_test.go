package derive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/ward"
)

func TestEval(t *testing.T) {
	t.Setenv("WARD_DERIVE_TEST", "set")
	h := ward.MustWrap(map[string]any{
		"count": 2,
		"users": []any{
			map[string]any{"name": "ann"},
			map[string]any{"name": "bob"},
		},
	})
	tests := []struct {
		src  string
		at   *ward.Handle
		want any
	}{
		{src: "count * 2", want: int64(4)},
		{src: "doc.count + 1", want: int64(3)},
		{src: `len(listpath("users[*].name"))`, want: int64(2)},
		{src: `getpath("users[1].name")`, want: "bob"},
		{src: `getpath("users[5].name") ?? "none"`, want: "none"},
		{src: "missing == nil", want: true},
		{src: "whereami()", at: h.Field("users").Index(0), want: "users[0]"},
		{src: "doc.name + '!'", at: h.Field("users").Index(1), want: "bob!"},
		{src: `getenv("WARD_DERIVE_TEST")`, want: "set"},
		{src: "map(users, .name)", want: []any{"ann", "bob"}},
	}
	for _, test := range tests {
		at := test.at
		if at == nil {
			at = h
		}
		e, err := Compile(test.src)
		if err != nil {
			t.Errorf("compile %q: %v", test.src, err)
			continue
		}
		got, err := e.Eval(at)
		if err != nil {
			t.Errorf("eval %q: %v", test.src, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", e, diff)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	if _, err := Compile("count +"); err == nil {
		t.Errorf("expected compile error")
	}
	e := MustCompile(`getpath("a[")`)
	if _, err := e.Eval(ward.MustWrap(map[string]any{})); err == nil {
		t.Errorf("expected eval error for a bad path")
	}
}

func TestWatch(t *testing.T) {
	h := ward.MustWrap(map[string]any{"a": 1, "b": 1})
	var got []any
	first, sub, err := Watch(h, MustCompile("a + b"), func(next *ward.Handle, v any, err error) {
		if err != nil {
			t.Error(err)
		}
		got = append(got, v)
	})
	if err != nil {
		t.Fatal(err)
	}
	if first != int64(2) {
		t.Errorf("initial value: got %v", first)
	}
	cur := h
	ward.Observe(h, func(next *ward.Handle) { cur = next })
	cur.Field("a").Set(2)
	cur.Set(map[string]any{"a": 3, "b": 0})
	cur.Field("b").Set(4)
	sub.Dispose()
	cur.Field("b").Set(5)
	if diff := cmp.Diff([]any{int64(3), int64(7)}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWhen(t *testing.T) {
	h := ward.MustWrap(map[string]any{"a": 1})
	n := 0
	cur := h
	sub, err := When(h, MustCompile("a > 2"), func(*ward.Handle) { n++ })
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Dispose()
	ward.Observe(h, func(next *ward.Handle) { cur = next })
	for _, v := range []int{3, 4, 0, 5} {
		if _, err := cur.Field("a").Set(v); err != nil {
			t.Fatal(err)
		}
	}
	if n != 2 {
		t.Errorf("got %d calls, want 2", n)
	}
}
