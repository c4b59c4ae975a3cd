package ir

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type level int

type getter struct{ v any }

func (g getter) Get() any { return g.v }

func TestCanon(t *testing.T) {
	one := 1
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"int", 3, int64(3)},
		{"int8", int8(-3), int64(-3)},
		{"uint16", uint16(7), int64(7)},
		{"big uint", uint64(math.MaxUint64), float64(math.MaxUint64)},
		{"float32", float32(1.5), 1.5},
		{"named int", level(4), int64(4)},
		{"json int", json.Number("12"), int64(12)},
		{"json float", json.Number("1.25"), 1.25},
		{"pointer", &one, int64(1)},
		{"nil slice", []int(nil), []any{}},
		{"typed slice", []string{"a", "b"}, []any{"a", "b"}},
		{"array", [2]bool{true, false}, []any{true, false}},
		{"typed map", map[string]int{"a": 1}, map[string]any{"a": int64(1)}},
		{"nested", map[string]any{"a": []any{1, map[string]uint{"b": 2}}},
			map[string]any{"a": []any{int64(1), map[string]any{"b": int64(2)}}}},
		{"valuer", getter{v: []int{1}}, []any{int64(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canon(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Canon mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCanonUnsupported(t *testing.T) {
	for _, in := range []any{
		make(chan int),
		func() {},
		struct{ A int }{1},
		map[int]string{1: "a"},
		[]any{complex(1, 2)},
	} {
		_, err := Canon(in)
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("Canon(%T): expected ErrUnsupported, got %v", in, err)
		}
	}
}

func TestCanonIsolation(t *testing.T) {
	in := map[string]any{"a": []any{1, 2}}
	got, err := Canon(in)
	if err != nil {
		t.Fatal(err)
	}
	in["a"].([]any)[0] = 9
	in["b"] = 1
	want := map[string]any{"a": []any{int64(1), int64(2)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("canonical copy changed (-want +got):\n%s", diff)
	}
}

func TestKeys(t *testing.T) {
	if diff := cmp.Diff([]string{"0", "1", "2"}, Keys([]any{5, 3, 2})); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, Keys(map[string]any{"b": 2, "a": 1})); diff != "" {
		t.Error(diff)
	}
	if got := Keys(int64(4)); len(got) != 0 {
		t.Errorf("expected no keys, got %v", got)
	}
}

func TestParseIndex(t *testing.T) {
	for key, want := range map[string]bool{"0": true, "12": true, "": false, "01": false, "-1": false, "+1": false, "a": false} {
		if _, ok := ParseIndex(key); ok != want {
			t.Errorf("ParseIndex(%q) ok=%v want %v", key, ok, want)
		}
	}
}
