package encode

import (
	"bytes"
	"math"
	"testing"

	"github.com/signadot/ward/format"
	"github.com/signadot/ward/ir"
	"github.com/signadot/ward/parse"
)

var doc = map[string]any{
	"a": int64(1),
	"b": []any{int64(1), map[string]any{"c": "x", "d": []any{}}},
	"e": map[string]any{},
}

func TestEncodeYAML(t *testing.T) {
	want := `a: 1
b:
  - 1
  - c: x
    d: []
e: {}
`
	if got := encodeString(t, doc); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	want4 := `b:
    -   - 1
        - 2
    -   k: v
`
	v := map[string]any{"b": []any{[]any{int64(1), int64(2)}, map[string]any{"k": "v"}}}
	if got := encodeString(t, v, EncodeIndent(4)); got != want4 {
		t.Errorf("got\n%s\nwant\n%s", got, want4)
	}
}

func TestEncodeJSON(t *testing.T) {
	want := `{
  "a": 1,
  "b": [
    1,
    {
      "c": "x",
      "d": []
    }
  ],
  "e": {}
}
`
	if got := encodeString(t, doc, EncodeFormat(format.JSONFormat)); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	if err := Encode(math.NaN(), &bytes.Buffer{}, EncodeFormat(format.JSONFormat)); err == nil {
		t.Errorf("expected error encoding NaN as JSON")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	vals := []any{
		nil,
		"",
		"true",
		"null",
		"1.5",
		"a: b",
		"- x",
		"#hash",
		" lead",
		"multi\nline\n",
		".inf",
		"-.Inf",
		".nan",
		"x\ty",
		"bell\a",
		"~",
		"0x1f",
		"1e3",
		"yes",
		"@at",
		"'single'",
		"[not, a, list]",
		"{}",
		"*alias",
		"!tag",
		map[string]any{".inf": "x", "1": "y", "a\tb": "\t"},
		2.0,
		1e21,
		int64(-7),
		[]any{},
		[]any{[]any{int64(1)}, []any{}, map[string]any{}},
		map[string]any{"key with: colon": []any{"x"}, "": false, "n": nil},
		doc,
	}
	for _, f := range []format.Format{format.YAMLFormat, format.JSONFormat} {
		for _, v := range vals {
			text := encodeString(t, v, EncodeFormat(f))
			got, err := parse.Parse([]byte(text), parse.ParseFormat(f))
			if err != nil {
				t.Errorf("%s: parse of %q: %v", f, text, err)
				continue
			}
			if !ir.Equal(v, got) {
				t.Errorf("%s: %#v encoded as %q parsed as %#v", f, v, text, got)
			}
		}
	}
}

func TestEncodeColors(t *testing.T) {
	colors := &Colors{Default: func(s string, _ ...any) string { return "<" + s + ">" }}
	got := encodeString(t, map[string]any{"a": int64(1)}, EncodeFormat(format.JSONFormat), EncodeColors(colors))
	want := "<{>\n  <\"a\"><:> <1>\n<}>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	got = encodeString(t, []any{"x"}, EncodeColors(colors))
	if want := "<-> <x>\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := MustString(map[string]any{"a": true}); got != "a: true" {
		t.Errorf("MustString: got %q", got)
	}
}

func TestYAMLScalar(t *testing.T) {
	for v, want := range map[any]string{
		math.Inf(1):  ".inf",
		math.Inf(-1): "-.inf",
		2.5:          "2.5",
		3.0:          "3.0",
		int64(3):     "3",
		false:        "false",
	} {
		got, err := yamlScalar(v)
		if err != nil || got != want {
			t.Errorf("%v: got %q, %v, want %q", v, got, err, want)
		}
	}
	if got, _ := yamlScalar(math.NaN()); got != ".nan" {
		t.Errorf("NaN: got %q", got)
	}
	for s, want := range map[string]string{
		"plain": "plain",
		".inf":  `".inf"`,
		"x\ty":  `"x\ty"`,
	} {
		got, err := yamlScalar(s)
		if err != nil || got != want {
			t.Errorf("%q: got %q, %v, want %q", s, got, err, want)
		}
	}
}

func encodeString(t *testing.T, v any, opts ...EncodeOption) string {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := Encode(v, buf, opts...); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}
