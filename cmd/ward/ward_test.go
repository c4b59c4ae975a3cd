package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"
	"github.com/signadot/ward"
	"github.com/signadot/ward/ir"
)

func testConfig() *MainConfig {
	return &MainConfig{Log: newLogger(io.Discard, false)}
}

func TestGetPath(t *testing.T) {
	cfg := testConfig()
	h := ward.MustWrap(map[string]any{"a": map[string]any{"b": []any{1, map[string]any{"c": "x"}}}})
	tests := []struct {
		path string
		want string
	}{
		{"a.b[1]", "c: x\n"},
		{"a.b[0]", "1\n"},
		{"$.a.b[1].c", "x\n"},
		{"a.missing", ""},
		{"a.b.c", ""},
	}
	for _, test := range tests {
		buf := &bytes.Buffer{}
		if err := getPath(cfg, buf, h, test.path); err != nil {
			t.Errorf("%s: %v", test.path, err)
			continue
		}
		if got := buf.String(); got != test.want {
			t.Errorf("%s: got %q, want %q", test.path, got, test.want)
		}
	}
	if err := getPath(cfg, io.Discard, h, "a["); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("bad path: got %v, want usage error", err)
	}
}

func TestListKeys(t *testing.T) {
	h := ward.MustWrap(map[string]any{"b": 1, "a": []any{"x", "y"}})
	buf := &bytes.Buffer{}
	if err := listKeys(buf, h, ""); err != nil {
		t.Fatal(err)
	}
	if err := listKeys(buf, h, "a"); err != nil {
		t.Fatal(err)
	}
	if err := listKeys(buf, h, "nope"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "a\nb\n0\n1\n" {
		t.Errorf("got %q", got)
	}
}

func TestApplySets(t *testing.T) {
	cfg := testConfig()
	h := ward.MustWrap(map[string]any{"a": 1, "l": []any{1}})
	res, n, err := applySets(cfg, h, []assignment{
		{path: "a", val: "2"},
		{path: "l[1]", val: "x"},
		{path: "c", val: "{k: true}"},
		{path: "c.k", val: ""},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": 2, "l": []any{1, "x"}, "c": map[string]any{"k": nil}}
	if wv, _ := ir.Canon(want); !ir.Equal(wv, res.Get()) {
		t.Errorf("got %v, want %v", res.Get(), want)
	}
	if n != 4 {
		t.Errorf("got %d notifications, want 4", n)
	}
	if !ir.Equal(h.Get(), map[string]any{"a": int64(1), "l": []any{int64(1)}}) {
		t.Errorf("original value changed: %v", h.Get())
	}

	same, n, err := applySets(cfg, res, []assignment{{path: "a", val: "2"}})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || same != res {
		t.Errorf("equivalent set: %d notifications", n)
	}

	for _, bad := range []assignment{
		{path: "x.y", val: "1"},
		{path: "a[0]", val: "1"},
		{path: "l.k", val: "1"},
		{path: "l[*]", val: "1"},
		{path: "a", val: "{"},
	} {
		if _, _, err := applySets(cfg, res, []assignment{bad}); err == nil {
			t.Errorf("%s=%s: expected error", bad.path, bad.val)
		}
	}
}

func TestApplyPatch(t *testing.T) {
	h := ward.MustWrap(map[string]any{"a": 1, "b": map[string]any{"c": 2}})
	res, err := applyPatch(h, []byte(`[{"op": "add", "path": "/b/d", "value": 3}]`), false)
	if err != nil {
		t.Fatal(err)
	}
	res, err = applyPatch(res, []byte(`{"a": null}`), true)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"b": map[string]any{"c": int64(2), "d": int64(3)}}
	if diff := cmp.Diff(want, res.Get()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDiffHandles(t *testing.T) {
	from := ward.MustWrap(map[string]any{"a": 1, "s": "hello world"})
	to, err := from.Set(map[string]any{"a": 1, "s": "hello, world"})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		cfg  DiffConfig
		want string
	}{
		{
			name: "changes",
			want: "~ s: \"hello world\" -> \"hello, world\"\n    hello{+,+} world\n",
		},
		{
			name: "reverse",
			cfg:  DiffConfig{Reverse: true},
			want: "~ s: \"hello, world\" -> \"hello world\"\n    hello[-,-] world\n",
		},
		{
			name: "merge",
			cfg:  DiffConfig{Merge: true},
			want: "{\"s\":\"hello, world\"}\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := test.cfg
			cfg.MainConfig = testConfig()
			buf := &bytes.Buffer{}
			differs, err := diffHandles(&cfg, buf, from, to)
			if err != nil {
				t.Fatal(err)
			}
			if !differs {
				t.Errorf("no difference reported")
			}
			if got := buf.String(); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
	cfg := &DiffConfig{MainConfig: testConfig()}
	if differs, err := diffHandles(cfg, io.Discard, to, to); err != nil || differs {
		t.Errorf("diff of a handle with itself: %v %v", differs, err)
	}
}

func TestEvalExprs(t *testing.T) {
	h := ward.MustWrap(map[string]any{"a": 1, "s": "hello", "l": []any{map[string]any{"n": 3}}})
	cfg := &EvalConfig{MainConfig: testConfig(), Exprs: []string{"a + 1", "s + '!'"}}
	buf := &bytes.Buffer{}
	if err := evalExprs(cfg, buf, h); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "2\n---\nhello!\n" {
		t.Errorf("got %q", got)
	}

	cfg = &EvalConfig{MainConfig: testConfig(), Exprs: []string{"n * 2"}, At: "l[0]"}
	buf.Reset()
	if err := evalExprs(cfg, buf, h); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "6\n" {
		t.Errorf("got %q", got)
	}

	cfg = &EvalConfig{MainConfig: testConfig(), Exprs: []string{"a +"}}
	if err := evalExprs(cfg, io.Discard, h); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("bad expression: got %v", err)
	}
	cfg = &EvalConfig{MainConfig: testConfig(), Exprs: []string{"a"}, At: "zz"}
	if err := evalExprs(cfg, io.Discard, h); err == nil {
		t.Errorf("expected error for a missing -at path")
	}
}

func TestWatchStream(t *testing.T) {
	in := strings.Join([]string{
		"a: 1\nl: [1]\n",
		"a: 2\nl: [1]\n",
		"a: 2\nl: [1]\n",
		"a: 2\nl: [1, 2]\n",
	}, "---\n")
	cfg := &WatchConfig{MainConfig: testConfig(), When: "a > 1"}
	buf := &bytes.Buffer{}
	if err := watchStream(cfg, strings.NewReader(in), buf); err != nil {
		t.Fatal(err)
	}
	want := "# document 1\n" +
		"~ a: 1 -> 2\n" +
		"# a > 1 became true at document 1\n" +
		"# document 3\n" +
		"+ l[1]: 2\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	if err := watchStream(cfg, strings.NewReader("a: [\n"), io.Discard); err == nil {
		t.Errorf("expected decode error")
	}
}

func TestWriteChangesColor(t *testing.T) {
	from := ward.MustWrap([]any{1})
	to := ward.MustWrap([]any{1, 2})
	cfg := &DiffConfig{MainConfig: testConfig()}
	cfg.Color = true
	buf := &bytes.Buffer{}
	if _, err := diffHandles(cfg, buf, from, to); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.Contains(got, "\x1b[32m+ [1]: 2") {
		t.Errorf("expected green insertion, got %q", got)
	}
}
