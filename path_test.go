package ward

import (
	"strings"
	"testing"

	"github.com/signadot/ward/encode"
	"github.com/signadot/ward/parse"
)

type pathTest struct {
	Path  string
	Doc   string
	Res   string
	NoGet bool
}

var pathTests = []pathTest{
	{
		Path: "$",
		Doc:  "null",
		Res:  "null",
	},
	{
		Path: "$.f",
		Doc:  "f: 1",
		Res:  "1",
	},

	{
		Path: "$[0]",
		Doc:  "[1,2,3]",
		Res:  "1",
	},

	{
		Path: "$",
		Doc:  "[1,2,3]",
		Res:  "- 1\n- 2\n- 3",
	},

	{
		Path: "$[1].f",
		Doc:  "[0, {\"f\": 2, \"g\": 3}]",
		Res:  "2",
	},

	{
		Path: "$.f[3]",
		Doc:  `{"a": [1,2], "f": [0,1,2,"three"]}`,
		Res:  "three",
	},

	{
		Path: "$.'f[3]'[2]",
		Doc:  `{"a": [1,2], "f[3]": [0,1,2,"three"]}`,
		Res:  "2",
	},

	{
		Path: "$.'$f[\\'3]'[2]",
		Doc:  `{"a": [1,2], "$f['3]": [0,1,2,"three"]}`,
		Res:  "2",
	},

	{
		NoGet: true,
		Path:  "$[*]",
		Doc:   "[1,2,3]",
		Res:   "- 1\n- 2\n- 3",
	},

	{
		NoGet: true,
		Path:  "$.a[*]",
		Doc:   "b: [1,2,3]",
		Res:   "[]",
	},

	{
		NoGet: true,
		Path:  "$.b[*]",
		Doc:   "b: [1,2,3]",
		Res:   "- 1\n- 2\n- 3",
	},
	{
		NoGet: true,
		Path:  "$.c.d.a",
		Doc:   "a: b\nc:\n  d: 2\n  a: 3",
		Res:   "[]",
	},
	{
		NoGet: true,
		Path:  "$.c.*",
		Doc:   "a: b\nc:\n  d: 2\n  a: 3",
		Res:   "- 3\n- 2",
	},
	{
		NoGet: true,
		Path:  "$[*].f",
		Doc:   `[{"f": 1}, 2, {"g": 0}, {"f": [3]}]`,
		Res:   "- 1\n- - 3",
	},
	{
		NoGet: true,
		Path:  "$.*[*]",
		Doc:   "a: [1]\nb: x\nc: [2, 3]",
		Res:   "- 1\n- 2\n- 3",
	},
}

func wrapDoc(t *testing.T, doc string) *Handle {
	t.Helper()
	v, err := parse.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("# doc\n%s\n---\n# %v\n", doc, err)
	}
	return MustWrap(v)
}

func TestPathGet(t *testing.T) {
	for i := range pathTests {
		pathTest := &pathTests[i]
		if pathTest.NoGet {
			continue
		}
		h := wrapDoc(t, pathTest.Doc)
		res, err := h.Lookup(pathTest.Path)
		if err != nil {
			t.Error(err)
			continue
		}
		if res == nil {
			t.Errorf("%s: no result", pathTest.Path)
			continue
		}
		out := strings.TrimSpace(encode.MustString(res.Get()))
		if out != pathTest.Res {
			t.Errorf("got %q want %q", out, pathTest.Res)
			continue
		}
		if kp := res.KPath(); "$"+kp != pathTest.Path && "$."+kp != pathTest.Path {
			t.Errorf("%s: handle has path %q", pathTest.Path, kp)
		}
	}
}

func TestPathList(t *testing.T) {
	for i := range pathTests {
		pathTest := &pathTests[i]
		h := wrapDoc(t, pathTest.Doc)
		lst, err := h.List(pathTest.Path)
		if err != nil {
			t.Error(err)
			continue
		}
		if !pathTest.NoGet {
			get, err := h.Lookup(pathTest.Path)
			if err != nil {
				t.Error(err)
				continue
			}
			if len(lst) != 1 || lst[0] != get {
				t.Errorf("list of %s for %q gave %d handles", pathTest.Path, pathTest.Doc, len(lst))
			}
			continue
		}
		if _, err := h.Lookup(pathTest.Path); err == nil && strings.Contains(pathTest.Path, "*") {
			t.Errorf("lookup of wildcard %s succeeded", pathTest.Path)
		}
		vals := make([]any, len(lst))
		for i, e := range lst {
			vals[i] = e.Get()
		}
		ls := strings.TrimSpace(encode.MustString(vals))
		if ls != pathTest.Res {
			t.Errorf("# list gave\n%s\n---\n# want\n%s", ls, pathTest.Res)
		}
	}
}
