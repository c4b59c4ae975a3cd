package libdiff

import (
	"strconv"
	"strings"

	"github.com/signadot/ward"
	"github.com/signadot/ward/ir"
	"github.com/signadot/ward/kpath"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffArrayByIndex aligns the elements of two arrays and diffs them.
//
//  1. each element is summarized: its type for arrays, objects, null and
//     multi-line strings, its type and value for other scalars
//  2. the sequences of summaries are diffed as runes
//  3. elements matched by the rune diff are diffed recursively
//  4. a deletion directly followed by an insertion becomes a replacement,
//     the rest become deletions and insertions
func (d *differ) diffArrayByIndex(p *kpath.KPath, from, to *ward.Handle) {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	fi, ti, ri := 0, 0, 0
	var dels []int
	flush := func() {
		for _, i := range dels {
			d.add(deletion(index(p, ri), from.Index(i).Get()))
		}
		dels = nil
	}
	for i := range diffs {
		diff := &diffs[i]
		n := len([]rune(diff.Text))
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range n {
				dels = append(dels, fi)
				fi++
			}
		case diffpatch.DiffEqual:
			flush()
			for range n {
				d.diff(index(p, ri), from.Index(fi), to.Index(ti))
				ri++
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				if len(dels) != 0 {
					d.diff(index(p, ri), from.Index(dels[0]), to.Index(ti))
					dels = dels[1:]
				} else {
					d.add(insertion(index(p, ri), to.Index(ti).Get()))
				}
				ri++
				ti++
			}
		}
	}
	flush()
}

func mapValues(m map[string]rune, h *ward.Handle) []rune {
	rs := make([]rune, h.Len())
	for i := range rs {
		sum := summaryStr(h.Index(i))
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func summaryStr(h *ward.Handle) string {
	t := h.Kind()
	switch t {
	case ir.ObjectType, ir.ArrayType, ir.NullType:
		return t.String()
	}
	switch x := h.Get().(type) {
	case bool:
		return t.String() + "-" + strconv.FormatBool(x)
	case string:
		if strings.Contains(x, "\n") {
			return t.String() + "/m"
		}
		return t.String() + "-" + x
	case int64:
		return t.String() + "-" + strconv.FormatFloat(float64(x), 'g', -1, 64)
	case float64:
		return t.String() + "-" + strconv.FormatFloat(x, 'g', -1, 64)
	default:
		panic("type")
	}
}
