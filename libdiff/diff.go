// Package libdiff computes structural diffs between handles of wrapped
// trees.
//
// Subtrees shared by both sides are recognized by handle identity and never
// descended into, so the cost of a diff between two versions of a tree is
// proportional to what changed between them.
package libdiff

import (
	"github.com/signadot/ward"
	"github.com/signadot/ward/ir"
	"github.com/signadot/ward/kpath"
)

type differ struct {
	changes []Change
}

// Diff returns the changes turning the value of from into the value of to.
// A nil from stands for an absent value, and so does a nil to.
func Diff(from, to *ward.Handle) []Change {
	d := &differ{}
	switch {
	case from == to:
	case from == nil:
		d.add(insertion(nil, to.Get()))
	case to == nil:
		d.add(deletion(nil, from.Get()))
	default:
		d.diff(nil, from, to)
	}
	return d.changes
}

func (d *differ) add(c Change) {
	d.changes = append(d.changes, c)
}

func (d *differ) diff(p *kpath.KPath, from, to *ward.Handle) {
	if from == to {
		return
	}
	fk, tk := from.Kind(), to.Kind()
	switch {
	case fk == ir.ObjectType && tk == ir.ObjectType:
		d.diffObject(p, from, to)
	case fk == ir.ArrayType && tk == ir.ArrayType:
		d.diffArrayByIndex(p, from, to)
	default:
		fv, tv := from.Get(), to.Get()
		if !ir.Equal(fv, tv) {
			d.add(replacement(p, fv, tv))
		}
	}
}

// diffObject walks the sorted keys of both sides together.
func (d *differ) diffObject(p *kpath.KPath, from, to *ward.Handle) {
	fks, tks := from.Keys(), to.Keys()
	i, j := 0, 0
	for i < len(fks) || j < len(tks) {
		switch {
		case j == len(tks) || (i < len(fks) && fks[i] < tks[j]):
			d.add(deletion(field(p, fks[i]), from.Child(fks[i]).Get()))
			i++
		case i == len(fks) || tks[j] < fks[i]:
			d.add(insertion(field(p, tks[j]), to.Child(tks[j]).Get()))
			j++
		default:
			d.diff(field(p, fks[i]), from.Child(fks[i]), to.Child(tks[j]))
			i++
			j++
		}
	}
}

func field(p *kpath.KPath, name string) *kpath.KPath {
	return kpath.Join(p, kpath.NewField(name))
}

func index(p *kpath.KPath, i int) *kpath.KPath {
	return kpath.Join(p, kpath.NewIndex(i))
}
