package ward

import (
	"slices"

	"github.com/signadot/ward/ir"
	"github.com/signadot/ward/kpath"
)

// node is the unit of a wrapped tree. Nodes are immutable once built: a
// commit builds replacement nodes and moves the shifter over, it never
// edits a node in place.
type node struct {
	t        *tree
	kind     ir.Type
	value    any
	keys     []string
	children map[string]*node

	// non owning, used to report positions
	parent *node
	key    string

	sh     *shifter
	handle *Handle
}

// path returns the position of n below the root of its lineage.
func (n *node) path() *kpath.KPath {
	var segs []*kpath.KPath
	for x := n; x.parent != nil; x = x.parent {
		if x.parent.kind == ir.ArrayType {
			i, _ := ir.ParseIndex(x.key)
			segs = append(segs, kpath.NewIndex(i))
			continue
		}
		segs = append(segs, kpath.NewField(x.key))
	}
	slices.Reverse(segs)
	return kpath.Join(segs...)
}

// owns reports whether c is the current child of n under key.
func (n *node) owns(key string, c *node) bool {
	return n.children[key] == c && c.parent == n
}
