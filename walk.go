package ward

import (
	"slices"

	"github.com/signadot/ward/debug"
	"github.com/signadot/ward/ir"
)

// walk reconciles n against the canonical value v and returns the node for
// v: n itself when nothing changed, otherwise a replacement which shares
// every unchanged child with n and holds n's observers.
//
// Children are reconciled first, so a change deep in the tree replaces
// exactly the nodes on the path from the change up to n.
func walk(n *node, v any) *node {
	if !ir.IsComposite(n.value) && !ir.IsComposite(v) && ir.Equal(n.value, v) {
		return n
	}
	var changed map[string]*node
	for _, key := range n.keys {
		cv, ok := ir.Get(v, key)
		if !ok {
			continue
		}
		c := n.children[key]
		var nc *node
		if !n.owns(key, c) {
			// c has moved on to a newer parent; leave it and its
			// observers alone.
			if ir.Equal(c.value, cv) {
				continue
			}
			nc = create(n.t, cv, nil)
		} else {
			nc = walk(c, cv)
		}
		if nc == c {
			continue
		}
		if changed == nil {
			changed = make(map[string]*node)
		}
		changed[key] = nc
	}
	if !mustReplace(n, v, changed) {
		return n
	}

	reuse := make(map[string]*node, len(n.keys))
	for _, key := range n.keys {
		if c, ok := changed[key]; ok {
			reuse[key] = c
			continue
		}
		c := n.children[key]
		if _, ok := ir.Get(v, key); ok && n.owns(key, c) {
			reuse[key] = c
		}
	}
	res := create(n.t, v, reuse)
	res.parent, res.key = n.parent, n.key
	if debug.Walk() {
		debug.Logf("walk: replace %s at %q (%d changed children)\n", n.kind, n.path(), len(changed))
	}
	res.succeed(n)
	n.t.fire(res, external)
	return res
}

func mustReplace(n *node, v any, changed map[string]*node) bool {
	switch {
	case (n.value == nil) != (v == nil):
		return true
	case n.kind != ir.TypeOf(v):
		return true
	case !ir.IsComposite(n.value) || !ir.IsComposite(v):
		return true
	case !slices.Equal(n.keys, ir.Keys(v)):
		return true
	}
	return len(changed) != 0
}
