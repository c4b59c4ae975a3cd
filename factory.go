package ward

import (
	"github.com/signadot/ward/ir"
)

// create builds a node for the canonical value v.
//
// For arrays and objects, the child under each key is taken from reuse when
// present and built from v otherwise. The node's value is assembled from
// the children's values into a fresh container, so the result never aliases
// v's containers.
func create(t *tree, v any, reuse map[string]*node) *node {
	n := &node{t: t, kind: ir.TypeOf(v)}
	n.handle = &Handle{n: n}
	switch x := v.(type) {
	case []any:
		n.keys = ir.Keys(x)
		n.children = make(map[string]*node, len(x))
		vals := make([]any, len(x))
		for i, key := range n.keys {
			vals[i] = n.adopt(key, x[i], reuse).value
		}
		n.value = vals
	case map[string]any:
		n.keys = ir.Keys(x)
		n.children = make(map[string]*node, len(x))
		vals := make(map[string]any, len(x))
		for _, key := range n.keys {
			vals[key] = n.adopt(key, x[key], reuse).value
		}
		n.value = vals
	default:
		n.value = v
	}
	return n
}

func (n *node) adopt(key string, v any, reuse map[string]*node) *node {
	child, ok := reuse[key]
	if !ok {
		child = create(n.t, v, nil)
	}
	child.parent = n
	child.key = key
	n.children[key] = child
	return child
}
