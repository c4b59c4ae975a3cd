package ward

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/signadot/ward/ir"
	"github.com/signadot/ward/kpath"
)

// Handle is the public face of a node of a wrapped tree.
//
// A handle is a persistent snapshot: Set never changes the value seen
// through an existing handle, it returns a handle onto the resulting node.
// Handles compare by identity: two handles are == exactly when they refer
// to the same node, so an unchanged subtree keeps its handle across commits.
type Handle struct {
	n *node
}

func (h *Handle) valid() bool {
	return h != nil && h.n != nil
}

// Get returns a deep copy of the value held by h. The zero handle holds
// null.
func (h *Handle) Get() any {
	if !h.valid() {
		return nil
	}
	return ir.Clone(h.n.value)
}

// Set commits v at the position of h.
//
// If v is deeply equal to the current value, h itself is returned and no
// observer is notified. Otherwise the handle of the replacement node is
// returned, observers of h move to it and are notified, and ancestors
// being observed are rebuilt around it.
//
// v is copied; later changes to v are not seen by the tree.
func (h *Handle) Set(v any) (*Handle, error) {
	c, err := ir.Canon(v)
	if err != nil {
		return nil, err
	}
	return h.commit(c), nil
}

// commit is Set for a canonical value whose containers the tree may keep.
func (h *Handle) commit(v any) *Handle {
	n := h.n
	res := n
	n.t.batch(func() {
		res = walk(n, v)
		if res != n {
			n.t.fire(res, internal)
		}
	})
	return res.handle
}

// Kind returns the type of the value held by h.
func (h *Handle) Kind() ir.Type {
	return h.n.kind
}

// Keys returns the own keys of h: indices for arrays, sorted keys for
// objects, none for scalars.
func (h *Handle) Keys() []string {
	return slices.Clone(h.n.keys)
}

// Len returns the number of own keys of h.
func (h *Handle) Len() int {
	return len(h.n.keys)
}

// Child returns the handle of the child under key, or nil.
func (h *Handle) Child(key string) *Handle {
	c := h.n.children[key]
	if c == nil {
		return nil
	}
	return c.handle
}

// Field returns the handle of an object field, or nil.
func (h *Handle) Field(name string) *Handle {
	if h.n.kind != ir.ObjectType {
		return nil
	}
	return h.Child(name)
}

// Index returns the handle of an array element, or nil.
func (h *Handle) Index(i int) *Handle {
	if h.n.kind != ir.ArrayType || i < 0 || i >= len(h.n.keys) {
		return nil
	}
	return h.Child(strconv.Itoa(i))
}

// KPath returns the kinded path of h below the root it was reached from.
func (h *Handle) KPath() string {
	return h.n.path().String()
}

// Lookup navigates a kinded path such as "user.friends[0]" from h. It
// returns nil when nothing is at that path, and an error when the path is
// malformed or contains wildcards.
func (h *Handle) Lookup(p string) (*Handle, error) {
	kp, err := kpath.Parse(p)
	if err != nil {
		return nil, err
	}
	if kp.IsWild() {
		return nil, fmt.Errorf("%w: wildcard in lookup of %q", kpath.ErrPath, p)
	}
	n := h.n
	for x := kp; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			if n.kind != ir.ObjectType {
				return nil, nil
			}
			n = n.children[*x.Field]
		case x.Index != nil:
			if n.kind != ir.ArrayType {
				return nil, nil
			}
			n = n.children[strconv.Itoa(*x.Index)]
		}
		if n == nil {
			return nil, nil
		}
	}
	return n.handle, nil
}

// List collects the handles matching a kinded path, which may contain the
// wildcards ".*" and "[*]".
func (h *Handle) List(p string) ([]*Handle, error) {
	kp, err := kpath.Parse(p)
	if err != nil {
		return nil, err
	}
	return h.n.list(nil, kp), nil
}

func (n *node) list(dst []*Handle, kp *kpath.KPath) []*Handle {
	if kp == nil {
		return append(dst, n.handle)
	}
	switch {
	case kp.FieldAll:
		if n.kind != ir.ObjectType {
			return dst
		}
		for _, key := range n.keys {
			dst = n.children[key].list(dst, kp.Next)
		}
	case kp.IndexAll:
		if n.kind != ir.ArrayType {
			return dst
		}
		for _, key := range n.keys {
			dst = n.children[key].list(dst, kp.Next)
		}
	case kp.Field != nil:
		if n.kind != ir.ObjectType {
			return dst
		}
		if c := n.children[*kp.Field]; c != nil {
			dst = c.list(dst, kp.Next)
		}
	case kp.Index != nil:
		if n.kind != ir.ArrayType {
			return dst
		}
		if c := n.children[strconv.Itoa(*kp.Index)]; c != nil {
			dst = c.list(dst, kp.Next)
		}
	}
	return dst
}

// Seq returns the sequence operations of h. It reports false unless h holds
// an array.
func (h *Handle) Seq() (*Seq, bool) {
	if h.n.kind != ir.ArrayType {
		return nil, false
	}
	return &Seq{h: h}, true
}
