package ward

import (
	"maps"
	"slices"

	"github.com/signadot/ward/debug"
	"github.com/signadot/ward/ir"
)

type channel int

const (
	// internal carries a child's replacement up to its parent.
	internal channel = iota
	// external carries replacements to user observers.
	external
)

func (c channel) String() string {
	switch c {
	case internal:
		return "internal"
	case external:
		return "external"
	default:
		return "<unknown channel>"
	}
}

// shifter is the subscription record of a node. When a node is replaced the
// shifter shifts to the replacement, carrying its observers along.
type shifter struct {
	owner     *node
	observers [2][]*Subscription

	// subscriptions to the internal channel of owner's children, by key
	downstream map[string]*Subscription
}

// Subscription is a registered observer. Dispose unregisters it.
type Subscription struct {
	sh       *shifter
	ch       channel
	fn       func(*Handle)
	disposed bool
}

func (sh *shifter) active() bool {
	return len(sh.observers[internal]) != 0 || len(sh.observers[external]) != 0
}

func (n *node) addObserver(fn func(*Handle), ch channel) *Subscription {
	if n.sh == nil {
		n.sh = &shifter{owner: n}
	}
	sh := n.sh
	wasActive := sh.active()
	sub := &Subscription{sh: sh, ch: ch, fn: fn}
	sh.observers[ch] = append(sh.observers[ch], sub)
	if debug.Subscribe() {
		debug.Logf("subscribe %s at %q\n", ch, n.path())
	}
	if !wasActive {
		sh.sync()
	}
	return sub
}

// Dispose unregisters the observer. Once a node has no observer left on
// either channel, its subscriptions to its children are disposed as well.
// Dispose may be called more than once and on a nil Subscription.
func (s *Subscription) Dispose() {
	if s == nil || s.disposed {
		return
	}
	s.disposed = true
	sh := s.sh
	sh.observers[s.ch] = slices.DeleteFunc(sh.observers[s.ch], func(o *Subscription) bool {
		return o == s
	})
	if len(sh.observers[s.ch]) == 0 {
		sh.observers[s.ch] = nil
	}
	if debug.Subscribe() {
		debug.Logf("dispose %s at %q\n", s.ch, sh.owner.path())
	}
	if !sh.active() {
		sh.teardown()
	}
}

func (sh *shifter) teardown() {
	disposeAll(slices.Collect(maps.Values(sh.downstream)))
	sh.downstream = nil
	if sh.owner.sh == sh {
		sh.owner.sh = nil
	}
}

func disposeAll(subs []*Subscription) {
	for _, sub := range subs {
		sub.Dispose()
	}
}

// sync makes the downstream subscriptions match the owner's current
// children: one internal subscription per child while the shifter is
// active, none otherwise.
func (sh *shifter) sync() {
	if !sh.active() {
		sh.teardown()
		return
	}
	n := sh.owner
	for key, sub := range sh.downstream {
		c := n.children[key]
		if c != nil && c.sh == sub.sh && !sub.disposed {
			continue
		}
		delete(sh.downstream, key)
		sub.Dispose()
	}
	for _, key := range n.keys {
		if _, ok := sh.downstream[key]; ok {
			continue
		}
		if sh.downstream == nil {
			sh.downstream = make(map[string]*Subscription, len(n.keys))
		}
		sh.downstream[key] = n.children[key].addObserver(sh.watchKey(key), internal)
	}
}

// succeed makes n the successor of old: old's shifter, if any, moves to n
// and its child subscriptions follow n's children.
func (n *node) succeed(old *node) {
	sh := old.sh
	if sh == nil {
		return
	}
	old.sh = nil
	n.sh = sh
	sh.owner = n
	sh.sync()
}

// watchKey returns the callback receiving replacements of the child under
// key. It rebuilds the owner around the new child, every other child being
// reused, and notifies external then internal observers of the owner.
func (sh *shifter) watchKey(key string) func(*Handle) {
	return func(h *Handle) {
		owner := sh.owner
		child := h.n
		if owner.children[key] == child {
			return
		}
		v := ir.ShallowClone(owner.value)
		ir.Put(v, key, child.value)
		reuse := maps.Clone(owner.children)
		reuse[key] = child
		res := create(owner.t, v, reuse)
		res.parent, res.key = owner.parent, owner.key
		if debug.Walk() {
			debug.Logf("bubble: rebuild %s at %q for child %q\n", owner.kind, owner.path(), key)
		}
		res.succeed(owner)
		owner.t.fire(res, external)
		owner.t.fire(res, internal)
	}
}
