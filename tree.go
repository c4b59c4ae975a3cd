package ward

import (
	"slices"

	"github.com/signadot/ward/debug"
)

// tree is the context shared by every node of one lineage, that is every
// node built from a single Wrap.
type tree struct {
	queue   []event
	busy    bool
	onPanic func(any)
}

type event struct {
	sh *shifter
	ch channel
	h  *Handle
}

// Option configures a wrapped tree.
type Option func(*tree)

// WithPanicHandler isolates observers from each other: a panicking observer
// is recovered, fn receives the recovered value and delivery continues.
//
// Without a handler the panic propagates out of the Set which started the
// delivery and pending notifications of that delivery are dropped.
func WithPanicHandler(fn func(any)) Option {
	return func(t *tree) { t.onPanic = fn }
}

func newTree(opts ...Option) *tree {
	t := &tree{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// fire queues a notification of n on channel ch. Observers are looked up
// when the notification is delivered.
func (t *tree) fire(n *node, ch channel) {
	if n.sh == nil {
		return
	}
	t.queue = append(t.queue, event{sh: n.sh, ch: ch, h: n.handle})
}

// batch runs fn and then delivers queued notifications in order. Nested
// batches, including commits made by observers, only queue: the outermost
// batch delivers.
func (t *tree) batch(fn func()) {
	if t.busy {
		fn()
		return
	}
	t.busy = true
	ok := false
	defer func() {
		t.busy = false
		if !ok {
			t.queue = nil
		}
	}()
	fn()
	for len(t.queue) > 0 {
		ev := t.queue[0]
		t.queue[0] = event{}
		t.queue = t.queue[1:]
		t.deliver(ev)
	}
	t.queue = nil
	ok = true
}

func (t *tree) deliver(ev event) {
	subs := slices.Clone(ev.sh.observers[ev.ch])
	if debug.Notify() && len(subs) != 0 {
		debug.Logf("notify %s at %q to %d observers\n", ev.ch, ev.h.n.path(), len(subs))
	}
	for _, sub := range subs {
		if sub.disposed {
			continue
		}
		t.call(sub, ev.h)
	}
}

func (t *tree) call(sub *Subscription, h *Handle) {
	if t.onPanic != nil {
		defer func() {
			if r := recover(); r != nil {
				t.onPanic(r)
			}
		}()
	}
	sub.fn(h)
}
