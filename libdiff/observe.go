package libdiff

import "github.com/signadot/ward"

// Observe registers fn to be called with the new handle and the changes
// made each time the node of h is replaced. Replacements which change
// nothing, as seen by Diff, are not reported.
func Observe(h *ward.Handle, fn func(*ward.Handle, []Change)) *ward.Subscription {
	prev := h
	return ward.Observe(h, func(next *ward.Handle) {
		changes := Diff(prev, next)
		prev = next
		if len(changes) != 0 {
			fn(next, changes)
		}
	})
}
