package libdiff

// Reverse returns the changes undoing changes: applying changes and then
// Reverse(changes) gives back the original value.
func Reverse(changes []Change) []Change {
	res := make([]Change, len(changes))
	for i, c := range changes {
		r := Change{Op: c.Op.reverse(), Path: c.Path, From: c.To, To: c.From}
		for _, e := range c.Edits {
			if !e.Keep {
				e.Op = e.Op.reverse()
			}
			r.Edits = append(r.Edits, e)
		}
		res[len(changes)-1-i] = r
	}
	return res
}

func (op Op) reverse() Op {
	switch op {
	case Insert:
		return Delete
	case Delete:
		return Insert
	default:
		return op
	}
}
