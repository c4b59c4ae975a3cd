package libdiff

// Op is the kind of a change.
type Op int

const (
	Insert Op = iota
	Delete
	Replace
)

func (op Op) String() string {
	switch op {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return "<unknown op>"
	}
}

// Sign returns the one character marker of op used in diff listings.
func (op Op) Sign() string {
	switch op {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return "~"
	}
}
