package libdiff

import (
	"encoding/json"
	"fmt"

	"github.com/signadot/ward/kpath"
)

// Change is one edit of a diff.
//
// Path is the kinded path of the edited location. Inside arrays, indices
// refer to the array as edited by the preceding changes of the same diff,
// so applying the changes in order turns the old value into the new one.
type Change struct {
	Op   Op
	Path string
	From any
	To   any

	// Edits holds the text edits of a replaced string when the strings are
	// close enough for them to be useful.
	Edits []Edit
}

func insertion(p *kpath.KPath, to any) Change {
	return Change{Op: Insert, Path: p.String(), To: to}
}

func deletion(p *kpath.KPath, from any) Change {
	return Change{Op: Delete, Path: p.String(), From: from}
}

func replacement(p *kpath.KPath, from, to any) Change {
	c := Change{Op: Replace, Path: p.String(), From: from, To: to}
	fs, fok := from.(string)
	ts, tok := to.(string)
	if fok && tok {
		c.Edits = diffString(fs, ts)
	}
	return c
}

func (c Change) String() string {
	path := c.Path
	if path == "" {
		path = "$"
	}
	switch c.Op {
	case Insert:
		return fmt.Sprintf("%s %s: %s", c.Op.Sign(), path, text(c.To))
	case Delete:
		return fmt.Sprintf("%s %s: %s", c.Op.Sign(), path, text(c.From))
	default:
		return fmt.Sprintf("%s %s: %s -> %s", c.Op.Sign(), path, text(c.From), text(c.To))
	}
}

func text(v any) string {
	d, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(d)
}
