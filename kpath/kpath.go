package kpath

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrPath = errors.New("bad path")

// KPath represents a kinded path. Kinded paths encode node kinds in the path
// syntax itself:
//   - "a.b" → Object accessed via ".b"
//   - "a.*" → Object field wildcard (matches all fields)
//   - "a[0]" → Array accessed via "[0]"
//   - "a[*]" → Array wildcard (matches all elements)
//
// The empty path, represented by a nil *KPath, addresses the root.
type KPath struct {
	Field    *string // Object field name
	FieldAll bool    // Object field wildcard .*
	Index    *int    // Array index
	IndexAll bool    // Array wildcard [*]
	Next     *KPath  // Next segment in path (nil for leaf)
}

// NewField returns a single segment path addressing an object field.
func NewField(name string) *KPath {
	return &KPath{Field: &name}
}

// NewIndex returns a single segment path addressing an array element.
func NewIndex(i int) *KPath {
	return &KPath{Index: &i}
}

// Join returns a fresh path made of the segments of ps in order.
func Join(ps ...*KPath) *KPath {
	var head, tail *KPath
	for _, p := range ps {
		for x := p; x != nil; x = x.Next {
			seg := &KPath{}
			*seg = *x
			seg.Next = nil
			if head == nil {
				head = seg
			} else {
				tail.Next = seg
			}
			tail = seg
		}
	}
	return head
}

// IsWild reports whether any segment of p is a wildcard.
func (p *KPath) IsWild() bool {
	for x := p; x != nil; x = x.Next {
		if x.FieldAll || x.IndexAll {
			return true
		}
	}
	return false
}

// String returns the kinded path string representation of this KPath.
//
//	KPath{Field: &"a", Next: &KPath{Field: &"b"}} → "a.b"
//	KPath{Field: &"a", Next: &KPath{Index: &0}} → "a[0]"
//	KPath{Field: &"a b"} → "'a b'"
func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		switch {
		case x.FieldAll:
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString("*")
		case x.Field != nil:
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(quoteField(*x.Field))
		case x.IndexAll:
			buf.WriteString("[*]")
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

// Parse parses a kinded path string into a KPath structure. A leading '$'
// is accepted and ignored. Fields containing special characters are
// written in single quotes, with \' escaping a quote.
//
// Examples:
//   - "a.b.c" → Object path with 3 segments
//   - "a[0][1]" → Array path with 3 segments
//   - "a[*].b" → Array wildcard then object
//   - "'a.b'.c" → Field "a.b" then field "c"
func Parse(p string) (*KPath, error) {
	p = strings.TrimPrefix(p, "$")
	if p == "" {
		return nil, nil
	}
	if p[0] != '.' && p[0] != '[' {
		p = "." + p
	}
	root := &KPath{}
	if err := parseFrag(p, root); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrPath, p, err)
	}
	return root, nil
}

// MustParse is like Parse but panics on error.
func MustParse(p string) *KPath {
	res, err := Parse(p)
	if err != nil {
		panic(err)
	}
	return res
}

func parseFrag(frag string, parent *KPath) error {
	var rest string
	switch frag[0] {
	case '.':
		field, r, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		if field == "*" && (len(frag) < 2 || frag[1] != '\'') {
			parent.FieldAll = true
		} else {
			parent.Field = &field
		}
		rest = r
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, all, err := parseIndex(frag[1 : i+1])
		if err != nil {
			return err
		}
		parent.IndexAll = all
		if !all {
			parent.Index = &index
		}
		rest = frag[i+2:]
	default:
		return fmt.Errorf("expected '.' or '['")
	}
	if len(rest) == 0 {
		return nil
	}
	next := &KPath{}
	if err := parseFrag(rest, next); err != nil {
		return err
	}
	parent.Next = next
	return nil
}

func parseIndex(is string) (index int, all bool, err error) {
	if len(is) == 1 && is[0] == '*' {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return 0, false, err
	}
	return int(u64), false, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == 0 {
			return "", "", fmt.Errorf("empty field")
		}
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch {
		case c == '\\' && !escaped:
			escaped = true
		case c == '\'' && !escaped:
			return string(res), frag[i+1:], nil
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

func quoteField(f string) string {
	if f != "" && f != "*" && strings.IndexAny(f, "'.*$[] \t\n\\") == -1 {
		return f
	}
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(f) + "'"
}
