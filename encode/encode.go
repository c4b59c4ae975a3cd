package encode

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml"
	"github.com/signadot/ward/format"
	"github.com/signadot/ward/ir"
)

type EncState struct {
	indent int
	format format.Format

	w          *bufio.Writer
	skipIndent bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes the canonical value v to w, followed by a newline.
func Encode(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if !es.format.IsJSON() {
		es.indent = max(es.indent, 2)
	}
	es.w = bufio.NewWriter(w)
	var err error
	if es.format.IsJSON() {
		err = es.json(v, 0)
		es.writeString("\n")
	} else {
		err = es.yamlTop(v)
	}
	if err != nil {
		return err
	}
	return es.w.Flush()
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func (es *EncState) writeString(s string) {
	es.w.WriteString(s)
}

func (es *EncState) sep(t ir.Type, s string) {
	es.writeString(es.color(t, SepColor, s))
}

func (es *EncState) writeIndent(depth int) {
	if es.skipIndent {
		es.skipIndent = false
		return
	}
	es.writeString(strings.Repeat(" ", depth*es.indent))
}

func (es *EncState) json(v any, depth int) error {
	switch x := v.(type) {
	case map[string]any:
		if len(x) == 0 {
			es.sep(ir.ObjectType, "{}")
			return nil
		}
		es.sep(ir.ObjectType, "{")
		es.writeString("\n")
		for i, k := range ir.Keys(x) {
			es.writeIndent(depth + 1)
			d, _ := json.Marshal(k)
			es.writeString(es.color(ir.ObjectType, FieldColor, string(d)))
			es.sep(ir.ObjectType, ":")
			es.writeString(" ")
			if err := es.json(x[k], depth+1); err != nil {
				return fmt.Errorf("%s: %w", d, err)
			}
			if i < len(x)-1 {
				es.sep(ir.ObjectType, ",")
			}
			es.writeString("\n")
		}
		es.writeIndent(depth)
		es.sep(ir.ObjectType, "}")
	case []any:
		if len(x) == 0 {
			es.sep(ir.ArrayType, "[]")
			return nil
		}
		es.sep(ir.ArrayType, "[")
		es.writeString("\n")
		for i, e := range x {
			es.writeIndent(depth + 1)
			if err := es.json(e, depth+1); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
			if i < len(x)-1 {
				es.sep(ir.ArrayType, ",")
			}
			es.writeString("\n")
		}
		es.writeIndent(depth)
		es.sep(ir.ArrayType, "]")
	default:
		d, err := json.Marshal(v)
		if err != nil {
			return err
		}
		es.writeString(es.color(ir.TypeOf(v), ValueColor, string(d)))
	}
	return nil
}

func (es *EncState) yamlTop(v any) error {
	switch x := v.(type) {
	case map[string]any:
		if len(x) != 0 {
			return es.yamlMap(x, 0)
		}
	case []any:
		if len(x) != 0 {
			return es.yamlArray(x, 0)
		}
	}
	return es.yamlValue(v, 0, false)
}

// yamlValue writes v after a key or a dash, on the same line when it is a
// scalar or an empty container and on the following lines otherwise.
func (es *EncState) yamlValue(v any, depth int, space bool) error {
	if space {
		es.writeString(" ")
	}
	switch x := v.(type) {
	case map[string]any:
		if len(x) == 0 {
			es.sep(ir.ObjectType, "{}")
			es.writeString("\n")
			return nil
		}
		es.writeString("\n")
		return es.yamlMap(x, depth)
	case []any:
		if len(x) == 0 {
			es.sep(ir.ArrayType, "[]")
			es.writeString("\n")
			return nil
		}
		es.writeString("\n")
		return es.yamlArray(x, depth)
	}
	s, err := yamlScalar(v)
	if err != nil {
		return err
	}
	es.writeString(es.color(ir.TypeOf(v), ValueColor, s))
	es.writeString("\n")
	return nil
}

func (es *EncState) yamlMap(m map[string]any, depth int) error {
	for _, k := range ir.Keys(m) {
		es.writeIndent(depth)
		key, err := yamlScalar(k)
		if err != nil {
			return err
		}
		es.writeString(es.color(ir.ObjectType, FieldColor, key))
		es.sep(ir.ObjectType, ":")
		if err := es.yamlValue(m[k], depth+1, !isBlock(m[k])); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func (es *EncState) yamlArray(a []any, depth int) error {
	for i, e := range a {
		es.writeIndent(depth)
		es.sep(ir.ArrayType, "-")
		var err error
		switch x := e.(type) {
		case map[string]any:
			if len(x) == 0 {
				break
			}
			// the first line of a block element follows the dash
			es.writeString(strings.Repeat(" ", es.indent-1))
			es.skipIndent = true
			err = es.yamlMap(x, depth+1)
		case []any:
			if len(x) == 0 {
				break
			}
			es.writeString(strings.Repeat(" ", es.indent-1))
			es.skipIndent = true
			err = es.yamlArray(x, depth+1)
		}
		if !isBlock(e) {
			err = es.yamlValue(e, depth+1, true)
		}
		if err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return nil
}

// isBlock reports whether v is written on lines of its own.
func isBlock(v any) bool {
	switch x := v.(type) {
	case map[string]any:
		return len(x) != 0
	case []any:
		return len(x) != 0
	}
	return false
}

func yamlScalar(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		switch {
		case math.IsNaN(x):
			return ".nan", nil
		case math.IsInf(x, 1):
			return ".inf", nil
		case math.IsInf(x, -1):
			return "-.inf", nil
		}
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s, nil
	case string:
		return yamlString(x)
	default:
		return "", fmt.Errorf("%w: %T", ir.ErrUnsupported, v)
	}
}

// yamlString writes s plain or quoted as goccy would, falling back to a
// double quoted json string when that form does not read back as s.
func yamlString(s string) (string, error) {
	if strings.ContainsFunc(s, unicode.IsControl) {
		return quoted(s)
	}
	d, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	res := strings.TrimSuffix(string(d), "\n")
	var back any
	if err := yaml.Unmarshal([]byte(res), &back); err != nil || back != s {
		return quoted(s)
	}
	return res, nil
}

func quoted(s string) (string, error) {
	d, err := json.Marshal(s)
	return string(d), err
}
