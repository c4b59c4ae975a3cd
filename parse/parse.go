package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/signadot/ward/ir"
)

// Parse parses a single document.
func Parse(d []byte, opts ...ParseOption) (any, error) {
	dec := newDecoder(bytes.NewReader(d), newOpts(opts))
	v, err := dec.Decode()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}
	if err != nil {
		return nil, err
	}
	if _, err := dec.Decode(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("more than one document")
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return v, nil
}

// Decoder reads a stream of documents: YAML documents separated by "---",
// or concatenated JSON values.
type Decoder struct {
	next func() (any, error)
}

// NewDecoder returns a Decoder reading documents from r.
func NewDecoder(r io.Reader, opts ...ParseOption) *Decoder {
	return newDecoder(r, newOpts(opts))
}

func newDecoder(r io.Reader, o *parseOpts) *Decoder {
	if o.format.IsJSON() {
		jd := json.NewDecoder(r)
		jd.UseNumber()
		return &Decoder{next: func() (any, error) {
			var v any
			err := jd.Decode(&v)
			return v, err
		}}
	}
	yd := yaml.NewDecoder(r)
	return &Decoder{next: func() (any, error) {
		var v any
		err := yd.Decode(&v)
		return v, err
	}}
}

// Decode returns the next document of the stream, or io.EOF at the end.
func (d *Decoder) Decode() (any, error) {
	v, err := d.next()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	res, err := ir.Canon(normalize(v))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return res, nil
}

// normalize turns the maps with non string keys YAML allows into maps with
// string keys.
func normalize(v any) any {
	switch x := v.(type) {
	case map[any]any:
		res := make(map[string]any, len(x))
		for k, e := range x {
			res[fmt.Sprint(k)] = normalize(e)
		}
		return res
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	default:
		return v
	}
}
