package ward

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/ward/debug"
	"github.com/signadot/ward/ir"
)

// Patch applies an RFC 6902 JSON patch to the value of h and commits the
// result with a single Set.
func Patch(h *Handle, patch []byte) (*Handle, error) {
	if !h.valid() {
		return nil, fmt.Errorf("%w: patch of an invalid handle", ErrInvalidArgument)
	}
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, err
	}
	return applyJSON(h, "json-patch", ops.Apply)
}

// MergePatch applies an RFC 7386 JSON merge patch to the value of h and
// commits the result with a single Set.
func MergePatch(h *Handle, patch []byte) (*Handle, error) {
	if !h.valid() {
		return nil, fmt.Errorf("%w: merge patch of an invalid handle", ErrInvalidArgument)
	}
	return applyJSON(h, "merge-patch", func(doc []byte) ([]byte, error) {
		return jsonpatch.MergePatch(doc, patch)
	})
}

// MergePatchFrom returns the RFC 7386 merge patch turning the value of from
// into the value of to.
func MergePatchFrom(from, to *Handle) ([]byte, error) {
	if !from.valid() || !to.valid() {
		return nil, fmt.Errorf("%w: merge patch between invalid handles", ErrInvalidArgument)
	}
	a, err := json.Marshal(from.n.value)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(to.n.value)
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(a, b)
}

func applyJSON(h *Handle, name string, apply func([]byte) ([]byte, error)) (*Handle, error) {
	if debug.Walk() {
		debug.Logf("%s at %q\n", name, h.n.path())
	}
	d, err := json.Marshal(h.n.value)
	if err != nil {
		return nil, err
	}
	out, err := apply(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	dec := json.NewDecoder(bytes.NewReader(out))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	c, err := ir.Canon(v)
	if err != nil {
		return nil, err
	}
	return h.commit(c), nil
}
