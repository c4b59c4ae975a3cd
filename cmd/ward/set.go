package main

import (
	"fmt"
	"strconv"

	"github.com/signadot/ward"
	"github.com/signadot/ward/encode"
	"github.com/signadot/ward/ir"
	"github.com/signadot/ward/kpath"
	"github.com/signadot/ward/parse"

	"github.com/scott-cotton/cli"
)

type assignment struct {
	path string
	val  string
}

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: set takes at most one file, got %v", cli.ErrUsage, args)
	}
	if len(cfg.Sets) == 0 {
		return fmt.Errorf("%w: set requires at least one -e path=val", cli.ErrUsage)
	}
	h, err := wrapFile(cfg.MainConfig, cc, fileArg(args, 0))
	if err != nil {
		return err
	}
	res, n, err := applySets(cfg.MainConfig, h, cfg.Sets)
	if err != nil {
		return err
	}
	if err := encode.Encode(res.Get(), cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if !cfg.Quiet && !cfg.outFormat().IsJSON() {
		fmt.Fprintf(cc.Out, "# %d notifications\n", n)
	}
	return nil
}

// applySets performs each assignment on the current root of h and returns
// the final root along with the number of notifications the root observer
// received.
func applySets(cfg *MainConfig, h *ward.Handle, sets []assignment) (*ward.Handle, int, error) {
	cur, n := h, 0
	sub := ward.Observe(h, func(next *ward.Handle) {
		cur = next
		n++
	})
	defer sub.Dispose()
	for _, a := range sets {
		var v any
		if a.val != "" {
			var err error
			v, err = parse.Parse([]byte(a.val), cfg.parseOpts()...)
			if err != nil {
				return nil, n, fmt.Errorf("%w: value of %s: %w", cli.ErrUsage, a.path, err)
			}
		}
		if err := setPath(cur, a.path, v); err != nil {
			return nil, n, err
		}
		cfg.logger().Debug("set", "path", a.path, "notifications", n)
	}
	return cur, n, nil
}

// setPath sets v at path below root. A missing last segment is created in
// its parent with Assign.
func setPath(root *ward.Handle, path string, v any) error {
	kp, err := kpath.Parse(path)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if kp.IsWild() {
		return fmt.Errorf("%w: cannot set wildcard path %q", cli.ErrUsage, path)
	}
	target, err := root.Lookup(path)
	if err != nil {
		return err
	}
	if target != nil {
		_, err := target.Set(v)
		return err
	}
	parent, last := splitLast(kp)
	ph, err := root.Lookup(parent.String())
	if err != nil {
		return err
	}
	if ph == nil {
		return fmt.Errorf("nothing at %q to hold %q", parent, path)
	}
	var key string
	switch {
	case last.Field != nil && ph.Kind() == ir.ObjectType:
		key = *last.Field
	case last.Index != nil && ph.Kind() == ir.ArrayType:
		key = strconv.Itoa(*last.Index)
	default:
		return fmt.Errorf("cannot set %q in %s at %q", last, ph.Kind(), parent)
	}
	_, err = ward.Assign(ph, map[string]any{key: v})
	return err
}

func splitLast(kp *kpath.KPath) (parent, last *kpath.KPath) {
	if kp.Next == nil {
		return nil, kp
	}
	parent = kpath.Join(kp)
	x := parent
	for x.Next.Next != nil {
		x = x.Next
	}
	last = x.Next
	x.Next = nil
	return parent, last
}

func assign(cfg *AssignConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Assign.Parse(cc, args)
	if err != nil {
		cfg.Assign.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Target == "" || len(args) == 0 {
		return fmt.Errorf("%w: assign requires -t <target> and at least one source", cli.ErrUsage)
	}
	target, err := wrapFile(cfg.MainConfig, cc, cfg.Target)
	if err != nil {
		return err
	}
	sources := make([]any, 0, len(args))
	for _, arg := range args {
		v, err := getObjFile(cc, arg, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		sources = append(sources, v)
	}
	res, err := ward.Assign(target, sources...)
	if err != nil {
		return fmt.Errorf("error assigning into %s: %w", cfg.Target, err)
	}
	if err := encode.Encode(res.Get(), cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
