package main

import (
	"encoding/json"
	"fmt"

	"github.com/signadot/ward"
	"github.com/signadot/ward/encode"
	"github.com/signadot/ward/parse"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a patch and at most one file to which to apply it", cli.ErrUsage)
	}
	p, err := getPatch(cfg, cc, args[0])
	if err != nil {
		return err
	}
	target, err := wrapFile(cfg.MainConfig, cc, fileArg(args, 1))
	if err != nil {
		return err
	}
	res, err := applyPatch(target, p, cfg.Merge)
	if err != nil {
		return fmt.Errorf("error patching with %s: %w", args[0], err)
	}
	if err := encode.Encode(res.Get(), cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func applyPatch(h *ward.Handle, p []byte, merge bool) (*ward.Handle, error) {
	if merge {
		return ward.MergePatch(h, p)
	}
	return ward.Patch(h, p)
}

// getPatch reads a patch in the input format and returns it as json.
func getPatch(cfg *PatchConfig, cc *cli.Context, arg string) ([]byte, error) {
	var (
		v   any
		err error
	)
	if cfg.String {
		v, err = parse.Parse([]byte(arg), cfg.parseOpts()...)
	} else {
		v, err = getObjFile(cc, arg, cfg.parseOpts()...)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: error decoding patch %s: %w", cli.ErrUsage, arg, err)
	}
	return json.Marshal(v)
}
