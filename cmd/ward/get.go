package main

import (
	"fmt"
	"io"

	"github.com/signadot/ward"
	"github.com/signadot/ward/encode"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: get requires a kinded path and at most one file", cli.ErrUsage)
	}
	h, err := wrapFile(cfg.MainConfig, cc, fileArg(args, 1))
	if err != nil {
		return err
	}
	return getPath(cfg.MainConfig, cc.Out, h, args[0])
}

func getPath(cfg *MainConfig, w io.Writer, h *ward.Handle, path string) error {
	res, err := h.Lookup(path)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if res == nil {
		// don't encode anything and don't yell either
		cfg.logger().Debug("nothing at path", "path", path)
		return nil
	}
	if err := encode.Encode(res.Get(), w, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		cfg.Keys.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) > 2 {
		return fmt.Errorf("%w: keys takes at most a kinded path and a file", cli.ErrUsage)
	}
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	h, err := wrapFile(cfg.MainConfig, cc, fileArg(args, 1))
	if err != nil {
		return err
	}
	return listKeys(cc.Out, h, path)
}

func listKeys(w io.Writer, h *ward.Handle, path string) error {
	res, err := h.Lookup(path)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for _, k := range ward.Keys(res) {
		if _, err := fmt.Fprintln(w, k); err != nil {
			return err
		}
	}
	return nil
}
