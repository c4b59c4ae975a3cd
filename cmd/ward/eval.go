package main

import (
	"fmt"
	"io"

	"github.com/signadot/ward"
	"github.com/signadot/ward/derive"
	"github.com/signadot/ward/encode"

	"github.com/scott-cotton/cli"
)

func eval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		cfg.Eval.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(cfg.Exprs) == 0 {
		return fmt.Errorf("%w: eval requires at least one -e expr", cli.ErrUsage)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: eval takes at most one file, got %v", cli.ErrUsage, args)
	}
	h, err := wrapFile(cfg.MainConfig, cc, fileArg(args, 0))
	if err != nil {
		return err
	}
	return evalExprs(cfg, cc.Out, h)
}

func evalExprs(cfg *EvalConfig, w io.Writer, h *ward.Handle) error {
	at, err := h.Lookup(cfg.At)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if at == nil {
		return fmt.Errorf("nothing at %q", cfg.At)
	}
	for i, src := range cfg.Exprs {
		e, err := derive.Compile(src)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		v, err := e.Eval(at)
		if err != nil {
			return err
		}
		if i > 0 && !cfg.outFormat().IsJSON() {
			if err := writeSep(w); err != nil {
				return err
			}
		}
		if err := encode.Encode(v, w, cfg.encOpts(w)...); err != nil {
			return fmt.Errorf("error encoding result of %s: %w", e, err)
		}
	}
	return nil
}

func writeSep(w io.Writer) error {
	_, err := w.Write([]byte("---\n"))
	if err != nil {
		return fmt.Errorf("unable to write separator: %w", err)
	}
	return nil
}
