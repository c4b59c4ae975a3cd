package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/ward"
	"github.com/signadot/ward/libdiff"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	from, err := wrapFile(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	v, err := getObjFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	// setting the second document into the first tree shares whatever
	// did not change, which the diff then skips.
	to, err := from.Set(v)
	if err != nil {
		return err
	}
	differs, err := diffHandles(cfg, cc.Out, from, to)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffHandles(cfg *DiffConfig, w io.Writer, from, to *ward.Handle) (bool, error) {
	if cfg.Reverse {
		from, to = to, from
	}
	if cfg.Merge {
		p, err := ward.MergePatchFrom(from, to)
		if err != nil {
			return false, err
		}
		if string(p) == "{}" {
			return false, nil
		}
		_, err = fmt.Fprintf(w, "%s\n", p)
		return true, err
	}
	changes := libdiff.Diff(from, to)
	if len(changes) == 0 {
		return false, nil
	}
	cfg.logger().Debug("diff", "changes", len(changes))
	return true, writeChanges(w, changes, cfg.colorsFor(w))
}

var opColors = map[libdiff.Op]color.Attribute{
	libdiff.Insert:  color.FgGreen,
	libdiff.Delete:  color.FgRed,
	libdiff.Replace: color.FgYellow,
}

// writeChanges writes one line per change, followed by an inline rendering
// of the text edits of replaced strings.
func writeChanges(w io.Writer, changes []libdiff.Change, colored bool) error {
	paint := func(op libdiff.Op, s string) string {
		if !colored {
			return s
		}
		c := color.New(opColors[op])
		c.EnableColor()
		return c.Sprint(s)
	}
	for _, c := range changes {
		if _, err := fmt.Fprintln(w, paint(c.Op, c.String())); err != nil {
			return err
		}
		if len(c.Edits) == 0 {
			continue
		}
		buf := &strings.Builder{}
		for _, e := range c.Edits {
			switch {
			case e.Keep:
				buf.WriteString(e.Text)
			case e.Op == libdiff.Insert:
				buf.WriteString(paint(e.Op, "{+"+e.Text+"+}"))
			default:
				buf.WriteString(paint(e.Op, "[-"+e.Text+"-]"))
			}
		}
		if _, err := fmt.Fprintf(w, "    %s\n", buf.String()); err != nil {
			return err
		}
	}
	return nil
}
