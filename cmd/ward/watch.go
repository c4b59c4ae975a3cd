package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signadot/ward"
	"github.com/signadot/ward/derive"
	"github.com/signadot/ward/libdiff"
	"github.com/signadot/ward/parse"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
)

func watch(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		cfg.Watch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: watch takes at most one file, got %v", cli.ErrUsage, args)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			cfg.logger().Warn("gops agent failed", "error", err)
		} else {
			defer agent.Close()
		}
	}
	r := cc.In
	if path := fileArg(args, 0); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	return watchStream(cfg, r, cc.Out)
}

// watchStream sets each document read from r into a single tree, writing
// the changes each one makes to w.
func watchStream(cfg *WatchConfig, r io.Reader, w io.Writer) error {
	var when *derive.Expr
	if cfg.When != "" {
		var err error
		when, err = derive.Compile(cfg.When)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	dec := parse.NewDecoder(r, cfg.parseOpts()...)
	colored := cfg.colorsFor(w)
	var (
		h      *ward.Handle
		subs   []*ward.Subscription
		doc    int
		werr   error
		seenAt = func(next *ward.Handle) { h = next }
	)
	defer func() {
		for _, sub := range subs {
			sub.Dispose()
		}
	}()
	for {
		v, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("error decoding document %d: %w", doc, err)
		}
		if h == nil {
			h, err = ward.Wrap(v)
			if err != nil {
				return err
			}
			subs = append(subs, ward.Observe(h, seenAt))
			subs = append(subs, libdiff.Observe(h, func(_ *ward.Handle, cs []libdiff.Change) {
				if werr != nil {
					return
				}
				_, werr = fmt.Fprintf(w, "# document %d\n", doc)
				if werr == nil {
					werr = writeChanges(w, cs, colored)
				}
			}))
			if when != nil {
				sub, err := derive.When(h, when, func(*ward.Handle) {
					if werr == nil {
						_, werr = fmt.Fprintf(w, "# %s became true at document %d\n", when, doc)
					}
				})
				if err != nil {
					return err
				}
				subs = append(subs, sub)
			}
			cfg.logger().Debug("watching", "keys", ward.Count(h))
			doc++
			continue
		}
		if _, err := h.Set(v); err != nil {
			return fmt.Errorf("error setting document %d: %w", doc, err)
		}
		if werr != nil {
			return werr
		}
		doc++
	}
	return nil
}
