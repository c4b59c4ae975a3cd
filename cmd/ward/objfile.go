package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/ward"
	"github.com/signadot/ward/parse"

	"github.com/scott-cotton/cli"
)

func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (any, error) {
	var (
		r io.Reader
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return parse.Parse(d, opts...)
}

// wrapFile reads the document at path, "-" being the command input, and
// wraps it.
func wrapFile(cfg *MainConfig, cc *cli.Context, path string) (*ward.Handle, error) {
	v, err := getObjFile(cc, path, cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	cfg.logger().Debug("loaded", "file", path)
	return ward.Wrap(v)
}

// fileArg returns args[i], or "-" when there are not enough arguments.
func fileArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return "-"
}
