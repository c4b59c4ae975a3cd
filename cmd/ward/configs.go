package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/signadot/ward/encode"
	"github.com/signadot/ward/format"
	"github.com/signadot/ward/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	Verbose bool `cli:"name=v aliases=verbose desc='log debug messages'"`
	Indent  int  `cli:"name=indent desc='indentation width of the output'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Log *slog.Logger

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) inFormat() format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if cfg.J {
		return format.JSONFormat
	}
	return format.YAMLFormat
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if cfg.J {
		return format.JSONFormat
	}
	return format.YAMLFormat
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.ParseFormat(cfg.inFormat())}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{encode.EncodeFormat(cfg.outFormat())}
	if cfg.Indent > 0 {
		res = append(res, encode.EncodeIndent(cfg.Indent))
	}
	if cfg.colorsFor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colorsFor reports whether output to w is colored: -color decides when
// given, otherwise colors are used on terminals.
func (cfg *MainConfig) colorsFor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			if opt.Value != nil {
				return false
			}
			break
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.Log == nil {
		cfg.Log = newLogger(os.Stderr, cfg.Verbose)
	}
	return cfg.Log
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type KeysConfig struct {
	*MainConfig

	Keys *cli.Command
}

type SetConfig struct {
	*MainConfig
	Sets  []assignment
	Quiet bool `cli:"name=q desc='do not report the notification count'"`

	Set *cli.Command
}

type AssignConfig struct {
	*MainConfig
	Target string `cli:"name=t aliases=target desc='file holding the assignment target'"`

	Assign *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge  bool `cli:"name=merge desc='the patch is a json merge patch'"`
	String bool `cli:"name=s desc='patch arg as string'"`

	Patch *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Merge   bool `cli:"name=merge desc='output a json merge patch'"`

	Diff *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Exprs []string
	At    string `cli:"name=at desc='kinded path of the value to evaluate against'"`

	Eval *cli.Command
}

type WatchConfig struct {
	*MainConfig
	Gops bool   `cli:"name=gops desc='start a gops diagnostics agent'"`
	When string `cli:"name=when desc='report when this expression becomes true'"`

	Watch *cli.Command
}
