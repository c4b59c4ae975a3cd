package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "ward").
		WithSynopsis("ward [opts] command [opts]").
		WithDescription("ward is a tool for working with observable documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return wardMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			KeysCommand(cfg),
			SetCommand(cfg),
			AssignCommand(cfg),
			PatchCommand(cfg),
			DiffCommand(cfg),
			EvalCommand(cfg),
			WatchCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <kpath> [file]").
		WithDescription("print the value at a kinded path such as a.b[0]").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func KeysCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &KeysConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Keys, "keys").
		WithAliases("k").
		WithSynopsis("keys [kpath] [file]").
		WithDescription("list the keys of the object or array at a path").
		WithRun(func(cc *cli.Context, args []string) error {
			return keys(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "e",
			Description: "set the value at path",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.setOpt), "(path=val)"),
		})
	return cli.NewCommandAt(&cfg.Set, "set").
		WithAliases("s").
		WithSynopsis("set [-e path=val [ -e path2=val2 ]...] [file]").
		WithDescription(setDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

const setDescription = `set applies assignments to a document one at a time.

Each value is parsed in the input format, so '-e a.b=3' sets a number and
'-e a.b="3"' a string. Paths to missing fields or indices are created in
their parent. The resulting document is printed, followed by a comment with
the number of notifications the document's root observer received.`

func (cfg *SetConfig) setOpt(_ *cli.Context, a string) (any, error) {
	path, val, ok := strings.Cut(a, "=")
	if !ok {
		return nil, fmt.Errorf("%w: expected path=val, got %q", cli.ErrUsage, a)
	}
	cfg.Sets = append(cfg.Sets, assignment{path: path, val: val})
	return a, nil
}

func AssignCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AssignConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Assign, "assign").
		WithAliases("a").
		WithSynopsis("assign -t <target> <source>...").
		WithDescription("assign the entries of the sources into the target in one update").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return assign(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [-merge] [-s] <patch> [file]").
		WithDescription("apply a json patch (RFC 6902) or json merge patch (RFC 7386)").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-r] [-merge] a b").
		WithDescription("diff two documents, exiting with 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func EvalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "e",
			Description: "expression to evaluate",
			Type: cli.NamedFuncOpt(cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
				cfg.Exprs = append(cfg.Exprs, a)
				return a, nil
			}), "(expr)"),
		})
	return cli.NewCommandAt(&cfg.Eval, "eval").
		WithAliases("e", "ev").
		WithSynopsis("eval [-at path] -e expr [-e expr2]... [file]").
		WithDescription(evalDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return eval(cfg, cc, args)
		})
}

const evalDescription = `eval evaluates expressions against a document.

The top level fields of the value are variables, and 'doc' is the value
itself. The functions getpath(p), listpath(p), whereami() and getenv(name)
are available.`

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Watch, "watch").
		WithAliases("w").
		WithSynopsis("watch [-gops] [-when expr] [file]").
		WithDescription("read a stream of documents, setting each into one tree and printing the changes").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return watch(cfg, cc, args)
		})
}
