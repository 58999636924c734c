package main

import (
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
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: text/t, json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "ltsv").
		WithSynopsis("ltsv [opts] command [opts]").
		WithDescription("ltsv is a tool for viewing and comparing labeled tab-separated values.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ltsvMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			LabelsCommand(cfg),
			DiffCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "l",
			Aliases:     []string{"label"},
			Description: "labels to output, comma separated",
			Type:        cli.NamedFuncOpt(cfg.labelsFunc(), "(a,b,c)"),
		})
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithOpts(opts...).
		WithSynopsis("view [-f file] [-l a,b,c] [-b size] [-v] [files]").
		WithDescription("view ltsv files or a stdin stream, one field per line").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func LabelsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LabelsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("labels").
		WithAliases("l", "ls").
		WithOpts(opts...).
		WithSynopsis("labels [-n] [files]").
		WithDescription("list the distinct labels of ltsv files in first-seen order").
		WithRun(func(cc *cli.Context, args []string) error {
			return labels(cfg, cc, args)
		})
	cfg.Labels = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [-r] [-e] <file1> <file2>").
		WithDescription("diff ltsv files record by record, exiting 1 when they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}
