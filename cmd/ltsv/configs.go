package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/ltsv-format/go-ltsv/encode"
	"github.com/signadot/ltsv-format/go-ltsv/filter"
	"github.com/signadot/ltsv-format/go-ltsv/format"
	"github.com/signadot/ltsv-format/go-ltsv/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color  bool `cli:"name=c aliases=color desc='output ansi color'"`
	Debug  bool `cli:"name=debug desc='log dropped fields to stderr'"`
	Strict bool `cli:"name=strict desc='fail on fields without a colon'"`
	CRLF   bool `cli:"name=crlf desc='treat CR LF as the line terminator'"`
	GOPS   bool `cli:"name=gops desc='start the gops diagnostics agent'"`

	T bool `cli:"name=t aliases=text desc='output text'"`
	J bool `cli:"name=j aliases=json desc='output json lines'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml documents'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

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

func (cfg *MainConfig) format() format.Format {
	var res format.Format
	switch {
	case cfg.T:
		res = format.TextFormat
	case cfg.Y:
		res = format.YAMLFormat
	case cfg.J:
		res = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		res = *cfg.OutFormat
	}
	return res
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	res := []parse.ParseOption{
		parse.Strict(cfg.Strict),
		parse.TrimCR(cfg.CRLF),
	}
	if cfg.Debug {
		res = append(res, parse.WithLogger(theLog))
	}
	return res
}

// colors returns the palette to render with, or nil.  Without -c, color
// is on when w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) *encode.Colors {
	if cfg.Color {
		return encode.NewColors()
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "c" {
				continue
			}
			if opt.Value != nil {
				return nil
			}
			break
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return encode.NewColors()
	}
	return nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	return []encode.EncodeOption{
		encode.EncodeFormat(cfg.format()),
		encode.EncodeColors(cfg.colors(w)),
	}
}

type ViewConfig struct {
	*MainConfig

	File    string `cli:"name=f aliases=file desc='input file name'"`
	Buffer  int    `cli:"name=b aliases=buffer desc='stdin read buffer size (default 4096)'"`
	Verbose bool   `cli:"name=v aliases=verbose desc='output selected labels a record lacks'"`
	Where   string `cli:"name=where desc='expr filter expression'"`
	CEL     string `cli:"name=cel desc='CEL filter expression'"`

	Labels []string

	View *cli.Command
}

// labelsFunc parses a comma separated list of labels.  Empty items are
// ignored.
func (cfg *ViewConfig) labelsFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		cfg.Labels = splitLabels(v)
		return cfg.Labels, nil
	})
}

func splitLabels(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool { return r == ',' })
}

func (cfg *ViewConfig) filter() (filter.Filter, error) {
	where, err := filter.Expr(cfg.Where)
	if err != nil {
		return nil, fmt.Errorf("%w: -where: %w", cli.ErrUsage, err)
	}
	cel, err := filter.CEL(cfg.CEL)
	if err != nil {
		return nil, fmt.Errorf("%w: -cel: %w", cli.ErrUsage, err)
	}
	return filter.All(where, cel), nil
}

func (cfg *ViewConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := append(cfg.MainConfig.encOpts(w),
		encode.EncodeVerbose(cfg.Verbose),
		encode.EncodeHeader(true))
	if len(cfg.Labels) != 0 {
		res = append(res, encode.EncodeLabels(cfg.Labels...))
	}
	return res
}

type LabelsConfig struct {
	*MainConfig

	Count bool `cli:"name=n aliases=count desc='print occurrence counts'"`

	Labels *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Equal   bool `cli:"name=e aliases=equal desc='also list equal records'"`

	Diff *cli.Command
}
