package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/signadot/ltsv-format/go-ltsv/encode"
	"github.com/signadot/ltsv-format/go-ltsv/ir"
	"github.com/signadot/ltsv-format/go-ltsv/libdiff"
	"github.com/signadot/ltsv-format/go-ltsv/parse"

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
	var docs [2]*ir.Document
	for i, file := range args {
		doc, err := parse.ParseFile(file, append(cfg.parseOpts(), parse.WithFilename(file))...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		defer doc.Close()
		docs[i] = doc
	}
	from, to := docs[0], docs[1]
	if cfg.Reverse {
		from, to = to, from
	}
	differs, err := writeDiff(cfg, cc.Out, from, to)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// writeDiff renders the changes from from to to and reports whether there
// were any.  Deleted and inserted records are shown as their source lines,
// modified ones field by field.
func writeDiff(cfg *DiffConfig, w io.Writer, from, to *ir.Document) (bool, error) {
	cs := libdiff.Documents(from, to)
	colors := cfg.colors(w)
	col := func(a encode.ColorAttr, s string) string {
		if colors == nil {
			return s
		}
		return colors.Color(a, s)
	}
	buf := &bytes.Buffer{}
	for _, c := range cs {
		switch c.Op {
		case libdiff.Equal:
			if !cfg.Equal {
				continue
			}
			fmt.Fprintf(buf, "%s\t%s\n", c, c.From.Raw())
		case libdiff.Delete:
			fmt.Fprintf(buf, "%s\n", col(encode.DeleteColor, c.String()+"\t"+c.From.Raw()))
		case libdiff.Insert:
			fmt.Fprintf(buf, "%s\n", col(encode.InsertColor, c.String()+"\t"+c.To.Raw()))
		case libdiff.Modify:
			fmt.Fprintf(buf, "%s\n", col(encode.ModifyColor, c.String()))
			for _, fc := range c.Fields {
				writeFieldChange(buf, col, fc)
			}
		}
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return false, err
	}
	return libdiff.Changed(cs), nil
}

func writeFieldChange(buf *bytes.Buffer, col func(encode.ColorAttr, string) string, fc libdiff.FieldChange) {
	label := col(encode.LabelColor, fc.Label)
	switch fc.Op {
	case libdiff.Delete:
		fmt.Fprintf(buf, "  %s %s: %s\n", col(encode.DeleteColor, fc.Op.String()), label, fc.From)
	case libdiff.Insert:
		fmt.Fprintf(buf, "  %s %s: %s\n", col(encode.InsertColor, fc.Op.String()), label, fc.To)
	case libdiff.Modify:
		fmt.Fprintf(buf, "  %s %s: %s -> %s\n", col(encode.ModifyColor, fc.Op.String()), label, fc.From, fc.To)
	}
}
