package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/signadot/ltsv-format/go-ltsv/encode"
	"github.com/signadot/ltsv-format/go-ltsv/filter"
	"github.com/signadot/ltsv-format/go-ltsv/ir"
	"github.com/signadot/ltsv-format/go-ltsv/parse"
	"github.com/signadot/ltsv-format/go-ltsv/stream"

	"github.com/scott-cotton/cli"
)

var (
	errNoInput = errors.New("Input -f <filename> or stdin string.")

	// errNoRecords ends a stdin stream at a chunk without records.
	errNoRecords = errors.New("no records")
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.File != "" {
		args = append([]string{cfg.File}, args...)
	}
	v, err := newViewer(cfg, cc.Out, os.Stderr)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return v.files(args)
	}
	var in io.Reader = cc.In
	if f, ok := in.(*os.File); ok && !stream.IsInput(f) {
		return fmt.Errorf("%w: %w", cli.ErrUsage, errNoInput)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return v.stream(ctx, in)
}

type viewer struct {
	cfg    *ViewConfig
	enc    *encode.Encoder
	filter filter.Filter
	errOut io.Writer
}

func newViewer(cfg *ViewConfig, w, errOut io.Writer) (*viewer, error) {
	f, err := cfg.filter()
	if err != nil {
		return nil, err
	}
	return &viewer{
		cfg:    cfg,
		enc:    encode.NewEncoder(w, cfg.encOpts(w)...),
		filter: f,
		errOut: errOut,
	}, nil
}

func (v *viewer) files(files []string) error {
	if err := v.enc.Header(); err != nil {
		return err
	}
	for _, file := range files {
		if err := v.file(file); err != nil {
			return err
		}
	}
	return nil
}

func (v *viewer) file(file string) error {
	doc, err := parse.ParseFile(file, append(v.cfg.parseOpts(), parse.WithFilename(file))...)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	defer doc.Close()
	if err := v.doc(doc); err != nil && !errors.Is(err, errNoRecords) {
		return err
	}
	return nil
}

// stream renders the chunks of r as they arrive.  A chunk which fails to
// parse or has no records ends the stream; only the former is an error.
func (v *viewer) stream(ctx context.Context, r io.Reader) error {
	if err := v.enc.Header(); err != nil {
		return err
	}
	dec := stream.NewDecoder(r,
		stream.ChunkSize(v.cfg.Buffer),
		stream.WithName("stdin"),
		stream.WithParseOptions(v.cfg.parseOpts()...))
	err := dec.Each(ctx, v.doc)
	if errors.Is(err, context.Canceled) || errors.Is(err, errNoRecords) {
		return nil
	}
	return err
}

func (v *viewer) doc(doc *ir.Document) error {
	if doc.Len() == 0 {
		fmt.Fprintln(v.errOut, "ERR: ltsv count doesn't")
		return errNoRecords
	}
	recs, err := filter.Apply(doc, v.filter)
	if err != nil {
		return err
	}
	for _, r := range recs {
		if _, err := v.enc.Record(r); err != nil {
			return fmt.Errorf("error encoding %s line %d: %w", doc.Source(), r.Line(), err)
		}
	}
	return nil
}
