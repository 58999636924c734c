package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/signadot/ltsv-format/go-ltsv/encode"
	"github.com/signadot/ltsv-format/go-ltsv/ir"
	"github.com/signadot/ltsv-format/go-ltsv/parse"

	"github.com/scott-cotton/cli"
)

func labels(cfg *LabelsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Labels.Parse(cc, args)
	if err != nil {
		cfg.Labels.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var docs []*ir.Document
	defer func() {
		for _, doc := range docs {
			doc.Close()
		}
	}()
	if len(args) == 0 {
		doc, err := parse.ParseReader(cc.In, append(cfg.parseOpts(), parse.WithFilename("stdin"))...)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		docs = append(docs, doc)
	}
	for _, file := range args {
		doc, err := parse.ParseFile(file, append(cfg.parseOpts(), parse.WithFilename(file))...)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		docs = append(docs, doc)
	}
	return writeLabels(cfg, cc.Out, docs)
}

type labelCount struct {
	label string
	n     int
}

// countLabels merges the label counts of docs, keeping first-seen order.
func countLabels(docs []*ir.Document) []labelCount {
	var res []labelCount
	idx := map[string]int{}
	for _, doc := range docs {
		counts := doc.LabelCounts()
		for _, l := range doc.Labels() {
			i, ok := idx[l]
			if !ok {
				i = len(res)
				idx[l] = i
				res = append(res, labelCount{label: l})
			}
			res[i].n += counts[l]
		}
	}
	return res
}

func writeLabels(cfg *LabelsConfig, w io.Writer, docs []*ir.Document) error {
	lcs := countLabels(docs)
	fmat := cfg.format()
	if !fmat.IsText() {
		return encodeLabels(cfg, w, lcs)
	}
	colors := cfg.colors(w)
	buf := &bytes.Buffer{}
	for _, lc := range lcs {
		l := lc.label
		if colors != nil {
			l = colors.Color(encode.LabelColor, l)
		}
		buf.WriteString(l)
		if cfg.Count {
			buf.WriteByte('\t')
			buf.WriteString(strconv.Itoa(lc.n))
		}
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// encodeLabels renders each count as fields label and count, so that json
// and yaml output go through the encoder.
func encodeLabels(cfg *LabelsConfig, w io.Writer, lcs []labelCount) error {
	enc := encode.NewEncoder(w, cfg.encOpts(w)...)
	for _, lc := range lcs {
		fs := []ir.Field{{Label: "label", Value: lc.label}}
		if cfg.Count {
			fs = append(fs, ir.Field{Label: "count", Value: strconv.Itoa(lc.n)})
		}
		if _, err := enc.Fields(fs); err != nil {
			return err
		}
	}
	return nil
}
