package encode

import "github.com/signadot/ltsv-format/go-ltsv/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// EncodeLabels restricts output to the given labels, in the given order.
func EncodeLabels(labels ...string) EncodeOption {
	return func(es *EncState) { es.labels = labels }
}

// EncodeVerbose also renders selected labels which a record lacks.
func EncodeVerbose(v bool) EncodeOption {
	return func(es *EncState) { es.verbose = v }
}

// EncodeHeader writes a separator line before the first record.
func EncodeHeader(v bool) EncodeOption {
	return func(es *EncState) { es.header = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
