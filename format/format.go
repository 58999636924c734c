package format

import (
	"errors"
	"fmt"
)

// Format selects how records are rendered.  The zero Format is the
// "label: value" text layout.
type Format int

const (
	// TextFormat prints one "label: value" line per field and "--" after
	// each record.
	TextFormat Format = iota
	// JSONFormat prints one JSON object per record per line.
	JSONFormat
	// YAMLFormat prints one YAML document per record.
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

// ParseFormat accepts a format name or its first letter, as given to the
// -O flag.
func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"t":    TextFormat,
		"text": TextFormat,
		"j":    JSONFormat,
		"json": JSONFormat,
		"y":    YAMLFormat,
		"yaml": YAMLFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case TextFormat:
		return []byte("text"), nil
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsText() bool { return f == TextFormat }
func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }

// AllFormats returns every format, text first.
func AllFormats() []Format {
	return []Format{TextFormat, JSONFormat, YAMLFormat}
}
