package encode

import (
	"strings"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	LabelColor ColorAttr = iota
	ValueColor
	MissingColor
	SepColor
	DeleteColor
	InsertColor
	ModifyColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[ColorAttr]func(string, ...any) string{},
	}
	colors.Map[LabelColor] = sprintf(color.Bold, color.FgBlue)
	colors.Map[ValueColor] = sprintf(color.FgGreen)
	colors.Map[MissingColor] = sprintf(color.Faint)
	colors.Map[DeleteColor] = sprintf(color.FgRed)
	colors.Map[InsertColor] = sprintf(color.FgGreen)
	colors.Map[ModifyColor] = sprintf(color.FgYellow)
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

// sprintf returns a formatter which colors regardless of whether stdout is
// a terminal; callers decide whether to use colors at all.
func sprintf(attrs ...color.Attribute) func(string, ...any) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.SprintfFunc()
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}
