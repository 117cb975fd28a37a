// Package format renders computed values for display.
package format

import (
	"errors"

	"github.com/midbel/sheetcalc/value"
)

var ErrPattern = errors.New("invalid format pattern")

const DefaultNumberPattern = "0.##########"

type Formatter interface {
	Format(value.Value) (string, error)
}

// Display picks a Formatter according to the type of the value. Values
// without formatter, or that their formatter rejects, are printed as is.
type Display struct {
	formatters map[string]Formatter
}

func NewDisplay() *Display {
	d := Display{
		formatters: make(map[string]Formatter),
	}
	return &d
}

func (d *Display) Set(kind string, formatter Formatter) {
	d.formatters[kind] = formatter
}

func (d *Display) Number(pattern string) error {
	f, err := ParseNumber(pattern)
	if err == nil {
		d.Set(value.TypeNumber, f)
	}
	return err
}

func (d *Display) Format(v value.Value) string {
	if v == nil {
		return ""
	}
	f, ok := d.formatters[v.Type()]
	if !ok {
		return v.String()
	}
	str, err := f.Format(v)
	if err != nil {
		return v.String()
	}
	return str
}

// Bool renders booleans with the given words.
func Bool(yes, no string) Formatter {
	return boolFormatter{
		yes: yes,
		no:  no,
	}
}

type boolFormatter struct {
	yes string
	no  string
}

func (f boolFormatter) Format(v value.Value) (string, error) {
	b, ok := v.(value.Boolean)
	if !ok {
		return "", value.ErrCast
	}
	if b {
		return f.yes, nil
	}
	return f.no, nil
}
