// Package sheetio loads the raw text of sheet cells from files.
package sheetio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/sheetcalc/formula/eval"
	"github.com/midbel/sheetcalc/grid"
)

var ErrFormat = errors.New("invalid sheet format")

const defaultSheetName = "Sheet1"

type Format int

const (
	Unknown Format = iota
	CSV
	XML
)

func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case XML:
		return "xml"
	default:
		return "unknown"
	}
}

func FormatFromString(str string) (Format, error) {
	switch strings.ToLower(str) {
	case "csv":
		return CSV, nil
	case "xml":
		return XML, nil
	default:
		return Unknown, fmt.Errorf("%s: %w", str, ErrFormat)
	}
}

// Fixture is a named set of cells ready to be computed.
type Fixture struct {
	Name  string
	Store *grid.MemoryStore
}

func emptyFixture(name string) *Fixture {
	if name == "" {
		name = defaultSheetName
	}
	return &Fixture{
		Name:  name,
		Store: grid.NewMemoryStore(),
	}
}

func (f *Fixture) Sheet(ev *eval.Evaluator, opts ...grid.SheetOption) (*grid.Sheet, error) {
	return grid.NewSheet(f.Name, f.Store, ev, opts...)
}

// Open reads a fixture from file. The format is guessed from the extension
// of the file, then from its first bytes.
func Open(file string) (*Fixture, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var (
		rs     = bufio.NewReader(r)
		format = detectFormat(file, rs)
		name   = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	)
	return Load(rs, format, name)
}

func Load(r io.Reader, format Format, name string) (*Fixture, error) {
	switch format {
	case CSV:
		return LoadCSV(r, name)
	case XML:
		fx, err := LoadXML(r)
		if err == nil && fx.Name == defaultSheetName && name != "" {
			fx.Name = name
		}
		return fx, err
	default:
		return nil, fmt.Errorf("%s: %w", format, ErrFormat)
	}
}

func detectFormat(file string, rs *bufio.Reader) Format {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".csv":
		return CSV
	case ".xml":
		return XML
	default:
	}
	magic, _ := rs.Peek(64)
	if bytes.HasPrefix(bytes.TrimSpace(magic), []byte("<")) {
		return XML
	}
	return CSV
}
