package sheetio

import (
	"fmt"
	"io"

	sax "github.com/midbel/codecs/xml"

	"github.com/midbel/sheetcalc/layout"
)

type sheetReader struct {
	reader  *sax.Reader
	fixture *Fixture
}

// LoadXML reads a sheet written as
//
//	<sheet name="Data">
//	  <cell ref="A1">10</cell>
//	  <cell ref="B1">=A1*2</cell>
//	</sheet>
func LoadXML(r io.Reader) (*Fixture, error) {
	rs := sheetReader{
		reader:  sax.NewReader(r),
		fixture: emptyFixture(""),
	}
	rs.reader.Element(sax.LocalName("sheet"), rs.onSheet)
	rs.reader.Element(sax.LocalName("cell"), rs.onCell)
	if err := rs.reader.Start(); err != nil {
		return nil, err
	}
	return rs.fixture, nil
}

func (r *sheetReader) onSheet(_ *sax.Reader, el sax.E) error {
	if name := el.GetAttributeValue("name"); name != "" {
		r.fixture.Name = name
	}
	return nil
}

func (r *sheetReader) onCell(rs *sax.Reader, el sax.E) error {
	ref := el.GetAttributeValue("ref")
	pos, err := layout.ParsePosition(ref)
	if err != nil {
		return fmt.Errorf("cell %q: %w", ref, ErrFormat)
	}
	if pos.Sheet != "" {
		return fmt.Errorf("cell %q: qualified reference: %w", ref, ErrFormat)
	}
	if el.SelfClosed {
		return nil
	}
	rs.OnText(func(_ *sax.Reader, str string) error {
		text := r.fixture.Store.RawText(pos) + str
		r.fixture.Store.SetRawText(pos, text)
		return nil
	})
	return nil
}
