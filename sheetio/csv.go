package sheetio

import (
	"encoding/csv"
	"errors"
	"io"

	"github.com/midbel/sheetcalc/grid"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

// LoadCSV reads one cell per field: the first record is row 1, the first
// field column A. Empty fields are left blank.
func LoadCSV(r io.Reader, name string) (*Fixture, error) {
	var (
		rs = csv.NewReader(r)
		fx = emptyFixture(name)
	)
	rs.FieldsPerRecord = -1
	for line := int64(0); ; line++ {
		fields, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		for col, f := range fields {
			fx.Store.SetRawText(layout.NewPosition(line, int64(col)), f)
		}
	}
	return fx, nil
}

// WriteCSV writes the computed values of the cells of a sheet. Rows and
// columns without any cell before the last used one are written empty.
func WriteCSV(w io.Writer, sheet *grid.Sheet) error {
	var (
		rows  [][]string
		width int
	)
	for pos := range sheet.Cells() {
		for int64(len(rows)) <= pos.Line {
			rows = append(rows, nil)
		}
		row := rows[pos.Line]
		for int64(len(row)) <= pos.Column {
			row = append(row, "")
		}
		row[pos.Column] = display(sheet.DisplayValue(pos))
		rows[pos.Line] = row
		width = max(width, len(row))
	}
	ws := csv.NewWriter(w)
	for _, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		if err := ws.Write(row); err != nil {
			return err
		}
	}
	ws.Flush()
	return ws.Error()
}

func display(v value.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}
