package formula

import (
	"bytes"
	"fmt"
	"io"
)

// Dump gives a debug view of the tokens of a parsed formula.
func Dump(meta *Metadata) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "home(%s) ", meta.Home())
	for i, t := range meta.Tokens {
		if i > 0 {
			io.WriteString(&buf, ", ")
		}
		dumpToken(&buf, t)
	}
	return buf.String()
}

func dumpToken(w io.Writer, tok Token) {
	switch t := tok.(type) {
	case Text:
		fmt.Fprintf(w, "text(%q)", t.Value)
	case CellRef:
		io.WriteString(w, "cell(")
		dumpCell(w, t)
		io.WriteString(w, ")")
	case RangeRef:
		io.WriteString(w, "range(")
		dumpCell(w, t.Start)
		io.WriteString(w, ", ")
		dumpCell(w, t.End)
		io.WriteString(w, ")")
	default:
		io.WriteString(w, "unknown()")
	}
}

func dumpCell(w io.Writer, c CellRef) {
	if c.IsBroken() {
		io.WriteString(w, brokenRef)
		return
	}
	if c.Sheet != "" {
		fmt.Fprintf(w, "sheet=%s ", c.Sheet)
	}
	if c.IsRowAbsolute {
		fmt.Fprintf(w, "row=$%d ", c.AbsRow)
	} else {
		fmt.Fprintf(w, "row=%+d ", c.RowOffset)
	}
	if c.IsColAbsolute {
		fmt.Fprintf(w, "col=$%d", c.AbsCol)
	} else {
		fmt.Fprintf(w, "col=%+d", c.ColOffset)
	}
}
