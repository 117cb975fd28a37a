package layout

import (
	"fmt"
	"iter"
	"strings"
)

// Range is a rectangle of cells. Starts and Ends may be given in any corner
// order; Normalize returns the top-left/bottom-right form.
type Range struct {
	Starts Position
	Ends   Position
}

func NewRange(starts, ends Position) Range {
	return Range{
		Starts: starts,
		Ends:   ends,
	}
}

func ParseRange(str string) (Range, error) {
	fst, lst, ok := strings.Cut(str, ":")
	starts, err := ParsePosition(fst)
	if err != nil {
		return Range{}, err
	}
	ends := starts
	if ok {
		if ends, err = ParsePosition(lst); err != nil {
			return Range{}, err
		}
		if ends.Sheet == "" {
			ends.Sheet = starts.Sheet
		}
	}
	return NewRange(starts, ends), nil
}

func (r Range) Normalize() Range {
	var (
		starts = r.Starts
		ends   = r.Ends
	)
	starts.Line, ends.Line = min(r.Starts.Line, r.Ends.Line), max(r.Starts.Line, r.Ends.Line)
	starts.Column, ends.Column = min(r.Starts.Column, r.Ends.Column), max(r.Starts.Column, r.Ends.Column)
	return NewRange(starts, ends)
}

func (r Range) Contains(pos Position) bool {
	n := r.Normalize()
	ok := pos.Line >= n.Starts.Line && pos.Line <= n.Ends.Line
	if !ok {
		return false
	}
	return pos.Column >= n.Starts.Column && pos.Column <= n.Ends.Column
}

func (r Range) Width() int64 {
	n := r.Normalize()
	return n.Ends.Column - n.Starts.Column + 1
}

func (r Range) Height() int64 {
	n := r.Normalize()
	return n.Ends.Line - n.Starts.Line + 1
}

func (r Range) Dimension() Dimension {
	return Dimension{
		Lines:   r.Height(),
		Columns: r.Width(),
	}
}

// Positions walks the normalized range row by row.
func (r Range) Positions() iter.Seq[Position] {
	n := r.Normalize()
	return func(yield func(Position) bool) {
		for line := n.Starts.Line; line <= n.Ends.Line; line++ {
			for col := n.Starts.Column; col <= n.Ends.Column; col++ {
				pos := Position{
					Sheet:  n.Starts.Sheet,
					Line:   line,
					Column: col,
				}
				if !yield(pos) {
					return
				}
			}
		}
	}
}

func (r Range) String() string {
	if r.Starts.Equal(r.Ends) {
		return r.Starts.Addr()
	}
	ends := r.Ends
	ends.Sheet = ""
	return fmt.Sprintf("%s:%s", r.Starts.Addr(), ends.Addr())
}
