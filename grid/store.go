package grid

import (
	"cmp"
	"iter"
	"maps"
	"slices"

	"github.com/midbel/sheetcalc/layout"
)

// Store holds the raw text of the cells of one sheet. Positions given to a
// Store are local: their Sheet field is ignored.
type Store interface {
	RawText(layout.Position) string
	SetRawText(layout.Position, string)
	Clear(layout.Position)
	Cells() iter.Seq2[layout.Position, string]
}

type MemoryStore struct {
	cells map[layout.Position]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cells: make(map[layout.Position]string),
	}
}

func (s *MemoryStore) RawText(pos layout.Position) string {
	return s.cells[local(pos)]
}

func (s *MemoryStore) SetRawText(pos layout.Position, text string) {
	if text == "" {
		s.Clear(pos)
		return
	}
	s.cells[local(pos)] = text
}

func (s *MemoryStore) Clear(pos layout.Position) {
	delete(s.cells, local(pos))
}

func (s *MemoryStore) Len() int {
	return len(s.cells)
}

// Cells yields the non empty cells row by row.
func (s *MemoryStore) Cells() iter.Seq2[layout.Position, string] {
	keys := slices.SortedFunc(maps.Keys(s.cells), comparePosition)
	return func(yield func(layout.Position, string) bool) {
		for _, k := range keys {
			text, ok := s.cells[k]
			if !ok {
				continue
			}
			if !yield(k, text) {
				return
			}
		}
	}
}

func comparePosition(a, b layout.Position) int {
	if c := cmp.Compare(a.Line, b.Line); c != 0 {
		return c
	}
	return cmp.Compare(a.Column, b.Column)
}

func local(pos layout.Position) layout.Position {
	pos.Sheet = ""
	return pos
}
