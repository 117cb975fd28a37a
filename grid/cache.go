package grid

import (
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

type State int8

const (
	Uncached State = iota
	Computing
	Cached
)

func (s State) String() string {
	switch s {
	case Uncached:
		return "uncached"
	case Computing:
		return "computing"
	case Cached:
		return "cached"
	default:
		return "unknown"
	}
}

// ValueCache remembers the computed values of a sheet. A cell is marked
// Computing between Begin and Finish so that a formula reaching itself again
// can be detected.
type ValueCache interface {
	State(layout.Position) (State, value.Value)
	Begin(layout.Position)
	Finish(layout.Position, value.Value)
	Reset()
	Generation() uint64
}

type entry struct {
	state State
	value value.Value
}

type generationCache struct {
	generation uint64
	entries    map[layout.Position]entry
}

func NewCache() ValueCache {
	return &generationCache{
		entries: make(map[layout.Position]entry),
	}
}

func (c *generationCache) State(pos layout.Position) (State, value.Value) {
	e, ok := c.entries[local(pos)]
	if !ok {
		return Uncached, nil
	}
	return e.state, e.value
}

func (c *generationCache) Begin(pos layout.Position) {
	c.entries[local(pos)] = entry{
		state: Computing,
	}
}

func (c *generationCache) Finish(pos layout.Position, val value.Value) {
	c.entries[local(pos)] = entry{
		state: Cached,
		value: val,
	}
}

func (c *generationCache) Reset() {
	clear(c.entries)
	c.generation++
}

func (c *generationCache) Generation() uint64 {
	return c.generation
}
