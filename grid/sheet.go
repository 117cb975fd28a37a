package grid

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/midbel/sheetcalc/formula"
	"github.com/midbel/sheetcalc/formula/eval"
	"github.com/midbel/sheetcalc/internal/logger"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

var ErrSheet = errors.New("invalid sheet")

type SheetOption func(*Sheet)

func WithCache(cache ValueCache) SheetOption {
	return func(s *Sheet) {
		s.cache = cache
	}
}

func WithLogger(l *zap.Logger) SheetOption {
	return func(s *Sheet) {
		s.logger = l
	}
}

// WithoutMetadata keeps only the raw text of formulas. Structural edits are
// then applied by rewriting the text directly.
func WithoutMetadata() SheetOption {
	return func(s *Sheet) {
		s.retain = false
	}
}

// Sheet computes the values of the cells of a Store. It is meant to be used
// by one goroutine at a time.
type Sheet struct {
	name   string
	store  Store
	eval   *eval.Evaluator
	cache  ValueCache
	meta   map[layout.Position]*formula.Metadata
	retain bool
	logger *zap.Logger

	// cells being computed, outermost first
	pending []layout.Position
}

func NewSheet(name string, store Store, ev *eval.Evaluator, opts ...SheetOption) (*Sheet, error) {
	if store == nil || ev == nil {
		return nil, fmt.Errorf("%s: %w: missing store or evaluator", name, ErrSheet)
	}
	s := Sheet{
		name:   name,
		store:  store,
		eval:   ev,
		cache:  NewCache(),
		meta:   make(map[layout.Position]*formula.Metadata),
		retain: true,
		logger: logger.L,
	}
	for _, o := range opts {
		o(&s)
	}
	for pos, text := range store.Cells() {
		s.track(pos, text)
	}
	return &s, nil
}

func (s *Sheet) Name() string {
	return s.name
}

func (s *Sheet) Generation() uint64 {
	return s.cache.Generation()
}

// DisplayValue gives the computed value of a cell. Values are cached until
// the next write. Every cell of a cycle gives #CIRCULAR! until then, whatever
// the cell the computation started from.
func (s *Sheet) DisplayValue(pos layout.Position) value.Value {
	pos = local(pos)
	state, val := s.cache.State(pos)
	switch state {
	case Cached:
		return val
	case Computing:
		s.markCircular(pos)
		return value.ErrCircular
	case Uncached:
	default:
		return value.ErrGeneric
	}
	s.cache.Begin(pos)
	val = s.evaluate(pos)
	if state, cached := s.cache.State(pos); state == Cached {
		return cached
	}
	s.cache.Finish(pos, val)
	return val
}

func (s *Sheet) evaluate(pos layout.Position) value.Value {
	s.pending = append(s.pending, pos)
	defer func() {
		s.pending = s.pending[:len(s.pending)-1]
	}()
	return s.compute(pos)
}

// markCircular caches #CIRCULAR! for pos and for every cell computed since
// pos was entered: they all belong to the cycle.
func (s *Sheet) markCircular(pos layout.Position) {
	ix := slices.Index(s.pending, pos)
	if ix < 0 {
		s.cache.Finish(pos, value.ErrCircular)
		return
	}
	for _, p := range s.pending[ix:] {
		s.cache.Finish(p, value.ErrCircular)
	}
	s.logger.Debug("circular reference", zap.String("cell", pos.Addr()), zap.Int("cells", len(s.pending)-ix))
}

func (s *Sheet) compute(pos layout.Position) (val value.Value) {
	defer func() {
		if err := recover(); err != nil {
			s.logger.Debug("cell computation panicked", zap.String("cell", pos.Addr()), zap.Any("error", err))
			val = value.ErrGeneric
		}
	}()
	text := s.store.RawText(pos)
	if !formula.IsFormula(text) {
		return value.Infer(text)
	}
	return s.eval.Evaluate(text, s.lookup).Get()
}

func (s *Sheet) lookup(pos layout.Position) value.Value {
	if pos.Sheet != "" && !strings.EqualFold(pos.Sheet, s.name) {
		return value.ErrRef
	}
	return s.DisplayValue(pos)
}

// Cells yields the raw text of the non empty cells.
func (s *Sheet) Cells() iter.Seq2[layout.Position, string] {
	return s.store.Cells()
}

// RawFormula gives the text of a cell as it was written.
func (s *Sheet) RawFormula(pos layout.Position) string {
	return s.store.RawText(pos)
}

// Metadata gives the parsed form of the formula stored at pos.
func (s *Sheet) Metadata(pos layout.Position) (*formula.Metadata, bool) {
	meta, ok := s.meta[local(pos)]
	return meta, ok
}

func (s *Sheet) SetValue(pos layout.Position, text string) {
	pos = local(pos)
	if text == "" {
		s.store.Clear(pos)
	} else {
		s.store.SetRawText(pos, text)
	}
	delete(s.meta, pos)
	s.track(pos, text)
	s.cache.Reset()
}

func (s *Sheet) track(pos layout.Position, text string) {
	if !s.retain || !formula.IsFormula(text) {
		return
	}
	pos = local(pos)
	meta, err := formula.Parse(text, pos.Line, pos.Column)
	if err != nil {
		return
	}
	s.meta[pos] = meta
}

// ApplyStructuralEdit inserts or deletes rows or columns: cells are moved,
// the ones inside a deleted span are dropped and every formula is rebased.
func (s *Sheet) ApplyStructuralEdit(edit formula.Edit) error {
	if err := edit.Validate(); err != nil {
		return err
	}
	if edit.Sheet == "" {
		edit.Sheet = s.name
	}
	type cell struct {
		pos  layout.Position
		text string
		meta *formula.Metadata
	}
	var (
		olds  []layout.Position
		cells []cell
	)
	for pos, text := range s.store.Cells() {
		olds = append(olds, pos)
		next, ok := edit.MoveCell(pos)
		if !ok {
			s.logger.Debug("cell dropped", zap.String("cell", pos.Addr()), zap.Stringer("edit", edit))
			continue
		}
		c := cell{
			pos:  next,
			text: text,
		}
		if formula.IsFormula(text) {
			if meta, ok := s.meta[pos]; ok {
				res, err := formula.Adjust(meta, edit)
				if err != nil {
					return err
				}
				c.meta = res
				c.text = res.Formula
			} else {
				c.text = formula.AdjustText(text, edit)
			}
		}
		cells = append(cells, c)
	}
	for _, pos := range olds {
		s.store.Clear(pos)
	}
	clear(s.meta)
	for _, c := range cells {
		s.store.SetRawText(c.pos, c.text)
		if c.meta != nil {
			s.meta[c.pos] = c.meta
		}
	}
	s.cache.Reset()
	s.logger.Debug("structural edit applied", zap.Stringer("edit", edit), zap.Int("cells", len(cells)))
	return nil
}

// CopyFormula writes the formula of from into to, its relative references
// moved by the distance between both cells.
func (s *Sheet) CopyFormula(from, to layout.Position) error {
	text, err := formula.Relocate(s.store.RawText(from), local(from), local(to))
	if err != nil {
		return fmt.Errorf("%s: %w", from.Addr(), err)
	}
	s.SetValue(to, text)
	return nil
}

// References lists the cells a formula depends on.
func (s *Sheet) References(pos layout.Position) []formula.Reference {
	return formula.ExtractReferences(s.store.RawText(pos))
}

// Recalculate drops every cached value and computes each cell again.
func (s *Sheet) Recalculate() {
	s.cache.Reset()
	var failed int
	for pos := range s.store.Cells() {
		if value.IsError(s.DisplayValue(pos)) {
			failed++
		}
	}
	s.logger.Debug("sheet recalculated", zap.String("sheet", s.name), zap.Uint64("generation", s.cache.Generation()), zap.Int("errors", failed))
}
