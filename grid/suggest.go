package grid

import (
	"context"

	"go.uber.org/zap"
)

// Candidate is one price-catalog entry offered while typing a code or
// description. Candidates are read-only.
type Candidate struct {
	Code          string  `json:"code"`
	Description   string  `json:"description"`
	Unit          string  `json:"unit"`
	MaterialPrice float64 `json:"materialPrice"`
	LaborPrice    float64 `json:"laborPrice"`
	Category      string  `json:"category"`
}

// CatalogSearcher looks up ranked catalog entries for in-progress text.
// An empty query returns the catalog's default entries.
type CatalogSearcher interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
}

// SuggestionResult is a finished catalog lookup, tagged with the cell that
// asked for it.
type SuggestionResult struct {
	Coord      Coord
	Query      string
	Seq        uint64
	Candidates []Candidate
	Err        error
}

// Suggestions issues catalog lookups and holds the open candidate list with
// its highlighted entry. Lookups run on their own goroutines; everything
// else must be called from the editor's event loop.
type Suggestions struct {
	ctx      context.Context
	searcher CatalogSearcher
	logger   *zap.Logger
	results  chan SuggestionResult

	seq     uint64
	applied map[Coord]uint64

	open        []Candidate
	openFor     Coord
	highlighted int
}

// NewSuggestions creates an engine whose lookups are bound to ctx.
func NewSuggestions(ctx context.Context, searcher CatalogSearcher, logger *zap.Logger) *Suggestions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Suggestions{
		ctx:      ctx,
		searcher: searcher,
		logger:   logger,
		results:  make(chan SuggestionResult, 16),
		applied:  make(map[Coord]uint64),
	}
}

// Results delivers finished lookups. The event loop passes each one to Apply.
func (s *Suggestions) Results() <-chan SuggestionResult {
	return s.results
}

// Request starts a lookup for query on behalf of cell c and returns its
// sequence number. There is no cancellation; stale answers are dropped
// in Apply. A result that finds the Results buffer full is discarded, so
// a loop that stops draining never strands lookup goroutines.
func (s *Suggestions) Request(c Coord, query string) uint64 {
	s.seq++
	seq := s.seq
	if s.searcher == nil {
		return seq
	}
	go func() {
		candidates, err := s.searcher.Search(s.ctx, query)
		res := SuggestionResult{Coord: c, Query: query, Seq: seq, Candidates: candidates, Err: err}
		select {
		case s.results <- res:
		case <-s.ctx.Done():
		default:
			s.logger.Debug("dropping catalog suggestions, results not drained",
				zap.Stringer("cell", c),
				zap.Uint64("seq", seq),
			)
		}
	}()
	return seq
}

// Apply installs a finished lookup as the open list if its cell is still the
// focused one. Failed lookups, answers for cells that lost focus and answers
// older than one already shown for the same cell change nothing.
func (s *Suggestions) Apply(res SuggestionResult, focused Coord) bool {
	if res.Coord != focused {
		s.logger.Debug("dropping stale catalog suggestions",
			zap.Stringer("cell", res.Coord),
			zap.Stringer("focused", focused),
			zap.Uint64("seq", res.Seq),
		)
		return false
	}
	if res.Seq < s.applied[res.Coord] {
		return false
	}
	if res.Err != nil {
		s.logger.Warn("catalog search failed",
			zap.String("query", res.Query),
			zap.Stringer("cell", res.Coord),
			zap.Error(res.Err),
		)
		return false
	}
	s.applied[res.Coord] = res.Seq
	s.open = append([]Candidate(nil), res.Candidates...)
	s.openFor = res.Coord
	s.highlighted = 0
	return true
}

// Open reports whether a non-empty candidate list is showing.
func (s *Suggestions) Open() bool {
	return len(s.open) > 0
}

// OpenFor returns the cell the open list belongs to.
func (s *Suggestions) OpenFor() Coord {
	return s.openFor
}

// Candidates returns a copy of the open list.
func (s *Suggestions) Candidates() []Candidate {
	return append([]Candidate(nil), s.open...)
}

func (s *Suggestions) Highlighted() int {
	return s.highlighted
}

// Move shifts the highlight by delta, wrapping around the list.
func (s *Suggestions) Move(delta int) {
	n := len(s.open)
	if n == 0 {
		return
	}
	s.highlighted = ((s.highlighted+delta)%n + n) % n
}

// Selected returns the highlighted candidate.
func (s *Suggestions) Selected() (Candidate, bool) {
	if len(s.open) == 0 {
		return Candidate{}, false
	}
	return s.open[s.highlighted], true
}

// At returns the i-th candidate of the open list.
func (s *Suggestions) At(i int) (Candidate, bool) {
	if i < 0 || i >= len(s.open) {
		return Candidate{}, false
	}
	return s.open[i], true
}

// Close hides the list without committing anything.
func (s *Suggestions) Close() {
	s.open = nil
	s.highlighted = 0
}

// Reset closes the list when rows are renumbered. Per-cell ordering is
// kept: sequence numbers only grow, so a late answer to an older lookup
// still loses to whatever the cell already shows.
func (s *Suggestions) Reset() {
	s.Close()
}

// Commit writes a candidate into a row and closes the list. Quantity is
// left as the operator entered it.
func (s *Suggestions) Commit(m *Model, row int, c Candidate) {
	m.UpdateItem(row, func(it *LineItem) {
		it.Code = c.Code
		it.Description = c.Description
		it.Unit = c.Unit
		it.MaterialUnitPrice = c.MaterialPrice
		it.LaborPrice = c.LaborPrice
	})
	s.Close()
}
