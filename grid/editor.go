package grid

import (
	"context"

	"go.uber.org/zap"
)

// QuotationSaver persists a serialized quotation and returns its document ID.
type QuotationSaver interface {
	SaveQuotation(ctx context.Context, header Header, items []LineItem, adjustments Adjustments, footer Footer) (string, error)
}

// SaveResult is the outcome of an asynchronous save.
type SaveResult struct {
	ID  string
	Err error
}

// Options configures a new Editor.
type Options struct {
	Defaults Defaults
	Layout   Layout
	Logger   *zap.Logger
}

// Editor is the object a UI event loop drives. It wires the model, the
// suggestion engine and the focus controller together and must only be used
// from that one loop.
type Editor struct {
	model  *Model
	sugg   *Suggestions
	focus  *FocusController
	logger *zap.Logger
}

// NewEditor builds an editor over a fresh document.
func NewEditor(ctx context.Context, searcher CatalogSearcher, opts Options) *Editor {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := NewModel(opts.Defaults)
	s := NewSuggestions(ctx, searcher, logger.Named("suggestions"))
	e := &Editor{
		model:  m,
		sugg:   s,
		focus:  NewFocusController(m, s, opts.Layout),
		logger: logger,
	}
	e.focus.OnEnter(e.entered)
	e.focus.OnCommit(e.SelectSuggestion)
	return e
}

func (e *Editor) Model() *Model { return e.model }
func (e *Editor) Suggestions() *Suggestions { return e.sugg }
func (e *Editor) FocusController() *FocusController { return e.focus }

// entered surfaces catalog defaults whenever a code or description cell
// gains focus, using whatever text it already holds.
func (e *Editor) entered(c Coord) {
	if c.IsSuggestField() {
		e.sugg.Request(c, e.model.CellText(c))
	}
}

// Current returns the focused cell.
func (e *Editor) Current() Coord {
	return e.focus.Current()
}

// State returns the focus and suggestion snapshot for rendering.
func (e *Editor) State() FocusState {
	return e.focus.State()
}

// Totals recomputes the aggregates from the current document.
func (e *Editor) Totals() Totals {
	return e.model.Totals()
}

// Focus moves focus to c.
func (e *Editor) Focus(c Coord) bool {
	return e.focus.Focus(c)
}

// HandleKey routes a keydown; true means the UI must suppress the default.
func (e *Editor) HandleKey(ev KeyEvent) bool {
	return e.focus.HandleKey(ev)
}

// Click handles a pointer press on a cell area.
func (e *Editor) Click(c Coord) bool {
	return e.focus.Click(c)
}

// ClickSuggestion commits the i-th candidate of the open list.
func (e *Editor) ClickSuggestion(i int) bool {
	if !e.focus.suggesting() {
		return false
	}
	c, ok := e.sugg.At(i)
	if !ok {
		return false
	}
	e.SelectSuggestion(e.focus.Current().Row, c)
	return true
}

// Input replaces the text of the focused cell. Code and description edits
// ask the catalog for matches.
func (e *Editor) Input(text string) {
	c := e.focus.Current()
	e.model.SetCell(c, text)
	if c.IsSuggestField() {
		e.sugg.Request(c, text)
	}
}

// Paste ingests clipboard text. False means the text is a plain single-cell
// paste the focused control should insert itself.
func (e *Editor) Paste(text string) bool {
	return e.model.Paste(text)
}

// SelectSuggestion writes a candidate into row, clears the list and moves
// on to that row's quantity.
func (e *Editor) SelectSuggestion(row int, c Candidate) {
	if _, ok := e.model.Item(row); !ok {
		return
	}
	e.sugg.Commit(e.model, row, c)
	e.focus.focus(ItemCell(row, FieldQuantity), true)
}

// ApplySuggestions hands a finished lookup to the suggestion engine, which
// keeps it only if its cell still has focus.
func (e *Editor) ApplySuggestions(res SuggestionResult) bool {
	return e.sugg.Apply(res, e.focus.Current())
}

// Pump applies every lookup that has already finished without blocking and
// returns how many were shown.
func (e *Editor) Pump() int {
	applied := 0
	for {
		select {
		case res := <-e.sugg.Results():
			if e.ApplySuggestions(res) {
				applied++
			}
		default:
			return applied
		}
	}
}

// WaitSuggestions blocks for the next finished lookup and applies it.
func (e *Editor) WaitSuggestions(ctx context.Context) (bool, error) {
	select {
	case res := <-e.sugg.Results():
		return e.ApplySuggestions(res), nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Save serializes the document now and persists the snapshot in the
// background. Edits made while the save is running are not part of it.
func (e *Editor) Save(ctx context.Context, saver QuotationSaver) <-chan SaveResult {
	q := e.model.Serialize()
	out := make(chan SaveResult, 1)
	go func() {
		id, err := saver.SaveQuotation(ctx, q.Header, q.Items, q.Adjustments, q.Footer)
		if err != nil {
			e.logger.Error("save quotation failed", zap.Error(err))
		}
		out <- SaveResult{ID: id, Err: err}
	}()
	return out
}
