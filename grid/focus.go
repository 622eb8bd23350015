package grid

// Key is a navigation key the focus controller understands.
type Key int

const (
	KeyUp Key = iota + 1
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyTab
	KeyEscape
)

// KeyEvent is a keydown on the focused cell. Caret and TextLen describe the
// text cursor so Left/Right only leave a text field from its edges.
type KeyEvent struct {
	Key     Key
	Shift   bool
	Caret   int
	TextLen int
}

func (ev KeyEvent) atStart() bool { return ev.Caret <= 0 }
func (ev KeyEvent) atEnd() bool { return ev.Caret >= ev.TextLen }

// FocusState is a snapshot of the transient focus and suggestion state.
type FocusState struct {
	Current     Coord
	Suggestions []Candidate
	Highlighted int
}

// FocusController is the navigation state machine. It owns the current cell
// and the cell registry, and lets an open suggestion list take over the
// arrow, Enter and Escape keys on code and description cells.
type FocusController struct {
	model    *Model
	sugg     *Suggestions
	registry *Registry
	layout   Layout
	current  Coord

	onEnter  func(Coord)
	onCommit func(row int, c Candidate)
}

// NewFocusController starts with focus on the first header field. The
// registry follows the model through a subscription.
func NewFocusController(m *Model, s *Suggestions, l Layout) *FocusController {
	fc := &FocusController{
		model:    m,
		sugg:     s,
		registry: newRegistry(),
		layout:   l,
		current:  HeaderCell(headerOrder[0]),
	}
	fc.rebuild()
	m.Subscribe(fc.onChange)
	return fc
}

// OnEnter sets the callback fired whenever a cell gains focus.
func (fc *FocusController) OnEnter(fn func(Coord)) { fc.onEnter = fn }

// OnCommit sets the callback fired when Enter picks a suggestion.
func (fc *FocusController) OnCommit(fn func(row int, c Candidate)) { fc.onCommit = fn }

func (fc *FocusController) Current() Coord { return fc.current }
func (fc *FocusController) Registry() *Registry { return fc.registry }

// State returns the current focus snapshot.
func (fc *FocusController) State() FocusState {
	st := FocusState{Current: fc.current}
	if fc.sugg.Open() && fc.sugg.OpenFor() == fc.current {
		st.Suggestions = fc.sugg.Candidates()
		st.Highlighted = fc.sugg.Highlighted()
	}
	return st
}

func (fc *FocusController) onChange(c Change) {
	if !c.Kind.Structural() {
		return
	}
	if c.Kind == ChangeItemsReplaced || c.Kind == ChangeItemRemoved {
		fc.sugg.Reset()
	}
	fc.rebuild()
	fc.clamp()
}

func (fc *FocusController) rebuild() {
	fc.registry.Rebuild(fc.layout, fc.model.Len(), len(fc.model.footer.Exclusions))
}

// clamp keeps focus on an existing cell after rows disappear.
func (fc *FocusController) clamp() {
	if fc.registry.Contains(fc.current) {
		return
	}
	switch fc.current.Section {
	case SectionItem:
		fc.current = ItemCell(fc.model.Len()-1, fc.current.Field)
	case SectionExclusion:
		fc.current = ExclusionCell(len(fc.model.footer.Exclusions) - 1)
	default:
		fc.current = HeaderCell(headerOrder[0])
	}
}

// Focus moves focus to c as a pointer or programmatic focus would. Focus
// entry fires even when c is already focused.
func (fc *FocusController) Focus(c Coord) bool {
	if !fc.registry.Contains(c) {
		return false
	}
	fc.focus(c, true)
	return true
}

// Click handles a pointer press on a cell area outside the suggestion panel:
// the list closes and the cell's control takes focus.
func (fc *FocusController) Click(c Coord) bool {
	if !fc.registry.Contains(c) {
		return false
	}
	fc.sugg.Close()
	fc.focus(c, c != fc.current)
	return true
}

func (fc *FocusController) focus(c Coord, enter bool) {
	if c != fc.current {
		fc.sugg.Close()
	}
	fc.current = c
	if h, ok := fc.registry.Handle(c); ok {
		h.Focus()
	}
	if enter && fc.onEnter != nil {
		fc.onEnter(c)
	}
}

// HandleKey interprets a keydown on the focused cell and reports whether it
// was consumed. Unconsumed keys keep their default text-editing behaviour.
func (fc *FocusController) HandleKey(ev KeyEvent) bool {
	if fc.suggesting() {
		switch ev.Key {
		case KeyUp:
			fc.sugg.Move(-1)
			return true
		case KeyDown:
			fc.sugg.Move(1)
			return true
		case KeyEnter:
			if !ev.Shift {
				if c, ok := fc.sugg.Selected(); ok && fc.onCommit != nil {
					fc.onCommit(fc.current.Row, c)
				}
				return true
			}
		case KeyEscape:
			fc.sugg.Close()
			return true
		}
	}

	var target Coord
	var ok bool
	switch ev.Key {
	case KeyTab:
		if ev.Shift {
			target, ok = fc.registry.Prev(fc.current)
		} else {
			target, ok = fc.tab()
		}
	case KeyEnter:
		if ev.Shift {
			target, ok = fc.up()
		} else {
			target, ok = fc.down()
		}
	case KeyUp:
		target, ok = fc.up()
	case KeyDown:
		target, ok = fc.down()
	case KeyLeft:
		if !fc.current.crossesOnArrow() && !ev.atStart() {
			return false
		}
		target, ok = fc.left()
	case KeyRight:
		if !fc.current.crossesOnArrow() && !ev.atEnd() {
			return false
		}
		target, ok = fc.right()
	}
	if !ok {
		return false
	}
	fc.focus(target, true)
	return true
}

func (fc *FocusController) suggesting() bool {
	return fc.sugg.Open() && fc.current.IsSuggestField() && fc.sugg.OpenFor() == fc.current
}

// tab walks Tab order; leaving the last cell of the grid grows it by a row.
func (fc *FocusController) tab() (Coord, bool) {
	c := fc.current
	last := fc.model.Len() - 1
	if c.Section == SectionItem && c.Row == last && c.Field == ItemColumns[len(ItemColumns)-1] {
		row := fc.model.AddItem()
		return ItemCell(row, ItemColumns[0]), true
	}
	return fc.registry.Next(c)
}

func (fc *FocusController) up() (Coord, bool) {
	c := fc.current
	switch c.Section {
	case SectionHeader:
		return headerStep(headerAdjacency[c.Field].up)
	case SectionItem:
		if c.Row == 0 {
			return HeaderCell(HeaderReturn), true
		}
		return ItemCell(c.Row-1, c.Field), true
	}
	return fc.chainStep(-1)
}

func (fc *FocusController) down() (Coord, bool) {
	c := fc.current
	switch c.Section {
	case SectionHeader:
		if c.Field == HeaderLast {
			return ItemCell(0, FieldCode), true
		}
		return headerStep(headerAdjacency[c.Field].down)
	case SectionItem:
		if c.Row < fc.model.Len()-1 {
			return ItemCell(c.Row+1, c.Field), true
		}
		if fc.layout.AdjustmentPanel {
			return chainCells(fc.layout, 0)[0], true
		}
		row := fc.model.AddItem()
		return ItemCell(row, c.Field), true
	}
	return fc.chainStep(1)
}

func (fc *FocusController) left() (Coord, bool) {
	c := fc.current
	switch c.Section {
	case SectionHeader:
		return headerStep(headerAdjacency[c.Field].left)
	case SectionItem:
		if col := columnIndex(c.Field); col > 0 {
			return ItemCell(c.Row, ItemColumns[col-1]), true
		}
		return Coord{}, false
	}
	return fc.chainStep(-1)
}

func (fc *FocusController) right() (Coord, bool) {
	c := fc.current
	switch c.Section {
	case SectionHeader:
		return headerStep(headerAdjacency[c.Field].right)
	case SectionItem:
		if col := columnIndex(c.Field); col >= 0 && col < len(ItemColumns)-1 {
			return ItemCell(c.Row, ItemColumns[col+1]), true
		}
		return Coord{}, false
	}
	return fc.chainStep(1)
}

// chainStep moves along adjustments, footer and exclusions. Stepping back
// from the head of the chain returns to the last row of the grid.
func (fc *FocusController) chainStep(delta int) (Coord, bool) {
	chain := chainCells(fc.layout, len(fc.model.footer.Exclusions))
	for i, c := range chain {
		if c != fc.current {
			continue
		}
		j := i + delta
		if j < 0 {
			return ItemCell(fc.model.Len()-1, FieldCode), true
		}
		if j >= len(chain) {
			return Coord{}, false
		}
		return chain[j], true
	}
	return Coord{}, false
}

func headerStep(field string) (Coord, bool) {
	if field == "" {
		return Coord{}, false
	}
	return HeaderCell(field), true
}
