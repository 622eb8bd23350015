package grid

// Focuser is the UI control behind a cell. The registry hands focus to it
// after every transition.
type Focuser interface {
	Focus()
}

// Binder resolves the control for a cell when the registry is rebuilt.
type Binder func(Coord) Focuser

// Registry maps every addressable cell to its position in Tab order and to
// the control that renders it.
type Registry struct {
	order   []Coord
	index   map[Coord]int
	handles map[Coord]Focuser
	binder  Binder
}

func newRegistry() *Registry {
	return &Registry{
		index:   make(map[Coord]int),
		handles: make(map[Coord]Focuser),
	}
}

// Rebuild recomputes the cell set. Item controls are dropped (row indices
// may have shifted) unless a binder can resolve them again.
func (r *Registry) Rebuild(l Layout, rows, exclusions int) {
	r.order = documentOrder(l, rows, exclusions)
	r.index = make(map[Coord]int, len(r.order))
	for i, c := range r.order {
		r.index[c] = i
	}

	prev := r.handles
	r.handles = make(map[Coord]Focuser, len(prev))
	for _, c := range r.order {
		if r.binder != nil {
			if h := r.binder(c); h != nil {
				r.handles[c] = h
			}
			continue
		}
		if h, ok := prev[c]; ok && c.Section != SectionItem {
			r.handles[c] = h
		}
	}
}

// SetBinder installs a resolver used on every rebuild.
func (r *Registry) SetBinder(b Binder) {
	r.binder = b
}

// Bind attaches a control to an existing cell.
func (r *Registry) Bind(c Coord, h Focuser) bool {
	if _, ok := r.index[c]; !ok {
		return false
	}
	r.handles[c] = h
	return true
}

// Handle returns the control bound to c.
func (r *Registry) Handle(c Coord) (Focuser, bool) {
	h, ok := r.handles[c]
	return h, ok
}

// Contains reports whether c addresses a cell of the current document.
func (r *Registry) Contains(c Coord) bool {
	_, ok := r.index[c]
	return ok
}

// Cells returns every cell in Tab order.
func (r *Registry) Cells() []Coord {
	return append([]Coord(nil), r.order...)
}

// Next returns the cell after c in Tab order.
func (r *Registry) Next(c Coord) (Coord, bool) {
	i, ok := r.index[c]
	if !ok || i+1 >= len(r.order) {
		return Coord{}, false
	}
	return r.order[i+1], true
}

// Prev returns the cell before c in Tab order.
func (r *Registry) Prev(c Coord) (Coord, bool) {
	i, ok := r.index[c]
	if !ok || i == 0 {
		return Coord{}, false
	}
	return r.order[i-1], true
}
