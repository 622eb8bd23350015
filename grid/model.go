// Package grid implements the quotation line-item entry grid: the document
// model, its derived totals, clipboard paste, catalog suggestions and the
// keyboard focus state machine that ties them together.
//
// Everything in this package is driven from a single event loop. The only
// work that leaves that loop is the catalog search, whose results come back
// on a channel and are applied by the loop itself.
package grid

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultUnit     = "PCS"
	DefaultQuantity = 1

	// InitialExclusions is the number of exclusion lines a new document starts with.
	InitialExclusions = 3
)

// LineItem is one costed row of the quotation.
type LineItem struct {
	ID                string  `json:"id"`
	Code              string  `json:"code"`
	Description       string  `json:"description"`
	Unit              string  `json:"unit"`
	Quantity          float64 `json:"quantity"`
	MaterialUnitPrice float64 `json:"materialUnitPrice"`
	LaborPrice        float64 `json:"laborPrice"`
}

// NewLineItem returns a blank row with defaults and a fresh ID.
func NewLineItem() LineItem {
	return LineItem{
		ID:       uuid.NewString(),
		Unit:     DefaultUnit,
		Quantity: DefaultQuantity,
	}
}

// IsBlank reports whether the row has neither a code nor a description.
func (it LineItem) IsBlank() bool {
	return strings.TrimSpace(it.Code) == "" && strings.TrimSpace(it.Description) == ""
}

// Header is the fixed set of document header fields.
type Header struct {
	Date                 string `json:"date"`
	Brand                string `json:"brand"`
	Location             string `json:"location"`
	City                 string `json:"city"`
	QuoteNo              string `json:"quoteNo"`
	MRNo                 string `json:"mrNo"`
	StoreCCID            string `json:"storeCcid"`
	MRRecDate            string `json:"mrRecDate"`
	MRPriority           string `json:"mrPriority"`
	MRDesc               string `json:"mrDesc"`
	OpeningDate          string `json:"openingDate"`
	ContinuousAssessment string `json:"continuousAssessment"`
	AttentionTo          string `json:"attentionTo"`
	Validity             string `json:"validity"`
	Currency             string `json:"currency"`
}

// field maps a header field name onto its storage. Unknown names return nil.
func (h *Header) field(name string) *string {
	switch name {
	case HeaderDate:
		return &h.Date
	case HeaderBrand:
		return &h.Brand
	case HeaderLocation:
		return &h.Location
	case HeaderCity:
		return &h.City
	case HeaderQuoteNo:
		return &h.QuoteNo
	case HeaderMRNo:
		return &h.MRNo
	case HeaderStoreCCID:
		return &h.StoreCCID
	case HeaderMRRecDate:
		return &h.MRRecDate
	case HeaderMRPriority:
		return &h.MRPriority
	case HeaderMRDesc:
		return &h.MRDesc
	case HeaderOpeningDate:
		return &h.OpeningDate
	case HeaderContinuousAssessment:
		return &h.ContinuousAssessment
	case HeaderAttentionTo:
		return &h.AttentionTo
	case HeaderValidity:
		return &h.Validity
	case HeaderCurrency:
		return &h.Currency
	}
	return nil
}

// Get returns the value of a named header field.
func (h Header) Get(name string) string {
	if p := h.field(name); p != nil {
		return *p
	}
	return ""
}

// Set writes a named header field and reports whether the name is known.
func (h *Header) Set(name, value string) bool {
	p := h.field(name)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Adjustments are the amounts applied on top of the scope total.
type Adjustments struct {
	Transportation float64 `json:"transportation"`
	Discount       float64 `json:"discount"`
}

// Footer holds the closing terms of the quotation.
type Footer struct {
	CompletionDate string   `json:"completionDate"`
	WarrantyPeriod string   `json:"warrantyPeriod"`
	Exclusions     []string `json:"exclusions"`
}

// Quotation is the persistence payload produced by Serialize.
type Quotation struct {
	Header      Header      `json:"header"`
	Items       []LineItem  `json:"items"`
	Adjustments Adjustments `json:"adjustments"`
	Footer      Footer      `json:"footer"`
}

// Defaults seeds a new document.
type Defaults struct {
	Currency   string
	Validity   string
	Exclusions []string
}

// ChangeKind classifies a model mutation.
type ChangeKind int

const (
	ChangeItemAdded ChangeKind = iota
	ChangeItemRemoved
	ChangeItemUpdated
	ChangeItemsReplaced
	ChangeHeader
	ChangeAdjustment
	ChangeFooter
	ChangeExclusionAdded
)

// Structural reports whether the set of addressable cells changed.
func (k ChangeKind) Structural() bool {
	switch k {
	case ChangeItemAdded, ChangeItemRemoved, ChangeItemsReplaced, ChangeExclusionAdded:
		return true
	}
	return false
}

// Change describes one mutation delivered to subscribers.
type Change struct {
	Kind  ChangeKind
	Row   int
	Field string
}

// Model owns the line items and the fixed header, adjustment and footer
// fields of one quotation. It always holds at least one line item.
type Model struct {
	items       []LineItem
	header      Header
	adjustments Adjustments
	footer      Footer

	listeners []func(Change)
}

// NewModel returns a document with a single blank row.
func NewModel(d Defaults) *Model {
	m := &Model{
		items: []LineItem{NewLineItem()},
	}
	m.header.Currency = d.Currency
	m.header.Validity = d.Validity
	m.footer.Exclusions = make([]string, InitialExclusions)
	copy(m.footer.Exclusions, d.Exclusions)
	return m
}

// Subscribe registers fn for every subsequent change and returns a function
// that removes it.
func (m *Model) Subscribe(fn func(Change)) func() {
	m.listeners = append(m.listeners, fn)
	idx := len(m.listeners) - 1
	return func() {
		m.listeners[idx] = nil
	}
}

func (m *Model) notify(c Change) {
	for _, fn := range m.listeners {
		if fn != nil {
			fn(c)
		}
	}
}

// Len returns the number of line items.
func (m *Model) Len() int {
	return len(m.items)
}

// Items returns a copy of the line items in grid order.
func (m *Model) Items() []LineItem {
	out := make([]LineItem, len(m.items))
	copy(out, m.items)
	return out
}

// Item returns the row at index row.
func (m *Model) Item(row int) (LineItem, bool) {
	if row < 0 || row >= len(m.items) {
		return LineItem{}, false
	}
	return m.items[row], true
}

// RowOf returns the index of the item with the given ID, or -1.
func (m *Model) RowOf(id string) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) Header() Header { return m.header }
func (m *Model) Adjustments() Adjustments { return m.adjustments }

// Footer returns the footer with its own copy of the exclusion list.
func (m *Model) Footer() Footer {
	f := m.footer
	f.Exclusions = append([]string(nil), m.footer.Exclusions...)
	return f
}

// Totals recomputes the aggregates from the current state.
func (m *Model) Totals() Totals {
	return CalcTotals(m.items, m.adjustments)
}

// AddItem appends a blank row and returns its index.
func (m *Model) AddItem() int {
	m.items = append(m.items, NewLineItem())
	row := len(m.items) - 1
	m.notify(Change{Kind: ChangeItemAdded, Row: row})
	return row
}

// RemoveItem deletes the row with the given ID. Removing the last remaining
// row, or an unknown ID, does nothing.
func (m *Model) RemoveItem(id string) {
	if len(m.items) <= 1 {
		return
	}
	row := m.RowOf(id)
	if row < 0 {
		return
	}
	m.items = append(m.items[:row], m.items[row+1:]...)
	m.notify(Change{Kind: ChangeItemRemoved, Row: row})
}

// SetItemField writes a text value into one column of a row. Numeric
// columns coerce silently; the total column applies the reverse rule.
func (m *Model) SetItemField(id, field, value string) {
	row := m.RowOf(id)
	if row < 0 {
		return
	}
	m.setRowField(row, field, value)
}

func (m *Model) setRowField(row int, field, value string) {
	it := &m.items[row]
	switch field {
	case FieldCode:
		it.Code = value
	case FieldDescription:
		it.Description = value
	case FieldUnit:
		it.Unit = value
	case FieldQuantity:
		it.Quantity = ParseAmount(value)
	case FieldMaterialUnitPrice:
		it.MaterialUnitPrice = ParseAmount(value)
	case FieldLaborPrice:
		it.LaborPrice = ParseAmount(value)
	case FieldTotal:
		it.LaborPrice = LaborFromTotal(parseNumber(value), it.Quantity, it.MaterialUnitPrice)
	default:
		return
	}
	m.notify(Change{Kind: ChangeItemUpdated, Row: row, Field: field})
}

// SetItemTotal edits the displayed total of a row: labor becomes whatever
// makes the row add up to value.
func (m *Model) SetItemTotal(id, value string) {
	m.SetItemField(id, FieldTotal, value)
}

// UpdateItem mutates a row in place through fn. The row keeps its ID.
func (m *Model) UpdateItem(row int, fn func(*LineItem)) {
	if row < 0 || row >= len(m.items) {
		return
	}
	id := m.items[row].ID
	fn(&m.items[row])
	m.items[row].ID = id
	m.notify(Change{Kind: ChangeItemUpdated, Row: row})
}

// SetHeaderField writes a named header field. Unknown names are ignored.
func (m *Model) SetHeaderField(name, value string) {
	if !m.header.Set(name, value) {
		return
	}
	m.notify(Change{Kind: ChangeHeader, Field: name})
}

// SetAdjustment writes transportation or discount.
func (m *Model) SetAdjustment(name, value string) {
	switch name {
	case AdjustmentTransportation:
		m.adjustments.Transportation = ParseAmount(value)
	case AdjustmentDiscount:
		m.adjustments.Discount = ParseAmount(value)
	default:
		return
	}
	m.notify(Change{Kind: ChangeAdjustment, Field: name})
}

// SetFooterField writes completionDate or warrantyPeriod.
func (m *Model) SetFooterField(name, value string) {
	switch name {
	case FooterCompletionDate:
		m.footer.CompletionDate = value
	case FooterWarrantyPeriod:
		m.footer.WarrantyPeriod = value
	default:
		return
	}
	m.notify(Change{Kind: ChangeFooter, Field: name})
}

// SetExclusion edits one exclusion line.
func (m *Model) SetExclusion(index int, value string) {
	if index < 0 || index >= len(m.footer.Exclusions) {
		return
	}
	m.footer.Exclusions[index] = value
	m.notify(Change{Kind: ChangeFooter, Row: index, Field: "exclusions"})
}

// AddExclusion appends an empty exclusion line and returns its index.
func (m *Model) AddExclusion() int {
	m.footer.Exclusions = append(m.footer.Exclusions, "")
	idx := len(m.footer.Exclusions) - 1
	m.notify(Change{Kind: ChangeExclusionAdded, Row: idx})
	return idx
}

// ReplaceAllItems swaps in a new set of rows. Rows without an ID get one;
// an empty list leaves a single blank row.
func (m *Model) ReplaceAllItems(items []LineItem) {
	next := make([]LineItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		next = append(next, it)
	}
	if len(next) == 0 {
		next = append(next, NewLineItem())
	}
	m.items = next
	m.notify(Change{Kind: ChangeItemsReplaced})
}

// Normalized returns a copy of q with negative quantities, material prices
// and adjustments clamped to 0. Labor is left alone since the reverse total
// edit may legitimately make it negative.
func (q Quotation) Normalized() Quotation {
	out := q
	out.Items = make([]LineItem, len(q.Items))
	for i, it := range q.Items {
		it.Quantity = math.Max(it.Quantity, 0)
		it.MaterialUnitPrice = math.Max(it.MaterialUnitPrice, 0)
		out.Items[i] = it
	}
	out.Adjustments.Transportation = math.Max(q.Adjustments.Transportation, 0)
	out.Adjustments.Discount = math.Max(q.Adjustments.Discount, 0)
	out.Footer.Exclusions = append([]string(nil), q.Footer.Exclusions...)
	return out
}

// Load replaces the whole document, e.g. when reopening a saved quotation.
func (m *Model) Load(q Quotation) {
	q = q.Normalized()
	m.header = q.Header
	m.adjustments = q.Adjustments
	m.footer = q.Footer
	m.footer.Exclusions = append([]string(nil), q.Footer.Exclusions...)
	for len(m.footer.Exclusions) < InitialExclusions {
		m.footer.Exclusions = append(m.footer.Exclusions, "")
	}
	m.ReplaceAllItems(q.Items)
}

// Serialize produces the save payload. Rows with neither code nor
// description are left out.
func (m *Model) Serialize() Quotation {
	q := Quotation{
		Header:      m.header,
		Adjustments: m.adjustments,
		Footer:      m.Footer(),
		Items:       make([]LineItem, 0, len(m.items)),
	}
	for _, it := range m.items {
		if it.IsBlank() {
			continue
		}
		q.Items = append(q.Items, it)
	}
	return q
}

// CellText returns the editable text of a cell as a UI would display it.
func (m *Model) CellText(c Coord) string {
	switch c.Section {
	case SectionHeader:
		return m.header.Get(c.Field)
	case SectionItem:
		it, ok := m.Item(c.Row)
		if !ok {
			return ""
		}
		switch c.Field {
		case FieldCode:
			return it.Code
		case FieldDescription:
			return it.Description
		case FieldUnit:
			return it.Unit
		case FieldQuantity:
			return FormatNumber(it.Quantity)
		case FieldMaterialUnitPrice:
			return FormatNumber(it.MaterialUnitPrice)
		case FieldLaborPrice:
			return FormatNumber(it.LaborPrice)
		case FieldTotal:
			return FormatNumber(LineTotal(it))
		}
	case SectionAdjustment:
		switch c.Field {
		case AdjustmentTransportation:
			return FormatNumber(m.adjustments.Transportation)
		case AdjustmentDiscount:
			return FormatNumber(m.adjustments.Discount)
		}
	case SectionFooter:
		switch c.Field {
		case FooterCompletionDate:
			return m.footer.CompletionDate
		case FooterWarrantyPeriod:
			return m.footer.WarrantyPeriod
		}
	case SectionExclusion:
		if c.Index >= 0 && c.Index < len(m.footer.Exclusions) {
			return m.footer.Exclusions[c.Index]
		}
	}
	return ""
}

// SetCell routes a text edit to whichever section the coordinate names.
func (m *Model) SetCell(c Coord, value string) {
	switch c.Section {
	case SectionHeader:
		m.SetHeaderField(c.Field, value)
	case SectionItem:
		if c.Row >= 0 && c.Row < len(m.items) {
			m.setRowField(c.Row, c.Field, value)
		}
	case SectionAdjustment:
		m.SetAdjustment(c.Field, value)
	case SectionFooter:
		m.SetFooterField(c.Field, value)
	case SectionExclusion:
		m.SetExclusion(c.Index, value)
	}
}

// ParseAmount reads a non-negative amount. Anything that is not a number,
// or is negative, becomes 0.
func ParseAmount(s string) float64 {
	v := parseNumber(s)
	if v < 0 {
		return 0
	}
	return v
}

// parseNumber reads a signed number, tolerating thousands separators.
// Non-numeric input yields 0.
func parseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatNumber renders a number with no trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
