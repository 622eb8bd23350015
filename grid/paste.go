package grid

import "strings"

// Paste column order: code, description, unit, quantity, material price,
// labor price.
const (
	pasteColCode = iota
	pasteColDescription
	pasteColUnit
	pasteColQuantity
	pasteColMaterial
	pasteColLabor
)

// IsMultiCellPaste reports whether clipboard text holds tab or line
// delimiters. Anything else is left to the focused field's own insertion.
func IsMultiCellPaste(text string) bool {
	return strings.ContainsAny(text, "\t\n\r")
}

// ParsePaste turns tab/newline separated clipboard text into line items.
// Missing trailing columns, and blank unit or quantity cells, take the row
// defaults; empty lines are skipped.
func ParsePaste(text string) []LineItem {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var items []LineItem
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, "\t")
		cell := func(i int) (string, bool) {
			if i >= len(cells) {
				return "", false
			}
			return strings.TrimSpace(cells[i]), true
		}

		it := NewLineItem()
		it.Code, _ = cell(pasteColCode)
		it.Description, _ = cell(pasteColDescription)
		if v, ok := cell(pasteColUnit); ok && v != "" {
			it.Unit = v
		}
		if v, ok := cell(pasteColQuantity); ok && v != "" {
			it.Quantity = ParseAmount(v)
		}
		if v, ok := cell(pasteColMaterial); ok {
			it.MaterialUnitPrice = ParseAmount(v)
		}
		if v, ok := cell(pasteColLabor); ok {
			it.LaborPrice = ParseAmount(v)
		}
		items = append(items, it)
	}
	return items
}

// Paste ingests multi-cell clipboard text. When the grid holds only one
// blank row the pasted rows replace it, otherwise they are appended. It
// returns false, changing nothing, for text that is not a multi-cell paste.
func (m *Model) Paste(text string) bool {
	if !IsMultiCellPaste(text) {
		return false
	}
	parsed := ParsePaste(text)
	if len(parsed) == 0 {
		return true
	}
	if len(m.items) == 1 && m.items[0].IsBlank() {
		m.ReplaceAllItems(parsed)
		return true
	}
	m.ReplaceAllItems(append(m.Items(), parsed...))
	return true
}
