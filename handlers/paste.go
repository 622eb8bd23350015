package handlers

import (
	"io"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotationeditor/grid"
)

// maxPasteBytes bounds the clipboard text accepted by the preview endpoint.
const maxPasteBytes = 1 << 20

// HandlePastePreview parses raw clipboard text the way the grid would and
// returns the resulting rows and their totals without storing anything.
// Text with no tab or line break is reported as a single-cell paste.
func HandlePastePreview() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body, err := io.ReadAll(io.LimitReader(e.Request.Body, maxPasteBytes))
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "could not read body"})
		}
		text := string(body)
		if !grid.IsMultiCellPaste(text) {
			return e.JSON(http.StatusOK, map[string]any{"multiCell": false})
		}

		items := grid.ParsePaste(text)
		if items == nil {
			items = []grid.LineItem{}
		}
		return e.JSON(http.StatusOK, map[string]any{
			"multiCell": true,
			"items":     items,
			"totals":    grid.CalcTotals(items, grid.Adjustments{}),
		})
	}
}
