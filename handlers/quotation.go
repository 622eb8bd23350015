package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"quotationeditor/grid"
)

// QuotationSaver persists a whole quotation document.
type QuotationSaver interface {
	Save(ctx context.Context, q grid.Quotation) (string, error)
}

// HandleQuotationSave accepts a serialized quotation as JSON, persists it
// and responds with the new ID and recomputed totals.
func HandleQuotationSave(store QuotationSaver, logger *zap.Logger) func(*core.RequestEvent) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(e *core.RequestEvent) error {
		var q grid.Quotation
		if err := e.BindBody(&q); err != nil {
			logger.Warn("quotation save: invalid body", zap.Error(err))
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid quotation payload"})
		}
		q = q.Normalized()

		id, err := store.Save(e.Request.Context(), q)
		if err != nil {
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save quotation"})
		}

		var kept []grid.LineItem
		for _, it := range q.Items {
			if !it.IsBlank() {
				kept = append(kept, it)
			}
		}
		return e.JSON(http.StatusCreated, map[string]any{
			"id":     id,
			"totals": grid.CalcTotals(kept, q.Adjustments),
		})
	}
}

// HandleQuotationView returns a stored quotation with its totals as JSON.
func HandleQuotationView(store QuotationLoader) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing quotation ID"})
		}
		stored, err := store.Load(id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quotation not found"})
		}
		return e.JSON(http.StatusOK, stored)
	}
}
