package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"quotationeditor/collections"
	"quotationeditor/grid"
	"quotationeditor/metrics"
)

// StoredQuotation is a persisted quotation with its record ID and the
// totals recomputed from its rows.
type StoredQuotation struct {
	ID string `json:"id"`
	grid.Quotation
	Totals  grid.Totals `json:"totals"`
	Created time.Time   `json:"created"`
}

// QuotationStore persists quotations and their line items in PocketBase.
// It implements grid.QuotationSaver.
type QuotationStore struct {
	app    core.App
	logger *zap.Logger
	prefix string
	now    func() time.Time
}

var _ grid.QuotationSaver = (*QuotationStore)(nil)

// NewQuotationStore creates a store. quotePrefix names generated quote
// numbers; empty uses DefaultQuotePrefix.
func NewQuotationStore(app core.App, logger *zap.Logger, quotePrefix string) *QuotationStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotationStore{
		app:    app,
		logger: logger,
		prefix: quotePrefix,
		now:    time.Now,
	}
}

// SaveQuotation persists the four parts of a serialized document.
func (s *QuotationStore) SaveQuotation(ctx context.Context, header grid.Header, items []grid.LineItem, adjustments grid.Adjustments, footer grid.Footer) (string, error) {
	return s.Save(ctx, grid.Quotation{
		Header:      header,
		Items:       items,
		Adjustments: adjustments,
		Footer:      footer,
	})
}

// Save writes the quotation and one quotation_items record per non-blank
// row in a single transaction and returns the new quotation ID. A missing
// quote number is generated and negative amounts are stored as 0.
func (s *QuotationStore) Save(ctx context.Context, q grid.Quotation) (string, error) {
	start := time.Now()
	q = q.Normalized()

	items := make([]grid.LineItem, 0, len(q.Items))
	for _, it := range q.Items {
		if !it.IsBlank() {
			items = append(items, it)
		}
	}
	totals := grid.CalcTotals(items, q.Adjustments)

	var id string
	err := s.app.RunInTransaction(func(txApp core.App) error {
		header := q.Header
		if strings.TrimSpace(header.QuoteNo) == "" {
			no, err := GenerateQuoteNumber(txApp, s.prefix, s.now())
			if err != nil {
				return err
			}
			header.QuoteNo = no
		}

		quotationsCol, err := txApp.FindCollectionByNameOrId("quotations")
		if err != nil {
			return fmt.Errorf("find quotations collection: %w", err)
		}
		itemsCol, err := txApp.FindCollectionByNameOrId("quotation_items")
		if err != nil {
			return fmt.Errorf("find quotation_items collection: %w", err)
		}

		rec := core.NewRecord(quotationsCol)
		for _, hc := range collections.HeaderColumns {
			rec.Set(hc.Column, header.Get(hc.Field))
		}
		exclusions := q.Footer.Exclusions
		if exclusions == nil {
			exclusions = []string{}
		}
		rec.Set("transportation", q.Adjustments.Transportation)
		rec.Set("discount", q.Adjustments.Discount)
		rec.Set("completion_date", q.Footer.CompletionDate)
		rec.Set("warranty_period", q.Footer.WarrantyPeriod)
		rec.Set("exclusions", exclusions)
		rec.Set("scope_total", totals.ScopeTotal)
		rec.Set("vat_amount", totals.VATAmount)
		rec.Set("grand_total", totals.GrandTotal)

		if err := txApp.SaveWithContext(ctx, rec); err != nil {
			return fmt.Errorf("save quotation: %w", err)
		}

		for i, it := range items {
			ir := core.NewRecord(itemsCol)
			ir.Set("quotation", rec.Id)
			ir.Set("sort_order", i+1)
			ir.Set("item_id", it.ID)
			ir.Set("code", it.Code)
			ir.Set("description", it.Description)
			ir.Set("unit", it.Unit)
			ir.Set("quantity", it.Quantity)
			ir.Set("material_unit_price", it.MaterialUnitPrice)
			ir.Set("labor_price", it.LaborPrice)
			if err := txApp.SaveWithContext(ctx, ir); err != nil {
				return fmt.Errorf("save line item %d: %w", i+1, err)
			}
		}

		id = rec.Id
		return nil
	})
	metrics.RecordSave(len(items), time.Since(start), err)
	if err != nil {
		s.logger.Error("save quotation failed", zap.Error(err))
		return "", err
	}

	s.logger.Info("saved quotation",
		zap.String("id", id),
		zap.Int("items", len(items)),
		zap.Float64("grand_total", totals.GrandTotal),
	)
	return id, nil
}

// Load reads a quotation and its rows in sort order.
func (s *QuotationStore) Load(id string) (StoredQuotation, error) {
	rec, err := s.app.FindRecordById("quotations", id)
	if err != nil {
		return StoredQuotation{}, fmt.Errorf("quotation not found: %w", err)
	}

	var q grid.Quotation
	for _, hc := range collections.HeaderColumns {
		q.Header.Set(hc.Field, rec.GetString(hc.Column))
	}
	q.Adjustments = grid.Adjustments{
		Transportation: rec.GetFloat("transportation"),
		Discount:       rec.GetFloat("discount"),
	}
	q.Footer = grid.Footer{
		CompletionDate: rec.GetString("completion_date"),
		WarrantyPeriod: rec.GetString("warranty_period"),
	}
	if err := rec.UnmarshalJSONField("exclusions", &q.Footer.Exclusions); err != nil {
		s.logger.Warn("unreadable exclusions", zap.String("id", id), zap.Error(err))
		q.Footer.Exclusions = nil
	}

	itemRecords, err := s.app.FindRecordsByFilter(
		"quotation_items",
		"quotation = {:id}",
		"sort_order",
		0,
		0,
		map[string]any{"id": id},
	)
	if err != nil {
		return StoredQuotation{}, fmt.Errorf("load line items: %w", err)
	}
	q.Items = make([]grid.LineItem, 0, len(itemRecords))
	for _, ir := range itemRecords {
		q.Items = append(q.Items, grid.LineItem{
			ID:                ir.GetString("item_id"),
			Code:              ir.GetString("code"),
			Description:       ir.GetString("description"),
			Unit:              ir.GetString("unit"),
			Quantity:          ir.GetFloat("quantity"),
			MaterialUnitPrice: ir.GetFloat("material_unit_price"),
			LaborPrice:        ir.GetFloat("labor_price"),
		})
	}

	return StoredQuotation{
		ID:        rec.Id,
		Quotation: q,
		Totals:    grid.CalcTotals(q.Items, q.Adjustments),
		Created:   rec.GetDateTime("created").Time(),
	}, nil
}
