package services

import (
	"fmt"

	"quotationeditor/grid"
)

// ExportField is one labelled header value printed above the item table.
type ExportField struct {
	Label string
	Value string
}

// ExportRow represents a single line item in the quotation export.
type ExportRow struct {
	Index             string // "1", "2", ...
	Code              string
	Description       string
	Unit              string
	Qty               float64
	MaterialUnitPrice float64
	LaborPrice        float64
	Total             float64
}

// ExportData holds all data needed for export.
type ExportData struct {
	Title          string
	QuoteNo        string
	Date           string
	Currency       string
	HeaderFields   []ExportField
	Rows           []ExportRow
	Totals         grid.Totals
	CompletionDate string
	WarrantyPeriod string
	Exclusions     []string
}

var exportHeaderLabels = []ExportField{
	{Label: "Brand", Value: grid.HeaderBrand},
	{Label: "Location", Value: grid.HeaderLocation},
	{Label: "City", Value: grid.HeaderCity},
	{Label: "Attention To", Value: grid.HeaderAttentionTo},
	{Label: "MR No", Value: grid.HeaderMRNo},
	{Label: "Store CC ID", Value: grid.HeaderStoreCCID},
	{Label: "MR Received", Value: grid.HeaderMRRecDate},
	{Label: "MR Priority", Value: grid.HeaderMRPriority},
	{Label: "Opening Date", Value: grid.HeaderOpeningDate},
	{Label: "Continuous Assessment", Value: grid.HeaderContinuousAssessment},
	{Label: "Validity", Value: grid.HeaderValidity},
	{Label: "MR Description", Value: grid.HeaderMRDesc},
}

// BuildExportData flattens a quotation into printable rows. Blank rows are
// skipped and totals are recomputed from what is printed.
func BuildExportData(q grid.Quotation) ExportData {
	data := ExportData{
		QuoteNo:        q.Header.QuoteNo,
		Date:           q.Header.Date,
		Currency:       q.Header.Currency,
		CompletionDate: q.Footer.CompletionDate,
		WarrantyPeriod: q.Footer.WarrantyPeriod,
	}

	data.Title = "Quotation"
	if q.Header.QuoteNo != "" {
		data.Title = "Quotation " + q.Header.QuoteNo
	}

	for _, f := range exportHeaderLabels {
		if v := q.Header.Get(f.Value); v != "" {
			data.HeaderFields = append(data.HeaderFields, ExportField{Label: f.Label, Value: v})
		}
	}

	var printed []grid.LineItem
	for _, it := range q.Items {
		if it.IsBlank() {
			continue
		}
		printed = append(printed, it)
		data.Rows = append(data.Rows, ExportRow{
			Index:             fmt.Sprintf("%d", len(printed)),
			Code:              it.Code,
			Description:       it.Description,
			Unit:              it.Unit,
			Qty:               it.Quantity,
			MaterialUnitPrice: it.MaterialUnitPrice,
			LaborPrice:        it.LaborPrice,
			Total:             grid.LineTotal(it),
		})
	}
	data.Totals = grid.CalcTotals(printed, q.Adjustments)

	for _, ex := range q.Footer.Exclusions {
		if ex != "" {
			data.Exclusions = append(data.Exclusions, ex)
		}
	}
	return data
}

// summaryLines lists the totals block in print order.
func summaryLines(t grid.Totals) []ExportField {
	return []ExportField{
		{Label: "Material Subtotal", Value: FormatAmount(t.SubtotalMaterial)},
		{Label: "Labor Subtotal", Value: FormatAmount(t.SubtotalLabor)},
		{Label: "Scope Total", Value: FormatAmount(t.ScopeTotal)},
		{Label: "Transportation", Value: FormatAmount(t.Transportation)},
		{Label: "Discount", Value: FormatAmount(t.Discount)},
		{Label: "Total After Adjustments", Value: FormatAmount(t.AdjustedTotal)},
		{Label: fmt.Sprintf("VAT %.0f%%", grid.VATRate*100), Value: FormatAmount(t.VATAmount)},
		{Label: "Grand Total", Value: FormatAmount(t.GrandTotal)},
	}
}
