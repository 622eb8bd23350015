package grid

// VATRate is the fixed value-added tax rate applied to the adjusted total.
const VATRate = 0.15

// LineTotal is quantity times material price plus a flat labor amount.
// Labor is priced per job, so it is not multiplied by quantity.
func LineTotal(item LineItem) float64 {
	return CalcLineTotal(item.Quantity, item.MaterialUnitPrice, item.LaborPrice)
}

func CalcLineTotal(qty, materialUnitPrice, laborPrice float64) float64 {
	return qty*materialUnitPrice + laborPrice
}

// LaborFromTotal derives the labor price that makes a row add up to total
// while leaving quantity and material price untouched.
func LaborFromTotal(total, qty, materialUnitPrice float64) float64 {
	return total - qty*materialUnitPrice
}

// Totals holds the aggregate amounts shown under the grid.
type Totals struct {
	SubtotalMaterial float64 `json:"subtotalMaterial"`
	SubtotalLabor    float64 `json:"subtotalLabor"`
	ScopeTotal       float64 `json:"scopeTotal"`
	Transportation   float64 `json:"transportation"`
	Discount         float64 `json:"discount"`
	AdjustedTotal    float64 `json:"adjustedTotal"`
	VATAmount        float64 `json:"vatAmount"`
	GrandTotal       float64 `json:"grandTotal"`
}

// CalcTotals derives every aggregate from the rows and adjustments. VAT and
// the grand total are both taken from the same adjusted total.
func CalcTotals(items []LineItem, adj Adjustments) Totals {
	var totals Totals
	for _, item := range items {
		totals.SubtotalMaterial += item.Quantity * item.MaterialUnitPrice
		totals.SubtotalLabor += item.LaborPrice
	}
	totals.ScopeTotal = totals.SubtotalMaterial + totals.SubtotalLabor
	totals.Transportation = adj.Transportation
	totals.Discount = adj.Discount
	totals.AdjustedTotal = totals.ScopeTotal + adj.Transportation - adj.Discount
	totals.VATAmount = totals.AdjustedTotal * VATRate
	totals.GrandTotal = totals.AdjustedTotal + totals.VATAmount
	return totals
}
