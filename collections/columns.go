package collections

import "quotationeditor/grid"

// HeaderColumn maps a quotation header field onto its quotations column.
type HeaderColumn struct {
	Field  string
	Column string
}

// HeaderColumns lists every header field stored on a quotation record.
var HeaderColumns = []HeaderColumn{
	{grid.HeaderDate, "date"},
	{grid.HeaderBrand, "brand"},
	{grid.HeaderLocation, "location"},
	{grid.HeaderCity, "city"},
	{grid.HeaderQuoteNo, "quote_no"},
	{grid.HeaderMRNo, "mr_no"},
	{grid.HeaderStoreCCID, "store_ccid"},
	{grid.HeaderMRRecDate, "mr_rec_date"},
	{grid.HeaderMRPriority, "mr_priority"},
	{grid.HeaderMRDesc, "mr_desc"},
	{grid.HeaderOpeningDate, "opening_date"},
	{grid.HeaderContinuousAssessment, "continuous_assessment"},
	{grid.HeaderAttentionTo, "attention_to"},
	{grid.HeaderValidity, "validity"},
	{grid.HeaderCurrency, "currency"},
}
