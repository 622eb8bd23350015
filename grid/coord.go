package grid

import "fmt"

// Section identifies which part of the quotation form a cell belongs to.
type Section int

const (
	SectionHeader Section = iota
	SectionItem
	SectionAdjustment
	SectionFooter
	SectionExclusion
)

func (s Section) String() string {
	switch s {
	case SectionHeader:
		return "header"
	case SectionItem:
		return "item"
	case SectionAdjustment:
		return "adjustment"
	case SectionFooter:
		return "footer"
	case SectionExclusion:
		return "exclusion"
	}
	return "unknown"
}

// Coord addresses any editable cell of the form. Row is only meaningful for
// item cells and Index only for exclusion cells; the constructors below keep
// the unused parts zeroed so coordinates compare with ==.
type Coord struct {
	Section Section
	Field   string
	Row     int
	Index   int
}

func HeaderCell(field string) Coord { return Coord{Section: SectionHeader, Field: field} }
func ItemCell(row int, field string) Coord { return Coord{Section: SectionItem, Row: row, Field: field} }
func AdjustmentCell(field string) Coord { return Coord{Section: SectionAdjustment, Field: field} }
func FooterCell(field string) Coord { return Coord{Section: SectionFooter, Field: field} }
func ExclusionCell(index int) Coord { return Coord{Section: SectionExclusion, Index: index} }

func (c Coord) String() string {
	switch c.Section {
	case SectionItem:
		return fmt.Sprintf("item[%d].%s", c.Row, c.Field)
	case SectionExclusion:
		return fmt.Sprintf("exclusion[%d]", c.Index)
	}
	return c.Section.String() + "." + c.Field
}

// IsSuggestField reports whether the cell drives catalog suggestions.
func (c Coord) IsSuggestField() bool {
	return c.Section == SectionItem && (c.Field == FieldCode || c.Field == FieldDescription)
}

// Header field names.
const (
	HeaderDate                 = "date"
	HeaderBrand                = "brand"
	HeaderLocation             = "location"
	HeaderCity                 = "city"
	HeaderQuoteNo              = "quoteNo"
	HeaderMRNo                 = "mrNo"
	HeaderStoreCCID            = "storeCcid"
	HeaderMRRecDate            = "mrRecDate"
	HeaderMRPriority           = "mrPriority"
	HeaderMRDesc               = "mrDesc"
	HeaderOpeningDate          = "openingDate"
	HeaderContinuousAssessment = "continuousAssessment"
	HeaderAttentionTo          = "attentionTo"
	HeaderValidity             = "validity"
	HeaderCurrency             = "currency"
)

// Item column names, in grid order.
const (
	FieldCode              = "code"
	FieldDescription       = "description"
	FieldUnit              = "unit"
	FieldQuantity          = "quantity"
	FieldMaterialUnitPrice = "materialUnitPrice"
	FieldLaborPrice        = "laborPrice"
	FieldTotal             = "total"
)

// ItemColumns is the fixed column order shared by every item row.
var ItemColumns = []string{
	FieldCode,
	FieldDescription,
	FieldUnit,
	FieldQuantity,
	FieldMaterialUnitPrice,
	FieldLaborPrice,
	FieldTotal,
}

// Adjustment and footer field names.
const (
	AdjustmentTransportation = "transportation"
	AdjustmentDiscount       = "discount"

	FooterCompletionDate = "completionDate"
	FooterWarrantyPeriod = "warrantyPeriod"
)

// numericFields always treat Left/Right as leaving the cell.
var numericFields = map[string]bool{
	FieldQuantity:            true,
	FieldMaterialUnitPrice:   true,
	FieldLaborPrice:          true,
	FieldTotal:               true,
	AdjustmentTransportation: true,
	AdjustmentDiscount:       true,
}

var dateFields = map[string]bool{
	HeaderDate:           true,
	HeaderMRRecDate:      true,
	HeaderOpeningDate:    true,
	FooterCompletionDate: true,
}

// crossesOnArrow reports whether Left/Right leave the cell regardless of caret.
func (c Coord) crossesOnArrow() bool {
	if c.Section == SectionExclusion {
		return false
	}
	return numericFields[c.Field] || dateFields[c.Field]
}

func columnIndex(field string) int {
	for i, f := range ItemColumns {
		if f == field {
			return i
		}
	}
	return -1
}
