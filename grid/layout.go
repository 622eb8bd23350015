package grid

// Layout describes which optional panels the form shows.
type Layout struct {
	// AdjustmentPanel is true when transportation and discount are shown
	// below the grid. Without it, Down/Enter from the last row grows the grid.
	AdjustmentPanel bool
}

// DefaultLayout shows every panel.
var DefaultLayout = Layout{AdjustmentPanel: true}

const (
	// HeaderLast is the header field whose Down/Enter enters the grid.
	HeaderLast = HeaderMRDesc
	// HeaderReturn is where Up/Shift+Enter from the first row lands.
	HeaderReturn = HeaderMRDesc
)

type neighbors struct {
	up, down, left, right string
}

// headerOrder is the header reading order, two fields per visual row with
// the MR description spanning the last row.
var headerOrder = []string{
	HeaderDate, HeaderQuoteNo,
	HeaderBrand, HeaderMRNo,
	HeaderLocation, HeaderStoreCCID,
	HeaderCity, HeaderMRRecDate,
	HeaderAttentionTo, HeaderMRPriority,
	HeaderValidity, HeaderOpeningDate,
	HeaderCurrency, HeaderContinuousAssessment,
	HeaderMRDesc,
}

// HeaderFields lists every header field name in reading order.
func HeaderFields() []string {
	return append([]string(nil), headerOrder...)
}

var headerAdjacency = map[string]neighbors{
	HeaderDate:                 {down: HeaderBrand, right: HeaderQuoteNo},
	HeaderQuoteNo:              {down: HeaderMRNo, left: HeaderDate},
	HeaderBrand:                {up: HeaderDate, down: HeaderLocation, right: HeaderMRNo},
	HeaderMRNo:                 {up: HeaderQuoteNo, down: HeaderStoreCCID, left: HeaderBrand},
	HeaderLocation:             {up: HeaderBrand, down: HeaderCity, right: HeaderStoreCCID},
	HeaderStoreCCID:            {up: HeaderMRNo, down: HeaderMRRecDate, left: HeaderLocation},
	HeaderCity:                 {up: HeaderLocation, down: HeaderAttentionTo, right: HeaderMRRecDate},
	HeaderMRRecDate:            {up: HeaderStoreCCID, down: HeaderMRPriority, left: HeaderCity},
	HeaderAttentionTo:          {up: HeaderCity, down: HeaderValidity, right: HeaderMRPriority},
	HeaderMRPriority:           {up: HeaderMRRecDate, down: HeaderOpeningDate, left: HeaderAttentionTo},
	HeaderValidity:             {up: HeaderAttentionTo, down: HeaderCurrency, right: HeaderOpeningDate},
	HeaderOpeningDate:          {up: HeaderMRPriority, down: HeaderContinuousAssessment, left: HeaderValidity},
	HeaderCurrency:             {up: HeaderValidity, down: HeaderMRDesc, right: HeaderContinuousAssessment},
	HeaderContinuousAssessment: {up: HeaderOpeningDate, down: HeaderMRDesc, left: HeaderCurrency},
	HeaderMRDesc:               {up: HeaderCurrency},
}

// chainCells is the forward chain below the grid: adjustments, footer, then
// the exclusion lines by index.
func chainCells(l Layout, exclusions int) []Coord {
	var cells []Coord
	if l.AdjustmentPanel {
		cells = append(cells,
			AdjustmentCell(AdjustmentTransportation),
			AdjustmentCell(AdjustmentDiscount),
		)
	}
	cells = append(cells,
		FooterCell(FooterCompletionDate),
		FooterCell(FooterWarrantyPeriod),
	)
	for i := 0; i < exclusions; i++ {
		cells = append(cells, ExclusionCell(i))
	}
	return cells
}

// documentOrder lists every addressable cell in Tab order.
func documentOrder(l Layout, rows, exclusions int) []Coord {
	cells := make([]Coord, 0, len(headerOrder)+rows*len(ItemColumns)+4+exclusions)
	for _, f := range headerOrder {
		cells = append(cells, HeaderCell(f))
	}
	for r := 0; r < rows; r++ {
		for _, f := range ItemColumns {
			cells = append(cells, ItemCell(r, f))
		}
	}
	return append(cells, chainCells(l, exclusions)...)
}
