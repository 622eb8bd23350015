package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfMuted    = &props.Color{Red: 80, Green: 80, Blue: 80}
	pdfHeaderBg = &props.Color{Red: 33, Green: 37, Blue: 41}
	pdfStripeBg = &props.Color{Red: 245, Green: 245, Blue: 245}
	pdfTotalBg  = &props.Color{Red: 240, Green: 240, Blue: 240}
)

// GeneratePDF creates a PDF document from quotation export data using
// maroto/v2. It returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addTableHeader(m)
	for i, r := range data.Rows {
		addTableRow(m, r, i%2 == 1)
	}
	addSummary(m, data)
	addTerms(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the title, quote number, date and header fields.
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Quote No: %s", data.QuoteNo), props.Text{
					Size:  9,
					Align: align.Left,
					Color: pdfMuted,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.Date), props.Text{
					Size:  9,
					Align: align.Right,
					Color: pdfMuted,
				}),
			),
		),
	)

	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold}
	valueStyle := props.Text{Size: 8}
	// Two label/value pairs per row.
	for i := 0; i < len(data.HeaderFields); i += 2 {
		cols := []core.Col{
			col.New(2).Add(text.New(data.HeaderFields[i].Label, labelStyle)),
			col.New(4).Add(text.New(data.HeaderFields[i].Value, valueStyle)),
		}
		if i+1 < len(data.HeaderFields) {
			cols = append(cols,
				col.New(2).Add(text.New(data.HeaderFields[i+1].Label, labelStyle)),
				col.New(4).Add(text.New(data.HeaderFields[i+1].Value, valueStyle)),
			)
		}
		m.AddRows(row.New(5).Add(cols...))
	}

	m.AddRows(row.New(4))
}

// addTableHeader adds the column header row for the item table.
func addTableHeader(m core.Maroto) {
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: pdfHeaderBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Code", headerTextLeft)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Material", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Labor", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)
}

// addTableRow adds a single item row. Alternate rows get a light background.
func addTableRow(m core.Maroto, r ExportRow, striped bool) {
	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	cols := []core.Col{
		col.New(1).Add(text.New(r.Index, baseText)),
		col.New(1).Add(text.New(r.Code, leftText)),
		col.New(4).Add(text.New(r.Description, leftText)),
		col.New(1).Add(text.New(r.Unit, baseText)),
		col.New(1).Add(text.New(formatQty(r.Qty), rightText)),
		col.New(1).Add(text.New(FormatAmount(r.MaterialUnitPrice), rightText)),
		col.New(1).Add(text.New(FormatAmount(r.LaborPrice), rightText)),
		col.New(2).Add(text.New(FormatAmount(r.Total), rightText)),
	}
	if striped {
		cell := &props.Cell{BackgroundColor: pdfStripeBg}
		for i := range cols {
			cols[i] = cols[i].WithStyle(cell)
		}
	}

	m.AddRows(row.New(7).Add(cols...))
}

// addSummary adds the totals block at the bottom of the item table.
func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryCell := &props.Cell{BackgroundColor: pdfTotalBg}
	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := labelStyle

	for _, line := range summaryLines(data.Totals) {
		value := line.Value
		if data.Currency != "" {
			value = data.Currency + " " + value
		}
		m.AddRows(
			row.New(7).Add(
				col.New(8).Add(text.New(line.Label, labelStyle)).WithStyle(summaryCell),
				col.New(4).Add(text.New(value, valueStyle)).WithStyle(summaryCell),
			),
		)
	}
}

// addTerms adds completion, warranty and the numbered exclusions list.
func addTerms(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold}
	valueStyle := props.Text{Size: 8}

	terms := []ExportField{
		{Label: "Completion Date", Value: data.CompletionDate},
		{Label: "Warranty Period", Value: data.WarrantyPeriod},
	}
	for _, term := range terms {
		if term.Value == "" {
			continue
		}
		m.AddRows(
			row.New(5).Add(
				col.New(3).Add(text.New(term.Label, labelStyle)),
				col.New(9).Add(text.New(term.Value, valueStyle)),
			),
		)
	}

	if len(data.Exclusions) == 0 {
		return
	}
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New("Exclusions", labelStyle))))
	for i, ex := range data.Exclusions {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New(fmt.Sprintf("%d. %s", i+1, ex), valueStyle)),
			),
		)
	}
}
