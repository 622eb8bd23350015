package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates an Excel file from the given ExportData and returns
// the file contents as a byte slice.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := sanitizeSheetName(data.QuoteNo)

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through H).
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 12, 44, 8, 10, 16, 14, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Title and header block ──────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	row := 2
	meta := []ExportField{{Label: "Date", Value: data.Date}, {Label: "Currency", Value: data.Currency}}
	meta = append(meta, data.HeaderFields...)
	for _, fld := range meta {
		if fld.Value == "" {
			continue
		}
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+r, fld.Label+":")
		f.SetCellStyle(sheetName, "A"+r, "B"+r, labelStyle)
		if err := f.MergeCell(sheetName, "A"+r, "B"+r); err != nil {
			return nil, fmt.Errorf("merge label: %w", err)
		}
		f.SetCellValue(sheetName, "C"+r, sanitizeExcelCell(fld.Value))
		row++
	}
	row++

	// ── Column Headers ──────────────────────────────────────────────────

	headerRow := fmt.Sprintf("%d", row)
	headers := []string{"#", "Code", "Description", "Unit", "Qty", "Material Unit Price", "Labor", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheetName, columns[i]+headerRow, h)
	}
	f.SetCellStyle(sheetName, "A"+headerRow, lastCol+headerRow, headerStyle)
	row++

	// ── Data Rows ───────────────────────────────────────────────────────

	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, r.Index)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.Code))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.Description))
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.Unit))
		f.SetCellValue(sheetName, "E"+rowStr, r.Qty)
		f.SetCellValue(sheetName, "F"+rowStr, FormatAmount(r.MaterialUnitPrice))
		f.SetCellValue(sheetName, "G"+rowStr, FormatAmount(r.LaborPrice))
		f.SetCellValue(sheetName, "H"+rowStr, FormatAmount(r.Total))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)
		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	row++
	for _, line := range summaryLines(data.Totals) {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "F"+r, line.Label+":")
		f.SetCellStyle(sheetName, "F"+r, "G"+r, summaryLabelStyle)
		if err := f.MergeCell(sheetName, "F"+r, "G"+r); err != nil {
			return nil, fmt.Errorf("merge summary label: %w", err)
		}
		f.SetCellValue(sheetName, "H"+r, line.Value)
		f.SetCellStyle(sheetName, "H"+r, "H"+r, summaryValueStyle)
		row++
	}

	// ── Terms ───────────────────────────────────────────────────────────

	row++
	terms := []ExportField{
		{Label: "Completion Date", Value: data.CompletionDate},
		{Label: "Warranty Period", Value: data.WarrantyPeriod},
	}
	for _, term := range terms {
		if term.Value == "" {
			continue
		}
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+r, term.Label+":")
		f.SetCellStyle(sheetName, "A"+r, "B"+r, labelStyle)
		f.SetCellValue(sheetName, "C"+r, sanitizeExcelCell(term.Value))
		row++
	}
	if len(data.Exclusions) > 0 {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+r, "Exclusions:")
		f.SetCellStyle(sheetName, "A"+r, "B"+r, labelStyle)
		row++
		for i, ex := range data.Exclusions {
			r := fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "B"+r, fmt.Sprintf("%d.", i+1))
			f.SetCellValue(sheetName, "C"+r, sanitizeExcelCell(ex))
			row++
		}
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sheetNameReplacer swaps the characters Excel forbids in sheet names.
var sheetNameReplacer = strings.NewReplacer(
	":", "-", "\\", "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")",
)

// sanitizeSheetName turns a free-form quote number into a valid sheet name:
// forbidden characters replaced, no leading or trailing apostrophe, at most
// 31 characters. Empty results fall back to "Quotation".
func sanitizeSheetName(s string) string {
	s = sheetNameReplacer.Replace(strings.TrimSpace(s))
	s = strings.Trim(s, "'")
	if r := []rune(s); len(r) > 31 {
		s = strings.TrimRight(string(r[:31]), "'")
	}
	if strings.TrimSpace(s) == "" {
		return "Quotation"
	}
	return s
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
