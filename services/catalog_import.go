package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult is the outcome of a catalog import. Nothing is written when
// any row fails validation.
type ImportResult struct {
	TotalRows  int               `json:"total_rows"`
	Created    int               `json:"created"`
	Updated    int               `json:"updated"`
	ErrorRows  int               `json:"error_rows"`
	Errors     []ValidationError `json:"errors,omitempty"`
	RolledBack bool              `json:"rolled_back"`
}

// CatalogRow is one parsed price_catalog entry.
type CatalogRow struct {
	Code          string
	Description   string
	Unit          string
	MaterialPrice float64
	LaborPrice    float64
	Category      string
}

// catalogColumn maps an upload header label to a price_catalog field.
type catalogColumn struct {
	Key         string
	Label       string
	Required    bool
	Numeric     bool
	Description string
	Example     string
}

var catalogColumns = []catalogColumn{
	{Key: "code", Label: "Code", Required: true, Description: "Unique item code, matched case-insensitively on import", Example: "EL-001"},
	{Key: "description", Label: "Description", Required: true, Description: "Text shown on the quotation line", Example: "LED panel light 60x60 40W"},
	{Key: "unit", Label: "Unit", Description: "Unit of measure, PCS when blank", Example: "PCS"},
	{Key: "material_price", Label: "Material Price", Numeric: true, Description: "Material cost per unit", Example: "85.00"},
	{Key: "labor_price", Label: "Labor Price", Numeric: true, Description: "Labor charge per unit", Example: "25.00"},
	{Key: "category", Label: "Category", Description: "Free-text grouping, also searched", Example: "Electrical"},
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapHeadersToColumns maps uploaded column headers to catalog keys. Unknown
// headers map to "". Matching ignores case and a trailing " *".
func mapHeadersToColumns(headers []string) []string {
	labelToKey := make(map[string]string, len(catalogColumns)*2)
	for _, c := range catalogColumns {
		labelToKey[strings.ToLower(c.Label)] = c.Key
		labelToKey[c.Key] = c.Key
	}

	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))
		mapped[i] = labelToKey[norm]
	}
	return mapped
}

// ParseCatalogFile parses a .csv or .xlsx upload into catalog rows and
// row-level validation errors. Row numbers count the header as row 1.
func ParseCatalogFile(file io.Reader, fileName string) ([]CatalogRow, []ValidationError, error) {
	var (
		headers  []string
		dataRows [][]string
		err      error
	)
	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, nil, err
	}

	keys := mapHeadersToColumns(headers)
	present := make(map[string]bool)
	for _, k := range keys {
		present[k] = true
	}
	for _, c := range catalogColumns {
		if c.Required && !present[c.Key] {
			return nil, nil, fmt.Errorf("missing required column %q", c.Label)
		}
	}

	var (
		rows []CatalogRow
		errs []ValidationError
	)
	seen := make(map[string]int)
	for rowIdx, raw := range dataRows {
		rowNum := rowIdx + 2
		values := make(map[string]string, len(keys))
		blank := true
		for colIdx, key := range keys {
			if key == "" || colIdx >= len(raw) {
				continue
			}
			v := strings.TrimSpace(raw[colIdx])
			values[key] = v
			if v != "" {
				blank = false
			}
		}
		if blank {
			continue
		}

		var rowErrs []ValidationError
		for _, c := range catalogColumns {
			v := values[c.Key]
			switch {
			case c.Required && v == "":
				rowErrs = append(rowErrs, ValidationError{Row: rowNum, Field: c.Label, Message: c.Label + " is required"})
			case c.Numeric && v != "":
				n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
				if err != nil || n < 0 {
					rowErrs = append(rowErrs, ValidationError{Row: rowNum, Field: c.Label, Message: c.Label + " must be a non-negative number"})
				}
			}
		}
		if code := values["code"]; code != "" {
			if first, dup := seen[strings.ToLower(code)]; dup {
				rowErrs = append(rowErrs, ValidationError{
					Row:     rowNum,
					Field:   "Code",
					Message: fmt.Sprintf("Code %q already appears on row %d", code, first),
				})
			} else {
				seen[strings.ToLower(code)] = rowNum
			}
		}
		if len(rowErrs) > 0 {
			errs = append(errs, rowErrs...)
			continue
		}

		unit := values["unit"]
		if unit == "" {
			unit = "PCS"
		}
		rows = append(rows, CatalogRow{
			Code:          values["code"],
			Description:   values["description"],
			Unit:          unit,
			MaterialPrice: parseImportAmount(values["material_price"]),
			LaborPrice:    parseImportAmount(values["labor_price"]),
			Category:      values["category"],
		})
	}
	return rows, errs, nil
}

func parseImportAmount(s string) float64 {
	n, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return n
}

// ImportCatalog validates an uploaded price list and upserts it by code in
// a single transaction.
func ImportCatalog(app core.App, logger *zap.Logger, file io.Reader, fileName string) (*ImportResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rows, verrs, err := ParseCatalogFile(file, fileName)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{TotalRows: len(rows)}
	if len(verrs) > 0 {
		errorRows := make(map[int]bool)
		for _, e := range verrs {
			errorRows[e.Row] = true
		}
		result.TotalRows += len(errorRows)
		result.ErrorRows = len(errorRows)
		result.Errors = verrs
		result.RolledBack = true
		return result, nil
	}

	err = app.RunInTransaction(func(txApp core.App) error {
		col, err := txApp.FindCollectionByNameOrId("price_catalog")
		if err != nil {
			return fmt.Errorf("find price_catalog collection: %w", err)
		}
		for _, r := range rows {
			rec, err := txApp.FindFirstRecordByData(col, "code", r.Code)
			if err != nil {
				rec = core.NewRecord(col)
				result.Created++
			} else {
				result.Updated++
			}
			rec.Set("code", r.Code)
			rec.Set("description", r.Description)
			rec.Set("unit", r.Unit)
			rec.Set("material_price", r.MaterialPrice)
			rec.Set("labor_price", r.LaborPrice)
			rec.Set("category", r.Category)
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("save catalog entry %q: %w", r.Code, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("catalog import failed", zap.String("file", fileName), zap.Error(err))
		return nil, err
	}

	logger.Info("catalog imported",
		zap.String("file", fileName),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
	)
	return result, nil
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, sanitizeExcelCell(e.Message))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
