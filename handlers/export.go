package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"quotationeditor/metrics"
	"quotationeditor/services"
)

// QuotationLoader reads a persisted quotation by ID.
type QuotationLoader interface {
	Load(id string) (services.StoredQuotation, error)
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

type exportFormat struct {
	name        string
	ext         string
	contentType string
	generate    func(services.ExportData) ([]byte, error)
}

var (
	excelExport = exportFormat{
		name:        "excel",
		ext:         "xlsx",
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		generate:    services.GenerateExcel,
	}
	pdfExport = exportFormat{
		name:        "pdf",
		ext:         "pdf",
		contentType: "application/pdf",
		generate:    services.GeneratePDF,
	}
)

// HandleQuotationExportExcel returns a handler that generates and downloads an Excel file for a quotation.
func HandleQuotationExportExcel(store QuotationLoader, logger *zap.Logger) func(*core.RequestEvent) error {
	return handleExport(store, logger, excelExport)
}

// HandleQuotationExportPDF returns a handler that generates and downloads a PDF file for a quotation.
func HandleQuotationExportPDF(store QuotationLoader, logger *zap.Logger) func(*core.RequestEvent) error {
	return handleExport(store, logger, pdfExport)
}

func handleExport(store QuotationLoader, logger *zap.Logger, format exportFormat) func(*core.RequestEvent) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing quotation ID")
		}

		stored, err := store.Load(id)
		if err != nil {
			logger.Warn("export: quotation not found", zap.String("id", id), zap.String("format", format.name), zap.Error(err))
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		data := services.BuildExportData(stored.Quotation)
		out, err := format.generate(data)
		metrics.RecordExport(format.name, err)
		if err != nil {
			logger.Error("export: failed to generate", zap.String("id", id), zap.String("format", format.name), zap.Error(err))
			return e.String(http.StatusInternalServerError, fmt.Sprintf("Failed to generate %s file", strings.ToUpper(format.ext)))
		}

		name := data.QuoteNo
		if name == "" {
			name = stored.ID
		}
		filename := fmt.Sprintf("Quotation_%s.%s", sanitizeFilename(name), format.ext)

		e.Response.Header().Set("Content-Type", format.contentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(out)
		return nil
	}
}
