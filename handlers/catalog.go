package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"quotationeditor/grid"
	"quotationeditor/metrics"
	"quotationeditor/services"
)

// HandleCatalogSearch answers ?q= with ranked catalog candidates as JSON.
// An empty q returns the catalog defaults.
func HandleCatalogSearch(searcher grid.CatalogSearcher, logger *zap.Logger) func(*core.RequestEvent) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query().Get("q")
		candidates, err := searcher.Search(e.Request.Context(), q)
		if err != nil {
			logger.Warn("catalog search request failed", zap.String("q", q), zap.Error(err))
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "catalog search failed"})
		}
		if candidates == nil {
			candidates = []grid.Candidate{}
		}
		return e.JSON(http.StatusOK, map[string]any{
			"query":      q,
			"candidates": candidates,
		})
	}
}

// maxImportBytes bounds catalog uploads.
const maxImportBytes = 10 << 20

// HandleCatalogImport accepts a .csv or .xlsx price list in the "file" form
// field and upserts it into the catalog. With ?report=xlsx a rejected file
// is answered with a downloadable error report instead of JSON.
func HandleCatalogImport(app core.App, logger *zap.Logger) func(*core.RequestEvent) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(e *core.RequestEvent) error {
		e.Request.Body = http.MaxBytesReader(e.Response, e.Request.Body, maxImportBytes)
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing file upload"})
		}
		defer file.Close()

		result, err := services.ImportCatalog(app, logger, file, header.Filename)
		if err != nil {
			logger.Warn("catalog import rejected", zap.String("file", header.Filename), zap.Error(err))
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		if result.RolledBack && e.Request.URL.Query().Get("report") == "xlsx" {
			report, err := services.GenerateErrorReport(result.Errors)
			if err != nil {
				logger.Error("catalog import: error report failed", zap.Error(err))
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to build error report"})
			}
			e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			e.Response.Header().Set("Content-Disposition", `attachment; filename="catalog_import_errors.xlsx"`)
			e.Response.WriteHeader(http.StatusUnprocessableEntity)
			e.Response.Write(report)
			return nil
		}

		status := http.StatusOK
		if result.RolledBack {
			status = http.StatusUnprocessableEntity
		}
		return e.JSON(status, result)
	}
}

// HandleCatalogTemplate downloads the price list workbook, pre-filled with
// the current catalog.
func HandleCatalogTemplate(app core.App, logger *zap.Logger) func(*core.RequestEvent) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(e *core.RequestEvent) error {
		data, err := services.GenerateCatalogTemplate(app)
		metrics.RecordExport("catalog", err)
		if err != nil {
			logger.Error("catalog template failed", zap.Error(err))
			return e.String(http.StatusInternalServerError, "Failed to generate catalog template")
		}
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="price_catalog.xlsx"`)
		e.Response.Write(data)
		return nil
	}
}
