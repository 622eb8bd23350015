package main

import (
	"log"

	"github.com/atotto/clipboard"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"quotationeditor/collections"
	"quotationeditor/config"
	"quotationeditor/handlers"
	"quotationeditor/logging"
	"quotationeditor/services"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		logger = logging.NewDefault()
		logger.Warn("invalid log config, using defaults", zap.Error(err))
	}
	defer logger.Sync()

	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: cfg.DataDir,
	})

	search := services.NewCatalogSearch(app, logger.Named("catalog"), cfg.Catalog.SearchLimit)
	store := services.NewQuotationStore(app, logger.Named("store"), cfg.Quote.NumberPrefix)

	app.RootCmd.AddCommand(newPasteCommand(cfg, logger.Named("paste"),
		func() (*services.QuotationStore, error) {
			collections.Setup(app)
			return store, nil
		},
		clipboard.ReadAll,
	))

	// Create collections and seed the catalog on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			logger.Warn("seed data failed", zap.Error(err))
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.RequestLogger(logger.Named("http")))

		// ── Catalog ─────────────────────────────────────────────
		se.Router.GET("/api/catalog/search", handlers.HandleCatalogSearch(search, logger))
		se.Router.GET("/api/catalog/template", handlers.HandleCatalogTemplate(app, logger))
		se.Router.POST("/api/catalog/import", handlers.HandleCatalogImport(app, logger.Named("import")))

		// ── Quotations ──────────────────────────────────────────
		se.Router.POST("/api/quotations/paste-preview", handlers.HandlePastePreview())
		se.Router.POST("/api/quotations", handlers.HandleQuotationSave(store, logger))
		se.Router.GET("/api/quotations/{id}/export/excel", handlers.HandleQuotationExportExcel(store, logger))
		se.Router.GET("/api/quotations/{id}/export/pdf", handlers.HandleQuotationExportPDF(store, logger))
		se.Router.GET("/api/quotations/{id}", handlers.HandleQuotationView(store))

		// ── Metrics ─────────────────────────────────────────────
		se.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))

		return se.Next()
	})

	logger.Info("starting quotation editor", zap.String("data_dir", cfg.DataDir))
	if err := app.Start(); err != nil {
		logger.Fatal("app exited", zap.Error(err))
	}
}
