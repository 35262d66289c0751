package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wareline/wareline/internal/config"
	"github.com/wareline/wareline/internal/database"
	"github.com/wareline/wareline/internal/exports"
	"github.com/wareline/wareline/internal/middleware"
	"github.com/wareline/wareline/internal/operator"
	"github.com/wareline/wareline/internal/warehouse"
	"github.com/wareline/wareline/internal/warehouse/drivers"
	"github.com/wareline/wareline/internal/warehouse/router"
	"github.com/wareline/wareline/internal/warehouse/service"
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	slog.Info("configuration loaded successfully",
		"db_driver", cfg.Database.Driver,
		"session_store", cfg.Session.StoreType,
		"session_key", cfg.Session.Key,
		"export_storage", cfg.Exports.Type,
	)

	slog.Info("server configuration",
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Perform health check
	if err := database.HealthCheck(db); err != nil {
		log.Fatalf("database health check failed: %v", err)
	}

	// Scan journal shares the main database
	journal, err := warehouse.NewScanJournal(db)
	if err != nil {
		log.Fatalf("failed to initialize scan journal: %v", err)
	}

	// Session store per configuration (JSON files or the database)
	store, err := drivers.NewStoreFromConfig(cfg.Session, db)
	if err != nil {
		log.Fatalf("failed to initialize session store: %v", err)
	}

	ctx := context.Background()

	sessionService, err := service.NewSessionService(ctx, store, cfg.Session.Key, cfg.Scanner.HeuristicPrefixes, journal)
	if err != nil {
		log.Fatalf("failed to initialize session service: %v", err)
	}

	// Export artifact storage (local fs or S3)
	exportStorage, err := exports.NewStorageFromConfig(ctx, cfg.Exports)
	if err != nil {
		log.Fatalf("failed to initialize export storage: %v", err)
	}
	exportService := exports.NewExportService(exportStorage)

	operatorService, err := operator.NewService(db)
	if err != nil {
		log.Fatalf("failed to initialize operator service: %v", err)
	}

	scanRouter := router.NewScanRouter(sessionService)
	listRouter := router.NewListRouter(sessionService, exportService)
	catalogRouter := router.NewCatalogRouter(sessionService)
	operatorRouter := router.NewOperatorRouter(operatorService)

	// Set up HTTP routes
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/scans", scanRouter.HandleScan)
	mux.HandleFunc("POST /api/scans/undo", scanRouter.HandleUndo)
	mux.HandleFunc("GET /api/search", scanRouter.HandleSearch)
	mux.HandleFunc("GET /api/events", scanRouter.HandleGetEvents)
	mux.HandleFunc("GET /api/lists/{workflow}", listRouter.HandleGetList)
	mux.HandleFunc("POST /api/lists/{workflow}/import", listRouter.HandleImportList)
	mux.HandleFunc("DELETE /api/lists/{workflow}", listRouter.HandleClearList)
	mux.HandleFunc("POST /api/lists/{workflow}/export", listRouter.HandleExportList)
	mux.HandleFunc("GET /api/exports/{key}", listRouter.HandleDownloadExport)
	mux.HandleFunc("POST /api/catalog", catalogRouter.HandleUploadCatalog)
	mux.HandleFunc("POST /api/returns", catalogRouter.HandleRegisterReturn)
	mux.HandleFunc("PUT /api/items/{id}/weight", catalogRouter.HandleSetItemWeight)
	mux.HandleFunc("GET /api/settings", catalogRouter.HandleGetSettings)
	mux.HandleFunc("PUT /api/settings", catalogRouter.HandleUpdateSettings)
	mux.HandleFunc("GET /api/operators/{id}", operatorRouter.HandleGetOperator)
	mux.HandleFunc("PUT /api/operators/{id}", operatorRouter.HandleUpsertOperator)

	// Set up graceful shutdown
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)

	// Wrap handler with operator attribution and CORS middleware
	handler := operator.Middleware(operatorService)(mux)
	handler = middleware.CORS(&cfg.CORS)(handler)

	server := &http.Server{
		Addr:    serverAddr,
		Handler: handler,
	}

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		slog.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit
	slog.Info("shutting down server...")

	// Create a context with timeout for graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown of HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	} else {
		slog.Info("server gracefully stopped")
	}

	slog.Info("server stopped")
}
