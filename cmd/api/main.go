// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/emartell/grocery-be/internal/adapters/db"
	"github.com/emartell/grocery-be/internal/adapters/memcache"
	"github.com/emartell/grocery-be/internal/core/services"
	"github.com/emartell/grocery-be/internal/handlers"
	"github.com/emartell/grocery-be/internal/handlers/middleware"
	"github.com/emartell/grocery-be/internal/pkg/config"
	"github.com/emartell/grocery-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting grocery persistence service",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
		)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database       *db.Database
	groceryService *services.GroceryService
	productHandler *handlers.ProductHandler
	listHandler    *handlers.GroceryListHandler
	itemHandler    *handlers.GroceryListItemHandler
	healthHandler  *handlers.HealthHandler
	summaryHandler *handlers.SummaryHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	database, err := db.NewDatabase(&db.Config{
		Directory:   cfg.Database.Directory,
		File:        cfg.Database.File,
		BusyTimeout: cfg.Database.BusyTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("store opened", slog.String("path", database.Path()))

	// Repository construction bootstraps the schema and seed rows
	productRepo, err := db.NewProductRepository(ctx, database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize product repository: %w", err)
	}
	listRepo, err := db.NewGroceryListRepository(ctx, database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize grocery list repository: %w", err)
	}
	itemRepo, err := db.NewGroceryListItemRepository(ctx, database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize grocery list item repository: %w", err)
	}

	cache := memcache.NewCache(cfg.Cache.DefaultTTL, logger)

	deps.groceryService = services.NewGroceryService(productRepo, listRepo, itemRepo, cache, logger)

	deps.productHandler = handlers.NewProductHandler(deps.groceryService, logger)
	deps.listHandler = handlers.NewGroceryListHandler(deps.groceryService, logger)
	deps.itemHandler = handlers.NewGroceryListItemHandler(deps.groceryService, logger)
	deps.healthHandler = handlers.NewHealthHandler(database, cfg, logger)
	deps.summaryHandler = handlers.NewSummaryHandler(deps.groceryService, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()

	registerRoutes(mux, deps)

	// Apply middleware in reverse order (innermost first)
	var handler http.Handler = mux
	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.RequestID(handler)

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies) {
	apiV1 := "/api/v1"

	// Health and readiness endpoints
	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)
	mux.HandleFunc("GET "+apiV1+"/health", deps.healthHandler.Health)

	// Product endpoints
	mux.HandleFunc("GET "+apiV1+"/products", deps.productHandler.ListProducts)
	mux.HandleFunc("GET "+apiV1+"/products/{id}", deps.productHandler.GetProduct)
	mux.HandleFunc("POST "+apiV1+"/products", deps.productHandler.CreateProduct)
	mux.HandleFunc("PUT "+apiV1+"/products/{id}", deps.productHandler.UpdateProduct)
	mux.HandleFunc("DELETE "+apiV1+"/products/{id}", deps.productHandler.DeleteProduct)

	// Grocery list endpoints
	mux.HandleFunc("GET "+apiV1+"/lists", deps.listHandler.GetLists)
	mux.HandleFunc("GET "+apiV1+"/lists/{id}", deps.listHandler.GetList)
	mux.HandleFunc("POST "+apiV1+"/lists", deps.listHandler.CreateList)
	mux.HandleFunc("PUT "+apiV1+"/lists/{id}", deps.listHandler.UpdateList)
	mux.HandleFunc("DELETE "+apiV1+"/lists/{id}", deps.listHandler.DeleteList)

	// List item endpoints
	mux.HandleFunc("GET "+apiV1+"/lists/{id}/items", deps.itemHandler.GetItemsOnList)
	mux.HandleFunc("POST "+apiV1+"/items", deps.itemHandler.AddItem)
	mux.HandleFunc("PUT "+apiV1+"/items/{id}", deps.itemHandler.UpdateItem)
	mux.HandleFunc("DELETE "+apiV1+"/items/{id}", deps.itemHandler.DeleteItem)

	// Summary endpoint
	mux.HandleFunc("GET "+apiV1+"/summary", deps.summaryHandler.GetSummary)
}
