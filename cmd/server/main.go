package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/openpos/backend/internal/application/catalog"
	partnerapp "github.com/openpos/backend/internal/application/partner"
	reportapp "github.com/openpos/backend/internal/application/report"
	tradeapp "github.com/openpos/backend/internal/application/trade"
	"github.com/openpos/backend/internal/infrastructure/config"
	"github.com/openpos/backend/internal/infrastructure/logger"
	"github.com/openpos/backend/internal/infrastructure/persistence"
	"github.com/openpos/backend/internal/interfaces/http/handler"
	"github.com/openpos/backend/internal/interfaces/http/middleware"
	"github.com/openpos/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)

	// Application services
	customerService := partnerapp.NewCustomerService(customerRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	unitService := catalogapp.NewUnitService(unitRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, unitRepo, supplierRepo, stockRepo)
	purchaseService := tradeapp.NewPurchaseService(purchaseRepo, supplierRepo, productRepo)
	purchaseOrderService := tradeapp.NewPurchaseOrderService(purchaseOrderRepo, supplierRepo, productRepo)
	saleService := tradeapp.NewSaleService(saleRepo, customerRepo, productRepo, unitRepo)
	stockService := reportapp.NewStockService(stockRepo)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	healthHandler := handler.NewHealthHandler(db)
	engine.GET("/healthz", healthHandler.Check)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewCustomerHandler(customerService)).
		Register(handler.NewSupplierHandler(supplierService)).
		Register(handler.NewCategoryHandler(categoryService)).
		Register(handler.NewUnitHandler(unitService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewPurchaseHandler(purchaseService)).
		Register(handler.NewPurchaseOrderHandler(purchaseOrderService)).
		Register(handler.NewSaleHandler(saleService)).
		Register(handler.NewReportHandler(stockService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
