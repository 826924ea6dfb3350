package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	catalogapp "github.com/matiaspautasso/ERP-LosHermanos/internal/application/catalog"
	identityapp "github.com/matiaspautasso/ERP-LosHermanos/internal/application/identity"
	inventoryapp "github.com/matiaspautasso/ERP-LosHermanos/internal/application/inventory"
	partnerapp "github.com/matiaspautasso/ERP-LosHermanos/internal/application/partner"
	pricingapp "github.com/matiaspautasso/ERP-LosHermanos/internal/application/pricing"
	salesapp "github.com/matiaspautasso/ERP-LosHermanos/internal/application/sales"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/infrastructure/auth"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/infrastructure/config"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/infrastructure/logger"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/infrastructure/persistence"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/infrastructure/printing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/interfaces/http/handler"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting ERP Los Hermanos",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, gormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	log.Info("database connected")

	// Token blacklist: redis in normal operation, in-memory fallback
	// for development without a redis instance.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		log.Warn("redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist
		log.Info("redis connected")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	var receiptRenderer salesapp.ReceiptRenderer
	if cfg.Printing.Enabled {
		chrome := printing.NewChromedpRenderer(printing.Config{
			Timeout:   cfg.Printing.Timeout,
			RemoteURL: cfg.Printing.RemoteURL,
			NoSandbox: cfg.Printing.NoSandbox,
		}, log)
		defer func() {
			_ = chrome.Close()
		}()
		receiptRenderer = chrome
		log.Info("receipt printing enabled")
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	priceRepo := persistence.NewGormPriceEntryRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo, priceRepo, log)
	customerService := partnerapp.NewCustomerService(customerRepo, log)
	priceService := pricingapp.NewPriceService(priceRepo, productRepo, cfg.Pricing.EnforceTierOrder, log)
	saleService := salesapp.NewSaleService(saleRepo, productRepo, customerRepo, priceRepo, receiptRenderer, log)
	movementService := inventoryapp.NewMovementService(movementRepo, productRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)

	engine := router.New(router.Deps{
		Config:         cfg,
		Logger:         log,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
	}, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Customer:  handler.NewCustomerHandler(customerService),
		Price:     handler.NewPriceHandler(priceService),
		Sale:      handler.NewSaleHandler(saleService),
		Inventory: handler.NewInventoryHandler(movementService),
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
