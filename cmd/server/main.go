package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"trade2cart/internal/auth"
	"trade2cart/internal/billing"
	"trade2cart/internal/catalog"
	"trade2cart/internal/commons"
	"trade2cart/internal/config"
	"trade2cart/internal/infrastructure/events"
	"trade2cart/internal/infrastructure/logger"
	"trade2cart/internal/infrastructure/mysql"
	"trade2cart/internal/order"
	"trade2cart/internal/server"
	"trade2cart/internal/vendors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	if err := mysql.Migrate(db, cfg.Database.Name); err != nil {
		zapLogger.Fatal("applying migrations", zap.Error(err))
	}

	publisher, err := events.NewPublisher(cfg.Events, zapLogger)
	if err != nil {
		zapLogger.Fatal("connecting to broker", zap.Error(err))
	}
	defer publisher.Close()

	authCtrl := auth.NewModule(cfg.Auth, zapLogger)
	vendorCtrl, vendorRepo := vendors.NewModule(db, zapLogger)
	catalogCtrl, catalogIndex, ratesRepo := catalog.NewModule(db, cfg.Catalog, zapLogger)
	orderCtrl, orderRepo, customerRepo := order.NewModule(db, zapLogger)

	if cfg.Catalog.SeedFile != "" {
		rates, err := commons.LoadCatalogSeed(cfg.Catalog.SeedFile)
		if err != nil {
			zapLogger.Fatal("loading catalog seed", zap.Error(err))
		}
		if err := catalog.Seed(context.Background(), ratesRepo, rates, zapLogger); err != nil {
			zapLogger.Fatal("seeding catalog", zap.Error(err))
		}
	}

	// The catalog API and the billing workflow each hold a subscription;
	// the index runs a single shared refresh loop behind both.
	catalogSub, err := catalogIndex.Subscribe(context.Background())
	if err != nil {
		zapLogger.Fatal("loading catalog", zap.Error(err))
	}
	defer catalogSub.Close()

	billingSub, err := catalogIndex.Subscribe(context.Background())
	if err != nil {
		zapLogger.Fatal("loading catalog", zap.Error(err))
	}
	defer billingSub.Close()

	billingCtrl := billing.NewModule(db, catalogIndex, orderRepo, customerRepo, publisher, zapLogger)

	router := server.NewRouter(server.Modules{
		Auth:       authCtrl,
		Vendor:     vendorCtrl,
		VendorRepo: vendorRepo,
		Catalog:    catalogCtrl,
		Order:      orderCtrl,
		Billing:    billingCtrl,
	}, cfg.Auth.JWTSecret, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
