package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tradepost/internal/commons"
	"tradepost/internal/config"
	"tradepost/internal/events"
	"tradepost/internal/infrastructure/logger"
	"tradepost/internal/infrastructure/mysql"
	"tradepost/internal/product"
	"tradepost/internal/sale"
	"tradepost/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		cfg, err = commons.LoadConfig(path)
		if err != nil {
			log.Fatalf("loading config file: %v", err)
		}
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

	bus := events.NewBus()
	defer bus.Close()
	go logEvents(bus, zapLogger)

	productCtrl := product.NewModule(db, zapLogger)
	salesCtrl := sale.NewModule(db, cfg, bus, zapLogger)

	router := server.NewRouter(productCtrl, salesCtrl, zapLogger)

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

// logEvents drains the mutation event stream into the structured log.
func logEvents(bus *events.Bus, zapLogger *zap.Logger) {
	ch, unsubscribe := bus.Subscribe(64)
	defer unsubscribe()

	for event := range ch {
		switch e := event.(type) {
		case events.SaleCreatedEvent:
			zapLogger.Info("event: sale created",
				zap.Uint("saleId", e.SaleID), zap.Int("userId", e.UserID), zap.Int("itemCount", e.ItemCount))
		case events.SaleUpdatedEvent:
			zapLogger.Info("event: sale updated",
				zap.Uint("saleId", e.SaleID), zap.Int("userId", e.UserID), zap.Bool("itemsReplaced", e.ItemsReplaced))
		case events.SaleDeletedEvent:
			zapLogger.Info("event: sale deleted",
				zap.Uint("saleId", e.SaleID), zap.Int("userId", e.UserID), zap.Bool("stockRestored", e.StockRestored))
		case events.StockAdjustedEvent:
			zapLogger.Info("event: stock adjusted",
				zap.Int("productId", e.ProductID), zap.Int("delta", e.Delta))
		}
	}
}
