package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"shelfboard/backend/internal/analytics"
	"shelfboard/backend/internal/cache"
	"shelfboard/backend/internal/config"
	"shelfboard/backend/internal/dataset"
	"shelfboard/backend/internal/httpapi"
	"shelfboard/backend/internal/ledger"
	"shelfboard/backend/internal/predictor"
	"shelfboard/backend/internal/service"
)

func main() {
	cfg := config.Load()

	var closers []io.Closer

	var predictionCache cache.PredictionCache = cache.NoopPredictionCache{}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Printf("[main] redis unavailable addr=%s err=%v, prediction cache disabled", cfg.RedisAddr, err)
			_ = client.Close()
		} else {
			ttl := time.Duration(cfg.PredictionCacheTTLSecs) * time.Second
			redisCache := cache.NewRedisPredictionCache(client, ttl)
			predictionCache = redisCache
			closers = append(closers, redisCache)
			log.Printf("[main] prediction cache enabled addr=%s ttl=%s", cfg.RedisAddr, ttl)
		}
	}

	fetchClient := &http.Client{Timeout: time.Duration(cfg.FetchTimeoutSecs) * time.Second}

	salesLoader := dataset.NewLoader("sales", cfg.SalesDataURL, fetchClient)
	inventoryLoader := dataset.NewLoader("inventory", cfg.InventoryDataURL, fetchClient)

	predictorClient := predictor.NewClient(cfg.PredictorBaseURL, fetchClient, predictionCache)

	productLedger := ledger.NewSeeded(ledger.RandomDiscount{})

	svc := service.New(salesLoader, inventoryLoader, productLedger, predictorClient, analytics.InventoryOptions{
		LowStockThreshold: cfg.LowStockThreshold,
		ExpiryHorizonDays: cfg.ExpiryHorizonDays,
	})

	api := httpapi.New(svc, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[main] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			log.Printf("[main] close error: %v", err)
		}
	}
	log.Println("[main] stopped")
}
