package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trogers1052/position-service/internal/api"
	"github.com/trogers1052/position-service/internal/cache"
	"github.com/trogers1052/position-service/internal/config"
	"github.com/trogers1052/position-service/internal/database"
	"github.com/trogers1052/position-service/internal/kafka"
)

func main() {
	cfg := config.Load()

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("db/migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshotCache := cache.New(cfg.Redis.Addr, cfg.Redis.SnapshotTTL)
	defer snapshotCache.Close()
	if err := snapshotCache.Ping(ctx); err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
		snapshotCache = nil
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic)
	defer producer.Close()

	consumer := kafka.NewPositionsConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.PositionsTopic,
		cfg.Kafka.GroupID,
		db,
		snapshotCacheOrNil(snapshotCache),
		producer,
	)
	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Printf("Positions consumer stopped: %v", err)
		}
	}()

	handler := api.NewHandler(db, apiCacheOrNil(snapshotCache), producer, cfg.Feed.Source)
	router := api.SetupRoutes(handler)

	server := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
}

// A typed nil *cache.Cache must not end up inside a non-nil interface,
// so the conversions happen through these helpers.
func snapshotCacheOrNil(c *cache.Cache) kafka.SnapshotCache {
	if c == nil {
		return nil
	}
	return c
}

func apiCacheOrNil(c *cache.Cache) api.SnapshotCache {
	if c == nil {
		return nil
	}
	return c
}
