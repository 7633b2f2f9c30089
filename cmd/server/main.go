package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clickshop/shop-system/internal/api"
	"github.com/clickshop/shop-system/internal/core/ports"
	"github.com/clickshop/shop-system/internal/infrastructure/config"
	mongostore "github.com/clickshop/shop-system/internal/infrastructure/db/mongo"
	redisstore "github.com/clickshop/shop-system/internal/infrastructure/db/redis"
	"github.com/clickshop/shop-system/internal/infrastructure/search"
	"github.com/clickshop/shop-system/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "clickshop-api",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	var suggester ports.Suggester = search.Disabled{}
	if cfg.Search.URL != "" {
		suggester = search.NewClient(search.Config{
			URL:        cfg.Search.URL,
			APIKey:     cfg.Search.APIKey,
			Timeout:    cfg.Search.Timeout,
			RatePerSec: cfg.Search.RatePerSec,
		}, logger.WithComponent("search"))
	} else {
		log.Warn().Msg("suggestion endpoint not configured, search runs on query variants only")
	}

	e := api.NewRouter(cfg, db, rdb, suggester, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown did not finish cleanly")
	}
}

// ensureIndexes creates the indexes the repositories rely on. Creation is
// idempotent, so running it on every boot is fine.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongostore.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongostore.NewProductRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongostore.NewOrderRepository(db).EnsureIndexes(ctx)
}
