package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"vending-route-service/internal/adapters/cache"
	"vending-route-service/internal/adapters/repositories"
	"vending-route-service/internal/config"
	"vending-route-service/internal/platform/db"
	"vending-route-service/internal/platform/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// dbtool initializes the Postgres schema, loads the vending machine data set
// and drops any cached copy so the API picks up the new rows.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, "dbtool")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer conn.Close()

	if err := initAndSeed(log, conn, cfg.DataPath); err != nil {
		log.Fatal("init and seed failed", zap.Error(err))
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = client.Close() }()

		stopCache := cache.NewRedisStopCache(repositories.NewPostgresStopRepository(conn), client, cfg.StopCacheTTL, log)
		if err := stopCache.Invalidate(context.Background()); err != nil {
			log.Warn("failed to invalidate stop cache", zap.Error(err))
		} else {
			log.Info("stop cache invalidated")
		}
	}
}

func initAndSeed(log *zap.Logger, db *sql.DB, seedPath string) error {
	log.Info("initializing database schema")
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info("schema ready")

	log.Info("seeding database", zap.String("path", seedPath))
	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info("seeding complete")

	return nil
}
