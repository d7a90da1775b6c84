package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"vending-route-service/internal/adapters/cache"
	"vending-route-service/internal/adapters/deeplink"
	"vending-route-service/internal/adapters/events"
	"vending-route-service/internal/adapters/repositories"
	"vending-route-service/internal/api"
	"vending-route-service/internal/config"
	"vending-route-service/internal/platform/db"
	"vending-route-service/internal/platform/logger"
	"vending-route-service/internal/ports"
	"vending-route-service/internal/services"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or JSON, Redis, Kafka) behind ports and starts the HTTP server.
func main() {
	hadDotEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, "vending-route-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if !hadDotEnv {
		log.Info("no .env file found (using environment variables)")
	}

	if _, err := deeplink.Lookup(cfg.MapsProvider); err != nil {
		log.Fatal("invalid MAPS_PROVIDER", zap.Error(err))
	}

	repo, closeRepo, err := openStopRepository(cfg, log)
	if err != nil {
		log.Fatal("failed to open stop repository", zap.Error(err))
	}
	defer closeRepo()

	// Redis keeps the data set hot between requests; it is optional.
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = client.Close() }()
		repo = cache.NewRedisStopCache(repo, client, cfg.StopCacheTTL, log.Named("stop-cache"))
		log.Info("stop cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.StopCacheTTL))
	}

	var publisher ports.RoutePublisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := events.NewKafkaRoutePublisher(cfg.KafkaBrokers, cfg.KafkaRouteTopic)
		if err != nil {
			log.Fatal("failed to create route publisher", zap.Error(err))
		}
		defer func() { _ = kp.Close() }()
		publisher = kp
		log.Info("route events enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaRouteTopic))
	}

	trips := services.NewTripPlanner(
		repo,
		deeplink.Formatters(),
		services.WithPublisher(publisher),
		services.WithDefaultMaxStops(cfg.RouteMaxStops),
		services.WithDefaultMaps(cfg.MapsProvider),
		services.WithLogger(log.Named("trips")),
	)
	router := api.NewRouter(trips, log.Named("http"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}
}

// openStopRepository prefers Postgres when DATABASE_URL is set and falls back
// to serving the JSON data file directly.
func openStopRepository(cfg *config.Config, log *zap.Logger) (ports.StopRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info("DATABASE_URL not set, serving stops from file", zap.String("path", cfg.DataPath))
		return repositories.NewJSONStopRepository(cfg.DataPath), func() {}, nil
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if err := conn.Close(); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	}

	// Initialize schema on startup so local runs work against an empty database.
	if err := repositories.InitSchema(conn); err != nil {
		closeFn()
		return nil, nil, err
	}

	return repositories.NewPostgresStopRepository(conn), closeFn, nil
}
