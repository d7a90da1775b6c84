package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the environment-derived configuration shared by the binaries.
type Config struct {
	Port            string
	AppEnv          string
	DatabaseURL     string
	DataPath        string
	RedisAddr       string
	StopCacheTTL    time.Duration
	KafkaBrokers    []string
	KafkaRouteTopic string
	RouteMaxStops   int
	MapsProvider    string
}

// LoadDotEnv loads a .env file when present. A missing file is not an error;
// the returned bool reports whether one was read.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	ttl, err := GetDuration("STOP_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	maxStops, err := GetInt("ROUTE_MAX_STOPS", 5)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if maxStops < 1 {
		return nil, fmt.Errorf("load config: ROUTE_MAX_STOPS must be positive, got %d", maxStops)
	}

	return &Config{
		Port:            Get("PORT", "8080"),
		AppEnv:          Get("APP_ENV", "development"),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DataPath:        Get("DATA_PATH", "data/seeds/vending_machines.json"),
		RedisAddr:       strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		StopCacheTTL:    ttl,
		KafkaBrokers:    GetList("KAFKA_BROKERS"),
		KafkaRouteTopic: Get("KAFKA_ROUTE_TOPIC", "vending.routes.planned"),
		RouteMaxStops:   maxStops,
		MapsProvider:    Get("MAPS_PROVIDER", "apple"),
	}, nil
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q as integer: %w", key, v, err)
	}
	return n, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

// GetList splits a comma separated value, dropping empty entries.
func GetList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
