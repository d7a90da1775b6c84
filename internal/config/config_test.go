package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "APP_ENV", "DATABASE_URL", "DATA_PATH", "REDIS_ADDR", "STOP_CACHE_TTL",
		"KAFKA_BROKERS", "KAFKA_ROUTE_TOPIC", "ROUTE_MAX_STOPS", "MAPS_PROVIDER",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "data/seeds/vending_machines.json", cfg.DataPath)
	assert.Equal(t, 5*time.Minute, cfg.StopCacheTTL)
	assert.Equal(t, 5, cfg.RouteMaxStops)
	assert.Equal(t, "apple", cfg.MapsProvider)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STOP_CACHE_TTL", "30s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")
	t.Setenv("ROUTE_MAX_STOPS", "3")
	t.Setenv("MAPS_PROVIDER", "google")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.StopCacheTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 3, cfg.RouteMaxStops)
	assert.Equal(t, "google", cfg.MapsProvider)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"ROUTE_MAX_STOPS": "many",
		"STOP_CACHE_TTL":  "forever",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}

	t.Run("non positive max stops", func(t *testing.T) {
		t.Setenv("ROUTE_MAX_STOPS", "0")
		_, err := Load()
		require.Error(t, err)
	})
}
