//go:build unit

package config_test

import (
	"testing"
	"time"

	"availability-engine/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults for memory driver", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORE_DRIVER", "memory")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 48*time.Hour, cfg.Hold.TTL)
		assert.Equal(t, "either", cfg.Hold.CancelPolicy)
		assert.Equal(t, "advisory", cfg.Hold.OverlapPolicy)
		assert.Equal(t, time.Minute, cfg.Sweep.Interval)
		assert.Empty(t, cfg.Kafka.Brokers)
		assert.Empty(t, cfg.Redis.Addr)
	})

	t.Run("postgres driver requires credentials", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("DB_USER", "")
		t.Setenv("DB_NAME", "")

		_, err := config.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_USER")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORE_DRIVER", "sqlite")

		_, err := config.LoadConfig()
		require.Error(t, err)
	})

	t.Run("kafka brokers split on comma", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	})
}
