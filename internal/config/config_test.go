package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "50052", cfg.GRPCPort)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 10, cfg.MaxWorkers)
	assert.Equal(t, 5*time.Second, cfg.RPCTimeout)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "post-views", cfg.Kafka.TopicViews)
	assert.Equal(t, "post-interactions", cfg.Kafka.TopicLikes)
	assert.Equal(t, "post-comments", cfg.Kafka.TopicComments)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GRPC_PORT", "6000")
	t.Setenv("DB_DRIVER", DriverMemory)
	t.Setenv("MAX_WORKERS", "4")
	t.Setenv("RPC_TIMEOUT", "750ms")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")
	t.Setenv("KAFKA_MAX_ATTEMPTS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "6000", cfg.GRPCPort)
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 4, cfg.MaxWorkers)
	assert.Equal(t, 750*time.Millisecond, cfg.RPCTimeout)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 7, cfg.Kafka.MaxAttempts)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"нечисловой MAX_WORKERS", "MAX_WORKERS", "many"},
		{"нулевой MAX_WORKERS", "MAX_WORKERS", "0"},
		{"неверная длительность", "RPC_TIMEOUT", "soon"},
		{"неверный bool", "KAFKA_ENABLED", "maybe"},
		{"неизвестный драйвер", "DB_DRIVER", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: "5433", User: "u", Password: "p", Name: "posts"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=posts sslmode=disable", c.DSN())
}
