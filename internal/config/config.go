// Package config загружает настройки сервиса из окружения и файла .env.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Поддерживаемые драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverMemory   = "memory"
)

// Config содержит все настройки сервиса постов
type Config struct {
	AppEnv      string
	GRPCPort    string
	MetricsPort string

	DB    DBConfig
	Kafka KafkaConfig

	MaxWorkers int
	RPCTimeout time.Duration
}

// DBConfig - параметры подключения к базе данных
type DBConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	MaxOpenConns int
	AutoMigrate  bool
}

// KafkaConfig - параметры отправки событий
type KafkaConfig struct {
	Enabled        bool
	Brokers        []string
	TopicViews     string
	TopicLikes     string
	TopicComments  string
	PublishTimeout time.Duration
	MaxAttempts    int
}

// DSN формирует строку подключения к PostgreSQL
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// Load читает .env (если он есть) и переменные окружения
func Load() (*Config, error) {
	_ = godotenv.Load() // .env необязателен, в проде переменные задаются окружением

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "production"),
		GRPCPort:    getEnv("GRPC_PORT", "50052"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		DB: DBConfig{
			Driver:   getEnv("DB_DRIVER", DriverPostgres),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "post_service"),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(getEnv("KAFKA_BROKERS", "kafka:9092")),
			TopicViews:    getEnv("KAFKA_TOPIC_VIEWS", "post-views"),
			TopicLikes:    getEnv("KAFKA_TOPIC_LIKES", "post-interactions"),
			TopicComments: getEnv("KAFKA_TOPIC_COMMENTS", "post-comments"),
		},
	}

	var err error
	if cfg.DB.MaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 25); err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate, err = getEnvBool("DB_AUTO_MIGRATE", true); err != nil {
		return nil, err
	}
	if cfg.MaxWorkers, err = getEnvInt("MAX_WORKERS", 10); err != nil {
		return nil, err
	}
	if cfg.RPCTimeout, err = getEnvDuration("RPC_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.Kafka.Enabled, err = getEnvBool("KAFKA_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.Kafka.PublishTimeout, err = getEnvDuration("KAFKA_PUBLISH_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Kafka.MaxAttempts, err = getEnvInt("KAFKA_MAX_ATTEMPTS", 3); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverPgx, DriverMemory:
	default:
		return fmt.Errorf("неизвестный DB_DRIVER %q", c.DB.Driver)
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("MAX_WORKERS должен быть положительным, получено %d", c.MaxWorkers)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS не задан при KAFKA_ENABLED=true")
	}
	return nil
}

// IsLocal сообщает, что сервис запущен в локальном окружении
func (c *Config) IsLocal() bool {
	return c.AppEnv == "local"
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("неверный формат %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("неверный формат %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("неверный формат %s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
