package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort int `env:"HTTP_PORT"`

	DBConfig struct {
		DBHost     string `env:"ECOMMERCE_DB_HOST"`
		DBPort     string `env:"ECOMMERCE_DB_PORT"`
		DBUser     string `env:"ECOMMERCE_DB_USER"`
		DBPassword string `env:"ECOMMERCE_DB_PASSWORD"`
		DBName     string `env:"ECOMMERCE_DB_NAME"`
		DBSSLMode  string `env:"ECOMMERCE_DB_SSLMODE"`
	}

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`

	ProductCacheTTL time.Duration `env:"PRODUCT_CACHE_TTL"`

	KafkaURL string `env:"KAFKA_BROKER_URL"`

	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL"`
	OutboxPollTimeout  time.Duration `env:"OUTBOX_POLL_TIMEOUT"`

	PortOneBaseURL   string        `env:"PORTONE_BASE_URL"`
	PortOneAPISecret string        `env:"PORTONE_API_SECRET"`
	PortOneTimeout   time.Duration `env:"PORTONE_TIMEOUT"`

	MigrationsPath string `env:"MIGRATIONS_PATH"`
}

func LoadConfig() (*Config, error) {
	// Local development convenience; a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{}

	port, err := strconv.Atoi(getEnvOrDefault("HTTP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_PORT: %w", err)
	}
	cfg.HTTPPort = port

	cfg.DBConfig.DBHost = getEnvOrDefault("ECOMMERCE_DB_HOST", "localhost")
	cfg.DBConfig.DBPort = getEnvOrDefault("ECOMMERCE_DB_PORT", "5432")
	cfg.DBConfig.DBUser = getEnvOrDefault("ECOMMERCE_DB_USER", "postgres")
	cfg.DBConfig.DBPassword = getEnvOrDefault("ECOMMERCE_DB_PASSWORD", "postgres")
	cfg.DBConfig.DBName = getEnvOrDefault("ECOMMERCE_DB_NAME", "ecommerce_db")
	cfg.DBConfig.DBSSLMode = getEnvOrDefault("ECOMMERCE_DB_SSLMODE", "disable")

	cfg.RedisAddr = getEnvOrDefault("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnvOrDefault("REDIS_PASSWORD", "")
	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	cacheTTL, err := time.ParseDuration(getEnvOrDefault("PRODUCT_CACHE_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PRODUCT_CACHE_TTL: %w", err)
	}
	cfg.ProductCacheTTL = cacheTTL

	cfg.KafkaURL = getEnvOrDefault("KAFKA_BROKER_URL", "localhost:9092")

	interval, err := time.ParseDuration(getEnvOrDefault("OUTBOX_POLL_INTERVAL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OUTBOX_POLL_INTERVAL: %w", err)
	}
	cfg.OutboxPollInterval = interval

	timeout, err := time.ParseDuration(getEnvOrDefault("OUTBOX_POLL_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OUTBOX_POLL_TIMEOUT: %w", err)
	}
	cfg.OutboxPollTimeout = timeout

	cfg.PortOneBaseURL = getEnvOrDefault("PORTONE_BASE_URL", "https://api.portone.io")
	cfg.PortOneAPISecret = getEnvOrDefault("PORTONE_API_SECRET", "")
	portOneTimeout, err := time.ParseDuration(getEnvOrDefault("PORTONE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORTONE_TIMEOUT: %w", err)
	}
	cfg.PortOneTimeout = portOneTimeout

	cfg.MigrationsPath = getEnvOrDefault("MIGRATIONS_PATH", "file://migrations")

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func (c *Config) GetDBMigrationConnectionString() string {
	return fmt.Sprintf("%s:%s@%s:%s/%s?sslmode=%s",
		c.DBConfig.DBUser, c.DBConfig.DBPassword, c.DBConfig.DBHost, c.DBConfig.DBPort, c.DBConfig.DBName, c.DBConfig.DBSSLMode)
}

func (c *Config) GetKafkaBrokers() []string {
	return []string{c.KafkaURL}
}
