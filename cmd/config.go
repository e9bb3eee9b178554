package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	HTTPPort   string `koanf:"http_port"`
	DBHost     string `koanf:"db_host"`
	DBPort     string `koanf:"db_port"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
	DBName     string `koanf:"db_name"`
	DBSslMode  string `koanf:"db_sslmode"`

	// Redis is optional; without it duplicate checkouts are caught by the
	// unique idempotency key column alone.
	RedisAddr      string        `koanf:"redis_addr"`
	RedisPassword  string        `koanf:"redis_password"`
	IdempotencyTTL time.Duration `koanf:"idempotency_ttl"`

	// IdempotencyLockTTL bounds how long a crashed checkout blocks its key.
	IdempotencyLockTTL time.Duration `koanf:"idempotency_lock_ttl"`

	// Kafka is optional; without brokers the outbox accumulates until one is configured.
	KafkaBrokers          []string `koanf:"kafka_brokers"`
	KafkaOrderEventsTopic string   `koanf:"kafka_order_events_topic"`
	OutboxBatchSize       int      `koanf:"outbox_batch_size"`

	AdminJWTSecret   string `koanf:"admin_jwt_secret"`
	AdminJWTIssuer   string `koanf:"admin_jwt_issuer"`
	AdminJWTAudience string `koanf:"admin_jwt_audience"`

	LogLevel     string `koanf:"log_level"`
	LogFile      string `koanf:"log_file"`
	SeedDemoData bool   `koanf:"seed_demo_data"`
}

func defaults() map[string]any {
	return map[string]any{
		"http_port":                "8082",
		"db_host":                  "localhost",
		"db_port":                  "5432",
		"db_name":                  "storefront",
		"db_sslmode":               "disable",
		"idempotency_ttl":          "24h",
		"idempotency_lock_ttl":     "30s",
		"kafka_order_events_topic": "order.events",
		"outbox_batch_size":        100,
		"admin_jwt_issuer":         "storefront",
		"admin_jwt_audience":       "storefront-admin",
		"log_level":                "info",
		"seed_demo_data":           false,
	}
}

// LoadConfig reads .env (when present), then CONFIG_FILE (when set), then
// the process environment. Later layers win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	known := defaults()
	for _, key := range []string{"db_user", "db_password", "redis_addr", "redis_password",
		"kafka_brokers", "admin_jwt_secret", "log_file"} {
		known[key] = nil
	}
	if err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := known[key]; !ok {
			return ""
		}
		return key
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT required"))
	}
	if c.DBHost == "" || c.DBName == "" {
		errs = append(errs, errors.New("DB_HOST and DB_NAME required"))
	}
	if len(c.AdminJWTSecret) < 32 {
		errs = append(errs, errors.New("ADMIN_JWT_SECRET must be at least 32 bytes"))
	}
	if c.OutboxBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("OUTBOX_BATCH_SIZE must be positive, got %d", c.OutboxBatchSize))
	}
	if c.IdempotencyTTL <= 0 {
		errs = append(errs, errors.New("IDEMPOTENCY_TTL must be positive"))
	}
	if c.IdempotencyLockTTL <= 0 || c.IdempotencyLockTTL >= c.IdempotencyTTL {
		errs = append(errs, errors.New("IDEMPOTENCY_LOCK_TTL must be positive and shorter than IDEMPOTENCY_TTL"))
	}
	return errors.Join(errs...)
}

// DSN is the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
