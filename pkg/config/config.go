package config

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Supported document store backends
const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Redis struct {
		Addr string `env:"REDIS_ADDR" env-default:"localhost:6379"`
		Pass string `env:"REDIS_PASS"`
		DB   int    `env:"REDIS_DB" env-default:"0"`
	}
	Kafka struct {
		Brokers string `env:"KAFKA_BROKERS"`
		Topic   string `env:"KAFKA_TOPIC" env-default:"board.events"`
	}
	Board struct {
		Store         string        `env:"BOARD_STORE" env-default:"postgres" env-description:"postgres, redis or memory"`
		StatsInterval time.Duration `env:"BOARD_STATS_INTERVAL" env-default:"1m"`
		RateRequests  int           `env:"BOARD_RATE_REQUESTS" env-default:"10"`
		RatePer       time.Duration `env:"BOARD_RATE_PER" env-default:"1m"`
		RateBurst     int           `env:"BOARD_RATE_BURST" env-default:"5"`
	}
	Otel struct {
		Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
		ServiceName string `env:"OTEL_SERVICE_NAME" env-default:"board-api"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values cleanenv cannot express as tags.
func (c *Config) Validate() error {
	switch c.Board.Store {
	case StorePostgres, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("unknown BOARD_STORE %q", c.Board.Store)
	}
	if c.Board.RateRequests <= 0 || c.Board.RatePer <= 0 {
		return fmt.Errorf("board rate limit must be positive")
	}
	return nil
}

// GetDSN returns the libpq connection string used by goose and database/sql.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

// GetURL returns the postgres:// URL used by pgxpool.
func (c *Config) GetURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}

// KafkaBrokers splits KAFKA_BROKERS on commas; empty means events are disabled.
func (c *Config) KafkaBrokers() []string {
	var out []string
	for _, b := range strings.Split(c.Kafka.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
