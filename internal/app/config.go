package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	// StorageDriverMemory хранит данные в памяти процесса.
	StorageDriverMemory = "memory"
	// StorageDriverPostgres хранит данные в PostgreSQL.
	StorageDriverPostgres = "postgres"

	envPrefix = "PURCHASING_"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR"`
	MetricsAddr string `env:"METRICS_ADDR"`
	GRPCAddr    string `env:"GRPC_ADDR"`

	StorageDriver       string        `env:"STORAGE_DRIVER"`
	PostgresDSN         string        `env:"POSTGRES_DSN"`
	PostgresAutoMigrate bool          `env:"POSTGRES_AUTO_MIGRATE"`
	RepositoryTimeout   time.Duration `env:"REPOSITORY_TIMEOUT"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// DefaultConfig возвращает настройки для локального запуска без внешних зависимостей.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		MetricsAddr:         ":9090",
		GRPCAddr:            ":50051",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		RepositoryTimeout:   3 * time.Second,
		KafkaTopic:          "purchasing.purchase_order.events",
		LogLevel:            "info",
		LogFormat:           "text",
		ShutdownTimeout:     5 * time.Second,
	}
}

// LoadConfig накладывает переменные PURCHASING_* на DefaultConfig и проверяет результат.
func LoadConfig() (Config, error) {
	return loadConfig(nil)
}

func loadConfig(environment map[string]string) (Config, error) {
	cfg := DefaultConfig()
	opts := env.Options{Prefix: envPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.KafkaBrokers = compact(cfg.KafkaBrokers)
	cfg.CORSAllowedOrigins = compact(cfg.CORSAllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	var errs []error
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http address must not be empty"))
	}
	if c.MetricsAddr == "" {
		errs = append(errs, errors.New("metrics address must not be empty"))
	}
	if c.GRPCAddr == "" {
		errs = append(errs, errors.New("grpc address must not be empty"))
	}

	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			errs = append(errs, errors.New("postgres dsn is required for postgres storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.StorageDriver))
	}

	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		errs = append(errs, errors.New("kafka topic must not be empty when brokers are set"))
	}
	if c.RepositoryTimeout <= 0 {
		errs = append(errs, errors.New("repository timeout must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	return errors.Join(errs...)
}

func compact(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
