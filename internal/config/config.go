package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Поддерживаемые бэкенды хранилища.
const (
	StoragePostgres = "postgres"
	StorageGorm     = "gorm"
	StorageMemory   = "memory"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"postgres"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://internal/database/migrations"`

	ServerPort      string        `env:"SERVER_PORT"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	JWTSecret      string        `env:"JWT_SECRET,required"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	NewsAPIKey     string `env:"NEWS_API_KEY"`
	NewsAPIBaseURL string `env:"NEWS_API_BASE_URL" envDefault:"https://newsapi.org/v2"`

	// Настройки для MinIO (выгрузка отчётов). Пустой endpoint отключает выгрузку.
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME" envDefault:"carbon-reports"`
	MinioRegion          string `env:"MINIO_REGION" envDefault:"us-east-1"`

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"footprint_submissions"`
	}

	SeedFactoryEntries int `env:"SEED_FACTORY_ENTRIES" envDefault:"200"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет зависимости между полями.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StoragePostgres, StorageGorm:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for storage backend %q", c.StorageBackend)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (use postgres, gorm or memory)", c.StorageBackend)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.MinioEnabled() && (c.MinioAccessKeyID == "" || c.MinioSecretAccessKey == "") {
		return errors.New("MINIO_ACCESS_KEY_ID and MINIO_SECRET_ACCESS_KEY must be set together with MINIO_ENDPOINT")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	if c.SeedFactoryEntries < 0 {
		return errors.New("SEED_FACTORY_ENTRIES must not be negative")
	}
	return nil
}

// MinioEnabled сообщает, настроена ли выгрузка отчётов.
func (c *Config) MinioEnabled() bool { return c.MinioEndpoint != "" }

// RabbitMQEnabled сообщает, настроена ли очередь импорта.
func (c *Config) RabbitMQEnabled() bool { return c.RabbitMQ.RabbitMQURL != "" }
