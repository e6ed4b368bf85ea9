package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/CarbonTracker/internal/adapter/newsapi"
	"github.com/GoArmGo/CarbonTracker/internal/adapter/storage/minio"
	"github.com/GoArmGo/CarbonTracker/internal/app"
	"github.com/GoArmGo/CarbonTracker/internal/auth"
	"github.com/GoArmGo/CarbonTracker/internal/config"
	"github.com/GoArmGo/CarbonTracker/internal/core/ports"
	"github.com/GoArmGo/CarbonTracker/internal/database/client"
	"github.com/GoArmGo/CarbonTracker/internal/database/gormdb"
	"github.com/GoArmGo/CarbonTracker/internal/database/memory"
	"github.com/GoArmGo/CarbonTracker/internal/database/storage"
	"github.com/GoArmGo/CarbonTracker/internal/logger"
	"github.com/GoArmGo/CarbonTracker/internal/rabbitmq"
	"github.com/GoArmGo/CarbonTracker/internal/usecase"
)

// storageSet — реализации портов хранилища выбранного бэкенда.
type storageSet struct {
	users      ports.UserStorage
	footprints ports.FootprintStorage
	pinger     ports.Pinger
	close      func() error
}

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp(ctx context.Context) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	var closers []func() error
	fail := func(err error) (*app.App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
		return nil, err
	}

	// 2. Хранилище
	stores, err := openStorage(cfg, slogger)
	if err != nil {
		return nil, err
	}
	closers = append(closers, stores.close)

	// 3. Бизнес-логика
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	ledger := usecase.NewFootprintLedger(stores.users, stores.footprints, slogger)
	profiles := usecase.NewProfileUseCase(stores.users, ledger, slogger)

	components := app.Components{
		Auth:       usecase.NewAuthUseCase(stores.users, profiles, tokens, slogger),
		Profiles:   profiles,
		Ledger:     ledger,
		Calculator: usecase.NewCalculatorUseCase(ledger, slogger),
		News:       usecase.NewNewsUseCase(newsapi.NewClient(cfg), slogger),
		Seeder:     usecase.NewSeeder(stores.users, ledger, slogger),
		Pinger:     stores.pinger,
	}

	// 4. MinIO для отчётов (необязательно)
	var fileStorage usecase.FileStorage
	if cfg.MinioEnabled() {
		minioClient, err := minio.NewMinioClient(ctx, cfg, slogger)
		if err != nil {
			return fail(err)
		}
		fileStorage = minioClient
	} else {
		slogger.Warn("MINIO_ENDPOINT is not set, report export disabled")
	}
	components.Reports = usecase.NewReportUseCase(ledger, fileStorage, slogger)

	// 5. RabbitMQ для импорта (необязательно)
	if cfg.RabbitMQEnabled() {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() error { rabbitMQClient.Close(); return nil })
		components.Publisher = rabbitMQClient
		components.Consumer = rabbitMQClient
	} else {
		slogger.Warn("RABBITMQ_URL is not set, footprint import disabled")
	}

	slogger.Info("dependencies initialized", "storage", cfg.StorageBackend)
	return app.NewApp(cfg, slogger, components, closers...), nil
}

// openStorage выбирает бэкенд по STORAGE_BACKEND.
func openStorage(cfg *config.Config, logger *slog.Logger) (*storageSet, error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		dbClient, err := client.NewClient(cfg, logger)
		if err != nil {
			return nil, err
		}
		return &storageSet{
			users:      storage.NewUserStorage(dbClient.DB, logger),
			footprints: storage.NewFootprintStorage(dbClient.DB, logger),
			pinger:     dbClient,
			close:      dbClient.Close,
		}, nil

	case config.StorageGorm:
		db, err := gormdb.Open(cfg, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("gorm sql handle: %w", err)
		}
		footprints := gormdb.NewFootprintStorage(db, logger)
		return &storageSet{
			users:      gormdb.NewUserStorage(db, logger),
			footprints: footprints,
			pinger:     footprints,
			close:      sqlDB.Close,
		}, nil

	case config.StorageMemory:
		logger.Warn("using in-memory storage, data will be lost on exit")
		store := memory.NewStorage()
		return &storageSet{
			users:      store,
			footprints: store,
			pinger:     store,
			close:      func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
